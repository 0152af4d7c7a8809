// Package order contains the Order aggregate: the customer order moving
// through fulfillment, its lines, and the status state machine that projects
// allocation and task progress into an externally visible lifecycle.
//
// The aggregate never mutates inventory or allocations itself; the allocation
// engine and task orchestration drive it through ApplyAllocationOutcome,
// StartPicking, MarkPicked, and the other transition methods, all of which
// enforce the legal-transition table in status.go.
package order
