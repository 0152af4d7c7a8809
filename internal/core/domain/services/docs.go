// Package services contains stateless domain services coordinating logic
// that spans aggregates: the allocation pass matching order lines against
// available stock, pick-path sequencing of task items, and the short-pick
// escalation policy.
package services
