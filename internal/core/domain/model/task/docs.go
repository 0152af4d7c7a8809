// Package task contains the work task aggregate: a unit of labor grouping
// ordered work over one or more orders, driven through a strict status state
// machine. The aggregate owns its task items and keeps the progress counters
// in lockstep with item state, so a committed task can never report counts
// that disagree with its lines.
//
// Task creation is idempotent via a caller-supplied key, which makes the
// queue-driven entry points safe under at-least-once delivery.
package task
