package order

import (
	"fmt"
	"slices"

	"warehouse/internal/pkg/errs"
)

// Status represents the externally visible lifecycle state of an order.
// It implements a state machine with defined transitions; the current value is
// always a projection of allocation and task progress, never set arbitrarily.
//
// State transitions:
//
//	Pending ──> Confirmed ──┬──> Allocated ──────────> Picking ──> Picked ──> Packed ──> Shipped
//	    │           │       ├──> PartiallyAllocated ──┘   (task completion drives Picked)
//	    │           │       ├──> Backordered ─┐
//	    │           │       └──> OnHold ──────┴──> (reallocation re-enters the family)
//	    └───────────┴──> Cancelled (from any non-terminal state)
//
// Allocation-derived statuses (OnHold, Backordered, PartiallyAllocated,
// Allocated) move freely between each other because every allocation pass
// recomputes the projection from the ledger.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of an imported order.
	Pending

	// Confirmed indicates the order passed validation and payment checks.
	Confirmed

	// OnHold indicates the order cannot progress, typically because no item
	// could be matched to a product variant. Hold reason is recorded on the order.
	OnHold

	// Backordered indicates no available inventory could be allocated.
	Backordered

	// PartiallyAllocated indicates some but not all required quantity is reserved.
	PartiallyAllocated

	// Allocated indicates every order line is fully reserved against inventory.
	Allocated

	// Picking indicates a picking task covering the order is in progress.
	Picking

	// Picked indicates the picking task covering the order completed.
	Picked

	// Packed indicates pack-station verification finished for the order.
	Packed

	// Shipped is a terminal state: the order left the warehouse.
	Shipped

	// Cancelled is a terminal state reachable from any non-terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Pending:            "Pending",
		Confirmed:          "Confirmed",
		OnHold:             "OnHold",
		Backordered:        "Backordered",
		PartiallyAllocated: "PartiallyAllocated",
		Allocated:          "Allocated",
		Picking:            "Picking",
		Picked:             "Picked",
		Packed:             "Packed",
		Shipped:            "Shipped",
		Cancelled:          "Cancelled",
	}
}

// allocationFamily are the statuses an allocation pass may derive for an order.
var allocationFamily = []Status{OnHold, Backordered, PartiallyAllocated, Allocated}

// legalNextStates returns the set of statuses reachable from s. The table is
// the single source of truth for the order state machine; TransitionTo and the
// aggregate methods consult it and nothing else.
func legalNextStates(s Status) []Status {
	switch s {
	case Pending:
		return []Status{Confirmed, OnHold, Backordered, PartiallyAllocated, Allocated, Cancelled}
	case Confirmed:
		return []Status{OnHold, Backordered, PartiallyAllocated, Allocated, Cancelled}
	case OnHold:
		return []Status{Pending, Backordered, PartiallyAllocated, Allocated, Cancelled}
	case Backordered:
		return []Status{OnHold, PartiallyAllocated, Allocated, Cancelled}
	case PartiallyAllocated:
		return []Status{OnHold, Backordered, Allocated, Picking, Cancelled}
	case Allocated:
		return []Status{Backordered, PartiallyAllocated, Picking, Cancelled}
	case Picking:
		return []Status{Picked, Cancelled}
	case Picked:
		return []Status{Packed, Cancelled}
	case Packed:
		return []Status{Shipped, Cancelled}
	case Shipped, Cancelled:
		return nil
	default:
		return nil
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Shipped || s == Cancelled
}

// IsAllocatable reports whether an allocation pass may run against an order in
// this status. Matches the fail-fast check of the allocation engine.
func (s Status) IsAllocatable() bool {
	return s == Pending || s == Confirmed || s == Backordered || s == PartiallyAllocated
}

// CanTransitionTo reports whether moving to target is legal from s.
// A same-status transition is always permitted as a no-op, which keeps
// recomputed allocation projections idempotent.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return !s.IsTerminal()
	}
	return slices.Contains(legalNextStates(s), target)
}

// TransitionTo returns target when the move is legal and an
// InvalidTransitionError naming both states otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s == target && !s.IsTerminal() {
		return s, nil
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), target.String())
	}
	return target, nil
}
