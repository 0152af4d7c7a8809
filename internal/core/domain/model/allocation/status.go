package allocation

import (
	"fmt"
	"slices"

	"warehouse/internal/pkg/errs"
)

// Status represents the lifecycle of a stock reservation. Active statuses
// count against the free quantity of the backing inventory unit; Released and
// Cancelled are exits that give the stock back.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the reservation was computed but not yet confirmed
	// inside its transaction.
	StatusPending

	// StatusAllocated means the reservation is confirmed and holds stock.
	StatusAllocated

	// StatusPartiallyPicked means some but not all of the reserved quantity
	// was confirmed picked.
	StatusPartiallyPicked

	// StatusPicked means the full reserved quantity was confirmed picked.
	StatusPicked

	// StatusReleased means a reservation with no confirmed picks was given
	// back in full, typically because the order was cancelled or
	// re-allocated. A reservation with picks closes as Picked instead so
	// the consumed quantity never re-enters the free pool.
	StatusReleased

	// StatusCancelled means the reservation was voided.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:         "Unknown",
		StatusPending:         "Pending",
		StatusAllocated:       "Allocated",
		StatusPartiallyPicked: "PartiallyPicked",
		StatusPicked:          "Picked",
		StatusReleased:        "Released",
		StatusCancelled:       "Cancelled",
	}
}

func legalNextStates(s Status) []Status {
	switch s {
	case StatusPending:
		return []Status{StatusAllocated, StatusCancelled}
	case StatusAllocated:
		return []Status{StatusPartiallyPicked, StatusPicked, StatusReleased, StatusCancelled}
	case StatusPartiallyPicked:
		return []Status{StatusPicked}
	default:
		return nil
	}
}

// Validate checks the status is one of the defined values.
func (s Status) Validate() error {
	if s < StatusPending || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("allocation status",
			fmt.Errorf("%d is not a valid allocation status", s))
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

// IsActive reports whether the status holds stock against its unit. A picked
// allocation stays active permanently: its quantity keeps the physically
// consumed stock subtracted from the unit's free quantity, since the unit's
// own quantity never changes after receipt.
func (s Status) IsActive() bool {
	return s == StatusAllocated || s == StatusPartiallyPicked || s == StatusPicked
}

// CanTransitionTo reports whether moving to target is legal.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(legalNextStates(s), target)
}

// TransitionTo returns the target status or an InvalidTransitionError naming
// both states.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidTransitionError("allocation", s.String(), target.String())
	}
	return target, nil
}
