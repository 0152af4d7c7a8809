package task

import (
	"fmt"
	"slices"

	"warehouse/internal/pkg/errs"
)

// Status represents the lifecycle state of a work task. Completed and
// Cancelled are terminal; every other transition must appear in the legal
// transition table or it is rejected naming both states.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the task is created and waiting for an operator.
	StatusPending

	// StatusAssigned means an operator took (or was given) the task.
	StatusAssigned

	// StatusInProgress means the operator is working the task.
	StatusInProgress

	// StatusBlocked means the task hit an obstacle recorded as a BlockReason.
	StatusBlocked

	// StatusPaused means the operator suspended work without an obstacle.
	StatusPaused

	// StatusCompleted means every item reached a closed state. Terminal.
	StatusCompleted

	// StatusCancelled means the task was abandoned. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusPending:    "Pending",
		StatusAssigned:   "Assigned",
		StatusInProgress: "InProgress",
		StatusBlocked:    "Blocked",
		StatusPaused:     "Paused",
		StatusCompleted:  "Completed",
		StatusCancelled:  "Cancelled",
	}
}

// legalNextStates is the authoritative transition table. Assigned moves back
// to Pending when an operator hands the task off.
func legalNextStates(s Status) []Status {
	switch s {
	case StatusPending:
		return []Status{StatusAssigned, StatusCancelled}
	case StatusAssigned:
		return []Status{StatusInProgress, StatusPending, StatusCancelled}
	case StatusInProgress:
		return []Status{StatusCompleted, StatusBlocked, StatusPaused, StatusCancelled}
	case StatusBlocked:
		return []Status{StatusInProgress, StatusCancelled}
	case StatusPaused:
		return []Status{StatusInProgress, StatusCancelled}
	default:
		return nil
	}
}

// Validate checks the status is one of the defined values.
func (s Status) Validate() error {
	if s < StatusPending || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("task status",
			fmt.Errorf("%d is not a valid task status", s))
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
	return s == StatusCompleted || s == StatusCancelled
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
		return StatusUnknown, errs.NewInvalidTransitionError("task", s.String(), target.String())
	}
	return target, nil
}
