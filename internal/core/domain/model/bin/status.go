package bin

import (
	"fmt"
	"slices"

	"warehouse/internal/pkg/errs"
)

// Status represents the lifecycle of a pick bin at the pack station.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusStaged means the bin is filled and waiting at the pack station.
	StatusStaged

	// StatusScanning means pack-station verification is underway.
	StatusScanning

	// StatusCompleted means every item was fully verified. Terminal.
	StatusCompleted

	// StatusCancelled means the bin was withdrawn before completion. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusStaged:    "Staged",
		StatusScanning:  "Scanning",
		StatusCompleted: "Completed",
		StatusCancelled: "Cancelled",
	}
}

func legalNextStates(s Status) []Status {
	switch s {
	case StatusStaged:
		return []Status{StatusScanning, StatusCancelled}
	case StatusScanning:
		return []Status{StatusCompleted, StatusCancelled}
	default:
		return nil
	}
}

// Validate checks the status is one of the defined values.
func (s Status) Validate() error {
	if s < StatusStaged || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("bin status",
			fmt.Errorf("%d is not a valid bin status", s))
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
		return StatusUnknown, errs.NewInvalidTransitionError("pick bin", s.String(), target.String())
	}
	return target, nil
}
