package task

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// ItemStatus represents the state of one line of work within a task.
// Completed, Skipped and Short are closed; a task completes when no item is
// left Pending or InProgress.
type ItemStatus int

const (
	// ItemStatusUnknown represents an invalid or undefined status.
	ItemStatusUnknown ItemStatus = iota

	// ItemStatusPending means the line is waiting to be worked.
	ItemStatusPending

	// ItemStatusInProgress means the operator is at the line's location.
	ItemStatusInProgress

	// ItemStatusCompleted means the full required quantity was confirmed.
	ItemStatusCompleted

	// ItemStatusSkipped means the operator deliberately passed the line over;
	// its reservation is left for manual resolution.
	ItemStatusSkipped

	// ItemStatusShort means less than the required quantity was confirmed.
	ItemStatusShort
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemStatusUnknown:    "Unknown",
		ItemStatusPending:    "Pending",
		ItemStatusInProgress: "InProgress",
		ItemStatusCompleted:  "Completed",
		ItemStatusSkipped:    "Skipped",
		ItemStatusShort:      "Short",
	}
}

// Validate checks the status is one of the defined values.
func (s ItemStatus) Validate() error {
	if s < ItemStatusPending || s > ItemStatusShort {
		return errs.NewValueIsInvalidErrorWithCause("task item status",
			fmt.Errorf("%d is not a valid task item status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsOpen reports whether the line still counts against task completion.
func (s ItemStatus) IsOpen() bool {
	return s == ItemStatusPending || s == ItemStatusInProgress
}
