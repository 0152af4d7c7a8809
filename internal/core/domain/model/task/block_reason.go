package task

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// BlockReason is the closed enum of obstacles recorded alongside a Blocked
// transition.
type BlockReason int

const (
	// BlockReasonUnknown represents an invalid or undefined reason.
	BlockReasonUnknown BlockReason = iota

	// BlockReasonShortPick means a location held less than required.
	BlockReasonShortPick

	// BlockReasonLocationEmpty means a location held nothing at all.
	BlockReasonLocationEmpty

	// BlockReasonDamagedInventory means the stock found was unusable.
	BlockReasonDamagedInventory

	// BlockReasonPickerTimeout means an external watchdog flagged the task
	// idle. This core never starts such a timer itself.
	BlockReasonPickerTimeout

	// BlockReasonSupervisorHold means a supervisor suspended the task.
	BlockReasonSupervisorHold

	// BlockReasonEquipmentIssue means a scanner, cart or printer failed.
	BlockReasonEquipmentIssue

	// BlockReasonSystemError means the task was blocked by a software fault.
	BlockReasonSystemError
)

func getBlockReasonStrings() map[BlockReason]string {
	return map[BlockReason]string{
		BlockReasonUnknown:          "Unknown",
		BlockReasonShortPick:        "ShortPick",
		BlockReasonLocationEmpty:    "LocationEmpty",
		BlockReasonDamagedInventory: "DamagedInventory",
		BlockReasonPickerTimeout:    "PickerTimeout",
		BlockReasonSupervisorHold:   "SupervisorHold",
		BlockReasonEquipmentIssue:   "EquipmentIssue",
		BlockReasonSystemError:      "SystemError",
	}
}

// Validate checks the reason is one of the defined values.
func (r BlockReason) Validate() error {
	if r < BlockReasonShortPick || r > BlockReasonSystemError {
		return errs.NewValueIsInvalidErrorWithCause("block reason",
			fmt.Errorf("%d is not a valid block reason", r))
	}
	return nil
}

// String returns the human-readable name of the reason.
func (r BlockReason) String() string {
	if s, ok := getBlockReasonStrings()[r]; ok {
		return s
	}
	return "Unknown"
}
