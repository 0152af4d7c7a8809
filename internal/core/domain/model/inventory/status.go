package inventory

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// UnitStatus represents the physical state of an inventory unit. Reservation
// is intentionally absent: a unit is "reserved" only by virtue of active
// allocations against it, which the ledger recomputes on every read.
type UnitStatus int

const (
	// UnitStatusUnknown represents an invalid or undefined status.
	UnitStatusUnknown UnitStatus = iota

	// UnitStatusAvailable means the unit is on shelf and allocatable.
	UnitStatusAvailable

	// UnitStatusPicked means the unit was fully consumed by pick confirmations.
	UnitStatusPicked

	// UnitStatusDamaged means the unit was flagged unusable and excluded from
	// allocation.
	UnitStatusDamaged

	// UnitStatusInTransit means the unit is moving between locations and not
	// yet allocatable.
	UnitStatusInTransit
)

func getUnitStatusStrings() map[UnitStatus]string {
	return map[UnitStatus]string{
		UnitStatusUnknown:   "Unknown",
		UnitStatusAvailable: "Available",
		UnitStatusPicked:    "Picked",
		UnitStatusDamaged:   "Damaged",
		UnitStatusInTransit: "InTransit",
	}
}

// Validate checks the status is one of the defined values.
func (s UnitStatus) Validate() error {
	if s < UnitStatusAvailable || s > UnitStatusInTransit {
		return errs.NewValueIsInvalidErrorWithCause("unit status",
			fmt.Errorf("%d is not a valid unit status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s UnitStatus) String() string {
	if str, ok := getUnitStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
