package task

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Type distinguishes the kinds of labor a work task groups.
type Type int

const (
	// TypeUnknown represents an invalid or undefined type.
	TypeUnknown Type = iota

	// TypePicking is a task collecting stock off shelves for orders.
	TypePicking

	// TypePacking is a task packing verified bins for shipment.
	TypePacking
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "Unknown",
		TypePicking: "Picking",
		TypePacking: "Packing",
	}
}

// Validate checks the type is one of the defined values.
func (t Type) Validate() error {
	if t < TypePicking || t > TypePacking {
		return errs.NewValueIsInvalidErrorWithCause("task type",
			fmt.Errorf("%d is not a valid task type", t))
	}
	return nil
}

// String returns the human-readable name of the type.
func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "Unknown"
}
