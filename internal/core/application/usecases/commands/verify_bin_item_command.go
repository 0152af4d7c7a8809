package commands

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrVerifyBinItemCommandIsNotConstructed = errors.New(
	"VerifyBinItemCommand must be created via NewVerifyBinItemCommand constructor",
)

// VerifyBinItemCommand records a pack-station scan against a bin line.
type VerifyBinItemCommand struct {
	binID     kernel.UUID
	variantID kernel.UUID
	qty       int

	guard guard.ConstructorGuard
}

// NewVerifyBinItemCommand creates a command to verify qty units of the
// variant out of the bin.
func NewVerifyBinItemCommand(binID, variantID kernel.UUID, qty int) (VerifyBinItemCommand, error) {
	if err := binID.Validate(); err != nil {
		return VerifyBinItemCommand{}, err
	}
	if err := variantID.Validate(); err != nil {
		return VerifyBinItemCommand{}, err
	}
	if qty <= 0 {
		return VerifyBinItemCommand{}, errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	return VerifyBinItemCommand{
		binID:     binID,
		variantID: variantID,
		qty:       qty,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// BinID returns the bin being scanned.
func (c *VerifyBinItemCommand) BinID() kernel.UUID {
	return c.binID
}

// VariantID returns the scanned product variant.
func (c *VerifyBinItemCommand) VariantID() kernel.UUID {
	return c.variantID
}

// Qty returns the scanned quantity.
func (c *VerifyBinItemCommand) Qty() int {
	return c.qty
}

// Validate ensures the command was created through the constructor.
func (c *VerifyBinItemCommand) Validate() error {
	return c.guard.Validate(ErrVerifyBinItemCommandIsNotConstructed)
}
