package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCancelPickBinCommandIsNotConstructed = errors.New(
	"CancelPickBinCommand must be created via NewCancelPickBinCommand constructor",
)

// CancelPickBinCommand withdraws a bin before pack-station verification
// finishes.
type CancelPickBinCommand struct {
	binID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelPickBinCommand creates a command to cancel the bin.
func NewCancelPickBinCommand(binID kernel.UUID) (CancelPickBinCommand, error) {
	if err := binID.Validate(); err != nil {
		return CancelPickBinCommand{}, err
	}

	return CancelPickBinCommand{
		binID: binID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// BinID returns the bin to cancel.
func (c *CancelPickBinCommand) BinID() kernel.UUID {
	return c.binID
}

// Validate ensures the command was created through the constructor.
func (c *CancelPickBinCommand) Validate() error {
	return c.guard.Validate(ErrCancelPickBinCommandIsNotConstructed)
}
