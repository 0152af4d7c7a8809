package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrReleaseAllocationsCommandIsNotConstructed = errors.New(
	"ReleaseAllocationsCommand must be created via NewReleaseAllocationsCommand constructor",
)

// ReleaseAllocationsCommand hands back every active reservation of an order,
// typically before cancellation or re-allocation.
type ReleaseAllocationsCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseAllocationsCommand creates a command to release the order's
// reservations.
func NewReleaseAllocationsCommand(orderID kernel.UUID) (ReleaseAllocationsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReleaseAllocationsCommand{}, err
	}

	return ReleaseAllocationsCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose reservations are released.
func (c *ReleaseAllocationsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c *ReleaseAllocationsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseAllocationsCommandIsNotConstructed)
}
