package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrAllocateOrderCommandIsNotConstructed = errors.New(
	"AllocateOrderCommand must be created via NewAllocateOrderCommand constructor",
)

// AllocateOrderCommand runs one allocation pass over one order: matching its
// lines against available stock FEFO-then-FIFO and reserving what it finds.
// Safe to re-run; allocated quantity is recomputed from the ledger so a
// second pass only tops up the difference.
type AllocateOrderCommand struct {
	orderID      kernel.UUID
	allowPartial bool

	guard guard.ConstructorGuard
}

// NewAllocateOrderCommand creates a command to allocate the given order.
// allowPartial controls whether a partially satisfiable order lands in
// PartiallyAllocated or falls back to Backordered.
func NewAllocateOrderCommand(orderID kernel.UUID, allowPartial bool) (AllocateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AllocateOrderCommand{}, err
	}

	return AllocateOrderCommand{
		orderID:      orderID,
		allowPartial: allowPartial,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to allocate.
func (c *AllocateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AllowPartial reports whether partial allocation is acceptable.
func (c *AllocateOrderCommand) AllowPartial() bool {
	return c.allowPartial
}

// Validate ensures the command was created through the constructor.
func (c *AllocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrAllocateOrderCommandIsNotConstructed)
}
