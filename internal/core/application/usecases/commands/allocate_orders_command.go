package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrAllocateOrdersCommandIsNotConstructed = errors.New(
	"AllocateOrdersCommand must be created via NewAllocateOrdersCommand constructor",
)

// AllocateOrdersCommand runs allocation passes over a batch of orders, each
// in its own transaction so one order's failure cannot abort the rest.
type AllocateOrdersCommand struct {
	orderIDs     []kernel.UUID
	allowPartial bool

	guard guard.ConstructorGuard
}

// NewAllocateOrdersCommand creates a command to allocate the given orders.
func NewAllocateOrdersCommand(orderIDs []kernel.UUID, allowPartial bool) (AllocateOrdersCommand, error) {
	if len(orderIDs) == 0 {
		return AllocateOrdersCommand{}, errs.NewValueIsRequiredError("orderIDs")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return AllocateOrdersCommand{}, err
		}
	}

	return AllocateOrdersCommand{
		orderIDs:     orderIDs,
		allowPartial: allowPartial,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// OrderIDs returns the orders to allocate.
func (c *AllocateOrdersCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// AllowPartial reports whether partial allocation is acceptable.
func (c *AllocateOrdersCommand) AllowPartial() bool {
	return c.allowPartial
}

// Validate ensures the command was created through the constructor.
func (c *AllocateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAllocateOrdersCommandIsNotConstructed)
}
