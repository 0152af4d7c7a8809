package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrCreatePickingTaskCommandIsNotConstructed = errors.New(
	"CreatePickingTaskCommand must be created via NewCreatePickingTaskCommand constructor",
)

// CreatePickingTaskCommand is the orchestration entry point: allocate the
// order set, materialize a picking task from the reservations, and sequence
// its lines along the pick path. The idempotency key makes re-delivery of the
// same queue job return the existing task instead of double-creating labor or
// double-reserving stock.
type CreatePickingTaskCommand struct {
	idempotencyKey string
	orderIDs       []kernel.UUID
	priority       kernel.Priority

	guard guard.ConstructorGuard
}

// NewCreatePickingTaskCommand creates a command to build a picking task over
// the given orders.
func NewCreatePickingTaskCommand(
	idempotencyKey string,
	orderIDs []kernel.UUID,
	priority kernel.Priority,
) (CreatePickingTaskCommand, error) {
	if idempotencyKey == "" {
		return CreatePickingTaskCommand{}, errs.NewValueIsRequiredError("idempotencyKey")
	}
	if len(orderIDs) == 0 {
		return CreatePickingTaskCommand{}, errs.NewValueIsRequiredError("orderIDs")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return CreatePickingTaskCommand{}, err
		}
	}
	if err := priority.Validate(); err != nil {
		return CreatePickingTaskCommand{}, err
	}

	return CreatePickingTaskCommand{
		idempotencyKey: idempotencyKey,
		orderIDs:       orderIDs,
		priority:       priority,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// IdempotencyKey returns the caller-supplied creation key.
func (c *CreatePickingTaskCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// OrderIDs returns the orders the task will work.
func (c *CreatePickingTaskCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// Priority returns the task's urgency tier.
func (c *CreatePickingTaskCommand) Priority() kernel.Priority {
	return c.priority
}

// Validate ensures the command was created through the constructor.
func (c *CreatePickingTaskCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickingTaskCommandIsNotConstructed)
}
