package commands

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrRecordItemCompletionCommandIsNotConstructed = errors.New(
	"RecordItemCompletionCommand must be created via NewRecordItemCompletionCommand constructor",
)

// RecordItemCompletionCommand confirms a pick: the operator reports how much
// of a task line they actually took from the shelf. Anything below the
// required quantity is a short pick.
type RecordItemCompletionCommand struct {
	taskItemID kernel.UUID
	userID     kernel.UUID
	actualQty  int

	guard guard.ConstructorGuard
}

// NewRecordItemCompletionCommand creates a command to confirm the pick of a
// task line.
func NewRecordItemCompletionCommand(
	taskItemID, userID kernel.UUID,
	actualQty int,
) (RecordItemCompletionCommand, error) {
	if err := taskItemID.Validate(); err != nil {
		return RecordItemCompletionCommand{}, err
	}
	if err := userID.Validate(); err != nil {
		return RecordItemCompletionCommand{}, err
	}
	if actualQty < 0 {
		return RecordItemCompletionCommand{}, errs.NewValueIsInvalidErrorWithCause("actualQty",
			fmt.Errorf("%d is negative", actualQty))
	}

	return RecordItemCompletionCommand{
		taskItemID: taskItemID,
		userID:     userID,
		actualQty:  actualQty,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TaskItemID returns the line being confirmed.
func (c *RecordItemCompletionCommand) TaskItemID() kernel.UUID {
	return c.taskItemID
}

// UserID returns the operator confirming the pick.
func (c *RecordItemCompletionCommand) UserID() kernel.UUID {
	return c.userID
}

// ActualQty returns the quantity the operator actually picked.
func (c *RecordItemCompletionCommand) ActualQty() int {
	return c.actualQty
}

// Validate ensures the command was created through the constructor.
func (c *RecordItemCompletionCommand) Validate() error {
	return c.guard.Validate(ErrRecordItemCompletionCommandIsNotConstructed)
}
