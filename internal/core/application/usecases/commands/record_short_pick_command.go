package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrRecordShortPickCommandIsNotConstructed = errors.New(
	"RecordShortPickCommand must be created via NewRecordShortPickCommand constructor",
)

// RecordShortPickCommand records the inventory side effects of a short
// confirmation: a discrepancy entry and, on repeated shorts at the same
// location, a cycle-count flag. Triggered out-of-band after the confirmation
// itself committed.
type RecordShortPickCommand struct {
	taskItemID kernel.UUID
	userID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordShortPickCommand creates a command to record the short-pick side
// effects of the given task line.
func NewRecordShortPickCommand(taskItemID, userID kernel.UUID) (RecordShortPickCommand, error) {
	if err := taskItemID.Validate(); err != nil {
		return RecordShortPickCommand{}, err
	}
	if err := userID.Validate(); err != nil {
		return RecordShortPickCommand{}, err
	}

	return RecordShortPickCommand{
		taskItemID: taskItemID,
		userID:     userID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TaskItemID returns the short-confirmed line.
func (c *RecordShortPickCommand) TaskItemID() kernel.UUID {
	return c.taskItemID
}

// UserID returns the operator who reported the short.
func (c *RecordShortPickCommand) UserID() kernel.UUID {
	return c.userID
}

// Validate ensures the command was created through the constructor.
func (c *RecordShortPickCommand) Validate() error {
	return c.guard.Validate(ErrRecordShortPickCommandIsNotConstructed)
}
