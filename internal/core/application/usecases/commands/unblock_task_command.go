package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrUnblockTaskCommandIsNotConstructed = errors.New(
	"UnblockTaskCommand must be created via NewUnblockTaskCommand constructor",
)

// UnblockTaskCommand resumes a blocked task once its obstacle is resolved.
type UnblockTaskCommand struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnblockTaskCommand creates a command to unblock the task.
func NewUnblockTaskCommand(taskID kernel.UUID) (UnblockTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return UnblockTaskCommand{}, err
	}

	return UnblockTaskCommand{
		taskID: taskID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the task to unblock.
func (c *UnblockTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Validate ensures the command was created through the constructor.
func (c *UnblockTaskCommand) Validate() error {
	return c.guard.Validate(ErrUnblockTaskCommandIsNotConstructed)
}
