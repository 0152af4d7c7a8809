package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrStartTaskCommandIsNotConstructed = errors.New(
	"StartTaskCommand must be created via NewStartTaskCommand constructor",
)

// StartTaskCommand begins work on an assigned task and moves the covered
// orders into their picking phase.
type StartTaskCommand struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartTaskCommand creates a command to start the task.
func NewStartTaskCommand(taskID kernel.UUID) (StartTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return StartTaskCommand{}, err
	}

	return StartTaskCommand{
		taskID: taskID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the task to start.
func (c *StartTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Validate ensures the command was created through the constructor.
func (c *StartTaskCommand) Validate() error {
	return c.guard.Validate(ErrStartTaskCommandIsNotConstructed)
}
