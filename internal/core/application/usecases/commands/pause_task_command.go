package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrPauseTaskCommandIsNotConstructed = errors.New(
	"PauseTaskCommand must be created via NewPauseTaskCommand constructor",
)

// PauseTaskCommand suspends an in-progress task without an obstacle, for
// breaks and shift changes.
type PauseTaskCommand struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPauseTaskCommand creates a command to pause the task.
func NewPauseTaskCommand(taskID kernel.UUID) (PauseTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return PauseTaskCommand{}, err
	}

	return PauseTaskCommand{
		taskID: taskID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the task to pause.
func (c *PauseTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Validate ensures the command was created through the constructor.
func (c *PauseTaskCommand) Validate() error {
	return c.guard.Validate(ErrPauseTaskCommandIsNotConstructed)
}
