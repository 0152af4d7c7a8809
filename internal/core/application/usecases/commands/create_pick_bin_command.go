package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCreatePickBinCommandIsNotConstructed = errors.New(
	"CreatePickBinCommand must be created via NewCreatePickBinCommand constructor",
)

// CreatePickBinCommand consolidates a completed picking task's output into a
// physical container for handoff to packing.
type CreatePickBinCommand struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePickBinCommand creates a command to stage a bin from the task.
func NewCreatePickBinCommand(taskID kernel.UUID) (CreatePickBinCommand, error) {
	if err := taskID.Validate(); err != nil {
		return CreatePickBinCommand{}, err
	}

	return CreatePickBinCommand{
		taskID: taskID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the completed picking task to consolidate.
func (c *CreatePickBinCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Validate ensures the command was created through the constructor.
func (c *CreatePickBinCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickBinCommandIsNotConstructed)
}
