package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/pkg/guard"
)

var ErrBlockTaskCommandIsNotConstructed = errors.New(
	"BlockTaskCommand must be created via NewBlockTaskCommand constructor",
)

// BlockTaskCommand records an obstacle and suspends the task until a
// supervisor resolves it.
type BlockTaskCommand struct {
	taskID kernel.UUID
	reason task.BlockReason

	guard guard.ConstructorGuard
}

// NewBlockTaskCommand creates a command to block the task for the given
// reason.
func NewBlockTaskCommand(taskID kernel.UUID, reason task.BlockReason) (BlockTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return BlockTaskCommand{}, err
	}
	if err := reason.Validate(); err != nil {
		return BlockTaskCommand{}, err
	}

	return BlockTaskCommand{
		taskID: taskID,
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the task to block.
func (c *BlockTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Reason returns the recorded obstacle.
func (c *BlockTaskCommand) Reason() task.BlockReason {
	return c.reason
}

// Validate ensures the command was created through the constructor.
func (c *BlockTaskCommand) Validate() error {
	return c.guard.Validate(ErrBlockTaskCommandIsNotConstructed)
}
