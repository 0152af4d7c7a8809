package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrResumeTaskCommandIsNotConstructed = errors.New(
	"ResumeTaskCommand must be created via NewResumeTaskCommand constructor",
)

// ResumeTaskCommand continues a paused task.
type ResumeTaskCommand struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResumeTaskCommand creates a command to resume the task.
func NewResumeTaskCommand(taskID kernel.UUID) (ResumeTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return ResumeTaskCommand{}, err
	}

	return ResumeTaskCommand{
		taskID: taskID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the task to resume.
func (c *ResumeTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Validate ensures the command was created through the constructor.
func (c *ResumeTaskCommand) Validate() error {
	return c.guard.Validate(ErrResumeTaskCommandIsNotConstructed)
}
