package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrAssignTaskCommandIsNotConstructed = errors.New(
	"AssignTaskCommand must be created via NewAssignTaskCommand constructor",
)

// AssignTaskCommand hands a pending task to an operator.
type AssignTaskCommand struct {
	taskID kernel.UUID
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignTaskCommand creates a command to assign the task to the user.
func NewAssignTaskCommand(taskID, userID kernel.UUID) (AssignTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return AssignTaskCommand{}, err
	}
	if err := userID.Validate(); err != nil {
		return AssignTaskCommand{}, err
	}

	return AssignTaskCommand{
		taskID: taskID,
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// TaskID returns the task to assign.
func (c *AssignTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// UserID returns the operator taking the task.
func (c *AssignTaskCommand) UserID() kernel.UUID {
	return c.userID
}

// Validate ensures the command was created through the constructor.
func (c *AssignTaskCommand) Validate() error {
	return c.guard.Validate(ErrAssignTaskCommandIsNotConstructed)
}
