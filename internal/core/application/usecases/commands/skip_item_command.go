package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrSkipItemCommandIsNotConstructed = errors.New(
	"SkipItemCommand must be created via NewSkipItemCommand constructor",
)

// SkipItemCommand passes a task line over without picking. The reservation
// behind the line stays untouched for manual resolution.
type SkipItemCommand struct {
	taskItemID kernel.UUID
	userID     kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewSkipItemCommand creates a command to skip the task line.
func NewSkipItemCommand(taskItemID, userID kernel.UUID, reason string) (SkipItemCommand, error) {
	if err := taskItemID.Validate(); err != nil {
		return SkipItemCommand{}, err
	}
	if err := userID.Validate(); err != nil {
		return SkipItemCommand{}, err
	}
	if reason == "" {
		return SkipItemCommand{}, errs.NewValueIsRequiredError("skip reason")
	}

	return SkipItemCommand{
		taskItemID: taskItemID,
		userID:     userID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TaskItemID returns the line being skipped.
func (c *SkipItemCommand) TaskItemID() kernel.UUID {
	return c.taskItemID
}

// UserID returns the operator skipping the line.
func (c *SkipItemCommand) UserID() kernel.UUID {
	return c.userID
}

// Reason returns the operator's explanation.
func (c *SkipItemCommand) Reason() string {
	return c.reason
}

// Validate ensures the command was created through the constructor.
func (c *SkipItemCommand) Validate() error {
	return c.guard.Validate(ErrSkipItemCommandIsNotConstructed)
}
