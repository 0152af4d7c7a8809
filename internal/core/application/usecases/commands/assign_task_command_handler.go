package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/ports"
)

// AssignTaskCommandHandler moves a task from the pending pool to an operator.
type AssignTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	publisher  ports.EventPublisher
}

// NewAssignTaskCommandHandler creates a handler for task assignment.
func NewAssignTaskCommandHandler(uowFactory TaskUoWFactory, publisher ports.EventPublisher) AssignTaskCommandHandler {
	return AssignTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the assignment command.
func (h AssignTaskCommandHandler) Handle(ctx context.Context, command AssignTaskCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.TaskRepository()

	t, err := taskRepo.Get(ctx, command.TaskID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = t.Assign(command.UserID(), now); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, events.TaskAssigned{
		Occurrence: events.Occurrence{At: now},
		TaskID:     t.ID().String(),
		UserID:     command.UserID().String(),
	})

	return nil
}
