package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/ports"
)

// UnblockTaskCommandHandler resumes a blocked task.
type UnblockTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	publisher  ports.EventPublisher
}

// NewUnblockTaskCommandHandler creates a handler for unblocking tasks.
func NewUnblockTaskCommandHandler(uowFactory TaskUoWFactory, publisher ports.EventPublisher) UnblockTaskCommandHandler {
	return UnblockTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the unblock command.
func (h UnblockTaskCommandHandler) Handle(ctx context.Context, command UnblockTaskCommand) error {
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

	if err = t.Unblock(); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, events.TaskUnblocked{
		Occurrence: events.Occurrence{At: time.Now()},
		TaskID:     t.ID().String(),
	})

	return nil
}
