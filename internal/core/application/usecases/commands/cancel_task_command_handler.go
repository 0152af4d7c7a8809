package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/ports"
)

// CancelTaskCommandHandler abandons a task.
type CancelTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelTaskCommandHandler creates a handler for cancelling tasks.
func NewCancelTaskCommandHandler(uowFactory TaskUoWFactory, publisher ports.EventPublisher) CancelTaskCommandHandler {
	return CancelTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancel command.
func (h CancelTaskCommandHandler) Handle(ctx context.Context, command CancelTaskCommand) error {
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

	if err = t.Cancel(); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, events.TaskCancelled{
		Occurrence: events.Occurrence{At: time.Now()},
		TaskID:     t.ID().String(),
	})

	return nil
}
