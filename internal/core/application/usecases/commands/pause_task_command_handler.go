package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/ports"
)

// PauseTaskCommandHandler suspends an in-progress task.
type PauseTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	publisher  ports.EventPublisher
}

// NewPauseTaskCommandHandler creates a handler for pausing tasks.
func NewPauseTaskCommandHandler(uowFactory TaskUoWFactory, publisher ports.EventPublisher) PauseTaskCommandHandler {
	return PauseTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the pause command.
func (h PauseTaskCommandHandler) Handle(ctx context.Context, command PauseTaskCommand) error {
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

	if err = t.Pause(); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, events.TaskPaused{
		Occurrence: events.Occurrence{At: time.Now()},
		TaskID:     t.ID().String(),
	})

	return nil
}
