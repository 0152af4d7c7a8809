package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/ports"
)

// BlockTaskCommandHandler suspends a task on an obstacle.
type BlockTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	publisher  ports.EventPublisher
}

// NewBlockTaskCommandHandler creates a handler for blocking tasks.
func NewBlockTaskCommandHandler(uowFactory TaskUoWFactory, publisher ports.EventPublisher) BlockTaskCommandHandler {
	return BlockTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the block command.
func (h BlockTaskCommandHandler) Handle(ctx context.Context, command BlockTaskCommand) error {
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

	if err = t.Block(command.Reason()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, events.TaskBlocked{
		Occurrence: events.Occurrence{At: time.Now()},
		TaskID:     t.ID().String(),
		Reason:     command.Reason().String(),
	})

	return nil
}
