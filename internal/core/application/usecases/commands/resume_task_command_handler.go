package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/ports"
)

// ResumeTaskCommandHandler continues a paused task.
type ResumeTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	publisher  ports.EventPublisher
}

// NewResumeTaskCommandHandler creates a handler for resuming tasks.
func NewResumeTaskCommandHandler(uowFactory TaskUoWFactory, publisher ports.EventPublisher) ResumeTaskCommandHandler {
	return ResumeTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the resume command.
func (h ResumeTaskCommandHandler) Handle(ctx context.Context, command ResumeTaskCommand) error {
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

	if err = t.Resume(); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, events.TaskResumed{
		Occurrence: events.Occurrence{At: time.Now()},
		TaskID:     t.ID().String(),
	})

	return nil
}
