package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/core/ports"
)

// StartTaskCommandHandler begins work on a task. For picking tasks the
// covered orders advance to Picking in the same transaction, so the order
// projection never lags behind the labor actually happening on the floor.
type StartTaskCommandHandler struct {
	uowFactory PickingUoWFactory
	publisher  ports.EventPublisher
}

// NewStartTaskCommandHandler creates a handler for starting tasks.
func NewStartTaskCommandHandler(uowFactory PickingUoWFactory, publisher ports.EventPublisher) StartTaskCommandHandler {
	return StartTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the start command.
func (h StartTaskCommandHandler) Handle(ctx context.Context, command StartTaskCommand) error {
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
	orderRepo := uow.OrderRepository()

	t, err := taskRepo.Get(ctx, command.TaskID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = t.Start(now); err != nil {
		return err
	}

	if t.TaskType() == task.TypePicking {
		for _, orderID := range t.OrderIDs() {
			o, err := orderRepo.Get(ctx, orderID)
			if err != nil {
				return err
			}
			// orders that ended up fully backordered have no lines on the task
			// and stay where the allocation pass projected them
			if !o.Status().CanTransitionTo(order.Picking) {
				continue
			}
			if err = o.StartPicking(); err != nil {
				return err
			}
			if err = orderRepo.Update(ctx, o); err != nil {
				return err
			}
		}
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, events.TaskStarted{
		Occurrence: events.Occurrence{At: now},
		TaskID:     t.ID().String(),
	})

	return nil
}
