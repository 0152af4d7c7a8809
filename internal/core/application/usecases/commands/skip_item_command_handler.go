package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/core/ports"
)

// SkipItemCommandHandler closes a task line without picking. The allocation
// behind it is deliberately left active: skipped stock awaits a supervisor
// decision, it is not handed back to the free pool.
type SkipItemCommandHandler struct {
	uowFactory PickingUoWFactory
	publisher  ports.EventPublisher
}

// NewSkipItemCommandHandler creates a handler for skipping task lines.
func NewSkipItemCommandHandler(uowFactory PickingUoWFactory, publisher ports.EventPublisher) SkipItemCommandHandler {
	return SkipItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the skip and reports whether it closed the task.
func (h SkipItemCommandHandler) Handle(ctx context.Context, command SkipItemCommand) (taskComplete bool, err error) {
	if err = command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.TaskRepository()
	orderRepo := uow.OrderRepository()

	t, err := taskRepo.GetByItemID(ctx, command.TaskItemID())
	if err != nil {
		return false, err
	}

	now := time.Now()
	taskComplete, err = t.SkipItem(command.TaskItemID(), command.UserID(), command.Reason(), now)
	if err != nil {
		return false, err
	}

	if taskComplete && t.TaskType() == task.TypePicking {
		for _, orderID := range t.OrderIDs() {
			o, err := orderRepo.Get(ctx, orderID)
			if err != nil {
				return false, err
			}
			if !o.Status().CanTransitionTo(order.Picked) {
				continue
			}
			if err = o.MarkPicked(); err != nil {
				return false, err
			}
			if err = orderRepo.Update(ctx, o); err != nil {
				return false, err
			}
		}
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	evts := []events.DomainEvent{
		events.ItemSkipped{
			Occurrence: events.Occurrence{At: now},
			TaskID:     t.ID().String(),
			TaskItemID: command.TaskItemID().String(),
			UserID:     command.UserID().String(),
			Reason:     command.Reason(),
		},
	}
	if taskComplete {
		evts = append(evts, events.TaskCompleted{
			Occurrence:     events.Occurrence{At: now},
			TaskID:         t.ID().String(),
			CompletedItems: t.CompletedItems(),
			ShortItems:     t.ShortItems(),
			SkippedItems:   t.SkippedItems(),
		})
	}
	publishEvents(ctx, h.publisher, evts...)

	return taskComplete, nil
}
