package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/core/ports"
)

// RecordItemCompletionCommandHandler drives the pick confirmation protocol:
// close the task line, advance the reservation behind it, consume the stock
// on the inventory unit, accumulate the order line's picked quantity, and
// derive task and order completion. All of it is one transaction; events go
// out only after commit.
type RecordItemCompletionCommandHandler struct {
	uowFactory PickingUoWFactory
	publisher  ports.EventPublisher
}

// NewRecordItemCompletionCommandHandler creates a handler for pick
// confirmations.
func NewRecordItemCompletionCommandHandler(
	uowFactory PickingUoWFactory,
	publisher ports.EventPublisher,
) RecordItemCompletionCommandHandler {
	return RecordItemCompletionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the confirmation and reports what it did, so the caller
// knows whether to keep driving the task.
func (h RecordItemCompletionCommandHandler) Handle(
	ctx context.Context,
	command RecordItemCompletionCommand,
) (*task.ItemCompletionResult, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.TaskRepository()

	t, err := taskRepo.GetByItemID(ctx, command.TaskItemID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := t.RecordItemCompletion(command.TaskItemID(), command.UserID(), command.ActualQty(), now)
	if err != nil {
		return nil, err
	}

	item, err := t.Item(command.TaskItemID())
	if err != nil {
		return nil, err
	}

	if err = h.consumeReservation(ctx, uow, item, command.ActualQty(), result.Short); err != nil {
		return nil, err
	}

	if err = h.projectOrders(ctx, uow, t, item, command.ActualQty(), result.TaskComplete); err != nil {
		return nil, err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publish(ctx, t, item, command, result, now)

	return &result, nil
}

// consumeReservation propagates the confirmation into the allocation ledger
// and the inventory unit. A short confirmation closes the allocation at full
// quantity anyway: the unpicked remainder was not on the shelf, and keeping
// it reserved holds the phantom stock out of the free pool until a cycle
// count corrects the ledger.
func (h RecordItemCompletionCommandHandler) consumeReservation(
	ctx context.Context,
	uow PickingUoW,
	item *task.TaskItem,
	actualQty int,
	short bool,
) error {
	if item.AllocationID() == nil {
		return nil
	}

	allocationRepo := uow.AllocationRepository()
	inventoryRepo := uow.InventoryRepository()

	a, err := allocationRepo.Get(ctx, *item.AllocationID())
	if err != nil {
		return err
	}

	if actualQty > 0 {
		if err = a.RecordPick(actualQty); err != nil {
			return err
		}
	}
	if short {
		if err = a.MarkPicked(); err != nil {
			return err
		}
	}
	if err = allocationRepo.Update(ctx, a); err != nil {
		return err
	}

	if actualQty > 0 {
		unit, err := inventoryRepo.GetUnit(ctx, a.UnitID())
		if err != nil {
			return err
		}
		if err = unit.ConfirmPick(actualQty); err != nil {
			return err
		}
		if err = inventoryRepo.UpdateUnit(ctx, unit); err != nil {
			return err
		}
	}

	return nil
}

// projectOrders accumulates the picked quantity on the order line and, when
// the confirmation closed the task, cascades every covered order to Picked.
func (h RecordItemCompletionCommandHandler) projectOrders(
	ctx context.Context,
	uow PickingUoW,
	t *task.WorkTask,
	item *task.TaskItem,
	actualQty int,
	taskComplete bool,
) error {
	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, item.OrderID())
	if err != nil {
		return err
	}

	if item.OrderItemID() != nil && actualQty > 0 {
		orderItem, err := o.Item(*item.OrderItemID())
		if err != nil {
			return err
		}
		if err = orderItem.AddPickedQty(actualQty); err != nil {
			return err
		}
	}

	if taskComplete && o.Status().CanTransitionTo(order.Picked) {
		if err = o.MarkPicked(); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if !taskComplete || t.TaskType() != task.TypePicking {
		return nil
	}

	for _, orderID := range t.OrderIDs() {
		if orderID.IsEqual(item.OrderID()) {
			continue
		}
		other, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return err
		}
		if !other.Status().CanTransitionTo(order.Picked) {
			continue
		}
		if err = other.MarkPicked(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, other); err != nil {
			return err
		}
	}

	return nil
}

func (h RecordItemCompletionCommandHandler) publish(
	ctx context.Context,
	t *task.WorkTask,
	item *task.TaskItem,
	command RecordItemCompletionCommand,
	result task.ItemCompletionResult,
	now time.Time,
) {
	var evts []events.DomainEvent

	if result.Short {
		evts = append(evts, events.ItemShort{
			Occurrence:  events.Occurrence{At: now},
			TaskID:      t.ID().String(),
			TaskItemID:  item.ID().String(),
			UserID:      command.UserID().String(),
			RequiredQty: item.RequiredQty(),
			ActualQty:   command.ActualQty(),
		})
	} else {
		evts = append(evts, events.ItemCompleted{
			Occurrence: events.Occurrence{At: now},
			TaskID:     t.ID().String(),
			TaskItemID: item.ID().String(),
			UserID:     command.UserID().String(),
			Quantity:   command.ActualQty(),
		})
	}

	if result.TaskComplete {
		evts = append(evts, events.TaskCompleted{
			Occurrence:     events.Occurrence{At: now},
			TaskID:         t.ID().String(),
			CompletedItems: t.CompletedItems(),
			ShortItems:     t.ShortItems(),
			SkippedItems:   t.SkippedItems(),
		})
	}

	publishEvents(ctx, h.publisher, evts...)
}
