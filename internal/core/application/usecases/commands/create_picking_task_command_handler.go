package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// CreatePickingTaskCommandHandler allocates stock for the order set and
// materializes a picking task from the resulting reservations, all inside a
// single transaction. A re-delivered job finds the previously created task by
// idempotency key and returns it unchanged, so inventory is reserved exactly
// once per key.
type CreatePickingTaskCommandHandler struct {
	uowFactory PickingUoWFactory
	allocator  services.Allocator
	sequencer  services.PickPathSequencer
	publisher  ports.EventPublisher
}

// NewCreatePickingTaskCommandHandler creates a handler for picking task
// creation.
func NewCreatePickingTaskCommandHandler(
	uowFactory PickingUoWFactory,
	publisher ports.EventPublisher,
) CreatePickingTaskCommandHandler {
	return CreatePickingTaskCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewAllocator(),
		sequencer:  services.NewPickPathSequencer(),
		publisher:  publisher,
	}
}

// Handle processes the task creation command and returns the created task, or
// the existing one when the idempotency key was already used.
func (h CreatePickingTaskCommandHandler) Handle(
	ctx context.Context,
	command CreatePickingTaskCommand,
) (*task.WorkTask, error) {
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

	existing, err := taskRepo.GetByIdempotencyKey(ctx, command.IdempotencyKey())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = h.checkOrdersExist(ctx, uow, command.OrderIDs()); err != nil {
		return nil, err
	}

	t, err := task.NewWorkTask(
		kernel.NewUUID(),
		task.TypePicking,
		command.Priority(),
		command.IdempotencyKey(),
		command.OrderIDs(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	items, err := h.allocateAndMaterialize(ctx, uow, t, command.OrderIDs())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewConflictErrorWithCause("order set",
			errors.New("no stock could be reserved for any order in the set"))
	}

	if err = h.sequenceItems(ctx, uow, items); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err = t.AddItem(item); err != nil {
			return nil, err
		}
	}

	if err = taskRepo.Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, events.TaskCreated{
		Occurrence: events.Occurrence{At: t.CreatedAt()},
		TaskID:     t.ID().String(),
		TaskType:   t.TaskType().String(),
		Priority:   t.Priority().String(),
		OrderIDs:   uuidStrings(t.OrderIDs()),
		TotalItems: t.TotalItems(),
	})

	return t, nil
}

func (h CreatePickingTaskCommandHandler) checkOrdersExist(
	ctx context.Context,
	uow PickingUoW,
	orderIDs []kernel.UUID,
) error {
	orderRepo := uow.OrderRepository()

	var missing []string
	for _, orderID := range orderIDs {
		if _, err := orderRepo.Get(ctx, orderID); err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				missing = append(missing, orderID.String())
				continue
			}
			return err
		}
	}

	if len(missing) > 0 {
		return errs.NewObjectNotFoundErrorWithCause("orderIDs", strings.Join(missing, ", "),
			errors.New("orders do not exist"))
	}
	return nil
}

// allocateAndMaterialize reserves stock for every order in the set and turns
// every reservation no other task claims into one task line. Reservations
// made by earlier allocation passes are picked up at their unpicked quantity,
// so a pre-allocated or partially pre-allocated order gets a task covering
// all of its stock, not just what this pass added. Orders whose pass yields
// nothing (backordered) contribute no lines but keep their projected status.
func (h CreatePickingTaskCommandHandler) allocateAndMaterialize(
	ctx context.Context,
	uow PickingUoW,
	t *task.WorkTask,
	orderIDs []kernel.UUID,
) ([]*task.TaskItem, error) {
	now := time.Now()
	orderRepo := uow.OrderRepository()
	allocationRepo := uow.AllocationRepository()
	taskRepo := uow.TaskRepository()

	var items []*task.TaskItem
	for _, orderID := range orderIDs {
		o, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}

		existing, err := allocationRepo.GetActiveByOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		tasked, err := taskRepo.GetTaskedAllocationIDs(ctx, orderID)
		if err != nil {
			return nil, err
		}
		taskedSet := make(map[kernel.UUID]struct{}, len(tasked))
		for _, id := range tasked {
			taskedSet[id] = struct{}{}
		}

		for _, a := range existing {
			if _, ok := taskedSet[a.ID()]; ok {
				continue
			}
			if a.RemainingQty() == 0 {
				continue
			}
			item, itemErr := newTaskItemFromAllocation(t.ID(), a, a.RemainingQty())
			if itemErr != nil {
				return nil, itemErr
			}
			items = append(items, item)
		}

		// a fully allocated order has nothing left for the pass to reserve
		if o.Status() == order.Allocated {
			continue
		}

		result, o, err := allocateOrderInUoW(ctx, uow, h.allocator, orderID, true, now)
		if err != nil {
			return nil, err
		}
		if result.OrderStatus == order.OnHold {
			return nil, errs.NewConflictErrorWithCause("orderID",
				fmt.Errorf("order %s cannot be worked: %s", o.ID(), result.HoldReason))
		}

		for _, a := range result.NewAllocations {
			item, itemErr := newTaskItemFromAllocation(t.ID(), a, a.Quantity())
			if itemErr != nil {
				return nil, itemErr
			}
			items = append(items, item)
		}
	}

	return items, nil
}

func newTaskItemFromAllocation(taskID kernel.UUID, a *allocation.Allocation, qty int) (*task.TaskItem, error) {
	allocationID := a.ID()
	return task.NewTaskItem(
		kernel.NewUUID(),
		taskID,
		a.OrderID(),
		a.OrderItemID(),
		a.VariantID(),
		a.LocationID(),
		&allocationID,
		qty,
	)
}

func (h CreatePickingTaskCommandHandler) sequenceItems(
	ctx context.Context,
	uow PickingUoW,
	items []*task.TaskItem,
) error {
	inventoryRepo := uow.InventoryRepository()

	locationCodes := map[kernel.UUID]string{}
	for _, item := range items {
		if _, ok := locationCodes[item.LocationID()]; ok {
			continue
		}
		loc, err := inventoryRepo.GetLocation(ctx, item.LocationID())
		if err != nil {
			return err
		}
		locationCodes[item.LocationID()] = loc.Code()
	}

	return h.sequencer.Sequence(items, locationCodes)
}

func uuidStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
