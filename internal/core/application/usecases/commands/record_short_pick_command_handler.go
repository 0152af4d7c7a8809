package commands

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// RecordShortPickCommandHandler creates the inventory discrepancy behind a
// short confirmation and runs the cycle-count escalation policy over the
// location's recent shorts.
type RecordShortPickCommandHandler struct {
	uowFactory ShortPickUoWFactory
	policy     services.ShortPickPolicy
	publisher  ports.EventPublisher
}

// NewRecordShortPickCommandHandler creates a handler for short-pick side
// effects.
func NewRecordShortPickCommandHandler(
	uowFactory ShortPickUoWFactory,
	publisher ports.EventPublisher,
) RecordShortPickCommandHandler {
	return RecordShortPickCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewShortPickPolicy(),
		publisher:  publisher,
	}
}

// Handle processes the short-pick record command.
func (h RecordShortPickCommandHandler) Handle(ctx context.Context, command RecordShortPickCommand) error {
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
	inventoryRepo := uow.InventoryRepository()

	t, err := taskRepo.GetByItemID(ctx, command.TaskItemID())
	if err != nil {
		return err
	}
	item, err := t.Item(command.TaskItemID())
	if err != nil {
		return err
	}
	if item.Status() != task.ItemStatusShort {
		return errs.NewConflictErrorWithCause("taskItemID",
			errors.New("task item was not confirmed short"))
	}

	now := time.Now()
	itemID := item.ID()
	d, err := inventory.NewDiscrepancy(
		kernel.NewUUID(),
		item.VariantID(),
		item.LocationID(),
		&itemID,
		item.RequiredQty(),
		item.CompletedQty(),
		item.ShortReason(),
		command.UserID(),
		now,
	)
	if err != nil {
		return err
	}
	if err = inventoryRepo.AddDiscrepancy(ctx, d); err != nil {
		return err
	}

	// the count includes the discrepancy added above, visible inside the
	// same transaction
	recent, err := inventoryRepo.CountShortPicksAtLocation(ctx, item.LocationID(), h.policy.WindowStart(now))
	if err != nil {
		return err
	}

	loc, err := inventoryRepo.GetLocation(ctx, item.LocationID())
	if err != nil {
		return err
	}
	flagged, err := h.policy.Apply(loc, recent)
	if err != nil {
		return err
	}
	if err = inventoryRepo.UpdateLocation(ctx, loc); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, events.ShortPickDetected{
		Occurrence:     events.Occurrence{At: now},
		DiscrepancyID:  d.ID().String(),
		VariantID:      d.VariantID().String(),
		LocationID:     d.LocationID().String(),
		Variance:       d.Variance(),
		CycleCountSet:  flagged,
		RecentShortCnt: recent,
	})

	return nil
}
