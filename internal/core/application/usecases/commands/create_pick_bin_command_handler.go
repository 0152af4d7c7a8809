package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/domain/model/bin"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// CreatePickBinCommandHandler stages a bin from a completed picking task.
// Bin lines aggregate the task's confirmed quantities per variant; short and
// skipped lines contribute only what was actually picked.
type CreatePickBinCommandHandler struct {
	uowFactory BinUoWFactory
	publisher  ports.EventPublisher
}

// NewCreatePickBinCommandHandler creates a handler for bin consolidation.
func NewCreatePickBinCommandHandler(uowFactory BinUoWFactory, publisher ports.EventPublisher) CreatePickBinCommandHandler {
	return CreatePickBinCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the consolidation command and returns the staged bin.
func (h CreatePickBinCommandHandler) Handle(ctx context.Context, command CreatePickBinCommand) (*bin.PickBin, error) {
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
	binRepo := uow.BinRepository()

	t, err := taskRepo.Get(ctx, command.TaskID())
	if err != nil {
		return nil, err
	}
	if t.TaskType() != task.TypePicking {
		return nil, errs.NewConflictErrorWithCause("taskID",
			errors.New("bins consolidate picking tasks only"))
	}
	if t.Status() != task.StatusCompleted {
		return nil, errs.NewConflictErrorWithCause("taskID",
			errors.New("picking task is not completed"))
	}

	quantities := h.pickedQuantities(t)
	if len(quantities) == 0 {
		return nil, errs.NewConflictErrorWithCause("taskID",
			errors.New("task confirmed no quantity to consolidate"))
	}

	binNumber, err := binRepo.NextBinNumber(ctx)
	if err != nil {
		return nil, err
	}

	binID := kernel.NewUUID()
	items := make([]*bin.BinItem, 0, len(quantities))
	// iterate task lines to keep bin lines in pick order, not map order
	seen := map[kernel.UUID]bool{}
	for _, item := range t.Items() {
		if seen[item.VariantID()] {
			continue
		}
		qty, ok := quantities[item.VariantID()]
		if !ok {
			continue
		}
		seen[item.VariantID()] = true

		binItem, err := bin.NewBinItem(kernel.NewUUID(), binID, item.VariantID(), qty)
		if err != nil {
			return nil, err
		}
		items = append(items, binItem)
	}

	now := time.Now()
	b, err := bin.NewPickBin(binID, t.ID(), binNumber, fmt.Sprintf("BIN-%06d", binNumber), items, now)
	if err != nil {
		return nil, err
	}

	if err = binRepo.Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, events.PickBinCreated{
		Occurrence: events.Occurrence{At: now},
		BinID:      b.ID().String(),
		TaskID:     t.ID().String(),
		BinNumber:  b.BinNumber(),
		Barcode:    b.Barcode(),
		ItemCount:  len(b.Items()),
	})

	return b, nil
}

// pickedQuantities sums confirmed quantities per variant across the task's
// lines.
func (h CreatePickBinCommandHandler) pickedQuantities(t *task.WorkTask) map[kernel.UUID]int {
	quantities := map[kernel.UUID]int{}
	for _, item := range t.Items() {
		if item.CompletedQty() <= 0 {
			continue
		}
		quantities[item.VariantID()] += item.CompletedQty()
	}
	return quantities
}
