package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/ports"
)

// VerifyBinItemCommandHandler applies a pack-station scan to a bin. The scan
// that makes every line fully verified completes the bin.
type VerifyBinItemCommandHandler struct {
	uowFactory BinUoWFactory
	publisher  ports.EventPublisher
}

// NewVerifyBinItemCommandHandler creates a handler for bin verification
// scans.
func NewVerifyBinItemCommandHandler(uowFactory BinUoWFactory, publisher ports.EventPublisher) VerifyBinItemCommandHandler {
	return VerifyBinItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the scan and reports whether it completed the bin.
func (h VerifyBinItemCommandHandler) Handle(ctx context.Context, command VerifyBinItemCommand) (binComplete bool, err error) {
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

	binRepo := uow.BinRepository()

	b, err := binRepo.Get(ctx, command.BinID())
	if err != nil {
		return false, err
	}

	binComplete, err = b.VerifyItem(command.VariantID(), command.Qty())
	if err != nil {
		return false, err
	}

	if err = binRepo.Update(ctx, b); err != nil {
		return false, err
	}

	// resolve the scanned line before committing: once the transaction is
	// durable every return path must report the scan as applied
	item, err := b.Item(command.VariantID())
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	now := time.Now()
	evts := []events.DomainEvent{
		events.BinItemVerified{
			Occurrence:  events.Occurrence{At: now},
			BinID:       b.ID().String(),
			VariantID:   command.VariantID().String(),
			VerifiedQty: item.VerifiedQty(),
			Quantity:    item.Quantity(),
		},
	}
	if binComplete {
		evts = append(evts, events.PickBinCompleted{
			Occurrence: events.Occurrence{At: now},
			BinID:      b.ID().String(),
		})
	}
	publishEvents(ctx, h.publisher, evts...)

	return binComplete, nil
}
