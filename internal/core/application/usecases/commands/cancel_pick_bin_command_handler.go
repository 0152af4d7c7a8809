package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/ports"
)

// CancelPickBinCommandHandler withdraws a bin before completion.
type CancelPickBinCommandHandler struct {
	uowFactory BinUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelPickBinCommandHandler creates a handler for cancelling bins.
func NewCancelPickBinCommandHandler(uowFactory BinUoWFactory, publisher ports.EventPublisher) CancelPickBinCommandHandler {
	return CancelPickBinCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancel command.
func (h CancelPickBinCommandHandler) Handle(ctx context.Context, command CancelPickBinCommand) error {
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

	binRepo := uow.BinRepository()

	b, err := binRepo.Get(ctx, command.BinID())
	if err != nil {
		return err
	}

	if err = b.Cancel(); err != nil {
		return err
	}

	if err = binRepo.Update(ctx, b); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, events.PickBinCancelled{
		Occurrence: events.Occurrence{At: time.Now()},
		BinID:      b.ID().String(),
	})

	return nil
}
