package commands

import (
	"context"

	"warehouse/internal/core/domain/model/allocation"
)

// ReleaseAllocationsCommandHandler hands back the unpicked stock of every
// active reservation of the order and recomputes the affected lines'
// allocated quantities from the ledger, all in one transaction. Picked
// reservations are left untouched: their quantity is what keeps physically
// consumed stock out of the free pool.
type ReleaseAllocationsCommandHandler struct {
	uowFactory AllocationUoWFactory
}

// NewReleaseAllocationsCommandHandler creates a handler for releasing an
// order's reservations.
func NewReleaseAllocationsCommandHandler(uowFactory AllocationUoWFactory) ReleaseAllocationsCommandHandler {
	return ReleaseAllocationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release command.
func (h ReleaseAllocationsCommandHandler) Handle(ctx context.Context, command ReleaseAllocationsCommand) error {
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

	orderRepo := uow.OrderRepository()
	allocationRepo := uow.AllocationRepository()

	active, err := allocationRepo.GetActiveByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	for _, a := range active {
		// fully picked reservations have nothing left to hand back
		if a.Status() == allocation.StatusPicked {
			continue
		}
		if err = a.Release(); err != nil {
			return err
		}
		if err = allocationRepo.Update(ctx, a); err != nil {
			return err
		}
	}

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	// re-derive each line's counter from the ledger the updates just changed
	for _, item := range o.Items() {
		remaining, err := allocationRepo.SumActiveByOrderItem(ctx, item.ID())
		if err != nil {
			return err
		}
		if err = item.SetAllocatedQty(remaining); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
