package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"
)

// AllocateOrderCommandHandler runs the allocation pass inside a single
// transaction. Free quantities are re-derived from the allocation ledger
// inside that transaction, never from a cached counter, so two concurrent
// passes against the same stock serialize on the storage layer instead of
// double-allocating.
type AllocateOrderCommandHandler struct {
	uowFactory AllocationUoWFactory
	allocator  services.Allocator
}

// NewAllocateOrderCommandHandler creates a handler for allocation passes.
func NewAllocateOrderCommandHandler(uowFactory AllocationUoWFactory) AllocateOrderCommandHandler {
	return AllocateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewAllocator(),
	}
}

// Handle processes the allocation command and returns the per-line report.
// Stock shortage is not an error: it comes back as backordered quantity in
// the result.
func (h AllocateOrderCommandHandler) Handle(ctx context.Context, command AllocateOrderCommand) (*services.Result, error) {
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

	result, _, err := allocateOrderInUoW(ctx, uow, h.allocator, command.OrderID(), command.AllowPartial(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// allocateOrderInUoW performs steps the allocation algorithm shares between
// the standalone command, the batch command, and picking task creation: load
// the order, recompute the ledger sums, run the allocation pass, and persist
// the order and its new reservations. The caller owns the transaction.
func allocateOrderInUoW(
	ctx context.Context,
	uow AllocationUoW,
	allocator services.Allocator,
	orderID kernel.UUID,
	allowPartial bool,
	now time.Time,
) (*services.Result, *order.Order, error) {
	orderRepo := uow.OrderRepository()
	inventoryRepo := uow.InventoryRepository()
	allocationRepo := uow.AllocationRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	input := services.Input{
		AlreadyAllocated: map[kernel.UUID]int{},
		Candidates:       map[kernel.UUID][]services.UnitCandidate{},
	}

	for _, item := range o.Items() {
		if !item.IsMatched() {
			continue
		}

		already, err := allocationRepo.SumActiveByOrderItem(ctx, item.ID())
		if err != nil {
			return nil, nil, err
		}
		input.AlreadyAllocated[item.ID()] = already

		variantID := *item.VariantID()
		if _, ok := input.Candidates[variantID]; ok {
			continue
		}

		units, err := inventoryRepo.GetAvailableUnitsByVariant(ctx, variantID)
		if err != nil {
			return nil, nil, err
		}

		candidates := make([]services.UnitCandidate, 0, len(units))
		for _, unit := range units {
			reserved, err := allocationRepo.SumActiveForUnit(ctx, unit.ID())
			if err != nil {
				return nil, nil, err
			}
			candidates = append(candidates, services.UnitCandidate{Unit: unit, ReservedQty: reserved})
		}
		input.Candidates[variantID] = candidates
	}

	result, err := allocator.Allocate(o, input, allowPartial, now)
	if err != nil {
		return nil, nil, err
	}

	for _, a := range result.NewAllocations {
		if err = allocationRepo.Add(ctx, a); err != nil {
			return nil, nil, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, nil, err
	}

	return result, o, nil
}
