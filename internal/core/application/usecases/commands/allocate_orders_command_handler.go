package commands

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
)

// BatchAllocationResult groups a batch pass's orders by outcome. Failed
// orders land in Errors keyed by order id; the other buckets carry only
// orders whose transaction committed.
type BatchAllocationResult struct {
	FullyAllocated     []kernel.UUID
	PartiallyAllocated []kernel.UUID
	Backordered        []kernel.UUID
	OnHold             []kernel.UUID
	Errors             map[kernel.UUID]error
}

// AllocateOrdersCommandHandler processes each order of the batch in an
// isolated transaction and collects per-order failures instead of aborting
// the whole batch.
type AllocateOrdersCommandHandler struct {
	uowFactory AllocationUoWFactory
}

// NewAllocateOrdersCommandHandler creates a handler for batch allocation.
func NewAllocateOrdersCommandHandler(uowFactory AllocationUoWFactory) AllocateOrdersCommandHandler {
	return AllocateOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs the batch and reports which bucket every order landed in.
func (h AllocateOrdersCommandHandler) Handle(ctx context.Context, command AllocateOrdersCommand) (*BatchAllocationResult, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	result := &BatchAllocationResult{Errors: map[kernel.UUID]error{}}

	for _, orderID := range command.OrderIDs() {
		status, err := h.allocateOne(ctx, orderID, command.AllowPartial())
		if err != nil {
			result.Errors[orderID] = err
			continue
		}

		switch status {
		case order.Allocated:
			result.FullyAllocated = append(result.FullyAllocated, orderID)
		case order.PartiallyAllocated:
			result.PartiallyAllocated = append(result.PartiallyAllocated, orderID)
		case order.Backordered:
			result.Backordered = append(result.Backordered, orderID)
		case order.OnHold:
			result.OnHold = append(result.OnHold, orderID)
		}
	}

	return result, nil
}

func (h AllocateOrdersCommandHandler) allocateOne(ctx context.Context, orderID kernel.UUID, allowPartial bool) (order.Status, error) {
	cmd, err := NewAllocateOrderCommand(orderID, allowPartial)
	if err != nil {
		return order.Unknown, err
	}

	res, err := NewAllocateOrderCommandHandler(h.uowFactory).Handle(ctx, cmd)
	if err != nil {
		return order.Unknown, err
	}

	return res.OrderStatus, nil
}
