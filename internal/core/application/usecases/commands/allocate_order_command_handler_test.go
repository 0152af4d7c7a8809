package commands_test

import (
	"errors"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_AllocateOrderCommandHandler_SplitsAcrossUnitsFEFO(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	variantID := kernel.NewUUID()
	locationID := kernel.NewUUID()

	item, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-A", 10)
	require.NoError(t, err)
	require.NoError(t, item.MatchVariant(variantID))
	testOrder, err := order.NewOrder(orderID, "ORD-1001", kernel.PriorityStandard, []*order.OrderItem{item})
	require.NoError(t, err)
	require.NoError(t, testOrder.Confirm())

	now := time.Now()
	soon := now.Add(5 * 24 * time.Hour)
	later := now.Add(30 * 24 * time.Hour)
	unitX, err := inventory.NewInventoryUnit(kernel.NewUUID(), variantID, locationID, 6, "LOT-X", &soon, now)
	require.NoError(t, err)
	unitY, err := inventory.NewInventoryUnit(kernel.NewUUID(), variantID, locationID, 10, "LOT-Y", &later, now)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockAllocationUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("AllocationRepository").Return(allocationRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		allocationRepo.On("SumActiveByOrderItem", ctx, item.ID()).Return(0, nil).Once(),
		inventoryRepo.On("GetAvailableUnitsByVariant", ctx, variantID).
			Return([]*inventory.InventoryUnit{unitX, unitY}, nil).Once(),
		allocationRepo.On("SumActiveForUnit", ctx, unitX.ID()).Return(0, nil).Once(),
		allocationRepo.On("SumActiveForUnit", ctx, unitY.ID()).Return(0, nil).Once(),
		allocationRepo.On("Add", ctx, mock.AnythingOfType("*allocation.Allocation")).Return(nil).Twice(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAllocateOrderCommand(orderID, true)
	require.NoError(t, err)

	handler := commands.NewAllocateOrderCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, result.NewAllocations, 2)

	// earliest expiry first: 6 from X, the remaining 4 from Y
	assert.Equal(t, unitX.ID(), result.NewAllocations[0].UnitID())
	assert.Equal(t, 6, result.NewAllocations[0].Quantity())
	assert.Equal(t, unitY.ID(), result.NewAllocations[1].UnitID())
	assert.Equal(t, 4, result.NewAllocations[1].Quantity())
	assert.Equal(t, allocation.StatusAllocated, result.NewAllocations[0].Status())

	assert.Equal(t, order.Allocated, result.OrderStatus)
	assert.Equal(t, order.Allocated, testOrder.Status())
	assert.Equal(t, 10, item.AllocatedQty())
	assert.Zero(t, result.BackorderedQty)

	orderRepo.AssertExpectations(t)
	inventoryRepo.AssertExpectations(t)
	allocationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func Test_AllocateOrderCommandHandler_NoStockBackorders(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	variantID := kernel.NewUUID()

	item, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-A", 4)
	require.NoError(t, err)
	require.NoError(t, item.MatchVariant(variantID))
	testOrder, err := order.NewOrder(orderID, "ORD-1002", kernel.PriorityStandard, []*order.OrderItem{item})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockAllocationUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("AllocationRepository").Return(allocationRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		allocationRepo.On("SumActiveByOrderItem", ctx, item.ID()).Return(0, nil).Once(),
		inventoryRepo.On("GetAvailableUnitsByVariant", ctx, variantID).
			Return([]*inventory.InventoryUnit{}, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAllocateOrderCommand(orderID, true)
	require.NoError(t, err)

	handler := commands.NewAllocateOrderCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, result.NewAllocations)
	assert.Equal(t, order.Backordered, result.OrderStatus)
	assert.Equal(t, 4, result.BackorderedQty)
	require.Len(t, result.ItemResults, 1)
	assert.Equal(t, services.ItemOutcomeNone, result.ItemResults[0].Outcome)
}

func Test_AllocateOrderCommandHandler_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockAllocationUoWFactory)
	handler := commands.NewAllocateOrderCommandHandler(factory)

	_, err := handler.Handle(ctx, commands.AllocateOrderCommand{})

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAllocateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func Test_AllocateOrderCommandHandler_GetOrderError(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockAllocationUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("AllocationRepository").Return(allocationRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAllocateOrderCommand(orderID, true)
	require.NoError(t, err)

	handler := commands.NewAllocateOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}

func Test_AllocateOrderCommandHandler_CommitError(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	variantID := kernel.NewUUID()

	item, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-A", 4)
	require.NoError(t, err)
	require.NoError(t, item.MatchVariant(variantID))
	testOrder, err := order.NewOrder(orderID, "ORD-1003", kernel.PriorityStandard, []*order.OrderItem{item})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockAllocationUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("AllocationRepository").Return(allocationRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		allocationRepo.On("SumActiveByOrderItem", ctx, item.ID()).Return(0, nil).Once(),
		inventoryRepo.On("GetAvailableUnitsByVariant", ctx, variantID).
			Return([]*inventory.InventoryUnit{}, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAllocateOrderCommand(orderID, true)
	require.NoError(t, err)

	handler := commands.NewAllocateOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}
