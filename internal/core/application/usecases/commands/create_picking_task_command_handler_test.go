package commands_test

import (
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_CreatePickingTaskCommandHandler_IdempotencyKeyReturnsExistingTask(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	existing, err := task.NewWorkTask(kernel.NewUUID(), task.TypePicking, kernel.PriorityStandard,
		"job-42", []kernel.UUID{orderID}, time.Now())
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	uow := new(MockPickingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TaskRepository").Return(taskRepo).Once(),
		taskRepo.On("GetByIdempotencyKey", ctx, "job-42").Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPickingUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	cmd, err := commands.NewCreatePickingTaskCommand("job-42", []kernel.UUID{orderID}, kernel.PriorityStandard)
	require.NoError(t, err)

	handler := commands.NewCreatePickingTaskCommandHandler(factory, publisher)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, existing, got)

	// nothing allocated, nothing published: the first invocation already did it
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	taskRepo.AssertExpectations(t)
}

func Test_CreatePickingTaskCommandHandler_MissingOrdersListed(t *testing.T) {
	ctx := t.Context()

	knownID := kernel.NewUUID()
	missingID := kernel.NewUUID()

	item, err := order.NewOrderItem(kernel.NewUUID(), knownID, "SKU-A", 2)
	require.NoError(t, err)
	knownOrder, err := order.NewOrder(knownID, "ORD-2001", kernel.PriorityStandard, []*order.OrderItem{item})
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockPickingUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("OrderRepository").Return(orderRepo)
	taskRepo.On("GetByIdempotencyKey", ctx, "job-43").
		Return(nil, errs.NewObjectNotFoundError("idempotencyKey", "job-43"))
	orderRepo.On("Get", ctx, knownID).Return(knownOrder, nil)
	orderRepo.On("Get", ctx, missingID).
		Return(nil, errs.NewObjectNotFoundError("orderID", missingID))

	factory := new(MockPickingUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)

	cmd, err := commands.NewCreatePickingTaskCommand("job-43",
		[]kernel.UUID{knownID, missingID}, kernel.PriorityStandard)
	require.NoError(t, err)

	handler := commands.NewCreatePickingTaskCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), missingID.String())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func Test_CreatePickingTaskCommandHandler_CreatesSequencedTask(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	variantA := kernel.NewUUID()
	variantB := kernel.NewUUID()
	locFar := kernel.NewUUID()
	locNear := kernel.NewUUID()

	itemA, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-A", 3)
	require.NoError(t, err)
	require.NoError(t, itemA.MatchVariant(variantA))
	itemB, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-B", 2)
	require.NoError(t, err)
	require.NoError(t, itemB.MatchVariant(variantB))
	testOrder, err := order.NewOrder(orderID, "ORD-2002", kernel.PriorityStandard,
		[]*order.OrderItem{itemA, itemB})
	require.NoError(t, err)

	now := time.Now()
	unitA, err := inventory.NewInventoryUnit(kernel.NewUUID(), variantA, locFar, 10, "", nil, now)
	require.NoError(t, err)
	unitB, err := inventory.NewInventoryUnit(kernel.NewUUID(), variantB, locNear, 10, "", nil, now)
	require.NoError(t, err)

	locationFar, err := inventory.NewLocation(locFar, "B-07-2")
	require.NoError(t, err)
	locationNear, err := inventory.NewLocation(locNear, "A-01-1")
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockPickingUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("AllocationRepository").Return(allocationRepo)

	taskRepo.On("GetByIdempotencyKey", ctx, "job-44").
		Return(nil, errs.NewObjectNotFoundError("idempotencyKey", "job-44"))
	orderRepo.On("Get", ctx, orderID).Return(testOrder, nil)
	allocationRepo.On("GetActiveByOrder", ctx, orderID).Return([]*allocation.Allocation{}, nil)
	taskRepo.On("GetTaskedAllocationIDs", ctx, orderID).Return([]kernel.UUID{}, nil)
	allocationRepo.On("SumActiveByOrderItem", ctx, itemA.ID()).Return(0, nil)
	allocationRepo.On("SumActiveByOrderItem", ctx, itemB.ID()).Return(0, nil)
	inventoryRepo.On("GetAvailableUnitsByVariant", ctx, variantA).
		Return([]*inventory.InventoryUnit{unitA}, nil)
	inventoryRepo.On("GetAvailableUnitsByVariant", ctx, variantB).
		Return([]*inventory.InventoryUnit{unitB}, nil)
	allocationRepo.On("SumActiveForUnit", ctx, unitA.ID()).Return(0, nil)
	allocationRepo.On("SumActiveForUnit", ctx, unitB.ID()).Return(0, nil)
	allocationRepo.On("Add", ctx, mock.AnythingOfType("*allocation.Allocation")).Return(nil)
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	inventoryRepo.On("GetLocation", ctx, locFar).Return(locationFar, nil)
	inventoryRepo.On("GetLocation", ctx, locNear).Return(locationNear, nil)
	taskRepo.On("Add", ctx, mock.AnythingOfType("*task.WorkTask")).Return(nil)

	factory := new(MockPickingUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	cmd, err := commands.NewCreatePickingTaskCommand("job-44", []kernel.UUID{orderID}, kernel.PriorityHigh)
	require.NoError(t, err)

	handler := commands.NewCreatePickingTaskCommandHandler(factory, publisher)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, task.StatusPending, created.Status())
	assert.Equal(t, task.TypePicking, created.TaskType())
	assert.Equal(t, 2, created.TotalItems())
	assert.Equal(t, 1, created.TotalOrders())

	// pick path walks A-01-1 before B-07-2
	items := created.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Sequence())
	assert.Equal(t, variantB, items[0].VariantID())
	assert.Equal(t, 2, items[0].RequiredQty())
	assert.Equal(t, 2, items[1].Sequence())
	assert.Equal(t, variantA, items[1].VariantID())
	assert.Equal(t, 3, items[1].RequiredQty())
	require.NotNil(t, items[0].AllocationID())

	assert.Equal(t, order.Allocated, testOrder.Status())
	publisher.AssertCalled(t, "Publish", ctx, mock.AnythingOfType("events.TaskCreated"))
	taskRepo.AssertExpectations(t)
}

// An order whose stock was fully reserved by an earlier allocation pass must
// still get a picking task: its existing reservations become the task lines
// and no new allocation pass runs.
func Test_CreatePickingTaskCommandHandler_PreAllocatedOrderUsesExistingReservations(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	variantID := kernel.NewUUID()
	locID := kernel.NewUUID()

	itemID := kernel.NewUUID()
	item, err := order.RestoreOrderItem(itemID, orderID, &variantID, "SKU-A", 10, 10, 0)
	require.NoError(t, err)
	testOrder, err := order.RestoreOrder(orderID, "ORD-2003", order.Allocated,
		kernel.PriorityStandard, "", nil, []*order.OrderItem{item})
	require.NoError(t, err)

	reserved, err := allocation.RestoreAllocation(kernel.NewUUID(), kernel.NewUUID(), orderID,
		&itemID, variantID, locID, 10, 0, allocation.StatusAllocated, time.Now())
	require.NoError(t, err)

	location, err := inventory.NewLocation(locID, "A-03-4")
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockPickingUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("AllocationRepository").Return(allocationRepo)

	taskRepo.On("GetByIdempotencyKey", ctx, "job-45").
		Return(nil, errs.NewObjectNotFoundError("idempotencyKey", "job-45"))
	orderRepo.On("Get", ctx, orderID).Return(testOrder, nil)
	allocationRepo.On("GetActiveByOrder", ctx, orderID).
		Return([]*allocation.Allocation{reserved}, nil)
	taskRepo.On("GetTaskedAllocationIDs", ctx, orderID).Return([]kernel.UUID{}, nil)
	inventoryRepo.On("GetLocation", ctx, locID).Return(location, nil)
	taskRepo.On("Add", ctx, mock.AnythingOfType("*task.WorkTask")).Return(nil)

	factory := new(MockPickingUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	cmd, err := commands.NewCreatePickingTaskCommand("job-45", []kernel.UUID{orderID}, kernel.PriorityStandard)
	require.NoError(t, err)

	handler := commands.NewCreatePickingTaskCommandHandler(factory, publisher)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)

	items := created.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].RequiredQty())
	require.NotNil(t, items[0].AllocationID())
	assert.Equal(t, reserved.ID(), *items[0].AllocationID())

	// no second reservation pass for stock that is already held
	inventoryRepo.AssertNotCalled(t, "GetAvailableUnitsByVariant", ctx, mock.Anything)
	allocationRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
	publisher.AssertCalled(t, "Publish", ctx, mock.AnythingOfType("events.TaskCreated"))
	taskRepo.AssertExpectations(t)
}

// A partially pre-allocated order gets lines for both its earlier untasked
// reservations and whatever the embedded pass reserves on top.
func Test_CreatePickingTaskCommandHandler_PartiallyPreAllocatedOrderCoversOldAndNewReservations(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	variantID := kernel.NewUUID()
	locID := kernel.NewUUID()

	itemID := kernel.NewUUID()
	item, err := order.RestoreOrderItem(itemID, orderID, &variantID, "SKU-A", 5, 2, 0)
	require.NoError(t, err)
	testOrder, err := order.RestoreOrder(orderID, "ORD-2004", order.PartiallyAllocated,
		kernel.PriorityStandard, "", nil, []*order.OrderItem{item})
	require.NoError(t, err)

	now := time.Now()
	reserved, err := allocation.RestoreAllocation(kernel.NewUUID(), kernel.NewUUID(), orderID,
		&itemID, variantID, locID, 2, 0, allocation.StatusAllocated, now)
	require.NoError(t, err)

	unit, err := inventory.NewInventoryUnit(kernel.NewUUID(), variantID, locID, 10, "", nil, now)
	require.NoError(t, err)
	location, err := inventory.NewLocation(locID, "A-03-4")
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	allocationRepo := new(MockAllocationRepository)
	uow := new(MockPickingUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("AllocationRepository").Return(allocationRepo)

	taskRepo.On("GetByIdempotencyKey", ctx, "job-46").
		Return(nil, errs.NewObjectNotFoundError("idempotencyKey", "job-46"))
	orderRepo.On("Get", ctx, orderID).Return(testOrder, nil)
	allocationRepo.On("GetActiveByOrder", ctx, orderID).
		Return([]*allocation.Allocation{reserved}, nil)
	taskRepo.On("GetTaskedAllocationIDs", ctx, orderID).Return([]kernel.UUID{}, nil)
	allocationRepo.On("SumActiveByOrderItem", ctx, itemID).Return(2, nil)
	inventoryRepo.On("GetAvailableUnitsByVariant", ctx, variantID).
		Return([]*inventory.InventoryUnit{unit}, nil)
	allocationRepo.On("SumActiveForUnit", ctx, unit.ID()).Return(2, nil)
	allocationRepo.On("Add", ctx, mock.AnythingOfType("*allocation.Allocation")).Return(nil)
	orderRepo.On("Update", ctx, testOrder).Return(nil)
	inventoryRepo.On("GetLocation", ctx, locID).Return(location, nil)
	taskRepo.On("Add", ctx, mock.AnythingOfType("*task.WorkTask")).Return(nil)

	factory := new(MockPickingUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	cmd, err := commands.NewCreatePickingTaskCommand("job-46", []kernel.UUID{orderID}, kernel.PriorityStandard)
	require.NoError(t, err)

	handler := commands.NewCreatePickingTaskCommandHandler(factory, publisher)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)

	// one line for the earlier reservation of 2, one for the topped-up 3
	items := created.Items()
	require.Len(t, items, 2)
	quantities := []int{items[0].RequiredQty(), items[1].RequiredQty()}
	assert.ElementsMatch(t, []int{2, 3}, quantities)

	assert.Equal(t, order.Allocated, testOrder.Status())
	taskRepo.AssertExpectations(t)
}
