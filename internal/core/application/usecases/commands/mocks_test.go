package commands_test

import (
	"context"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/bin"
	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetBackorderedByVariant(ctx context.Context, variantID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllBackordered(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) AddUnit(ctx context.Context, unit *inventory.InventoryUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateUnit(ctx context.Context, unit *inventory.InventoryUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetUnit(ctx context.Context, id kernel.UUID) (*inventory.InventoryUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryUnit), args.Error(1)
}

func (m *MockInventoryRepository) GetAvailableUnitsByVariant(
	ctx context.Context, variantID kernel.UUID,
) ([]*inventory.InventoryUnit, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.InventoryUnit), args.Error(1)
}

func (m *MockInventoryRepository) GetLocation(ctx context.Context, id kernel.UUID) (*inventory.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Location), args.Error(1)
}

func (m *MockInventoryRepository) UpdateLocation(ctx context.Context, loc *inventory.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockInventoryRepository) AddDiscrepancy(ctx context.Context, d *inventory.InventoryDiscrepancy) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockInventoryRepository) CountShortPicksAtLocation(
	ctx context.Context, locationID kernel.UUID, since time.Time,
) (int, error) {
	args := m.Called(ctx, locationID, since)
	return args.Int(0), args.Error(1)
}

type MockAllocationRepository struct{ mock.Mock }

func (m *MockAllocationRepository) Add(ctx context.Context, a *allocation.Allocation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAllocationRepository) Update(ctx context.Context, a *allocation.Allocation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) GetActiveByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*allocation.Allocation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*allocation.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) SumActiveByOrderItem(ctx context.Context, orderItemID kernel.UUID) (int, error) {
	args := m.Called(ctx, orderItemID)
	return args.Int(0), args.Error(1)
}

func (m *MockAllocationRepository) SumActiveForUnit(ctx context.Context, unitID kernel.UUID) (int, error) {
	args := m.Called(ctx, unitID)
	return args.Int(0), args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, aggregate *task.WorkTask) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, aggregate *task.WorkTask) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.WorkTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.WorkTask), args.Error(1)
}

func (m *MockTaskRepository) GetByIdempotencyKey(ctx context.Context, key string) (*task.WorkTask, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.WorkTask), args.Error(1)
}

func (m *MockTaskRepository) GetByItemID(ctx context.Context, itemID kernel.UUID) (*task.WorkTask, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.WorkTask), args.Error(1)
}

func (m *MockTaskRepository) GetTaskedAllocationIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockBinRepository struct{ mock.Mock }

func (m *MockBinRepository) Add(ctx context.Context, aggregate *bin.PickBin) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockBinRepository) Update(ctx context.Context, aggregate *bin.PickBin) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockBinRepository) Get(ctx context.Context, id kernel.UUID) (*bin.PickBin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bin.PickBin), args.Error(1)
}

func (m *MockBinRepository) GetByTask(ctx context.Context, taskID kernel.UUID) ([]*bin.PickBin, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bin.PickBin), args.Error(1)
}

func (m *MockBinRepository) NextBinNumber(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// mockTx carries the transaction lifecycle shared by every unit of work mock.
type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAllocationUoW struct{ mockTx }

func (m *MockAllocationUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockAllocationUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockAllocationUoW) AllocationRepository() ports.AllocationRepository {
	args := m.Called()
	return args.Get(0).(ports.AllocationRepository)
}

type MockAllocationUoWFactory struct{ mock.Mock }

func (m *MockAllocationUoWFactory) Create() commands.AllocationUoW {
	args := m.Called()
	return args.Get(0).(commands.AllocationUoW)
}

type MockTaskUoW struct{ mockTx }

func (m *MockTaskUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

type MockTaskUoWFactory struct{ mock.Mock }

func (m *MockTaskUoWFactory) Create() commands.TaskUoW {
	args := m.Called()
	return args.Get(0).(commands.TaskUoW)
}

type MockPickingUoW struct{ mockTx }

func (m *MockPickingUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockPickingUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockPickingUoW) AllocationRepository() ports.AllocationRepository {
	args := m.Called()
	return args.Get(0).(ports.AllocationRepository)
}

func (m *MockPickingUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

type MockPickingUoWFactory struct{ mock.Mock }

func (m *MockPickingUoWFactory) Create() commands.PickingUoW {
	args := m.Called()
	return args.Get(0).(commands.PickingUoW)
}

type MockShortPickUoW struct{ mockTx }

func (m *MockShortPickUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockShortPickUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

type MockShortPickUoWFactory struct{ mock.Mock }

func (m *MockShortPickUoWFactory) Create() commands.ShortPickUoW {
	args := m.Called()
	return args.Get(0).(commands.ShortPickUoW)
}

type MockBinUoW struct{ mockTx }

func (m *MockBinUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

func (m *MockBinUoW) BinRepository() ports.BinRepository {
	args := m.Called()
	return args.Get(0).(ports.BinRepository)
}

type MockBinUoWFactory struct{ mock.Mock }

func (m *MockBinUoWFactory) Create() commands.BinUoW {
	args := m.Called()
	return args.Get(0).(commands.BinUoW)
}
