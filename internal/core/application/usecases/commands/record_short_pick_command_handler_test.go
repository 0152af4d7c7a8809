package commands_test

import (
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// shortTask builds a completed picking task whose single line was confirmed
// short: 3 picked of 5 required.
func shortTask(t *testing.T, userID kernel.UUID) (*task.WorkTask, *task.TaskItem) {
	t.Helper()

	taskID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	now := time.Now()

	item, err := task.RestoreTaskItem(kernel.NewUUID(), taskID, orderID, nil,
		kernel.NewUUID(), kernel.NewUUID(), nil,
		1, task.ItemStatusShort, 5, 3, true, true, &userID, &now, "picked 3 of 5", "")
	require.NoError(t, err)

	wt, err := task.RestoreWorkTask(taskID, task.TypePicking, task.StatusCompleted,
		kernel.PriorityStandard, "job-short-1", []kernel.UUID{orderID},
		nil, nil, nil, &now, task.BlockReasonUnknown,
		1, 1, 0, 1, []*task.TaskItem{item}, now)
	require.NoError(t, err)

	return wt, item
}

func Test_RecordShortPickCommandHandler_ThresholdFlagsLocation(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	wt, item := shortTask(t, userID)

	loc, err := inventory.NewLocation(item.LocationID(), "A-03-2")
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	inventoryRepo := new(MockInventoryRepository)
	uow := new(MockShortPickUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)

	var recorded *inventory.InventoryDiscrepancy
	taskRepo.On("GetByItemID", ctx, item.ID()).Return(wt, nil)
	inventoryRepo.On("AddDiscrepancy", ctx, mock.AnythingOfType("*inventory.InventoryDiscrepancy")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*inventory.InventoryDiscrepancy)
		}).
		Return(nil)
	inventoryRepo.On("CountShortPicksAtLocation", ctx, item.LocationID(), mock.AnythingOfType("time.Time")).
		Return(3, nil)
	inventoryRepo.On("GetLocation", ctx, item.LocationID()).Return(loc, nil)
	inventoryRepo.On("UpdateLocation", ctx, loc).Return(nil)

	factory := new(MockShortPickUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	var published events.ShortPickDetected
	publisher.On("Publish", ctx, mock.AnythingOfType("events.ShortPickDetected")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(events.ShortPickDetected)
		}).
		Return(nil)

	cmd, err := commands.NewRecordShortPickCommand(item.ID(), userID)
	require.NoError(t, err)

	handler := commands.NewRecordShortPickCommandHandler(factory, publisher)
	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, recorded)
	assert.Equal(t, -2, recorded.Variance())
	assert.Equal(t, 5, recorded.ExpectedQty())
	assert.Equal(t, 3, recorded.ActualQty())
	assert.Equal(t, userID, recorded.ReportedBy())

	// third short inside the window escalates to a high-priority cycle count
	assert.True(t, loc.NeedsCycleCount())
	assert.Equal(t, kernel.PriorityHigh, loc.CycleCountPriority())
	assert.True(t, published.CycleCountSet)
	assert.Equal(t, 3, published.RecentShortCnt)
}

func Test_RecordShortPickCommandHandler_BelowThresholdLeavesLocation(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	wt, item := shortTask(t, userID)

	loc, err := inventory.NewLocation(item.LocationID(), "A-03-2")
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	inventoryRepo := new(MockInventoryRepository)
	uow := new(MockShortPickUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)

	taskRepo.On("GetByItemID", ctx, item.ID()).Return(wt, nil)
	inventoryRepo.On("AddDiscrepancy", ctx, mock.AnythingOfType("*inventory.InventoryDiscrepancy")).Return(nil)
	inventoryRepo.On("CountShortPicksAtLocation", ctx, item.LocationID(), mock.AnythingOfType("time.Time")).
		Return(2, nil)
	inventoryRepo.On("GetLocation", ctx, item.LocationID()).Return(loc, nil)
	inventoryRepo.On("UpdateLocation", ctx, loc).Return(nil)

	factory := new(MockShortPickUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	cmd, err := commands.NewRecordShortPickCommand(item.ID(), userID)
	require.NoError(t, err)

	handler := commands.NewRecordShortPickCommandHandler(factory, publisher)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.False(t, loc.NeedsCycleCount())
}

func Test_RecordShortPickCommandHandler_ItemNotShort(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()

	taskID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	now := time.Now()

	item, err := task.RestoreTaskItem(kernel.NewUUID(), taskID, orderID, nil,
		kernel.NewUUID(), kernel.NewUUID(), nil,
		1, task.ItemStatusCompleted, 5, 5, true, true, &userID, &now, "", "")
	require.NoError(t, err)

	wt, err := task.RestoreWorkTask(taskID, task.TypePicking, task.StatusCompleted,
		kernel.PriorityStandard, "job-short-2", []kernel.UUID{orderID},
		nil, nil, nil, &now, task.BlockReasonUnknown,
		1, 0, 0, 1, []*task.TaskItem{item}, now)
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	inventoryRepo := new(MockInventoryRepository)
	uow := new(MockShortPickUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	taskRepo.On("GetByItemID", ctx, item.ID()).Return(wt, nil)

	factory := new(MockShortPickUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)

	cmd, err := commands.NewRecordShortPickCommand(item.ID(), userID)
	require.NoError(t, err)

	handler := commands.NewRecordShortPickCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	inventoryRepo.AssertNotCalled(t, "AddDiscrepancy", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
