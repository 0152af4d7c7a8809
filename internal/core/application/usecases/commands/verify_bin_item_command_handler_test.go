package commands_test

import (
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/bin"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestBin(t *testing.T, variantID kernel.UUID, qty int) *bin.PickBin {
	t.Helper()

	binID := kernel.NewUUID()
	item, err := bin.NewBinItem(kernel.NewUUID(), binID, variantID, qty)
	require.NoError(t, err)

	b, err := bin.NewPickBin(binID, kernel.NewUUID(), 7, "BIN-00007",
		[]*bin.BinItem{item}, time.Now())
	require.NoError(t, err)
	return b
}

// The scan that fully verifies the last line must commit first and publish
// both events after, with the line state resolved before the commit so no
// post-commit step can turn a durably applied scan into an error.
func Test_VerifyBinItemCommandHandler_CompletingScanCommitsThenPublishes(t *testing.T) {
	ctx := t.Context()

	variantID := kernel.NewUUID()
	b := newTestBin(t, variantID, 3)

	binRepo := new(MockBinRepository)
	uow := new(MockBinUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BinRepository").Return(binRepo).Once(),
		binRepo.On("Get", ctx, b.ID()).Return(b, nil).Once(),
		binRepo.On("Update", ctx, b).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("events.BinItemVerified")).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("events.PickBinCompleted")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBinUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewVerifyBinItemCommand(b.ID(), variantID, 3)
	require.NoError(t, err)

	handler := commands.NewVerifyBinItemCommandHandler(factory, publisher)
	complete, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, complete)
	assert.Equal(t, bin.StatusCompleted, b.Status())
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func Test_VerifyBinItemCommandHandler_PartialScanDoesNotComplete(t *testing.T) {
	ctx := t.Context()

	variantID := kernel.NewUUID()
	b := newTestBin(t, variantID, 3)

	binRepo := new(MockBinRepository)
	uow := new(MockBinUoW)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("BinRepository").Return(binRepo)
	binRepo.On("Get", ctx, b.ID()).Return(b, nil)
	binRepo.On("Update", ctx, b).Return(nil)
	publisher.On("Publish", ctx, mock.AnythingOfType("events.BinItemVerified")).Return(nil)

	factory := new(MockBinUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewVerifyBinItemCommand(b.ID(), variantID, 2)
	require.NoError(t, err)

	handler := commands.NewVerifyBinItemCommandHandler(factory, publisher)
	complete, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, complete)
	assert.Equal(t, bin.StatusScanning, b.Status())
	publisher.AssertNotCalled(t, "Publish", ctx, mock.AnythingOfType("events.PickBinCompleted"))
}
