package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"
)

func newMatchedOrder(t *testing.T, variantID kernel.UUID, requiredQty int) *order.Order {
	t.Helper()

	orderID := kernel.NewUUID()
	item, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-A", requiredQty)
	require.NoError(t, err)
	require.NoError(t, item.MatchVariant(variantID))

	o, err := order.NewOrder(orderID, "ORD-1001", kernel.PriorityStandard, []*order.OrderItem{item})
	require.NoError(t, err)
	return o
}

func newUnit(t *testing.T, variantID kernel.UUID, qty int, expiresIn time.Duration, receivedAt time.Time) *inventory.InventoryUnit {
	t.Helper()

	var expiry *time.Time
	if expiresIn > 0 {
		e := time.Now().Add(expiresIn)
		expiry = &e
	}

	unit, err := inventory.NewInventoryUnit(
		kernel.NewUUID(), variantID, kernel.NewUUID(), qty, "", expiry, receivedAt)
	require.NoError(t, err)
	return unit
}

// Order of 10 against unit X (qty 6, expiring first) and unit Y (qty 10):
// the pass must split 6 + 4 and fully allocate the order.
func Test_Allocator_SplitsAcrossUnitsInCandidateOrder(t *testing.T) {
	variantID := kernel.NewUUID()
	o := newMatchedOrder(t, variantID, 10)
	item := o.Items()[0]

	unitX := newUnit(t, variantID, 6, 5*24*time.Hour, time.Now().AddDate(0, 0, -10))
	unitY := newUnit(t, variantID, 10, 30*24*time.Hour, time.Now().AddDate(0, 0, -3))

	result, err := services.NewAllocator().Allocate(o, services.Input{
		AlreadyAllocated: map[kernel.UUID]int{},
		Candidates: map[kernel.UUID][]services.UnitCandidate{
			variantID: {{Unit: unitX}, {Unit: unitY}},
		},
	}, true, time.Now())

	require.NoError(t, err)
	assert.Equal(t, order.Allocated, result.OrderStatus)
	assert.Equal(t, order.Allocated, o.Status())
	assert.Equal(t, 10, item.AllocatedQty())
	assert.Equal(t, 0, result.BackorderedQty)

	require.Len(t, result.NewAllocations, 2)
	assert.True(t, result.NewAllocations[0].UnitID().IsEqual(unitX.ID()))
	assert.Equal(t, 6, result.NewAllocations[0].Quantity())
	assert.True(t, result.NewAllocations[1].UnitID().IsEqual(unitY.ID()))
	assert.Equal(t, 4, result.NewAllocations[1].Quantity())

	require.Len(t, result.ItemResults, 1)
	assert.Equal(t, services.ItemOutcomeFull, result.ItemResults[0].Outcome)
}

func Test_Allocator_RespectsLedgerReservedQty(t *testing.T) {
	variantID := kernel.NewUUID()
	o := newMatchedOrder(t, variantID, 5)

	unit := newUnit(t, variantID, 10, 0, time.Now())

	result, err := services.NewAllocator().Allocate(o, services.Input{
		AlreadyAllocated: map[kernel.UUID]int{},
		Candidates: map[kernel.UUID][]services.UnitCandidate{
			variantID: {{Unit: unit, ReservedQty: 8}},
		},
	}, true, time.Now())

	require.NoError(t, err)
	assert.Equal(t, order.PartiallyAllocated, result.OrderStatus)
	assert.Equal(t, 3, result.BackorderedQty)
	require.Len(t, result.NewAllocations, 1)
	assert.Equal(t, 2, result.NewAllocations[0].Quantity(), "only the free quantity may be taken")
}

// A second pass over a partially satisfied order must only top up the
// difference, never duplicate reservations or decrease allocatedQty.
func Test_Allocator_RecomputationIsStable(t *testing.T) {
	variantID := kernel.NewUUID()
	o := newMatchedOrder(t, variantID, 10)
	item := o.Items()[0]

	first := newUnit(t, variantID, 4, 0, time.Now())
	result, err := services.NewAllocator().Allocate(o, services.Input{
		AlreadyAllocated: map[kernel.UUID]int{},
		Candidates: map[kernel.UUID][]services.UnitCandidate{
			variantID: {{Unit: first}},
		},
	}, true, time.Now())
	require.NoError(t, err)
	require.Equal(t, order.PartiallyAllocated, result.OrderStatus)
	require.Equal(t, 4, item.AllocatedQty())

	// new stock arrives; the first unit is now fully reserved in the ledger
	second := newUnit(t, variantID, 20, 0, time.Now())
	result, err = services.NewAllocator().Allocate(o, services.Input{
		AlreadyAllocated: map[kernel.UUID]int{item.ID(): 4},
		Candidates: map[kernel.UUID][]services.UnitCandidate{
			variantID: {{Unit: first, ReservedQty: 4}, {Unit: second}},
		},
	}, true, time.Now())

	require.NoError(t, err)
	assert.Equal(t, order.Allocated, result.OrderStatus)
	assert.Equal(t, 10, item.AllocatedQty())
	require.Len(t, result.NewAllocations, 1)
	assert.Equal(t, 6, result.NewAllocations[0].Quantity())
	assert.True(t, result.NewAllocations[0].UnitID().IsEqual(second.ID()))
}

func Test_Allocator_FullyReservedYieldsBackorder(t *testing.T) {
	variantID := kernel.NewUUID()
	o := newMatchedOrder(t, variantID, 5)

	result, err := services.NewAllocator().Allocate(o, services.Input{
		AlreadyAllocated: map[kernel.UUID]int{},
		Candidates:       map[kernel.UUID][]services.UnitCandidate{},
	}, true, time.Now())

	require.NoError(t, err)
	assert.Equal(t, order.Backordered, result.OrderStatus)
	assert.Equal(t, 5, result.BackorderedQty)
	assert.Empty(t, result.NewAllocations)
	assert.Equal(t, services.ItemOutcomeNone, result.ItemResults[0].Outcome)
}

func Test_Allocator_PartialDisallowedYieldsBackorder(t *testing.T) {
	variantID := kernel.NewUUID()
	o := newMatchedOrder(t, variantID, 10)

	unit := newUnit(t, variantID, 4, 0, time.Now())
	result, err := services.NewAllocator().Allocate(o, services.Input{
		AlreadyAllocated: map[kernel.UUID]int{},
		Candidates: map[kernel.UUID][]services.UnitCandidate{
			variantID: {{Unit: unit}},
		},
	}, false, time.Now())

	require.NoError(t, err)
	assert.Equal(t, order.Backordered, result.OrderStatus)
	assert.Len(t, result.NewAllocations, 1, "partial reservations are kept even when the order backorders")
	assert.Equal(t, services.ItemOutcomePartial, result.ItemResults[0].Outcome)
}

func Test_Allocator_AllUnmatchedGoesOnHold(t *testing.T) {
	orderID := kernel.NewUUID()
	item, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-X", 3)
	require.NoError(t, err)
	o, err := order.NewOrder(orderID, "ORD-2001", kernel.PriorityStandard, []*order.OrderItem{item})
	require.NoError(t, err)

	result, err := services.NewAllocator().Allocate(o, services.Input{}, true, time.Now())

	require.NoError(t, err)
	assert.Equal(t, order.OnHold, result.OrderStatus)
	assert.NotEmpty(t, result.HoldReason)
	assert.Equal(t, result.HoldReason, o.HoldReason())
	assert.Equal(t, services.ItemOutcomeUnmatched, result.ItemResults[0].Outcome)
}

func Test_Allocator_MixedUnmatchedWithAllocationIsPartial(t *testing.T) {
	orderID := kernel.NewUUID()
	variantID := kernel.NewUUID()

	matched, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-A", 2)
	require.NoError(t, err)
	require.NoError(t, matched.MatchVariant(variantID))
	unmatched, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-B", 1)
	require.NoError(t, err)

	o, err := order.NewOrder(orderID, "ORD-2002", kernel.PriorityStandard,
		[]*order.OrderItem{matched, unmatched})
	require.NoError(t, err)

	unit := newUnit(t, variantID, 5, 0, time.Now())
	result, err := services.NewAllocator().Allocate(o, services.Input{
		AlreadyAllocated: map[kernel.UUID]int{},
		Candidates: map[kernel.UUID][]services.UnitCandidate{
			variantID: {{Unit: unit}},
		},
	}, true, time.Now())

	require.NoError(t, err)
	assert.Equal(t, order.PartiallyAllocated, result.OrderStatus)
}

func Test_Allocator_TwoItemsShareVariantStock(t *testing.T) {
	orderID := kernel.NewUUID()
	variantID := kernel.NewUUID()

	itemA, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-A", 4)
	require.NoError(t, err)
	require.NoError(t, itemA.MatchVariant(variantID))
	itemB, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-A", 4)
	require.NoError(t, err)
	require.NoError(t, itemB.MatchVariant(variantID))

	o, err := order.NewOrder(orderID, "ORD-2003", kernel.PriorityStandard,
		[]*order.OrderItem{itemA, itemB})
	require.NoError(t, err)

	unit := newUnit(t, variantID, 6, 0, time.Now())
	result, err := services.NewAllocator().Allocate(o, services.Input{
		AlreadyAllocated: map[kernel.UUID]int{},
		Candidates: map[kernel.UUID][]services.UnitCandidate{
			variantID: {{Unit: unit}},
		},
	}, true, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 4, itemA.AllocatedQty())
	assert.Equal(t, 2, itemB.AllocatedQty(), "the second line only gets what the first left")
	assert.Equal(t, 2, result.BackorderedQty)
	assert.Equal(t, order.PartiallyAllocated, result.OrderStatus)
}

func Test_Allocator_RejectsNonAllocatableOrder(t *testing.T) {
	variantID := kernel.NewUUID()
	o := newMatchedOrder(t, variantID, 5)
	require.NoError(t, o.Cancel())

	_, err := services.NewAllocator().Allocate(o, services.Input{}, true, time.Now())

	assert.ErrorIs(t, err, errs.ErrConflict)
}
