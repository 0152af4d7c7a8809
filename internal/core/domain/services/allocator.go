package services

import (
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
)

// ItemOutcome classifies what an allocation pass achieved for one order line.
type ItemOutcome int

const (
	// ItemOutcomeUnknown represents an invalid or undefined outcome.
	ItemOutcomeUnknown ItemOutcome = iota

	// ItemOutcomeFull means the line is fully reserved.
	ItemOutcomeFull

	// ItemOutcomePartial means some but not all of the line is reserved.
	ItemOutcomePartial

	// ItemOutcomeNone means nothing could be reserved; the line is fully
	// backordered.
	ItemOutcomeNone

	// ItemOutcomeUnmatched means the line has no resolved product variant and
	// cannot be allocated at all.
	ItemOutcomeUnmatched
)

func getItemOutcomeStrings() map[ItemOutcome]string {
	return map[ItemOutcome]string{
		ItemOutcomeUnknown:   "Unknown",
		ItemOutcomeFull:      "Full",
		ItemOutcomePartial:   "Partial",
		ItemOutcomeNone:      "None",
		ItemOutcomeUnmatched: "Unmatched",
	}
}

// String returns the human-readable name of the outcome.
func (o ItemOutcome) String() string {
	if s, ok := getItemOutcomeStrings()[o]; ok {
		return s
	}
	return "Unknown"
}

// ItemResult is the per-line report of an allocation pass.
type ItemResult struct {
	OrderItemID    kernel.UUID
	Outcome        ItemOutcome
	RequiredQty    int
	AlreadyAlloc   int
	NewlyAlloc     int
	BackorderedQty int
}

// Result is the outcome of one allocation pass over one order. The order
// aggregate itself is mutated by the pass (item counters and projected
// status); NewAllocations must be persisted in the same transaction.
type Result struct {
	OrderStatus    order.Status
	HoldReason     string
	ItemResults    []ItemResult
	NewAllocations []*allocation.Allocation
	BackorderedQty int
}

// UnitCandidate is one available inventory unit offered to the pass, together
// with the reserved quantity the ledger recomputed for it inside the current
// transaction. Candidates must arrive FEFO-then-FIFO ordered (expiry
// ascending with absent expiry last, then receivedAt ascending) with units at
// non-pickable locations already excluded.
type UnitCandidate struct {
	Unit *inventory.InventoryUnit

	// ReservedQty is the sum of quantities of the unit's active allocations,
	// re-read from the ledger in the same transaction that will write new
	// ones. Never a cached counter.
	ReservedQty int
}

// FreeQty returns how much of the unit is not yet reserved.
func (c UnitCandidate) FreeQty() int {
	return c.Unit.Quantity() - c.ReservedQty
}

// Input carries the ledger state the pass works against, keyed by order item
// and product variant.
type Input struct {
	// AlreadyAllocated maps order item id to the recomputed sum of the item's
	// active allocation quantities.
	AlreadyAllocated map[kernel.UUID]int

	// Candidates maps variant id to its FEFO/FIFO-ordered available units.
	// Items sharing a variant consume from the same slice; the pass tracks
	// in-flight consumption itself.
	Candidates map[kernel.UUID][]UnitCandidate
}

// Allocator runs the allocation pass for one order: matching line
// requirements against available stock, creating reservations, and deriving
// the order's projected status. It is pure domain logic; loading candidates
// and persisting the outcome belong to the calling command handler's
// transaction.
type Allocator interface {
	Allocate(o *order.Order, in Input, allowPartial bool, now time.Time) (*Result, error)
}

var _ Allocator = &allocator{}

type allocator struct{}

// NewAllocator creates the allocation domain service.
func NewAllocator() Allocator {
	return &allocator{}
}

// Allocate implements the pass. Fails fast without mutation unless the order
// status admits allocation. Allocated quantities are always derived as
// already-active plus newly-created, never incremented from the previous
// counter value.
func (s *allocator) Allocate(o *order.Order, in Input, allowPartial bool, now time.Time) (*Result, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.IsAllocatable() {
		return nil, errs.NewConflictErrorWithCause("order status",
			fmt.Errorf("order %s is %s and cannot be allocated", o.ID(), o.Status()))
	}

	if allUnmatched(o) {
		return s.holdUnmatched(o, now)
	}

	// consumed tracks quantity taken from each unit by this pass, on top of
	// the ledger-reserved quantity, so two lines sharing a variant cannot
	// both claim the same stock.
	consumed := map[kernel.UUID]int{}

	result := &Result{}
	anythingAllocated := false
	anyUnmatched := false
	fullyAllocated := true

	for _, item := range o.Items() {
		if !item.IsMatched() {
			anyUnmatched = true
			fullyAllocated = false
			result.ItemResults = append(result.ItemResults, ItemResult{
				OrderItemID: item.ID(),
				Outcome:     ItemOutcomeUnmatched,
				RequiredQty: item.RequiredQty(),
			})
			continue
		}

		already := in.AlreadyAllocated[item.ID()]
		required := item.RequiredQty() - already
		if required < 0 {
			required = 0
		}

		newly := 0
		for _, cand := range in.Candidates[*item.VariantID()] {
			if required == 0 {
				break
			}
			if !cand.Unit.IsAllocatable() {
				continue
			}

			free := cand.FreeQty() - consumed[cand.Unit.ID()]
			if free <= 0 {
				continue
			}

			take := min(free, required)
			itemID := item.ID()
			alloc, err := allocation.NewAllocation(
				kernel.NewUUID(), cand.Unit.ID(), o.ID(), &itemID,
				cand.Unit.VariantID(), cand.Unit.LocationID(), take, now,
			)
			if err != nil {
				return nil, err
			}
			if err = alloc.Confirm(); err != nil {
				return nil, err
			}

			result.NewAllocations = append(result.NewAllocations, alloc)
			consumed[cand.Unit.ID()] += take
			newly += take
			required -= take
		}

		total := already + newly
		if err := item.SetAllocatedQty(total); err != nil {
			return nil, err
		}

		itemResult := ItemResult{
			OrderItemID:    item.ID(),
			RequiredQty:    item.RequiredQty(),
			AlreadyAlloc:   already,
			NewlyAlloc:     newly,
			BackorderedQty: required,
		}
		switch {
		case total >= item.RequiredQty():
			itemResult.Outcome = ItemOutcomeFull
		case total > 0:
			itemResult.Outcome = ItemOutcomePartial
		default:
			itemResult.Outcome = ItemOutcomeNone
		}

		if total > 0 {
			anythingAllocated = true
		}
		if itemResult.Outcome != ItemOutcomeFull {
			fullyAllocated = false
		}

		result.BackorderedQty += required
		result.ItemResults = append(result.ItemResults, itemResult)
	}

	status, holdReason := deriveOrderStatus(anyUnmatched, anythingAllocated, fullyAllocated, allowPartial)
	if err := o.ApplyAllocationOutcome(status, holdReason, now); err != nil {
		return nil, err
	}

	result.OrderStatus = o.Status()
	result.HoldReason = holdReason
	return result, nil
}

func (s *allocator) holdUnmatched(o *order.Order, now time.Time) (*Result, error) {
	reason := "no order line resolved to a product variant"
	if err := o.ApplyAllocationOutcome(order.OnHold, reason, now); err != nil {
		return nil, err
	}

	result := &Result{OrderStatus: o.Status(), HoldReason: reason}
	for _, item := range o.Items() {
		result.ItemResults = append(result.ItemResults, ItemResult{
			OrderItemID: item.ID(),
			Outcome:     ItemOutcomeUnmatched,
			RequiredQty: item.RequiredQty(),
		})
	}
	return result, nil
}

func allUnmatched(o *order.Order) bool {
	for _, item := range o.Items() {
		if item.IsMatched() {
			return false
		}
	}
	return true
}

func deriveOrderStatus(anyUnmatched, anythingAllocated, fullyAllocated, allowPartial bool) (order.Status, string) {
	switch {
	case anyUnmatched && !anythingAllocated:
		return order.OnHold, "order lines without a resolved product variant"
	case anyUnmatched:
		return order.PartiallyAllocated, ""
	case !anythingAllocated:
		return order.Backordered, ""
	case !fullyAllocated && allowPartial:
		return order.PartiallyAllocated, ""
	case !fullyAllocated:
		return order.Backordered, ""
	default:
		return order.Allocated, ""
	}
}
