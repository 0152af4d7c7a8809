package order

import (
	"errors"
	"slices"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderNumberIsRequired is returned when attempting to create an order
	// without a human-readable order number.
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("orderNumber")

	// ErrOrderHasNoItems is returned when attempting to create an order with an
	// empty line set.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("order items")

	// ErrHoldReasonIsRequired is returned when placing an order on hold without
	// a descriptive reason.
	ErrHoldReasonIsRequired = errs.NewValueIsRequiredError("hold reason")

	// ErrOrderItemNotFound is returned when a referenced line does not belong
	// to the order.
	ErrOrderItemNotFound = errors.New("order item not found")
)

// Order is the aggregate root for a customer order moving through fulfillment.
// It owns its OrderItems and projects an externally visible status from
// allocation and task progress.
//
// Invariants:
//   - status is always a value reachable through the Status state machine
//   - holdReason and heldAt are set only while status is OnHold
//   - every item's allocatedQty stays within its required quantity and is
//     recomputed from the allocation ledger by the allocation engine
type Order struct {
	id          kernel.UUID
	orderNumber string
	status      Status
	priority    kernel.Priority
	holdReason  string
	heldAt      *time.Time
	items       []*OrderItem

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Pending status with the given lines.
// All lines must belong to this order and the order must have at least one.
func NewOrder(id kernel.UUID, orderNumber string, priority kernel.Priority, items []*OrderItem) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setPriority(priority),
		o.setItems(id, items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistent storage with
// its persisted status, hold bookkeeping, and lines.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	status Status,
	priority kernel.Priority,
	holdReason string,
	heldAt *time.Time,
	items []*OrderItem,
) (*Order, error) {
	o, err := NewOrder(id, orderNumber, priority, items)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	o.status = status

	if status == OnHold {
		if holdReason == "" {
			return nil, ErrHoldReasonIsRequired
		}
		o.holdReason = holdReason
		o.heldAt = heldAt
	}

	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Status returns the current projected status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Priority returns the order's urgency tier.
func (o *Order) Priority() kernel.Priority {
	return o.priority
}

// HoldReason returns the reason recorded with the active hold, or an empty
// string when the order is not on hold.
func (o *Order) HoldReason() string {
	return o.holdReason
}

// HeldAt returns the time the active hold was placed, or nil.
func (o *Order) HeldAt() *time.Time {
	return o.heldAt
}

// Items returns the order's lines.
func (o *Order) Items() []*OrderItem {
	return o.items
}

// Item returns the line with the given identifier.
func (o *Order) Item(itemID kernel.UUID) (*OrderItem, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, ErrOrderItemNotFound
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// IsAllocatable reports whether an allocation pass may run against the order.
func (o *Order) IsAllocatable() bool {
	return o.status.IsAllocatable()
}

// Confirm moves the order from Pending to Confirmed.
func (o *Order) Confirm() error {
	return o.transition(Confirmed)
}

// PlaceOnHold parks the order with a descriptive reason, recording the hold
// timestamp. The reason and timestamp live only while the order stays OnHold.
func (o *Order) PlaceOnHold(reason string, at time.Time) error {
	if reason == "" {
		return ErrHoldReasonIsRequired
	}

	if err := o.transition(OnHold); err != nil {
		return err
	}

	o.holdReason = reason
	o.heldAt = &at
	return nil
}

// ReleaseHold returns an on-hold order to Pending and clears hold bookkeeping.
func (o *Order) ReleaseHold() error {
	if o.status != OnHold {
		return errs.NewInvalidTransitionError("order", o.status.String(), Pending.String())
	}

	if err := o.transition(Pending); err != nil {
		return err
	}

	o.clearHold()
	return nil
}

// ApplyAllocationOutcome moves the order to the status derived by an
// allocation pass (OnHold, Backordered, PartiallyAllocated, or Allocated).
// Re-applying the same status is a no-op so re-driven allocation stays
// idempotent. Hold bookkeeping is cleared when the outcome leaves OnHold.
func (o *Order) ApplyAllocationOutcome(outcome Status, holdReason string, at time.Time) error {
	if !slices.Contains(allocationFamily, outcome) {
		return errs.NewValueIsInvalidErrorWithCause("allocation outcome",
			errors.New(outcome.String()+" is not an allocation-derived status"))
	}

	if outcome == OnHold {
		return o.PlaceOnHold(holdReason, at)
	}

	if err := o.transition(outcome); err != nil {
		return err
	}

	o.clearHold()
	return nil
}

// StartPicking advances the order to Picking when a picking task covering it
// starts (or is created over fully allocated lines).
func (o *Order) StartPicking() error {
	return o.transition(Picking)
}

// MarkPicked records completion of the picking task covering the order.
func (o *Order) MarkPicked() error {
	return o.transition(Picked)
}

// MarkPacked records completion of pack-station verification.
func (o *Order) MarkPacked() error {
	return o.transition(Packed)
}

// MarkShipped records warehouse handoff to the carrier.
func (o *Order) MarkShipped() error {
	return o.transition(Shipped)
}

// Cancel terminally cancels the order.
func (o *Order) Cancel() error {
	if err := o.transition(Cancelled); err != nil {
		return err
	}

	o.clearHold()
	return nil
}

func (o *Order) transition(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) clearHold() {
	o.holdReason = ""
	o.heldAt = nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setPriority(priority kernel.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setItems(orderID kernel.UUID, items []*OrderItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.OrderID().IsEqual(orderID) {
			return errs.NewValueIsInvalidError("order item belongs to a different order")
		}
	}

	o.items = items
	return nil
}
