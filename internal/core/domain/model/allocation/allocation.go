package allocation

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrAllocationIsNotConstructed is returned when an Allocation was not
	// created through NewAllocation or RestoreAllocation.
	ErrAllocationIsNotConstructed = errors.New(
		"Allocation must be created via NewAllocation constructor")
)

// Allocation reserves a quantity of one inventory unit for one order item.
// The sum of quantities of active allocations against a unit is the reserved
// amount the free-quantity recomputation subtracts.
//
// An allocation is born Pending, confirmed to Allocated inside the same
// transaction that verified the unit's free quantity, and advances through
// pick confirmations. Released and Cancelled hand unpicked stock back;
// picked quantity stays reserved forever because the unit's own quantity is
// never decremented.
type Allocation struct {
	id          kernel.UUID
	unitID      kernel.UUID
	orderID     kernel.UUID
	orderItemID *kernel.UUID
	variantID   kernel.UUID
	locationID  kernel.UUID
	quantity    int
	pickedQty   int
	status      Status
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewAllocation creates a pending reservation of qty against the given unit.
func NewAllocation(
	id, unitID, orderID kernel.UUID,
	orderItemID *kernel.UUID,
	variantID, locationID kernel.UUID,
	quantity int,
	createdAt time.Time,
) (*Allocation, error) {
	a := &Allocation{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setUnitID(unitID),
		a.setOrderID(orderID),
		a.setVariantID(variantID),
		a.setLocationID(locationID),
		a.setQuantity(quantity),
		a.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if orderItemID != nil {
		if err := orderItemID.Validate(); err != nil {
			return nil, err
		}
	}
	a.orderItemID = orderItemID

	return a, nil
}

// RestoreAllocation reconstructs an allocation from persistent storage.
func RestoreAllocation(
	id, unitID, orderID kernel.UUID,
	orderItemID *kernel.UUID,
	variantID, locationID kernel.UUID,
	quantity, pickedQty int,
	status Status,
	createdAt time.Time,
) (*Allocation, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if pickedQty < 0 || pickedQty > quantity {
		return nil, errs.NewValueIsOutOfRangeError("pickedQty", pickedQty, 0, quantity)
	}

	a, err := NewAllocation(id, unitID, orderID, orderItemID, variantID, locationID, quantity, createdAt)
	if err != nil {
		return nil, err
	}

	a.pickedQty = pickedQty
	a.status = status

	return a, nil
}

// Validate ensures the allocation was created through a constructor.
func (a *Allocation) Validate() error {
	if a == nil {
		return ErrAllocationIsNotConstructed
	}
	return a.guard.Validate(ErrAllocationIsNotConstructed)
}

// ID returns the allocation's unique identifier.
func (a *Allocation) ID() kernel.UUID {
	return a.id
}

// UnitID returns the inventory unit the stock is reserved on.
func (a *Allocation) UnitID() kernel.UUID {
	return a.unitID
}

// OrderID returns the order the stock is reserved for.
func (a *Allocation) OrderID() kernel.UUID {
	return a.orderID
}

// OrderItemID returns the specific order line, or nil when the reservation is
// not line-bound.
func (a *Allocation) OrderItemID() *kernel.UUID {
	return a.orderItemID
}

// VariantID returns the reserved product variant.
func (a *Allocation) VariantID() kernel.UUID {
	return a.variantID
}

// LocationID returns where the reserved stock sits.
func (a *Allocation) LocationID() kernel.UUID {
	return a.locationID
}

// Quantity returns the reserved quantity.
func (a *Allocation) Quantity() int {
	return a.quantity
}

// PickedQty returns how much of the reservation was confirmed picked.
func (a *Allocation) PickedQty() int {
	return a.pickedQty
}

// RemainingQty returns the unpicked part of the reservation.
func (a *Allocation) RemainingQty() int {
	return a.quantity - a.pickedQty
}

// Status returns the allocation's current status.
func (a *Allocation) Status() Status {
	return a.status
}

// CreatedAt returns when the reservation was made.
func (a *Allocation) CreatedAt() time.Time {
	return a.createdAt
}

// IsActive reports whether the allocation holds stock against its unit.
func (a *Allocation) IsActive() bool {
	return a.status.IsActive()
}

// Confirm moves a pending reservation to Allocated. Called inside the same
// transaction that recomputed the unit's free quantity.
func (a *Allocation) Confirm() error {
	return a.transition(StatusAllocated)
}

// RecordPick confirms qty of the reservation as physically picked. The status
// advances to PartiallyPicked or, when the full quantity is confirmed, Picked.
// Confirming more than remains is a conflict and is rejected before mutation.
func (a *Allocation) RecordPick(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("pick quantity",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	if qty > a.RemainingQty() {
		return errs.NewConflictErrorWithCause("pick quantity",
			fmt.Errorf("picking %d exceeds the %d remaining on the allocation", qty, a.RemainingQty()))
	}

	target := StatusPartiallyPicked
	if a.pickedQty+qty == a.quantity {
		target = StatusPicked
	}
	if err := a.transition(target); err != nil {
		return err
	}

	a.pickedQty += qty
	return nil
}

// MarkPicked closes the reservation as picked even when less than the full
// quantity was confirmed. Used for short confirmations: the unpicked
// remainder was not found on the shelf, and keeping the allocation active at
// full quantity keeps that phantom stock out of the free pool until a cycle
// count corrects the ledger.
func (a *Allocation) MarkPicked() error {
	return a.transition(StatusPicked)
}

// Release hands the unpicked part of the reservation back, for cancellations
// and re-allocation. A reservation with no confirmed picks moves to Released
// in full. One with confirmed picks instead shrinks to its picked quantity
// and closes as Picked, so only stock still on the shelf returns to the free
// pool. A fully picked reservation has nothing to hand back and is rejected.
func (a *Allocation) Release() error {
	if a.pickedQty == 0 {
		return a.transition(StatusReleased)
	}

	if err := a.transition(StatusPicked); err != nil {
		return err
	}
	a.quantity = a.pickedQty
	return nil
}

// Cancel voids a reservation that never held confirmed stock.
func (a *Allocation) Cancel() error {
	return a.transition(StatusCancelled)
}

func (a *Allocation) transition(target Status) error {
	next, err := a.status.TransitionTo(target)
	if err != nil {
		return err
	}
	a.status = next
	return nil
}

func (a *Allocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Allocation) setUnitID(unitID kernel.UUID) error {
	if err := unitID.Validate(); err != nil {
		return err
	}
	a.unitID = unitID
	return nil
}

func (a *Allocation) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Allocation) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}
	a.variantID = variantID
	return nil
}

func (a *Allocation) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	a.locationID = locationID
	return nil
}

func (a *Allocation) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	a.quantity = quantity
	return nil
}

func (a *Allocation) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	a.createdAt = createdAt
	return nil
}
