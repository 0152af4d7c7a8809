package inventory

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrUnitIsNotConstructed is returned when an InventoryUnit was not created
	// through NewInventoryUnit or RestoreInventoryUnit.
	ErrUnitIsNotConstructed = errors.New("InventoryUnit must be created via NewInventoryUnit constructor")
)

// InventoryUnit is a quantity of one product variant sitting at one location.
// It is exclusively owned by the inventory ledger: the allocation engine reads
// it and reserves against it but never mutates it; only pick confirmation
// advances its picked counter, and only damage marking changes its physical
// state.
//
// quantity is the total received amount and never changes. A unit carries no
// reserved counter either: its free quantity is always derived as quantity
// minus the sum of active allocation quantities against it, computed inside
// the transaction that wants to write a new allocation. Picked allocations
// stay in that sum, which is what keeps consumed stock out of the free pool.
type InventoryUnit struct {
	id         kernel.UUID
	variantID  kernel.UUID
	locationID kernel.UUID
	quantity   int
	pickedQty  int
	status     UnitStatus
	lotNumber  string
	expiresAt  *time.Time
	receivedAt time.Time

	guard guard.ConstructorGuard
}

// NewInventoryUnit creates an available unit as received into stock.
// Lot number and expiry are optional; receivedAt drives FIFO tie-breaks.
func NewInventoryUnit(
	id, variantID, locationID kernel.UUID,
	quantity int,
	lotNumber string,
	expiresAt *time.Time,
	receivedAt time.Time,
) (*InventoryUnit, error) {
	unit := &InventoryUnit{
		status: UnitStatusAvailable,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		unit.setID(id),
		unit.setVariantID(variantID),
		unit.setLocationID(locationID),
		unit.setQuantity(quantity),
		unit.setReceivedAt(receivedAt),
	); err != nil {
		return nil, err
	}

	unit.lotNumber = lotNumber
	unit.expiresAt = expiresAt

	return unit, nil
}

// RestoreInventoryUnit reconstructs a unit from persistent storage with its
// persisted status and picked counter.
func RestoreInventoryUnit(
	id, variantID, locationID kernel.UUID,
	quantity, pickedQty int,
	status UnitStatus,
	lotNumber string,
	expiresAt *time.Time,
	receivedAt time.Time,
) (*InventoryUnit, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if pickedQty < 0 || pickedQty > quantity {
		return nil, errs.NewValueIsOutOfRangeError("pickedQty", pickedQty, 0, quantity)
	}

	unit, err := NewInventoryUnit(id, variantID, locationID, quantity, lotNumber, expiresAt, receivedAt)
	if err != nil {
		return nil, err
	}

	unit.pickedQty = pickedQty
	unit.status = status

	return unit, nil
}

// Validate ensures the unit was created through a constructor.
func (u *InventoryUnit) Validate() error {
	if u == nil {
		return ErrUnitIsNotConstructed
	}
	return u.guard.Validate(ErrUnitIsNotConstructed)
}

// ID returns the unit's unique identifier.
func (u *InventoryUnit) ID() kernel.UUID {
	return u.id
}

// VariantID returns the product variant this unit holds.
func (u *InventoryUnit) VariantID() kernel.UUID {
	return u.variantID
}

// LocationID returns the storage location of the unit.
func (u *InventoryUnit) LocationID() kernel.UUID {
	return u.locationID
}

// Quantity returns the total received quantity of the unit. It never changes
// after receipt; consumption is tracked by the picked counter.
func (u *InventoryUnit) Quantity() int {
	return u.quantity
}

// PickedQty returns how much of the unit was confirmed picked.
func (u *InventoryUnit) PickedQty() int {
	return u.pickedQty
}

// RemainingQty returns the physical quantity still on the shelf.
func (u *InventoryUnit) RemainingQty() int {
	return u.quantity - u.pickedQty
}

// Status returns the unit's physical state.
func (u *InventoryUnit) Status() UnitStatus {
	return u.status
}

// LotNumber returns the optional lot the unit was received under.
func (u *InventoryUnit) LotNumber() string {
	return u.lotNumber
}

// ExpiresAt returns the optional expiry date driving FEFO ordering.
func (u *InventoryUnit) ExpiresAt() *time.Time {
	return u.expiresAt
}

// ReceivedAt returns the receipt timestamp driving FIFO tie-breaks.
func (u *InventoryUnit) ReceivedAt() time.Time {
	return u.receivedAt
}

// IsAllocatable reports whether the unit may back new allocations. The free
// quantity check happens separately against the allocation ledger.
func (u *InventoryUnit) IsAllocatable() bool {
	return u.status == UnitStatusAvailable && u.RemainingQty() > 0
}

// ConfirmPick records qty of the unit as physically taken off the shelf.
// Picking more than remains is a conflict and is rejected before mutation.
// When the remaining quantity reaches zero the unit flips to Picked.
func (u *InventoryUnit) ConfirmPick(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("pick quantity",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	if qty > u.RemainingQty() {
		return errs.NewConflictErrorWithCause("pick quantity",
			fmt.Errorf("picking %d exceeds the %d remaining on the unit", qty, u.RemainingQty()))
	}

	u.pickedQty += qty
	if u.RemainingQty() == 0 {
		u.status = UnitStatusPicked
	}

	return nil
}

// MarkDamaged flags the unit unusable, excluding it from future allocation.
func (u *InventoryUnit) MarkDamaged() error {
	if u.status == UnitStatusPicked {
		return errs.NewInvalidTransitionError("inventory unit",
			u.status.String(), UnitStatusDamaged.String())
	}

	u.status = UnitStatusDamaged
	return nil
}

func (u *InventoryUnit) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *InventoryUnit) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}
	u.variantID = variantID
	return nil
}

func (u *InventoryUnit) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	u.locationID = locationID
	return nil
}

func (u *InventoryUnit) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	u.quantity = quantity
	return nil
}

func (u *InventoryUnit) setReceivedAt(receivedAt time.Time) error {
	if receivedAt.IsZero() {
		return errs.NewValueIsRequiredError("receivedAt")
	}
	u.receivedAt = receivedAt
	return nil
}
