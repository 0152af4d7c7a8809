package order

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrOrderItemIsNotConstructed is returned when an OrderItem was not created
	// through NewOrderItem or RestoreOrderItem.
	ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")

	// ErrSkuIsRequired is returned when attempting to create an order item
	// without a SKU.
	ErrSkuIsRequired = errs.NewValueIsRequiredError("sku")
)

// OrderItem is one line of an order: a required quantity of one product,
// referenced by SKU until the product variant is resolved ("matched").
//
// Invariants:
//   - allocatedQty never exceeds requiredQty
//   - allocatedQty is only ever set by recomputing from the allocation ledger,
//     never by independent increments, so partial failures cannot leave a
//     drifted counter
//   - an item without a resolved variant is "unmatched" and cannot be allocated
type OrderItem struct {
	id          kernel.UUID
	orderID     kernel.UUID
	variantID   *kernel.UUID
	sku         string
	requiredQty int
	allocatedQty int
	pickedQty   int

	guard guard.ConstructorGuard
}

// NewOrderItem creates an unmatched order item for the given SKU and quantity.
// The variant reference stays nil until MatchVariant resolves it against the
// product catalog.
func NewOrderItem(id, orderID kernel.UUID, sku string, requiredQty int) (*OrderItem, error) {
	item := &OrderItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setSku(sku),
		item.setRequiredQty(requiredQty),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreOrderItem reconstructs an order item from persistent storage,
// including its matched variant and quantity counters.
func RestoreOrderItem(
	id, orderID kernel.UUID,
	variantID *kernel.UUID,
	sku string,
	requiredQty, allocatedQty, pickedQty int,
) (*OrderItem, error) {
	item, err := NewOrderItem(id, orderID, sku, requiredQty)
	if err != nil {
		return nil, err
	}

	if variantID != nil {
		if err = item.MatchVariant(*variantID); err != nil {
			return nil, err
		}
	}
	if err = item.SetAllocatedQty(allocatedQty); err != nil {
		return nil, err
	}
	if err = item.setPickedQty(pickedQty); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i *OrderItem) Validate() error {
	if i == nil {
		return ErrOrderItemIsNotConstructed
	}
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// OrderID returns the identifier of the owning order.
func (i *OrderItem) OrderID() kernel.UUID {
	return i.orderID
}

// VariantID returns the resolved product variant, or nil while unmatched.
func (i *OrderItem) VariantID() *kernel.UUID {
	return i.variantID
}

// Sku returns the raw SKU the line was imported with.
func (i *OrderItem) Sku() string {
	return i.sku
}

// RequiredQty returns the quantity the order line asks for.
func (i *OrderItem) RequiredQty() int {
	return i.requiredQty
}

// AllocatedQty returns the quantity currently reserved against inventory.
func (i *OrderItem) AllocatedQty() int {
	return i.allocatedQty
}

// PickedQty returns the cumulative quantity confirmed picked.
func (i *OrderItem) PickedQty() int {
	return i.pickedQty
}

// IsMatched reports whether the line resolved to a product variant.
func (i *OrderItem) IsMatched() bool {
	return i.variantID != nil
}

// MatchVariant records the resolved product variant for this line.
func (i *OrderItem) MatchVariant(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}

	i.variantID = &variantID
	return nil
}

// SetAllocatedQty records the allocated quantity recomputed from the
// allocation ledger. The value must stay within [0, requiredQty]; the engine
// always derives it as existing-active plus newly-created allocation
// quantities, never as an increment on the previous counter.
func (i *OrderItem) SetAllocatedQty(qty int) error {
	if qty < 0 || qty > i.requiredQty {
		return errs.NewValueIsOutOfRangeError("allocatedQty", qty, 0, i.requiredQty)
	}

	i.allocatedQty = qty
	return nil
}

// AddPickedQty accumulates confirmed picks for the line. Short picks add less
// than required; the total can never exceed the required quantity.
func (i *OrderItem) AddPickedQty(qty int) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("pickedQty",
			fmt.Errorf("%d is negative", qty))
	}
	if i.pickedQty+qty > i.requiredQty {
		return errs.NewValueIsOutOfRangeError("pickedQty", i.pickedQty+qty, 0, i.requiredQty)
	}

	i.pickedQty += qty
	return nil
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *OrderItem) setSku(sku string) error {
	if sku == "" {
		return ErrSkuIsRequired
	}
	i.sku = sku
	return nil
}

func (i *OrderItem) setRequiredQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("requiredQty",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	i.requiredQty = qty
	return nil
}

func (i *OrderItem) setPickedQty(qty int) error {
	if qty < 0 || qty > i.requiredQty {
		return errs.NewValueIsOutOfRangeError("pickedQty", qty, 0, i.requiredQty)
	}
	i.pickedQty = qty
	return nil
}
