package bin

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrBinItemIsNotConstructed is returned when a BinItem was not created
// through NewBinItem or RestoreBinItem.
var ErrBinItemIsNotConstructed = errors.New("BinItem must be created via NewBinItem constructor")

// BinItem is the consolidated quantity of one product variant inside a pick
// bin. verifiedQty fills in during pack-station scanning and can never exceed
// quantity; the bin completes only when every item's verifiedQty equals its
// quantity.
type BinItem struct {
	id          kernel.UUID
	binID       kernel.UUID
	variantID   kernel.UUID
	quantity    int
	verifiedQty int

	guard guard.ConstructorGuard
}

// NewBinItem creates an unverified consolidated line for one variant.
func NewBinItem(id, binID, variantID kernel.UUID, quantity int) (*BinItem, error) {
	item := &BinItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setBinID(binID),
		item.setVariantID(variantID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreBinItem reconstructs a line from persistent storage.
func RestoreBinItem(id, binID, variantID kernel.UUID, quantity, verifiedQty int) (*BinItem, error) {
	if verifiedQty < 0 || verifiedQty > quantity {
		return nil, errs.NewValueIsOutOfRangeError("verifiedQty", verifiedQty, 0, quantity)
	}

	item, err := NewBinItem(id, binID, variantID, quantity)
	if err != nil {
		return nil, err
	}

	item.verifiedQty = verifiedQty
	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i *BinItem) Validate() error {
	if i == nil {
		return ErrBinItemIsNotConstructed
	}
	return i.guard.Validate(ErrBinItemIsNotConstructed)
}

// ID returns the line's unique identifier.
func (i *BinItem) ID() kernel.UUID {
	return i.id
}

// BinID returns the owning bin.
func (i *BinItem) BinID() kernel.UUID {
	return i.binID
}

// VariantID returns the consolidated product variant.
func (i *BinItem) VariantID() kernel.UUID {
	return i.variantID
}

// Quantity returns the total picked quantity of the variant in the bin.
func (i *BinItem) Quantity() int {
	return i.quantity
}

// VerifiedQty returns how much the pack station has scanned so far.
func (i *BinItem) VerifiedQty() int {
	return i.verifiedQty
}

// IsVerified reports whether the full quantity was scanned.
func (i *BinItem) IsVerified() bool {
	return i.verifiedQty == i.quantity
}

// Verify increments the scanned counter. Scanning past the line's quantity is
// a conflict and is rejected before mutation.
func (i *BinItem) Verify(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("verify quantity",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	if i.verifiedQty+qty > i.quantity {
		return errs.NewConflictErrorWithCause("verify quantity",
			fmt.Errorf("verifying %d would exceed the %d in the bin", qty, i.quantity))
	}

	i.verifiedQty += qty
	return nil
}

func (i *BinItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *BinItem) setBinID(binID kernel.UUID) error {
	if err := binID.Validate(); err != nil {
		return err
	}
	i.binID = binID
	return nil
}

func (i *BinItem) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}
	i.variantID = variantID
	return nil
}

func (i *BinItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
