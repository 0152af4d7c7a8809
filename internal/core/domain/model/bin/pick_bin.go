package bin

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrBinIsNotConstructed is returned when a PickBin was not created
	// through NewPickBin or RestorePickBin.
	ErrBinIsNotConstructed = errors.New("PickBin must be created via NewPickBin constructor")

	// ErrBarcodeIsRequired is returned when attempting to create a bin without
	// a barcode.
	ErrBarcodeIsRequired = errs.NewValueIsRequiredError("bin barcode")

	// ErrBinHasNoItems is returned when attempting to create a bin without
	// items.
	ErrBinHasNoItems = errs.NewValueIsRequiredError("bin items")
)

// PickBin is the physical container consolidating a completed picking task's
// output for handoff to packing. The pack station scans items out of it; the
// bin completes only when every item is fully verified, and that equality
// check is the terminal guard.
type PickBin struct {
	id        kernel.UUID
	binNumber int
	barcode   string
	taskID    kernel.UUID
	status    Status
	items     []*BinItem
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewPickBin creates a staged bin for a completed picking task. binNumber is
// the warehouse-wide sequential number the barcode is printed from.
func NewPickBin(
	id, taskID kernel.UUID,
	binNumber int,
	barcode string,
	items []*BinItem,
	createdAt time.Time,
) (*PickBin, error) {
	b := &PickBin{
		status: StatusStaged,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setTaskID(taskID),
		b.setBinNumber(binNumber),
		b.setBarcode(barcode),
		b.setItems(items),
		b.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestorePickBin reconstructs a bin with its items from persistent storage.
func RestorePickBin(
	id, taskID kernel.UUID,
	binNumber int,
	barcode string,
	status Status,
	items []*BinItem,
	createdAt time.Time,
) (*PickBin, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	b, err := NewPickBin(id, taskID, binNumber, barcode, items, createdAt)
	if err != nil {
		return nil, err
	}

	b.status = status
	return b, nil
}

// Validate ensures the bin was created through a constructor.
func (b *PickBin) Validate() error {
	if b == nil {
		return ErrBinIsNotConstructed
	}
	return b.guard.Validate(ErrBinIsNotConstructed)
}

// ID returns the bin's unique identifier.
func (b *PickBin) ID() kernel.UUID {
	return b.id
}

// BinNumber returns the sequential warehouse-wide number.
func (b *PickBin) BinNumber() int {
	return b.binNumber
}

// Barcode returns the scannable label on the container.
func (b *PickBin) Barcode() string {
	return b.barcode
}

// TaskID returns the picking task the bin was consolidated from.
func (b *PickBin) TaskID() kernel.UUID {
	return b.taskID
}

// Status returns the bin's current status.
func (b *PickBin) Status() Status {
	return b.status
}

// Items returns the bin's consolidated lines.
func (b *PickBin) Items() []*BinItem {
	return b.items
}

// CreatedAt returns when the bin was staged.
func (b *PickBin) CreatedAt() time.Time {
	return b.createdAt
}

// Item finds a line by variant.
func (b *PickBin) Item(variantID kernel.UUID) (*BinItem, error) {
	for _, item := range b.items {
		if item.VariantID().IsEqual(variantID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("variantID", variantID)
}

// IsFullyVerified reports whether every line's verified quantity equals its
// total.
func (b *PickBin) IsFullyVerified() bool {
	for _, item := range b.items {
		if !item.IsVerified() {
			return false
		}
	}
	return true
}

// VerifyItem records a pack-station scan of qty units of the given variant.
// The first scan moves the bin from Staged to Scanning; the scan that makes
// every line fully verified completes the bin. It reports whether the bin
// completed. A partial scan count can never complete the bin.
func (b *PickBin) VerifyItem(variantID kernel.UUID, qty int) (binComplete bool, err error) {
	if b.status != StatusStaged && b.status != StatusScanning {
		return false, errs.NewInvalidTransitionError("pick bin",
			b.status.String(), StatusScanning.String())
	}

	item, err := b.Item(variantID)
	if err != nil {
		return false, err
	}

	if err = item.Verify(qty); err != nil {
		return false, err
	}

	if b.status == StatusStaged {
		if err = b.transition(StatusScanning); err != nil {
			return false, err
		}
	}

	if b.IsFullyVerified() {
		if err = b.transition(StatusCompleted); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// Cancel withdraws the bin at any point before completion.
func (b *PickBin) Cancel() error {
	return b.transition(StatusCancelled)
}

func (b *PickBin) transition(target Status) error {
	next, err := b.status.TransitionTo(target)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

func (b *PickBin) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *PickBin) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	b.taskID = taskID
	return nil
}

func (b *PickBin) setBinNumber(binNumber int) error {
	if binNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("binNumber",
			fmt.Errorf("%d is not greater than 0", binNumber))
	}
	b.binNumber = binNumber
	return nil
}

func (b *PickBin) setBarcode(barcode string) error {
	if barcode == "" {
		return ErrBarcodeIsRequired
	}
	b.barcode = barcode
	return nil
}

func (b *PickBin) setItems(items []*BinItem) error {
	if len(items) == 0 {
		return ErrBinHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	b.items = items
	return nil
}

func (b *PickBin) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	b.createdAt = createdAt
	return nil
}
