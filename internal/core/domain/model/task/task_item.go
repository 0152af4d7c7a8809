package task

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrTaskItemIsNotConstructed is returned when a TaskItem was not created
	// through NewTaskItem or RestoreTaskItem.
	ErrTaskItemIsNotConstructed = errors.New("TaskItem must be created via NewTaskItem constructor")

	// ErrTaskItemIsClosed is returned when completing or skipping a line that
	// already reached a closed state.
	ErrTaskItemIsClosed = errors.New("task item is already closed")
)

// TaskItem is one line of work within a WorkTask: pick this quantity of this
// variant at this location. The sequence number is the authoritative pick
// order for the operator UI; the scan flags record whether the operator's
// barcode scans matched expectation.
type TaskItem struct {
	id              kernel.UUID
	taskID          kernel.UUID
	sequence        int
	status          ItemStatus
	requiredQty     int
	completedQty    int
	orderID         kernel.UUID
	orderItemID     *kernel.UUID
	variantID       kernel.UUID
	locationID      kernel.UUID
	allocationID    *kernel.UUID
	locationScanned bool
	itemScanned     bool
	completedBy     *kernel.UUID
	completedAt     *time.Time
	shortReason     string
	skipReason      string

	guard guard.ConstructorGuard
}

// NewTaskItem creates a pending line of work, typically materialized from an
// allocation. Sequence starts at zero and is assigned by pick-path sequencing
// before the task persists.
func NewTaskItem(
	id, taskID, orderID kernel.UUID,
	orderItemID *kernel.UUID,
	variantID, locationID kernel.UUID,
	allocationID *kernel.UUID,
	requiredQty int,
) (*TaskItem, error) {
	item := &TaskItem{
		status: ItemStatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setTaskID(taskID),
		item.setOrderID(orderID),
		item.setVariantID(variantID),
		item.setLocationID(locationID),
		item.setRequiredQty(requiredQty),
	); err != nil {
		return nil, err
	}

	if orderItemID != nil {
		if err := orderItemID.Validate(); err != nil {
			return nil, err
		}
	}
	if allocationID != nil {
		if err := allocationID.Validate(); err != nil {
			return nil, err
		}
	}
	item.orderItemID = orderItemID
	item.allocationID = allocationID

	return item, nil
}

// RestoreTaskItem reconstructs a line from persistent storage.
func RestoreTaskItem(
	id, taskID, orderID kernel.UUID,
	orderItemID *kernel.UUID,
	variantID, locationID kernel.UUID,
	allocationID *kernel.UUID,
	sequence int,
	status ItemStatus,
	requiredQty, completedQty int,
	locationScanned, itemScanned bool,
	completedBy *kernel.UUID,
	completedAt *time.Time,
	shortReason, skipReason string,
) (*TaskItem, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if completedQty < 0 || completedQty > requiredQty {
		return nil, errs.NewValueIsOutOfRangeError("completedQty", completedQty, 0, requiredQty)
	}

	item, err := NewTaskItem(id, taskID, orderID, orderItemID, variantID, locationID, allocationID, requiredQty)
	if err != nil {
		return nil, err
	}

	item.sequence = sequence
	item.status = status
	item.completedQty = completedQty
	item.locationScanned = locationScanned
	item.itemScanned = itemScanned
	item.completedBy = completedBy
	item.completedAt = completedAt
	item.shortReason = shortReason
	item.skipReason = skipReason

	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i *TaskItem) Validate() error {
	if i == nil {
		return ErrTaskItemIsNotConstructed
	}
	return i.guard.Validate(ErrTaskItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *TaskItem) ID() kernel.UUID {
	return i.id
}

// TaskID returns the owning task.
func (i *TaskItem) TaskID() kernel.UUID {
	return i.taskID
}

// Sequence returns the pick-path position of the line.
func (i *TaskItem) Sequence() int {
	return i.sequence
}

// Status returns the line's current status.
func (i *TaskItem) Status() ItemStatus {
	return i.status
}

// RequiredQty returns the quantity the operator must pick.
func (i *TaskItem) RequiredQty() int {
	return i.requiredQty
}

// CompletedQty returns the quantity the operator actually confirmed.
func (i *TaskItem) CompletedQty() int {
	return i.completedQty
}

// OrderID returns the order the line serves.
func (i *TaskItem) OrderID() kernel.UUID {
	return i.orderID
}

// OrderItemID returns the order line, or nil when unbound.
func (i *TaskItem) OrderItemID() *kernel.UUID {
	return i.orderItemID
}

// VariantID returns the product variant to pick.
func (i *TaskItem) VariantID() kernel.UUID {
	return i.variantID
}

// LocationID returns where to pick it.
func (i *TaskItem) LocationID() kernel.UUID {
	return i.locationID
}

// AllocationID returns the reservation the line was generated from, or nil.
func (i *TaskItem) AllocationID() *kernel.UUID {
	return i.allocationID
}

// LocationScanned reports whether the operator's location scan matched.
func (i *TaskItem) LocationScanned() bool {
	return i.locationScanned
}

// ItemScanned reports whether the operator's item scan matched.
func (i *TaskItem) ItemScanned() bool {
	return i.itemScanned
}

// CompletedBy returns who closed the line, or nil while it is open.
func (i *TaskItem) CompletedBy() *kernel.UUID {
	return i.completedBy
}

// CompletedAt returns when the line was closed, or nil while it is open.
func (i *TaskItem) CompletedAt() *time.Time {
	return i.completedAt
}

// ShortReason returns the generated explanation of a short confirmation.
func (i *TaskItem) ShortReason() string {
	return i.shortReason
}

// SkipReason returns the operator's explanation for skipping the line.
func (i *TaskItem) SkipReason() string {
	return i.skipReason
}

// IsOpen reports whether the line still counts against task completion.
func (i *TaskItem) IsOpen() bool {
	return i.status.IsOpen()
}

// AssignSequence sets the line's pick-path position.
func (i *TaskItem) AssignSequence(sequence int) error {
	if sequence <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("sequence",
			fmt.Errorf("%d is not greater than 0", sequence))
	}
	i.sequence = sequence
	return nil
}

// Start marks the line in progress when the operator arrives at its location.
func (i *TaskItem) Start() error {
	if i.status != ItemStatusPending {
		return errs.NewInvalidTransitionError("task item",
			i.status.String(), ItemStatusInProgress.String())
	}
	i.status = ItemStatusInProgress
	return nil
}

// ScanLocation records a matching location barcode scan.
func (i *TaskItem) ScanLocation() {
	i.locationScanned = true
}

// ScanItem records a matching item barcode scan.
func (i *TaskItem) ScanItem() {
	i.itemScanned = true
}

// Complete closes the line with the quantity the operator confirmed and
// reports whether the confirmation was short. Confirming more than required
// is a conflict rejected before mutation.
func (i *TaskItem) Complete(by kernel.UUID, at time.Time, actualQty int) (short bool, err error) {
	if err = by.Validate(); err != nil {
		return false, err
	}
	if !i.IsOpen() {
		return false, errs.NewInvalidTransitionErrorWithCause("task item",
			i.status.String(), ItemStatusCompleted.String(), ErrTaskItemIsClosed)
	}
	if actualQty < 0 {
		return false, errs.NewValueIsOutOfRangeError("actualQty", actualQty, 0, i.requiredQty)
	}
	if actualQty > i.requiredQty {
		return false, errs.NewConflictErrorWithCause("actualQty",
			fmt.Errorf("confirming %d exceeds the %d required on the line", actualQty, i.requiredQty))
	}

	short = actualQty < i.requiredQty

	i.completedQty = actualQty
	i.completedBy = &by
	i.completedAt = &at
	if short {
		i.status = ItemStatusShort
		i.shortReason = fmt.Sprintf("picked %d of %d", actualQty, i.requiredQty)
	} else {
		i.status = ItemStatusCompleted
	}

	return short, nil
}

// Skip closes the line without picking. The reservation behind it is left
// untouched for manual resolution.
func (i *TaskItem) Skip(by kernel.UUID, at time.Time, reason string) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("skip reason")
	}
	if !i.IsOpen() {
		return errs.NewInvalidTransitionErrorWithCause("task item",
			i.status.String(), ItemStatusSkipped.String(), ErrTaskItemIsClosed)
	}

	i.status = ItemStatusSkipped
	i.skipReason = reason
	i.completedBy = &by
	i.completedAt = &at

	return nil
}

func (i *TaskItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *TaskItem) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	i.taskID = taskID
	return nil
}

func (i *TaskItem) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *TaskItem) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}
	i.variantID = variantID
	return nil
}

func (i *TaskItem) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	i.locationID = locationID
	return nil
}

func (i *TaskItem) setRequiredQty(requiredQty int) error {
	if requiredQty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("requiredQty",
			fmt.Errorf("%d is not greater than 0", requiredQty))
	}
	i.requiredQty = requiredQty
	return nil
}
