package inventory

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrDiscrepancyIsNotConstructed is returned when an InventoryDiscrepancy
	// was not created through NewDiscrepancy.
	ErrDiscrepancyIsNotConstructed = errors.New(
		"InventoryDiscrepancy must be created via NewDiscrepancy constructor")

	// ErrDiscrepancyReasonIsRequired is returned when recording a discrepancy
	// without a reason.
	ErrDiscrepancyReasonIsRequired = errs.NewValueIsRequiredError("discrepancy reason")
)

// InventoryDiscrepancy records a mismatch between expected and found
// quantities at a location, typically produced by a short pick. Variance is
// derived as actual minus expected, so a short pick of 3 against 5 records −2.
// Accumulated discrepancies at one location feed the cycle-count escalation
// policy.
type InventoryDiscrepancy struct {
	id          kernel.UUID
	variantID   kernel.UUID
	locationID  kernel.UUID
	taskItemID  *kernel.UUID
	expectedQty int
	actualQty   int
	reason      string
	reportedBy  kernel.UUID
	reportedAt  time.Time

	guard guard.ConstructorGuard
}

// NewDiscrepancy records a quantity mismatch observed by an operator.
func NewDiscrepancy(
	id, variantID, locationID kernel.UUID,
	taskItemID *kernel.UUID,
	expectedQty, actualQty int,
	reason string,
	reportedBy kernel.UUID,
	reportedAt time.Time,
) (*InventoryDiscrepancy, error) {
	d := &InventoryDiscrepancy{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setVariantID(variantID),
		d.setLocationID(locationID),
		d.setReportedBy(reportedBy),
		d.setReason(reason),
	); err != nil {
		return nil, err
	}

	if expectedQty < 0 || actualQty < 0 {
		return nil, errs.NewValueIsInvalidError("discrepancy quantities")
	}
	if reportedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("reportedAt")
	}

	d.taskItemID = taskItemID
	d.expectedQty = expectedQty
	d.actualQty = actualQty
	d.reportedAt = reportedAt

	return d, nil
}

// Validate ensures the discrepancy was created through the constructor.
func (d *InventoryDiscrepancy) Validate() error {
	if d == nil {
		return ErrDiscrepancyIsNotConstructed
	}
	return d.guard.Validate(ErrDiscrepancyIsNotConstructed)
}

// ID returns the discrepancy's unique identifier.
func (d *InventoryDiscrepancy) ID() kernel.UUID {
	return d.id
}

// VariantID returns the product variant the mismatch concerns.
func (d *InventoryDiscrepancy) VariantID() kernel.UUID {
	return d.variantID
}

// LocationID returns the location the mismatch was observed at.
func (d *InventoryDiscrepancy) LocationID() kernel.UUID {
	return d.locationID
}

// TaskItemID returns the task item that surfaced the mismatch, or nil for
// discrepancies reported outside task execution.
func (d *InventoryDiscrepancy) TaskItemID() *kernel.UUID {
	return d.taskItemID
}

// ExpectedQty returns the quantity the system expected to find.
func (d *InventoryDiscrepancy) ExpectedQty() int {
	return d.expectedQty
}

// ActualQty returns the quantity the operator found.
func (d *InventoryDiscrepancy) ActualQty() int {
	return d.actualQty
}

// Variance returns actual minus expected; short picks yield negative values.
func (d *InventoryDiscrepancy) Variance() int {
	return d.actualQty - d.expectedQty
}

// Reason returns the recorded explanation.
func (d *InventoryDiscrepancy) Reason() string {
	return d.reason
}

// ReportedBy returns the operator who observed the mismatch.
func (d *InventoryDiscrepancy) ReportedBy() kernel.UUID {
	return d.reportedBy
}

// ReportedAt returns when the mismatch was observed.
func (d *InventoryDiscrepancy) ReportedAt() time.Time {
	return d.reportedAt
}

func (d *InventoryDiscrepancy) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *InventoryDiscrepancy) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}
	d.variantID = variantID
	return nil
}

func (d *InventoryDiscrepancy) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	d.locationID = locationID
	return nil
}

func (d *InventoryDiscrepancy) setReportedBy(reportedBy kernel.UUID) error {
	if err := reportedBy.Validate(); err != nil {
		return err
	}
	d.reportedBy = reportedBy
	return nil
}

func (d *InventoryDiscrepancy) setReason(reason string) error {
	if reason == "" {
		return ErrDiscrepancyReasonIsRequired
	}
	d.reason = reason
	return nil
}
