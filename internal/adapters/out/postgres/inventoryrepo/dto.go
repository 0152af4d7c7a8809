// Package inventoryrepo provides data transfer objects and mapping functions
// for the inventory ledger: units, locations, and discrepancy records.
package inventoryrepo

import (
	"time"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UnitDTO represents one received quantity of a variant at a location.
// Quantity is the immutable received total; consumption lives in PickedQty.
type UnitDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	VariantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int       `gorm:"type:int;not null"`
	PickedQty  int       `gorm:"type:int;not null"`
	Status     int       `gorm:"index"`
	LotNumber  string    `gorm:"type:varchar(64)"`
	ExpiresAt  *time.Time
	ReceivedAt time.Time
}

// TableName specifies the database table name for inventory units.
func (UnitDTO) TableName() string {
	return "inventory_units"
}

// LocationDTO represents a storage position and its cycle-count flags.
type LocationDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code               string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Pickable           bool      `gorm:"not null"`
	NeedsCycleCount    bool      `gorm:"not null"`
	CycleCountPriority int
}

// TableName specifies the database table name for locations.
func (LocationDTO) TableName() string {
	return "locations"
}

// DiscrepancyDTO represents a recorded quantity mismatch at a location.
type DiscrepancyDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	VariantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	LocationID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	TaskItemID  *uuid.UUID `gorm:"type:uuid"`
	ExpectedQty int        `gorm:"type:int;not null"`
	ActualQty   int        `gorm:"type:int;not null"`
	Reason      string     `gorm:"type:varchar(255);not null"`
	ReportedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ReportedAt  time.Time  `gorm:"index"`
}

// TableName specifies the database table name for discrepancy records.
func (DiscrepancyDTO) TableName() string {
	return "inventory_discrepancies"
}

func unitFromDomain(unit *inventory.InventoryUnit) UnitDTO {
	return UnitDTO{
		ID:         unit.ID().Bytes(),
		VariantID:  unit.VariantID().Bytes(),
		LocationID: unit.LocationID().Bytes(),
		Quantity:   unit.Quantity(),
		PickedQty:  unit.PickedQty(),
		Status:     int(unit.Status()),
		LotNumber:  unit.LotNumber(),
		ExpiresAt:  unit.ExpiresAt(),
		ReceivedAt: unit.ReceivedAt(),
	}
}

func unitToDomain(dto UnitDTO) (*inventory.InventoryUnit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreInventoryUnit(id, variantID, locationID,
		dto.Quantity, dto.PickedQty, inventory.UnitStatus(dto.Status),
		dto.LotNumber, dto.ExpiresAt, dto.ReceivedAt)
}

func locationFromDomain(loc *inventory.Location) LocationDTO {
	return LocationDTO{
		ID:                 loc.ID().Bytes(),
		Code:               loc.Code(),
		Pickable:           loc.IsPickable(),
		NeedsCycleCount:    loc.NeedsCycleCount(),
		CycleCountPriority: int(loc.CycleCountPriority()),
	}
}

func locationToDomain(dto LocationDTO) (*inventory.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreLocation(id, dto.Code, dto.Pickable,
		dto.NeedsCycleCount, kernel.Priority(dto.CycleCountPriority))
}

func discrepancyFromDomain(d *inventory.InventoryDiscrepancy) DiscrepancyDTO {
	var taskItemID *uuid.UUID
	if d.TaskItemID() != nil {
		raw := d.TaskItemID().Bytes()
		taskItemID = &raw
	}

	return DiscrepancyDTO{
		ID:          d.ID().Bytes(),
		VariantID:   d.VariantID().Bytes(),
		LocationID:  d.LocationID().Bytes(),
		TaskItemID:  taskItemID,
		ExpectedQty: d.ExpectedQty(),
		ActualQty:   d.ActualQty(),
		Reason:      d.Reason(),
		ReportedBy:  d.ReportedBy().Bytes(),
		ReportedAt:  d.ReportedAt(),
	}
}
