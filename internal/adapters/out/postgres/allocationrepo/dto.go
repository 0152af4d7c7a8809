// Package allocationrepo provides data transfer objects and mapping functions
// for the allocation ledger. Its Sum queries back the free-quantity
// recomputation, so they always read the table directly and never a cache.
package allocationrepo

import (
	"time"

	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AllocationDTO represents one reservation of unit stock for an order line.
type AllocationDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UnitID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderItemID *uuid.UUID `gorm:"type:uuid;index"`
	VariantID   uuid.UUID  `gorm:"type:uuid;not null"`
	LocationID  uuid.UUID  `gorm:"type:uuid;not null"`
	Quantity    int        `gorm:"type:int;not null"`
	PickedQty   int        `gorm:"type:int;not null"`
	Status      int        `gorm:"index"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for allocations.
func (AllocationDTO) TableName() string {
	return "allocations"
}

func fromDomain(a *allocation.Allocation) AllocationDTO {
	var orderItemID *uuid.UUID
	if a.OrderItemID() != nil {
		raw := a.OrderItemID().Bytes()
		orderItemID = &raw
	}

	return AllocationDTO{
		ID:          a.ID().Bytes(),
		UnitID:      a.UnitID().Bytes(),
		OrderID:     a.OrderID().Bytes(),
		OrderItemID: orderItemID,
		VariantID:   a.VariantID().Bytes(),
		LocationID:  a.LocationID().Bytes(),
		Quantity:    a.Quantity(),
		PickedQty:   a.PickedQty(),
		Status:      int(a.Status()),
		CreatedAt:   a.CreatedAt(),
	}
}

func toDomain(dto AllocationDTO) (*allocation.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	unitID, err := kernel.UUIDFromBytes(dto.UnitID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
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

	var orderItemID *kernel.UUID
	if dto.OrderItemID != nil {
		itemID, itemErr := kernel.UUIDFromBytes((*dto.OrderItemID)[:])
		if itemErr != nil {
			return nil, itemErr
		}
		orderItemID = &itemID
	}

	return allocation.RestoreAllocation(id, unitID, orderID, orderItemID,
		variantID, locationID, dto.Quantity, dto.PickedQty,
		allocation.Status(dto.Status), dto.CreatedAt)
}
