// Package binrepo provides data transfer objects and mapping functions for
// pick bin persistence.
package binrepo

import (
	"time"

	"warehouse/internal/core/domain/model/bin"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BinDTO represents the database structure for persisting pick bins.
// BinNumber carries the warehouse-wide sequence the barcode is printed from.
type BinDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BinNumber int       `gorm:"not null;uniqueIndex"`
	Barcode   string    `gorm:"type:varchar(32);not null"`
	Status    int       `gorm:"index"`
	Items     []BinItemDTO `gorm:"foreignKey:BinID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName specifies the database table name for pick bins.
func (BinDTO) TableName() string {
	return "pick_bins"
}

// BinItemDTO represents one consolidated variant quantity inside a bin.
type BinItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BinID       uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID   uuid.UUID `gorm:"type:uuid;not null"`
	Quantity    int       `gorm:"type:int;not null"`
	VerifiedQty int       `gorm:"type:int;not null"`
	Position    int       `gorm:"not null"`
}

// TableName specifies the database table name for bin lines.
func (BinItemDTO) TableName() string {
	return "bin_items"
}

// fromDomain converts a bin aggregate to its database representation.
// Position preserves pick order across round trips.
func fromDomain(aggregate *bin.PickBin) BinDTO {
	binID := aggregate.ID().Bytes()

	items := make([]BinItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, BinItemDTO{
			ID:          item.ID().Bytes(),
			BinID:       binID,
			VariantID:   item.VariantID().Bytes(),
			Quantity:    item.Quantity(),
			VerifiedQty: item.VerifiedQty(),
			Position:    i,
		})
	}

	return BinDTO{
		ID:        binID,
		TaskID:    aggregate.TaskID().Bytes(),
		BinNumber: aggregate.BinNumber(),
		Barcode:   aggregate.Barcode(),
		Status:    int(aggregate.Status()),
		Items:     items,
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a bin aggregate.
func toDomain(dto BinDTO) (*bin.PickBin, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	taskID, err := kernel.UUIDFromBytes(dto.TaskID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*bin.BinItem, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return bin.RestorePickBin(id, taskID, dto.BinNumber, dto.Barcode,
		bin.Status(dto.Status), items, dto.CreatedAt)
}

func itemToDomain(dto BinItemDTO) (*bin.BinItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	binID, err := kernel.UUIDFromBytes(dto.BinID[:])
	if err != nil {
		return nil, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}

	return bin.RestoreBinItem(id, binID, variantID, dto.Quantity, dto.VerifiedQty)
}
