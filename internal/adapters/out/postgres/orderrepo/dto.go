// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// CreatedAt is database bookkeeping only: the backorder queue is served
// oldest first, and insertion time is the age.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status      int       `gorm:"index"`
	Priority    int
	HoldReason  string `gorm:"type:varchar(255)"`
	HeldAt      *time.Time
	Items       []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line. VariantID stays null while the line
// is unmatched against the product catalog.
type OrderItemDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	VariantID    *uuid.UUID `gorm:"type:uuid;index"`
	Sku          string     `gorm:"type:varchar(64);not null"`
	RequiredQty  int        `gorm:"type:int;not null"`
	AllocatedQty int        `gorm:"type:int;not null"`
	PickedQty    int        `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))

	for _, item := range aggregate.Items() {
		var variantID *uuid.UUID
		if item.VariantID() != nil {
			raw := item.VariantID().Bytes()
			variantID = &raw
		}

		items = append(items, OrderItemDTO{
			ID:           item.ID().Bytes(),
			OrderID:      orderID,
			VariantID:    variantID,
			Sku:          item.Sku(),
			RequiredQty:  item.RequiredQty(),
			AllocatedQty: item.AllocatedQty(),
			PickedQty:    item.PickedQty(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		OrderNumber: aggregate.OrderNumber(),
		Status:      int(aggregate.Status()),
		Priority:    int(aggregate.Priority()),
		HoldReason:  aggregate.HoldReason(),
		HeldAt:      aggregate.HeldAt(),
		Items:       items,
	}
}

// toDomain converts a database DTO to an order aggregate, reconstructing its
// lines and hold bookkeeping through RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, dto.OrderNumber, order.Status(dto.Status),
		kernel.Priority(dto.Priority), dto.HoldReason, dto.HeldAt, items)
}

func itemToDomain(dto OrderItemDTO) (*order.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var variantID *kernel.UUID
	if dto.VariantID != nil {
		vID, variantErr := kernel.UUIDFromBytes((*dto.VariantID)[:])
		if variantErr != nil {
			return nil, variantErr
		}
		variantID = &vID
	}

	return order.RestoreOrderItem(id, orderID, variantID, dto.Sku,
		dto.RequiredQty, dto.AllocatedQty, dto.PickedQty)
}
