// Package taskrepo provides data transfer objects and mapping functions for
// work task persistence. A task row owns two child tables: the orders it
// covers (position-ordered) and its work lines (pick-path ordered).
package taskrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// TaskDTO represents the database structure for persisting work tasks.
type TaskDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TaskType        int        `gorm:"not null"`
	Status          int        `gorm:"index"`
	Priority        int        `gorm:"not null"`
	IdempotencyKey  string     `gorm:"type:varchar(128);not null;uniqueIndex"`
	AssignedTo      *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt      *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	BlockReason     int
	TotalItems      int
	CompletedItems  int
	ShortItems      int
	SkippedItems    int
	TotalOrders     int
	CompletedOrders int
	Orders          []TaskOrderDTO `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Items           []TaskItemDTO  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for work tasks.
func (TaskDTO) TableName() string {
	return "work_tasks"
}

// TaskOrderDTO links a task to one order it covers. Position preserves the
// order of the creation request.
type TaskOrderDTO struct {
	TaskID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position int       `gorm:"not null"`
}

// TableName specifies the database table name for task order links.
func (TaskOrderDTO) TableName() string {
	return "work_task_orders"
}

// TaskItemDTO represents one line of work within a task.
type TaskItemDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TaskID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Sequence        int        `gorm:"not null"`
	Status          int        `gorm:"index"`
	RequiredQty     int        `gorm:"type:int;not null"`
	CompletedQty    int        `gorm:"type:int;not null"`
	OrderID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderItemID     *uuid.UUID `gorm:"type:uuid"`
	VariantID       uuid.UUID  `gorm:"type:uuid;not null"`
	LocationID      uuid.UUID  `gorm:"type:uuid;not null"`
	AllocationID    *uuid.UUID `gorm:"type:uuid"`
	LocationScanned bool       `gorm:"not null"`
	ItemScanned     bool       `gorm:"not null"`
	CompletedBy     *uuid.UUID `gorm:"type:uuid"`
	CompletedAt     *time.Time
	ShortReason     string `gorm:"type:varchar(255)"`
	SkipReason      string `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for task lines.
func (TaskItemDTO) TableName() string {
	return "task_items"
}

// fromDomain converts a task aggregate to its database representation.
func fromDomain(t *task.WorkTask) TaskDTO {
	taskID := t.ID().Bytes()

	orders := make([]TaskOrderDTO, 0, len(t.OrderIDs()))
	for i, orderID := range t.OrderIDs() {
		orders = append(orders, TaskOrderDTO{
			TaskID:   taskID,
			OrderID:  orderID.Bytes(),
			Position: i,
		})
	}

	items := make([]TaskItemDTO, 0, len(t.Items()))
	for _, item := range t.Items() {
		items = append(items, itemFromDomain(item))
	}

	return TaskDTO{
		ID:              taskID,
		TaskType:        int(t.TaskType()),
		Status:          int(t.Status()),
		Priority:        int(t.Priority()),
		IdempotencyKey:  t.IdempotencyKey(),
		AssignedTo:      optionalUUID(t.AssignedTo()),
		AssignedAt:      t.AssignedAt(),
		StartedAt:       t.StartedAt(),
		CompletedAt:     t.CompletedAt(),
		BlockReason:     int(t.BlockReason()),
		TotalItems:      t.TotalItems(),
		CompletedItems:  t.CompletedItems(),
		ShortItems:      t.ShortItems(),
		SkippedItems:    t.SkippedItems(),
		TotalOrders:     t.TotalOrders(),
		CompletedOrders: t.CompletedOrders(),
		Orders:          orders,
		Items:           items,
		CreatedAt:       t.CreatedAt(),
	}
}

func itemFromDomain(item *task.TaskItem) TaskItemDTO {
	return TaskItemDTO{
		ID:              item.ID().Bytes(),
		TaskID:          item.TaskID().Bytes(),
		Sequence:        item.Sequence(),
		Status:          int(item.Status()),
		RequiredQty:     item.RequiredQty(),
		CompletedQty:    item.CompletedQty(),
		OrderID:         item.OrderID().Bytes(),
		OrderItemID:     optionalUUID(item.OrderItemID()),
		VariantID:       item.VariantID().Bytes(),
		LocationID:      item.LocationID().Bytes(),
		AllocationID:    optionalUUID(item.AllocationID()),
		LocationScanned: item.LocationScanned(),
		ItemScanned:     item.ItemScanned(),
		CompletedBy:     optionalUUID(item.CompletedBy()),
		CompletedAt:     item.CompletedAt(),
		ShortReason:     item.ShortReason(),
		SkipReason:      item.SkipReason(),
	}
}

// toDomain converts a database DTO to a task aggregate. Orders come back in
// request position; items come back in pick-path sequence.
func toDomain(dto TaskDTO) (*task.WorkTask, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.Orders))
	for _, link := range dto.Orders {
		orderID, linkErr := kernel.UUIDFromBytes(link.OrderID[:])
		if linkErr != nil {
			return nil, linkErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	items := make([]*task.TaskItem, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	assignedTo, err := optionalKernelUUID(dto.AssignedTo)
	if err != nil {
		return nil, err
	}

	return task.RestoreWorkTask(id, task.Type(dto.TaskType), task.Status(dto.Status),
		kernel.Priority(dto.Priority), dto.IdempotencyKey, orderIDs,
		assignedTo, dto.AssignedAt, dto.StartedAt, dto.CompletedAt,
		task.BlockReason(dto.BlockReason),
		dto.CompletedItems, dto.ShortItems, dto.SkippedItems, dto.CompletedOrders,
		items, dto.CreatedAt)
}

func itemToDomain(dto TaskItemDTO) (*task.TaskItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	taskID, err := kernel.UUIDFromBytes(dto.TaskID[:])
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

	orderItemID, err := optionalKernelUUID(dto.OrderItemID)
	if err != nil {
		return nil, err
	}
	allocationID, err := optionalKernelUUID(dto.AllocationID)
	if err != nil {
		return nil, err
	}
	completedBy, err := optionalKernelUUID(dto.CompletedBy)
	if err != nil {
		return nil, err
	}

	return task.RestoreTaskItem(id, taskID, orderID, orderItemID,
		variantID, locationID, allocationID,
		dto.Sequence, task.ItemStatus(dto.Status),
		dto.RequiredQty, dto.CompletedQty,
		dto.LocationScanned, dto.ItemScanned,
		completedBy, dto.CompletedAt,
		dto.ShortReason, dto.SkipReason)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
