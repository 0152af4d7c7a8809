package taskrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository implements TaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTaskRepository creates a new GORM task repository.
func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new task with its order links and lines.
func (r *GormTaskRepository) Add(ctx context.Context, aggregate *task.WorkTask) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an existing task and its lines. The order link set
// is fixed at creation and is not rewritten.
func (r *GormTaskRepository) Update(ctx context.Context, aggregate *task.WorkTask) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at", "Orders", "Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(dto.Items) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a task by ID, with orders in request position and lines in
// pick-path order.
func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.WorkTask, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "id = ?", id.Bytes(), id.String())
}

// GetByIdempotencyKey retrieves the task created under the given key.
func (r *GormTaskRepository) GetByIdempotencyKey(ctx context.Context, key string) (*task.WorkTask, error) {
	if key == "" {
		return nil, errs.NewValueIsRequiredError("idempotency key")
	}

	return r.first(ctx, "idempotency_key = ?", key, key)
}

// GetByItemID retrieves the task owning the given line.
func (r *GormTaskRepository) GetByItemID(ctx context.Context, itemID kernel.UUID) (*task.WorkTask, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var item TaskItemDTO
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task item", itemID.String())
		}
		return nil, err
	}

	return r.first(ctx, "id = ?", item.TaskID, itemID.String())
}

// GetTaskedAllocationIDs returns the allocations of the order already claimed
// by lines of non-cancelled tasks. Skipped lines are excluded so their
// reservations can be picked up by a follow-up task.
func (r *GormTaskRepository) GetTaskedAllocationIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Model(&TaskItemDTO{}).
		Joins("JOIN work_tasks ON work_tasks.id = task_items.task_id").
		Where("task_items.order_id = ?", orderID.Bytes()).
		Where("task_items.allocation_id IS NOT NULL").
		Where("work_tasks.status <> ?", int(task.StatusCancelled)).
		Where("task_items.status <> ?", int(task.ItemStatusSkipped)).
		Pluck("task_items.allocation_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		converted, convErr := kernel.UUIDFromBytes(id[:])
		if convErr != nil {
			return nil, convErr
		}
		ids = append(ids, converted)
	}
	return ids, nil
}

func (r *GormTaskRepository) first(ctx context.Context, cond string, arg any, notFoundID string) (*task.WorkTask, error) {
	var dto TaskDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence")
		}).
		First(&dto, cond, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", notFoundID)
		}
		return nil, err
	}

	return toDomain(dto)
}
