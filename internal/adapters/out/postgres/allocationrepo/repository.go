package allocationrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM.
type GormAllocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAllocationRepository creates a new GORM allocation repository.
func NewGormAllocationRepository(db *gorm.DB, tracker aggregateTracker) *GormAllocationRepository {
	return &GormAllocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new reservation.
func (r *GormAllocationRepository) Add(ctx context.Context, a *allocation.Allocation) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(a.ID(), a)
	return nil
}

// Update saves changes to an existing reservation.
func (r *GormAllocationRepository) Update(ctx context.Context, a *allocation.Allocation) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).Model(&AllocationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(a.ID(), a)
	return nil
}

// Get retrieves a reservation by ID.
func (r *GormAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AllocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("allocation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOrder retrieves the order's reservations in active statuses.
func (r *GormAllocationRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*allocation.Allocation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AllocationDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID.Bytes(), activeStatuses()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	allocations := make([]*allocation.Allocation, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}

	return allocations, nil
}

// SumActiveByOrderItem returns the sum of quantities of the order line's
// active reservations, recomputed from the ledger.
func (r *GormAllocationRepository) SumActiveByOrderItem(
	ctx context.Context,
	orderItemID kernel.UUID,
) (int, error) {
	if err := orderItemID.Validate(); err != nil {
		return 0, err
	}

	return r.sumActive(ctx, "order_item_id = ?", orderItemID)
}

// SumActiveForUnit returns the sum of quantities of the unit's active
// reservations, recomputed from the ledger. Picked reservations stay in the
// sum, which is what keeps consumed stock out of the free pool.
func (r *GormAllocationRepository) SumActiveForUnit(
	ctx context.Context,
	unitID kernel.UUID,
) (int, error) {
	if err := unitID.Validate(); err != nil {
		return 0, err
	}

	return r.sumActive(ctx, "unit_id = ?", unitID)
}

func (r *GormAllocationRepository) sumActive(ctx context.Context, cond string, id kernel.UUID) (int, error) {
	var sum int
	if err := r.db.WithContext(ctx).Model(&AllocationDTO{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where(cond, id.Bytes()).
		Where("status IN ?", activeStatuses()).
		Scan(&sum).Error; err != nil {
		return 0, err
	}

	return sum, nil
}

func activeStatuses() []int {
	return []int{
		int(allocation.StatusAllocated),
		int(allocation.StatusPartiallyPicked),
		int(allocation.StatusPicked),
	}
}
