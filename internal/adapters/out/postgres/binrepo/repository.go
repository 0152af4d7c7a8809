package binrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/bin"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBinRepository implements BinRepository using GORM.
type GormBinRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBinRepository creates a new GORM bin repository.
func NewGormBinRepository(db *gorm.DB, tracker aggregateTracker) *GormBinRepository {
	return &GormBinRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bin with its lines.
func (r *GormBinRepository) Add(ctx context.Context, aggregate *bin.PickBin) error {
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

// Update saves changes to an existing bin and its lines.
func (r *GormBinRepository) Update(ctx context.Context, aggregate *bin.PickBin) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BinDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at", "Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto.Items).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a bin by ID, with lines in pick order.
func (r *GormBinRepository) Get(ctx context.Context, id kernel.UUID) (*bin.PickBin, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BinDTO
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pick bin", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTask retrieves the bins staged from the given picking task.
func (r *GormBinRepository) GetByTask(ctx context.Context, taskID kernel.UUID) ([]*bin.PickBin, error) {
	if err := taskID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BinDTO
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("task_id = ?", taskID.Bytes()).
		Order("bin_number").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	bins := make([]*bin.PickBin, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bins = append(bins, b)
	}

	return bins, nil
}

// NextBinNumber reserves and returns the next warehouse-wide sequential bin
// number. Runs inside the caller's transaction, so two concurrent
// consolidations cannot print the same number: the loser's insert hits the
// unique index and rolls back.
func (r *GormBinRepository) NextBinNumber(ctx context.Context) (int, error) {
	var next int
	if err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(bin_number), 0) + 1 FROM pick_bins").
		Scan(&next).Error; err != nil {
		return 0, err
	}

	return next, nil
}
