package inventoryrepo

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddUnit saves a newly received inventory unit.
func (r *GormInventoryRepository) AddUnit(ctx context.Context, unit *inventory.InventoryUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := unitFromDomain(unit)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(unit.ID(), unit)
	return nil
}

// UpdateUnit saves changes to an existing unit.
func (r *GormInventoryRepository) UpdateUnit(ctx context.Context, unit *inventory.InventoryUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := unitFromDomain(unit)
	result := r.db.WithContext(ctx).Model(&UnitDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(unit.ID(), unit)
	return nil
}

// GetUnit retrieves a unit by ID.
func (r *GormInventoryRepository) GetUnit(ctx context.Context, id kernel.UUID) (*inventory.InventoryUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UnitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory unit", id.String())
		}
		return nil, err
	}

	return unitToDomain(dto)
}

// GetAvailableUnitsByVariant retrieves Available units of the variant at
// pickable locations with stock still on the shelf, ordered FEFO-then-FIFO:
// expiry ascending with absent expiry last, then receipt ascending.
func (r *GormInventoryRepository) GetAvailableUnitsByVariant(
	ctx context.Context,
	variantID kernel.UUID,
) ([]*inventory.InventoryUnit, error) {
	if err := variantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []UnitDTO
	if err := r.db.WithContext(ctx).
		Joins("JOIN locations ON locations.id = inventory_units.location_id").
		Where("inventory_units.variant_id = ? AND inventory_units.status = ?", variantID.Bytes(), inventory.UnitStatusAvailable).
		Where("inventory_units.quantity > inventory_units.picked_qty").
		Where("locations.pickable").
		Order("inventory_units.expires_at ASC NULLS LAST, inventory_units.received_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	units := make([]*inventory.InventoryUnit, 0, len(dtos))
	for _, dto := range dtos {
		unit, err := unitToDomain(dto)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return units, nil
}

// GetLocation retrieves a location by ID.
func (r *GormInventoryRepository) GetLocation(ctx context.Context, id kernel.UUID) (*inventory.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("location", id.String())
		}
		return nil, err
	}

	return locationToDomain(dto)
}

// UpdateLocation saves changes to a location's flags.
func (r *GormInventoryRepository) UpdateLocation(ctx context.Context, loc *inventory.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	dto := locationFromDomain(loc)
	result := r.db.WithContext(ctx).Model(&LocationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(loc.ID(), loc)
	return nil
}

// AddDiscrepancy saves a recorded quantity mismatch.
func (r *GormInventoryRepository) AddDiscrepancy(ctx context.Context, d *inventory.InventoryDiscrepancy) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := discrepancyFromDomain(d)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

// CountShortPicksAtLocation counts discrepancies with negative variance
// recorded at the location since the given time. Inside a transaction the
// count sees discrepancies added earlier in the same transaction.
func (r *GormInventoryRepository) CountShortPicksAtLocation(
	ctx context.Context,
	locationID kernel.UUID,
	since time.Time,
) (int, error) {
	if err := locationID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&DiscrepancyDTO{}).
		Where("location_id = ? AND reported_at >= ? AND actual_qty < expected_qty",
			locationID.Bytes(), since).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}
