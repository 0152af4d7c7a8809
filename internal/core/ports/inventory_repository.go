package ports

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for the inventory
// ledger: units, locations, and discrepancy records.
type InventoryRepository interface {
	// AddUnit persists a newly received inventory unit.
	AddUnit(ctx context.Context, unit *inventory.InventoryUnit) error

	// UpdateUnit persists changes to an existing unit.
	UpdateUnit(ctx context.Context, unit *inventory.InventoryUnit) error

	// GetUnit retrieves a unit by its unique identifier.
	GetUnit(ctx context.Context, id kernel.UUID) (*inventory.InventoryUnit, error)

	// GetAvailableUnitsByVariant retrieves Available units of the variant at
	// pickable locations, ordered FEFO-then-FIFO: expiry ascending with
	// absent expiry last, then receivedAt ascending. This ordering is the
	// allocation consumption policy.
	GetAvailableUnitsByVariant(ctx context.Context, variantID kernel.UUID) ([]*inventory.InventoryUnit, error)

	// GetLocation retrieves a location by its unique identifier.
	GetLocation(ctx context.Context, id kernel.UUID) (*inventory.Location, error)

	// UpdateLocation persists changes to a location's flags.
	UpdateLocation(ctx context.Context, loc *inventory.Location) error

	// AddDiscrepancy persists a recorded quantity mismatch.
	AddDiscrepancy(ctx context.Context, d *inventory.InventoryDiscrepancy) error

	// CountShortPicksAtLocation counts discrepancies with negative variance
	// recorded at the location since the given time. Feeds the short-pick
	// escalation policy.
	CountShortPicksAtLocation(ctx context.Context, locationID kernel.UUID, since time.Time) (int, error)
}
