package ports

import (
	"context"

	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/kernel"
)

// AllocationRepository defines the persistence contract for stock
// reservations. The Sum queries are the ledger reads the free-quantity
// invariant depends on: they must run inside the same transaction as the
// writes they guard, and their results are never cached.
type AllocationRepository interface {
	// Add persists a new reservation.
	Add(ctx context.Context, a *allocation.Allocation) error

	// Update persists changes to an existing reservation.
	Update(ctx context.Context, a *allocation.Allocation) error

	// Get retrieves a reservation by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error)

	// GetActiveByOrder retrieves the order's reservations in active statuses.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) ([]*allocation.Allocation, error)

	// SumActiveByOrderItem returns the sum of quantities of the order line's
	// active reservations, recomputed from the ledger.
	SumActiveByOrderItem(ctx context.Context, orderItemID kernel.UUID) (int, error)

	// SumActiveForUnit returns the sum of quantities of the unit's active
	// reservations, recomputed from the ledger.
	SumActiveForUnit(ctx context.Context, unitID kernel.UUID) (int, error)
}
