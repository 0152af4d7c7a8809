// Package ports defines the contracts between the domain layer and
// infrastructure: per-aggregate repositories, the unit of work bounding each
// business transaction, and the event publisher.
package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and its items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its items. Returns an ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetBackorderedByVariant retrieves Backordered and PartiallyAllocated
	// orders with a line referencing the variant, oldest first. Used to
	// re-drive allocation when new stock arrives.
	GetBackorderedByVariant(ctx context.Context, variantID kernel.UUID) ([]*order.Order, error)

	// GetAllBackordered retrieves every Backordered and PartiallyAllocated
	// order, oldest first. Feeds the periodic reallocation job.
	GetAllBackordered(ctx context.Context) ([]*order.Order, error)
}
