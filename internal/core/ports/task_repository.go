package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"
)

// TaskRepository defines the persistence contract for work task aggregates.
type TaskRepository interface {
	// Add persists a new task with its items.
	Add(ctx context.Context, aggregate *task.WorkTask) error

	// Update persists changes to an existing task and its items.
	Update(ctx context.Context, aggregate *task.WorkTask) error

	// Get retrieves a task by its unique identifier, including its items in
	// pick-path order.
	Get(ctx context.Context, id kernel.UUID) (*task.WorkTask, error)

	// GetByIdempotencyKey retrieves the task created under the given key, or
	// an ObjectNotFoundError when none exists. This lookup is what makes task
	// creation safe under at-least-once job delivery.
	GetByIdempotencyKey(ctx context.Context, key string) (*task.WorkTask, error)

	// GetByItemID retrieves the task owning the given item.
	GetByItemID(ctx context.Context, itemID kernel.UUID) (*task.WorkTask, error)

	// GetTaskedAllocationIDs returns the ids of the order's allocations that
	// are already claimed by a line of a non-cancelled task. Skipped lines do
	// not count: their reservations are back up for grabs.
	GetTaskedAllocationIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error)
}
