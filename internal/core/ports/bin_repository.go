package ports

import (
	"context"

	"warehouse/internal/core/domain/model/bin"
	"warehouse/internal/core/domain/model/kernel"
)

// BinRepository defines the persistence contract for pick bin aggregates.
type BinRepository interface {
	// Add persists a new bin with its items.
	Add(ctx context.Context, aggregate *bin.PickBin) error

	// Update persists changes to an existing bin and its items.
	Update(ctx context.Context, aggregate *bin.PickBin) error

	// Get retrieves a bin by its unique identifier, including its items.
	Get(ctx context.Context, id kernel.UUID) (*bin.PickBin, error)

	// GetByTask retrieves the bins staged from the given picking task.
	GetByTask(ctx context.Context, taskID kernel.UUID) ([]*bin.PickBin, error)

	// NextBinNumber reserves and returns the next warehouse-wide sequential
	// bin number.
	NextBinNumber(ctx context.Context) (int, error)
}
