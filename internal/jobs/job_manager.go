package jobs

import (
	"fmt"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	backorderReallocationJob *BackorderReallocationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes handlers as dependencies to wire up the job execution.
func NewJobManager(
	backorderedOrders queries.GetBackorderedOrdersQueryHandler,
	allocateOrders commands.AllocateOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		backorderReallocationJob: NewBackorderReallocationJob(backorderedOrders, allocateOrders, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.backorderReallocationJob.Start(); err != nil {
		return fmt.Errorf("failed to start backorder reallocation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.backorderReallocationJob.Stop()
}
