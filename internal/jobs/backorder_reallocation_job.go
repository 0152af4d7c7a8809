package jobs

import (
	"context"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// BackorderReallocationJob periodically re-drives orders waiting on stock
// through the allocation engine. When replenishment has landed since the
// last pass, the oldest waiting orders pick it up first.
type BackorderReallocationJob struct {
	backorderedOrders queries.GetBackorderedOrdersQueryHandler
	allocateOrders    commands.AllocateOrdersCommandHandler
	cron              *cron.Cron
	logger            *slog.Logger
}

// NewBackorderReallocationJob creates a job that retries allocation for the
// backorder queue once a minute.
func NewBackorderReallocationJob(
	backorderedOrders queries.GetBackorderedOrdersQueryHandler,
	allocateOrders commands.AllocateOrdersCommandHandler,
	logger *slog.Logger,
) *BackorderReallocationJob {
	return &BackorderReallocationJob{
		backorderedOrders: backorderedOrders,
		allocateOrders:    allocateOrders,
		cron:              cron.New(),
		logger:            logger.With("component", "backorder_reallocation_job"),
	}
}

// Start schedules the reallocation pass to run every minute.
func (j *BackorderReallocationJob) Start() error {
	_, err := j.cron.AddFunc("@every 1m", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backorder reallocation job started (running every minute)")
	return nil
}

// Stop stops the reallocation job.
func (j *BackorderReallocationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backorder reallocation job stopped")
}

func (j *BackorderReallocationJob) run() {
	ctx := context.Background()

	waiting, err := j.backorderedOrders.Handle(ctx, queries.NewGetBackorderedOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Reading backorder queue failed", "error", err)
		return
	}
	if len(waiting) == 0 {
		return
	}

	orderIDs := make([]kernel.UUID, 0, len(waiting))
	for _, w := range waiting {
		orderIDs = append(orderIDs, w.ID)
	}

	cmd, err := commands.NewAllocateOrdersCommand(orderIDs, true)
	if err != nil {
		j.logger.ErrorContext(ctx, "Building reallocation command failed", "error", err)
		return
	}

	result, err := j.allocateOrders.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Backorder reallocation pass failed", "error", err)
		return
	}

	// A pass over a queue with no new stock leaves everything backordered;
	// that is the steady state and not worth a log line.
	if len(result.FullyAllocated)+len(result.PartiallyAllocated) > 0 || len(result.Errors) > 0 {
		j.logger.InfoContext(ctx, "Backorder reallocation pass finished",
			"waiting", len(waiting),
			"fullyAllocated", len(result.FullyAllocated),
			"partiallyAllocated", len(result.PartiallyAllocated),
			"failed", len(result.Errors))
	}

	for orderID, orderErr := range result.Errors {
		j.logger.ErrorContext(ctx, "Reallocation failed for order",
			"orderId", orderID.String(), "error", orderErr)
	}
}
