// Package jobs provides scheduled background tasks for the warehouse system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. BackorderReallocationJob - Runs every minute to retry allocation for
// orders still waiting on stock
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(backorderedOrders, allocateOrders, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reallocation job treats a pass that leaves everything backordered as
// the steady state and stays silent; per-order allocation failures are logged
// individually and retried on the next pass.
package jobs
