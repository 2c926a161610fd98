// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. FulfillmentProcessingJob - Runs every second to charge payments for pending
// fulfillments and book their shipments
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(processFulfillmentsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The job uses the cron expression "* * * * * *" which means it runs every
// second. This frequency keeps payment charging and shipment booking close to
// real time without a message broker.
//
// # Error Handling
//
// The processing job sweeps every non-terminal order per run and joins the
// per-order failures into one error, so a single bad order never starves the
// rest. Failures are logged and retried on the next tick.
package jobs
