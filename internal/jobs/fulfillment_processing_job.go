package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// FulfillmentProcessingJob manages the scheduled processing of pending
// fulfillments. Runs every second to charge payments and book shipments.
type FulfillmentProcessingJob struct {
	handler commands.ProcessFulfillmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewFulfillmentProcessingJob creates a new job for processing fulfillments.
// Uses ProcessFulfillmentsCommandHandler to sweep non-terminal orders every second.
func NewFulfillmentProcessingJob(handler commands.ProcessFulfillmentsCommandHandler, logger *slog.Logger) *FulfillmentProcessingJob {
	return &FulfillmentProcessingJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "fulfillment_processing_job"),
	}
}

// Start begins the fulfillment processing job to run every second.
func (j *FulfillmentProcessingJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewProcessFulfillmentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Fulfillment processing job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Fulfillment processing job started (running every second)")
	return nil
}

// Stop stops the fulfillment processing job.
func (j *FulfillmentProcessingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Fulfillment processing job stopped")
}
