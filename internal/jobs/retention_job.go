package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RetentionJob manages the scheduled rotation of the event ledger partitions.
// Runs nightly to create upcoming partitions and drop expired ones.
type RetentionJob struct {
	handler       commands.RotatePartitionsCommandHandler
	retainPeriods int
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewRetentionJob creates a new retention job keeping the given number of
// monthly periods.
func NewRetentionJob(handler commands.RotatePartitionsCommandHandler,
	retainPeriods int, logger *slog.Logger) *RetentionJob {
	return &RetentionJob{
		handler:       handler,
		retainPeriods: retainPeriods,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "retention_job"),
	}
}

// Start begins the retention job to run nightly at 03:00 UTC.
func (j *RetentionJob) Start() error {
	_, err := j.cron.AddFunc("0 0 3 * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRotatePartitionsCommand(j.retainPeriods)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Retention run skipped", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Retention run failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retention job started (running nightly at 03:00 UTC)")
	return nil
}

// Stop stops the retention job.
func (j *RetentionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Retention job stopped")
}
