package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// PlanCompletionJob manages the scheduled sweep of in-progress picking plans.
// Runs every thirty seconds to complete plans the inline completion path
// missed.
type PlanCompletionJob struct {
	handler commands.SweepPlansCommandHandler
	tenants []kernel.TenantID
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPlanCompletionJob creates a new job sweeping the given tenants.
func NewPlanCompletionJob(handler commands.SweepPlansCommandHandler,
	tenants []kernel.TenantID, logger *slog.Logger) *PlanCompletionJob {
	return &PlanCompletionJob{
		handler: handler,
		tenants: tenants,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "plan_completion_job"),
	}
}

// Start begins the plan completion sweep to run every thirty seconds.
func (j *PlanCompletionJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		for _, tenant := range j.tenants {
			cmd, cmdErr := commands.NewSweepPlansCommand(tenant)
			if cmdErr != nil {
				j.logger.ErrorContext(ctx, "Plan completion sweep skipped tenant",
					"tenant", tenant, "error", cmdErr)
				continue
			}

			if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
				j.logger.ErrorContext(ctx, "Plan completion sweep failed",
					"tenant", tenant, "error", handleErr)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Plan completion job started (running every 30 seconds)")
	return nil
}

// Stop stops the plan completion job.
func (j *PlanCompletionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Plan completion job stopped")
}
