package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	planCompletionJob *PlanCompletionJob
	retentionJob      *RetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	sweepPlansHandler commands.SweepPlansCommandHandler,
	rotatePartitionsHandler commands.RotatePartitionsCommandHandler,
	tenants []kernel.TenantID,
	retainPeriods int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		planCompletionJob: NewPlanCompletionJob(sweepPlansHandler, tenants, logger),
		retentionJob:      NewRetentionJob(rotatePartitionsHandler, retainPeriods, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.planCompletionJob.Start(); err != nil {
		return fmt.Errorf("failed to start plan completion job: %w", err)
	}

	if err := jm.retentionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.planCompletionJob.Stop()
		return fmt.Errorf("failed to start retention job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.planCompletionJob.Stop()
	jm.retentionJob.Stop()
}
