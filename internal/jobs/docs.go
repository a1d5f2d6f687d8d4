// Package jobs provides scheduled background tasks for the fulfillment core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the request path does not cover.
//
// # Available Jobs
//
// 1. PlanCompletionJob - Runs every thirty seconds to complete in-progress
// picking plans whose routes are all finished and whose goods are all ready
// to pack.
// 2. RetentionJob - Runs nightly to create the upcoming event ledger
// partitions and drop the ones that fell out of the retention window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepHandler, rotateHandler, tenants, retainPeriods, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and retry on the next tick; a retention run skips
// partitions that still hold live aggregates and picks them up again the
// following night.
package jobs
