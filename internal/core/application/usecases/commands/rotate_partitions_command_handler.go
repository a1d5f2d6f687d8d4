package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// eventTables lists the partitioned event ledgers the retention run covers.
var eventTables = []string{
	"sale_events",
	"picking_plan_events",
	"picking_route_events",
}

// RotatePartitionsCommandHandler runs one retention pass over the event
// ledgers: it creates the partitions for the current and the next month and
// drops partitions that fell out of the retention window. A partition still
// holding events of a non-terminal aggregate is skipped with a warning and
// retried on the next run.
type RotatePartitionsCommandHandler struct {
	maintainer ports.PartitionMaintainer
	logger     *slog.Logger
}

// NewRotatePartitionsCommandHandler creates a handler for retention runs.
func NewRotatePartitionsCommandHandler(maintainer ports.PartitionMaintainer,
	logger *slog.Logger) RotatePartitionsCommandHandler {
	return RotatePartitionsCommandHandler{
		maintainer: maintainer,
		logger:     logger.With("component", "rotate_partitions"),
	}
}

// Handle processes one retention run. Each DDL statement is idempotent, so a
// run interrupted halfway leaves nothing to undo.
func (h RotatePartitionsCommandHandler) Handle(ctx context.Context, cmd RotatePartitionsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	cutoff := thisMonth.AddDate(0, -cmd.RetainPeriods(), 0)

	for _, table := range eventTables {
		if err := h.maintainer.EnsurePartition(ctx, table, thisMonth); err != nil {
			return err
		}
		if err := h.maintainer.EnsurePartition(ctx, table, thisMonth.AddDate(0, 1, 0)); err != nil {
			return err
		}

		if err := h.dropExpired(ctx, table, cutoff); err != nil {
			return err
		}
	}

	return nil
}

func (h RotatePartitionsCommandHandler) dropExpired(ctx context.Context, table string, cutoff time.Time) error {
	partitions, err := h.maintainer.ListPartitionsBefore(ctx, table, cutoff)
	if err != nil {
		return err
	}

	for _, partition := range partitions {
		live, err := h.maintainer.HasLiveAggregates(ctx, partition)
		if err != nil {
			return err
		}
		if live {
			h.logger.WarnContext(ctx, "partition holds live aggregates, skipping",
				"table", partition.Table, "partition", partition.Name)
			continue
		}

		if err = h.maintainer.DropPartition(ctx, partition); err != nil {
			return err
		}
		h.logger.InfoContext(ctx, "partition dropped",
			"table", partition.Table, "partition", partition.Name)
	}

	return nil
}
