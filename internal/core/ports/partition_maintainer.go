package ports

import (
	"context"
	"time"
)

// Partition describes one monthly partition of an event ledger table.
type Partition struct {
	Table string
	Name  string
	From  time.Time
	To    time.Time
}

// PartitionMaintainer manages the monthly partitions of the append-only event
// ledgers. DDL is executed outside the unit of work: each statement is
// individually idempotent so a partial failure is repaired by the next run.
type PartitionMaintainer interface {
	// EnsurePartition creates the partition covering the given month if it
	// does not exist yet.
	EnsurePartition(ctx context.Context, table string, month time.Time) error

	// ListPartitionsBefore returns the partitions of the table whose upper
	// bound is at or before the cutoff, oldest first.
	ListPartitionsBefore(ctx context.Context, table string, cutoff time.Time) ([]Partition, error)

	// HasLiveAggregates reports whether the partition holds events of an
	// aggregate whose latest version is not terminal.
	HasLiveAggregates(ctx context.Context, partition Partition) (bool, error)

	// DropPartition detaches and drops the partition.
	DropPartition(ctx context.Context, partition Partition) error
}
