package postgres

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ledgerAggregate links a partitioned event ledger to its aggregate table so
// the droppability probe can check for non-terminal aggregates.
type ledgerAggregate struct {
	table    string
	idColumn string
	terminal []int
}

var ledgerAggregates = map[string]ledgerAggregate{
	"sale_events": {
		table:    "sales",
		idColumn: "sale_id",
		terminal: []int{int(sale.StatusShipped), int(sale.StatusCancelled)},
	},
	"picking_plan_events": {
		table:    "picking_plans",
		idColumn: "plan_id",
		terminal: []int{int(picking.PlanStatusCompleted), int(picking.PlanStatusAborted)},
	},
	"picking_route_events": {
		table:    "picking_routes",
		idColumn: "route_id",
		terminal: []int{
			int(picking.RouteStatusCompleted),
			int(picking.RouteStatusStale),
			int(picking.RouteStatusCancelled),
		},
	},
}

// GormPartitionMaintainer manages the monthly range partitions of the event
// ledgers. DDL statements run on the bare connection, never inside a unit of
// work, and each is individually idempotent.
type GormPartitionMaintainer struct {
	db *gorm.DB
}

// NewGormPartitionMaintainer creates a maintainer over the given connection.
func NewGormPartitionMaintainer(db *gorm.DB) *GormPartitionMaintainer {
	return &GormPartitionMaintainer{db: db}
}

// EnsurePartition creates the partition covering the given month if it does
// not exist yet.
func (m *GormPartitionMaintainer) EnsurePartition(ctx context.Context, table string, month time.Time) error {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s PARTITION OF %s FOR VALUES FROM ('%s') TO ('%s')",
		pq.QuoteIdentifier(partitionName(table, from)),
		pq.QuoteIdentifier(table),
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)

	return m.db.WithContext(ctx).Exec(ddl).Error
}

// ListPartitionsBefore returns the partitions of the table whose upper bound
// is at or before the cutoff, oldest first. The month is recovered from the
// partition name.
func (m *GormPartitionMaintainer) ListPartitionsBefore(ctx context.Context, table string,
	cutoff time.Time) ([]ports.Partition, error) {
	rows, err := m.db.WithContext(ctx).Raw(`
		SELECT c.relname
		FROM pg_inherits i
		JOIN pg_class c ON c.oid = i.inhrelid
		JOIN pg_class p ON p.oid = i.inhparent
		WHERE p.relname = ?
		ORDER BY c.relname
	`, table).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partitions := make([]ports.Partition, 0)

	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, err
		}

		from, parseErr := partitionMonth(table, name)
		if parseErr != nil {
			continue
		}

		to := from.AddDate(0, 1, 0)
		if to.After(cutoff) {
			continue
		}

		partitions = append(partitions, ports.Partition{
			Table: table,
			Name:  name,
			From:  from,
			To:    to,
		})
	}

	return partitions, rows.Err()
}

// HasLiveAggregates reports whether the partition holds events of an aggregate
// whose latest state is not terminal.
func (m *GormPartitionMaintainer) HasLiveAggregates(ctx context.Context, partition ports.Partition) (bool, error) {
	aggregate, ok := ledgerAggregates[partition.Table]
	if !ok {
		return false, fmt.Errorf("%s is not a partitioned event ledger", partition.Table)
	}

	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1
			FROM %s e
			JOIN %s a ON a.id = e.%s
			WHERE a.status NOT IN ?
		)`,
		pq.QuoteIdentifier(partition.Name),
		pq.QuoteIdentifier(aggregate.table),
		aggregate.idColumn,
	)

	var live bool
	err := m.db.WithContext(ctx).Raw(query, aggregate.terminal).Scan(&live).Error
	return live, err
}

// DropPartition detaches and drops the partition.
func (m *GormPartitionMaintainer) DropPartition(ctx context.Context, partition ports.Partition) error {
	detach := fmt.Sprintf("ALTER TABLE %s DETACH PARTITION %s",
		pq.QuoteIdentifier(partition.Table), pq.QuoteIdentifier(partition.Name))
	if err := m.db.WithContext(ctx).Exec(detach).Error; err != nil {
		return err
	}

	drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", pq.QuoteIdentifier(partition.Name))
	return m.db.WithContext(ctx).Exec(drop).Error
}

func partitionName(table string, month time.Time) string {
	return fmt.Sprintf("%s_y%dm%02d", table, month.Year(), int(month.Month()))
}

func partitionMonth(table, name string) (time.Time, error) {
	var year, month int
	if _, err := fmt.Sscanf(name, table+"_y%dm%d", &year, &month); err != nil {
		return time.Time{}, err
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%s is not a monthly partition of %s", name, table)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}
