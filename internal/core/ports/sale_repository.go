package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
)

// SaleRepository defines the persistence contract for sale aggregates and
// their event ledger. Add and Update persist the aggregate row together with
// its pending events in the ambient transaction; Update runs the version-
// conditional UPDATE and fails with errs.ErrVersionConflict when zero rows
// are affected.
type SaleRepository interface {
	// Add persists a new sale and its creation event. The order ref is
	// unique per tenant; a duplicate fails the insert.
	Add(ctx context.Context, aggregate *sale.Sale) error

	// Update persists a transitioned sale and appends its pending events,
	// guarded by the version column.
	Update(ctx context.Context, aggregate *sale.Sale) error

	// Get retrieves a sale by id within a tenant.
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*sale.Sale, error)

	// GetAllInStatus retrieves every sale of a tenant in the given status.
	GetAllInStatus(ctx context.Context, tenant kernel.TenantID, status sale.Status) ([]*sale.Sale, error)

	// GetEvents retrieves the full event stream of a sale ordered by version.
	GetEvents(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) ([]sale.Event, error)
}
