package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetSaleHistoryQueryHandler reads one sale's event ledger with direct SQL.
type GetSaleHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetSaleHistoryQueryHandler creates a handler for sale history queries.
func NewGetSaleHistoryQueryHandler(db *gorm.DB) GetSaleHistoryQueryHandler {
	return GetSaleHistoryQueryHandler{db: db}
}

// Handle executes the query. An unknown sale yields errs.ErrObjectNotFound
// rather than an empty history: every sale has at least its creation event.
func (h GetSaleHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetSaleHistoryQuery,
) ([]GetSaleHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetSaleHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			version,
			status,
			created_at
		FROM sale_events
		WHERE tenant_id = ? AND sale_id = ?
		ORDER BY version
	`, query.Tenant(), query.SaleID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetSaleHistoryQueryResponse
		var version int64
		var status int

		if err = rows.Scan(&version, &status, &entry.CreatedAt); err != nil {
			return nil, err
		}

		v, verErr := kernel.NewVersion(version)
		if verErr != nil {
			return nil, verErr
		}
		entry.Version = v
		entry.Status = sale.Status(status)

		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, errs.NewObjectNotFoundError("sale", query.SaleID().String())
	}

	return history, nil
}
