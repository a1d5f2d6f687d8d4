package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/inventory"

	"gorm.io/gorm"
)

// GetExpiringLotsQueryHandler reads the near-expiry lot listing with direct
// SQL.
type GetExpiringLotsQueryHandler struct {
	db *gorm.DB
}

// NewGetExpiringLotsQueryHandler creates a handler for near-expiry lookups.
func NewGetExpiringLotsQueryHandler(db *gorm.DB) GetExpiringLotsQueryHandler {
	return GetExpiringLotsQueryHandler{db: db}
}

// Handle executes the query. Lots without an expiry date never appear.
func (h GetExpiringLotsQueryHandler) Handle(
	ctx context.Context,
	query GetExpiringLotsQuery,
) ([]GetExpiringLotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	horizon := time.Now().UTC().AddDate(0, 0, query.WithinDays())
	lots := make([]GetExpiringLotsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			stock_id,
			lot_number,
			quantity,
			supplier,
			expiry,
			cost_price
		FROM lots
		WHERE tenant_id = ?
		  AND status = ?
		  AND expiry IS NOT NULL
		  AND expiry <= ?
		ORDER BY expiry, id
	`, query.Tenant(), inventory.LotStatusAvailable, horizon).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var lot GetExpiringLotsQueryResponse

		err = rows.Scan(
			&lot.LotID,
			&lot.StockID,
			&lot.LotNumber,
			&lot.Quantity,
			&lot.Supplier,
			&lot.Expiry,
			&lot.CostPrice,
		)
		if err != nil {
			return nil, err
		}

		lots = append(lots, lot)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lots, nil
}
