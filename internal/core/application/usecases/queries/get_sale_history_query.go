package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/pkg/guard"
)

var ErrGetSaleHistoryQueryIsNotConstructed = errors.New(
	"GetSaleHistoryQuery must be created via NewGetSaleHistoryQuery constructor",
)

// GetSaleHistoryQuery retrieves the full transition history of one sale from
// its event ledger, gapless and ordered by version.
type GetSaleHistoryQuery struct {
	tenant kernel.TenantID
	saleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSaleHistoryQuery creates a query for one sale's transition history.
func NewGetSaleHistoryQuery(tenant kernel.TenantID, saleID kernel.UUID) (GetSaleHistoryQuery, error) {
	if err := tenant.Validate(); err != nil {
		return GetSaleHistoryQuery{}, err
	}
	if err := saleID.Validate(); err != nil {
		return GetSaleHistoryQuery{}, err
	}
	return GetSaleHistoryQuery{tenant: tenant, saleID: saleID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSaleHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetSaleHistoryQueryIsNotConstructed)
}

// Tenant returns the tenant scope.
func (q GetSaleHistoryQuery) Tenant() kernel.TenantID { return q.tenant }

// SaleID returns the sale whose history is requested.
func (q GetSaleHistoryQuery) SaleID() kernel.UUID { return q.saleID }

// GetSaleHistoryQueryResponse is one accepted transition in the read model.
type GetSaleHistoryQueryResponse struct {
	Version   kernel.Version
	Status    sale.Status
	CreatedAt time.Time
}
