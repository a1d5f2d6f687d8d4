package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetExpiringLotsQueryIsNotConstructed = errors.New(
	"GetExpiringLotsQuery must be created via NewGetExpiringLotsQuery constructor",
)

// GetExpiringLotsQuery lists the available lots whose expiry date falls within
// the given horizon, soonest first, so operators can rotate stock before it
// spoils.
type GetExpiringLotsQuery struct {
	tenant     kernel.TenantID
	withinDays int

	guard guard.ConstructorGuard
}

// NewGetExpiringLotsQuery creates a query for lots expiring within the horizon.
func NewGetExpiringLotsQuery(tenant kernel.TenantID, withinDays int) (GetExpiringLotsQuery, error) {
	if err := tenant.Validate(); err != nil {
		return GetExpiringLotsQuery{}, err
	}
	if withinDays <= 0 {
		return GetExpiringLotsQuery{}, errs.NewValueIsOutOfRangeError("withinDays", withinDays, 1, 365)
	}
	return GetExpiringLotsQuery{tenant: tenant, withinDays: withinDays, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetExpiringLotsQuery) Validate() error {
	return q.guard.Validate(ErrGetExpiringLotsQueryIsNotConstructed)
}

// Tenant returns the tenant scope.
func (q GetExpiringLotsQuery) Tenant() kernel.TenantID { return q.tenant }

// WithinDays returns the expiry horizon in days.
func (q GetExpiringLotsQuery) WithinDays() int { return q.withinDays }

// GetExpiringLotsQueryResponse is one near-expiry lot in the read model.
type GetExpiringLotsQueryResponse struct {
	LotID     int32
	StockID   int32
	LotNumber string
	Quantity  int32
	Supplier  string
	Expiry    time.Time
	CostPrice decimal.Decimal
}
