// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAssignableRoutesQueryIsNotConstructed = errors.New(
	"GetAssignableRoutesQuery must be created via NewGetAssignableRoutesQuery constructor",
)

// GetAssignableRoutesQuery lists the routes a picker can claim right now:
// pending, with no dependency or a completed one. Each row carries the version
// the picker must echo back when claiming.
type GetAssignableRoutesQuery struct {
	tenant kernel.TenantID

	guard guard.ConstructorGuard
}

// NewGetAssignableRoutesQuery creates a query for the claimable route listing.
func NewGetAssignableRoutesQuery(tenant kernel.TenantID) (GetAssignableRoutesQuery, error) {
	if err := tenant.Validate(); err != nil {
		return GetAssignableRoutesQuery{}, err
	}
	return GetAssignableRoutesQuery{tenant: tenant, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignableRoutesQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignableRoutesQueryIsNotConstructed)
}

// Tenant returns the tenant scope.
func (q GetAssignableRoutesQuery) Tenant() kernel.TenantID { return q.tenant }

// GetAssignableRoutesQueryResponse is one claimable route in the read model.
type GetAssignableRoutesQueryResponse struct {
	RouteID  kernel.UUID
	PlanID   kernel.UUID
	DependID *kernel.UUID
	Stops    int
	Distance float64
	Version  kernel.Version
}
