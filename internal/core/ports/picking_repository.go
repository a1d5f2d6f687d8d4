package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
)

// PlanRepository defines the persistence contract for picking plan aggregates,
// their goods, and their event ledger.
type PlanRepository interface {
	// Add persists a new plan, its goods and pick items, and its creation event.
	Add(ctx context.Context, aggregate *picking.Plan, goods []*picking.Good) error

	// Update persists a transitioned plan, guarded by the version column.
	Update(ctx context.Context, aggregate *picking.Plan) error

	// Get retrieves a plan by id within a tenant.
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*picking.Plan, error)

	// GetGoods retrieves the goods of a plan with their pick items.
	GetGoods(ctx context.Context, tenant kernel.TenantID, planID kernel.UUID) ([]*picking.Good, error)

	// UpdateGood persists a good's readiness flag and the picked state of its
	// items.
	UpdateGood(ctx context.Context, good *picking.Good) error

	// IsSalePlanned reports whether the sale is linked to a good of any
	// non-aborted plan.
	IsSalePlanned(ctx context.Context, tenant kernel.TenantID, saleID kernel.UUID) (bool, error)

	// GetAllInStatus retrieves every plan of a tenant in the given status.
	GetAllInStatus(ctx context.Context, tenant kernel.TenantID, status picking.PlanStatus) ([]*picking.Plan, error)
}

// RouteRepository defines the persistence contract for picking route
// aggregates and their event ledger.
type RouteRepository interface {
	// Add persists a new route and its creation event.
	Add(ctx context.Context, aggregate *picking.Route) error

	// Update persists a transitioned route, guarded by the version column.
	Update(ctx context.Context, aggregate *picking.Route) error

	// Get retrieves a route by id within a tenant.
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*picking.Route, error)

	// GetAssignable retrieves every pending route of a tenant whose
	// dependency, if any, is completed.
	GetAssignable(ctx context.Context, tenant kernel.TenantID) ([]*picking.Route, error)

	// GetByPlan retrieves every route of a plan.
	GetByPlan(ctx context.Context, tenant kernel.TenantID, planID kernel.UUID) ([]*picking.Route, error)

	// GetActiveByPath retrieves every pending or assigned route whose stored
	// sequence crosses the given path. Used when a path is blocked to mark
	// dependents stale in the same transaction.
	GetActiveByPath(ctx context.Context, tenant kernel.TenantID, pathID int32) ([]*picking.Route, error)
}
