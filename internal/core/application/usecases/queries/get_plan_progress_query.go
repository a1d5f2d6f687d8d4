package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPlanProgressQueryIsNotConstructed = errors.New(
	"GetPlanProgressQuery must be created via NewGetPlanProgressQuery constructor",
)

// GetPlanProgressQuery retrieves a plan's status together with the pick
// progress of each of its goods.
type GetPlanProgressQuery struct {
	tenant kernel.TenantID
	planID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPlanProgressQuery creates a query for one plan's progress.
func NewGetPlanProgressQuery(tenant kernel.TenantID, planID kernel.UUID) (GetPlanProgressQuery, error) {
	if err := tenant.Validate(); err != nil {
		return GetPlanProgressQuery{}, err
	}
	if err := planID.Validate(); err != nil {
		return GetPlanProgressQuery{}, err
	}
	return GetPlanProgressQuery{tenant: tenant, planID: planID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPlanProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetPlanProgressQueryIsNotConstructed)
}

// Tenant returns the tenant scope.
func (q GetPlanProgressQuery) Tenant() kernel.TenantID { return q.tenant }

// PlanID returns the plan whose progress is requested.
func (q GetPlanProgressQuery) PlanID() kernel.UUID { return q.planID }

// GoodProgress is the pick progress of one sale inside the plan.
type GoodProgress struct {
	SaleID      kernel.UUID
	ReadyToPack bool
	ItemsTotal  int
	ItemsPicked int
}

// GetPlanProgressQueryResponse is the plan progress read model.
type GetPlanProgressQueryResponse struct {
	PlanID  kernel.UUID
	Status  picking.PlanStatus
	Version kernel.Version
	Goods   []GoodProgress
}
