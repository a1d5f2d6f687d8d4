package picking

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// PlanEvent is one row of the picking plan event ledger.
type PlanEvent struct {
	tenant    kernel.TenantID
	planID    kernel.UUID
	version   kernel.Version
	status    PlanStatus
	createdAt time.Time
}

// NewPlanEvent creates a ledger row for one accepted plan transition.
func NewPlanEvent(tenant kernel.TenantID, planID kernel.UUID, version kernel.Version,
	status PlanStatus, createdAt time.Time) (PlanEvent, error) {
	if err := tenant.Validate(); err != nil {
		return PlanEvent{}, err
	}
	if err := planID.Validate(); err != nil {
		return PlanEvent{}, err
	}
	if err := version.Validate(); err != nil {
		return PlanEvent{}, err
	}
	if err := status.Validate(); err != nil {
		return PlanEvent{}, err
	}
	if createdAt.IsZero() {
		return PlanEvent{}, errs.NewValueIsRequiredError("created at")
	}

	return PlanEvent{tenant: tenant, planID: planID, version: version, status: status, createdAt: createdAt}, nil
}

// Tenant returns the owning tenant.
func (e PlanEvent) Tenant() kernel.TenantID { return e.tenant }

// PlanID returns the plan this event belongs to.
func (e PlanEvent) PlanID() kernel.UUID { return e.planID }

// Version returns the aggregate version this event carries.
func (e PlanEvent) Version() kernel.Version { return e.version }

// Status returns the status the plan entered.
func (e PlanEvent) Status() PlanStatus { return e.status }

// CreatedAt returns when the transition was accepted.
func (e PlanEvent) CreatedAt() time.Time { return e.createdAt }

// RouteEvent is one row of the picking route event ledger. Step reports carry
// the visited node; status transitions carry zero.
type RouteEvent struct {
	tenant    kernel.TenantID
	routeID   kernel.UUID
	version   kernel.Version
	status    RouteStatus
	nodeID    int32
	createdAt time.Time
}

// NewRouteEvent creates a ledger row for one accepted route transition or
// step report.
func NewRouteEvent(tenant kernel.TenantID, routeID kernel.UUID, version kernel.Version,
	status RouteStatus, nodeID int32, createdAt time.Time) (RouteEvent, error) {
	if err := tenant.Validate(); err != nil {
		return RouteEvent{}, err
	}
	if err := routeID.Validate(); err != nil {
		return RouteEvent{}, err
	}
	if err := version.Validate(); err != nil {
		return RouteEvent{}, err
	}
	if err := status.Validate(); err != nil {
		return RouteEvent{}, err
	}
	if nodeID < 0 {
		return RouteEvent{}, errs.NewValueIsInvalidErrorWithCause("nodeId",
			fmt.Errorf("%d is negative", nodeID))
	}
	if createdAt.IsZero() {
		return RouteEvent{}, errs.NewValueIsRequiredError("created at")
	}

	return RouteEvent{tenant: tenant, routeID: routeID, version: version,
		status: status, nodeID: nodeID, createdAt: createdAt}, nil
}

// Tenant returns the owning tenant.
func (e RouteEvent) Tenant() kernel.TenantID { return e.tenant }

// RouteID returns the route this event belongs to.
func (e RouteEvent) RouteID() kernel.UUID { return e.routeID }

// Version returns the aggregate version this event carries.
func (e RouteEvent) Version() kernel.Version { return e.version }

// Status returns the status the route held after the event.
func (e RouteEvent) Status() RouteStatus { return e.status }

// NodeID returns the visited stop for step reports, zero otherwise.
func (e RouteEvent) NodeID() int32 { return e.nodeID }

// CreatedAt returns when the event was accepted.
func (e RouteEvent) CreatedAt() time.Time { return e.createdAt }
