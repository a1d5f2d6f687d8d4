package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ComputeRoutesCommandHandler turns a scheduled plan's required stops into
// persisted picking routes. The stops are the shelf nodes of the plan's pick
// items; the planner splits mutually unreachable clusters into dependent
// routes. Recompute is idempotent: routes still pending from an earlier
// computation are cancelled first, claimed ones stay.
type ComputeRoutesCommandHandler struct {
	uowFactory ComputeRoutesUoWFactory
	planner    *services.RoutePlanner
}

// NewComputeRoutesCommandHandler creates a handler for route computation.
func NewComputeRoutesCommandHandler(uowFactory ComputeRoutesUoWFactory,
	planner *services.RoutePlanner) ComputeRoutesCommandHandler {
	return ComputeRoutesCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
	}
}

// Handle processes the computation command and returns the new route ids.
func (h ComputeRoutesCommandHandler) Handle(ctx context.Context, cmd ComputeRoutesCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var routeIDs []kernel.UUID
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		ids, err := h.compute(ctx, cmd)
		if err != nil {
			return err
		}
		routeIDs = ids
		return nil
	})
	return routeIDs, err
}

func (h ComputeRoutesCommandHandler) compute(ctx context.Context, cmd ComputeRoutesCommand) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	planRepo := uow.PlanRepository()
	routeRepo := uow.RouteRepository()
	topoRepo := uow.TopologyRepository()
	now := time.Now().UTC()

	plan, err := planRepo.Get(ctx, cmd.Tenant(), cmd.PlanID())
	if err != nil {
		return nil, err
	}
	if plan.Status() != picking.PlanStatusScheduled && plan.Status() != picking.PlanStatusInProgress {
		return nil, fmt.Errorf("plan is %s: %w", plan.Status(), errs.ErrInvalidState)
	}

	goods, err := planRepo.GetGoods(ctx, cmd.Tenant(), cmd.PlanID())
	if err != nil {
		return nil, err
	}

	var stops []int32
	for _, good := range goods {
		for _, item := range good.Items() {
			if item.IsPicked() {
				continue
			}
			stops = append(stops, item.NodeID())
		}
	}

	graph, err := topoRepo.GetGraph(ctx, cmd.Tenant())
	if err != nil {
		return nil, err
	}

	routes, err := h.planner.PlanRoutes(graph, cmd.Tenant(), cmd.PlanID(),
		cmd.StartNode(), stops, plan.ZoneIDs(), now)
	if err != nil {
		return nil, err
	}

	if err = h.cancelPendingLeftovers(ctx, routeRepo, cmd, now); err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(routes))
	for _, route := range routes {
		if err = routeRepo.Add(ctx, route); err != nil {
			return nil, err
		}
		ids = append(ids, route.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

// cancelPendingLeftovers retires pending routes of an earlier computation so
// assignable listings show only the fresh set. Stale routes are already
// terminal and stay as they are.
func (h ComputeRoutesCommandHandler) cancelPendingLeftovers(ctx context.Context,
	routeRepo ports.RouteRepository, cmd ComputeRoutesCommand, now time.Time) error {

	existing, err := routeRepo.GetByPlan(ctx, cmd.Tenant(), cmd.PlanID())
	if err != nil {
		return err
	}
	for _, route := range existing {
		if route.Status() != picking.RouteStatusPending {
			continue
		}
		if err = route.Cancel(route.Version(), now); err != nil {
			return err
		}
		if err = routeRepo.Update(ctx, route); err != nil {
			return err
		}
	}
	return nil
}
