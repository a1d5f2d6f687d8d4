package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CompleteRouteCommandHandler closes an assigned route. Every stop must be
// reported and the dependency route, if any, must already be completed. When
// the last route of the plan closes and every good is ready, the plan
// completes too; otherwise the sweep job picks it up later.
type CompleteRouteCommandHandler struct {
	uowFactory CompleteRouteUoWFactory
}

// NewCompleteRouteCommandHandler creates a handler for route completion.
func NewCompleteRouteCommandHandler(uowFactory CompleteRouteUoWFactory) CompleteRouteCommandHandler {
	return CompleteRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command.
func (h CompleteRouteCommandHandler) Handle(ctx context.Context, cmd CompleteRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	planRepo := uow.PlanRepository()
	now := time.Now().UTC()

	route, err := routeRepo.Get(ctx, cmd.Tenant(), cmd.RouteID())
	if err != nil {
		return err
	}

	if route.DependID() != nil {
		depend, derr := routeRepo.Get(ctx, cmd.Tenant(), *route.DependID())
		if derr != nil {
			return derr
		}
		if depend.Status() != picking.RouteStatusCompleted {
			return fmt.Errorf("depends on route %s which is %s: %w",
				depend.ID(), depend.Status(), errs.ErrInvalidState)
		}
	}

	if err = route.Complete(cmd.ExpectedVersion(), now); err != nil {
		return err
	}
	if err = routeRepo.Update(ctx, route); err != nil {
		return err
	}

	if err = h.tryCompletePlan(ctx, planRepo, routeRepo, route, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// tryCompletePlan completes the plan inline when every route is finished and
// every good is ready to pack.
func (h CompleteRouteCommandHandler) tryCompletePlan(ctx context.Context,
	planRepo ports.PlanRepository, routeRepo ports.RouteRepository,
	route *picking.Route, now time.Time) error {

	plan, err := planRepo.Get(ctx, route.Tenant(), route.PlanID())
	if err != nil {
		return err
	}
	if plan.Status() != picking.PlanStatusInProgress {
		return nil
	}

	routes, err := routeRepo.GetByPlan(ctx, route.Tenant(), route.PlanID())
	if err != nil {
		return err
	}
	for _, r := range routes {
		if !r.Status().IsTerminal() {
			return nil
		}
	}

	goods, err := planRepo.GetGoods(ctx, route.Tenant(), route.PlanID())
	if err != nil {
		return err
	}
	for _, good := range goods {
		if !good.IsReadyToPack() {
			return nil
		}
	}

	if err = plan.Complete(plan.Version(), now); err != nil {
		return err
	}
	return planRepo.Update(ctx, plan)
}
