package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ClaimRouteCommandHandler assigns a pending route to exactly one picker.
// The claim carries the version the picker read; when two pickers race, the
// second write fails the version guard and the conflict surfaces to the
// client, which refreshes its listing. Claim conflicts are deliberately NOT
// retried here. The first claim of a plan also moves the plan to
// in-progress.
type ClaimRouteCommandHandler struct {
	uowFactory ClaimRouteUoWFactory
}

// NewClaimRouteCommandHandler creates a handler for route claiming.
func NewClaimRouteCommandHandler(uowFactory ClaimRouteUoWFactory) ClaimRouteCommandHandler {
	return ClaimRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claim command.
func (h ClaimRouteCommandHandler) Handle(ctx context.Context, cmd ClaimRouteCommand) error {
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

	if err = h.checkDependency(ctx, routeRepo, route); err != nil {
		return err
	}

	if err = route.Claim(cmd.ExpectedVersion(), cmd.Assignee(), now); err != nil {
		return err
	}
	if err = routeRepo.Update(ctx, route); err != nil {
		return err
	}

	plan, err := planRepo.Get(ctx, cmd.Tenant(), route.PlanID())
	if err != nil {
		return err
	}
	if plan.Status() == picking.PlanStatusScheduled {
		if err = plan.Start(plan.Version(), now); err != nil {
			return err
		}
		if err = planRepo.Update(ctx, plan); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// checkDependency refuses a claim while the route's predecessor is still
// open.
func (h ClaimRouteCommandHandler) checkDependency(ctx context.Context,
	routeRepo ports.RouteRepository, route *picking.Route) error {
	if route.DependID() == nil {
		return nil
	}

	depend, err := routeRepo.Get(ctx, route.Tenant(), *route.DependID())
	if err != nil {
		return err
	}
	if depend.Status() != picking.RouteStatusCompleted {
		return fmt.Errorf("depends on route %s which is %s: %w",
			depend.ID(), depend.Status(), errs.ErrInvalidState)
	}
	return nil
}
