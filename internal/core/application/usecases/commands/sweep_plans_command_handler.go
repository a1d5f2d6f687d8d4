package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/picking"
)

// SweepPlansCommandHandler completes in-progress plans the inline path missed:
// a plan whose last route closed in a transaction that failed after the route
// update, or whose goods became ready through a later step report. The sweep
// re-applies the same completion rule the route handlers use.
type SweepPlansCommandHandler struct {
	uowFactory CompleteRouteUoWFactory
}

// NewSweepPlansCommandHandler creates a handler for the plan completion sweep.
func NewSweepPlansCommandHandler(uowFactory CompleteRouteUoWFactory) SweepPlansCommandHandler {
	return SweepPlansCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one sweep pass.
func (h SweepPlansCommandHandler) Handle(ctx context.Context, cmd SweepPlansCommand) error {
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

	planRepo := uow.PlanRepository()
	routeRepo := uow.RouteRepository()
	now := time.Now().UTC()

	plans, err := planRepo.GetAllInStatus(ctx, cmd.Tenant(), picking.PlanStatusInProgress)
	if err != nil {
		return err
	}

	for _, plan := range plans {
		routes, routesErr := routeRepo.GetByPlan(ctx, cmd.Tenant(), plan.ID())
		if routesErr != nil {
			return routesErr
		}

		open := false
		for _, route := range routes {
			if !route.Status().IsTerminal() {
				open = true
				break
			}
		}
		if open {
			continue
		}

		goods, goodsErr := planRepo.GetGoods(ctx, cmd.Tenant(), plan.ID())
		if goodsErr != nil {
			return goodsErr
		}

		ready := true
		for _, good := range goods {
			if !good.IsReadyToPack() {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}

		if err = plan.Complete(plan.Version(), now); err != nil {
			return err
		}
		if err = planRepo.Update(ctx, plan); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
