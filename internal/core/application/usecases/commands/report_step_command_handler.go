package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/ports"
)

// ReportStepCommandHandler records a picker's arrival at a stop: the route
// advances under its version guard, every unpicked item waiting at that node
// is marked picked, and goods readiness is recomputed inline. A sale whose
// good just became ready moves to picked.
type ReportStepCommandHandler struct {
	uowFactory ReportStepUoWFactory
}

// NewReportStepCommandHandler creates a handler for step reporting.
func NewReportStepCommandHandler(uowFactory ReportStepUoWFactory) ReportStepCommandHandler {
	return ReportStepCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the step report.
func (h ReportStepCommandHandler) Handle(ctx context.Context, cmd ReportStepCommand) error {
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
	invRepo := uow.InventoryRepository()
	saleRepo := uow.SaleRepository()
	now := time.Now().UTC()

	route, err := routeRepo.Get(ctx, cmd.Tenant(), cmd.RouteID())
	if err != nil {
		return err
	}

	if err = route.ReportStep(cmd.ExpectedVersion(), cmd.NodeID(), now); err != nil {
		return err
	}
	if err = routeRepo.Update(ctx, route); err != nil {
		return err
	}

	goods, err := planRepo.GetGoods(ctx, cmd.Tenant(), route.PlanID())
	if err != nil {
		return err
	}

	for _, good := range goods {
		touched := false
		for _, pickItem := range good.Items() {
			if pickItem.NodeID() != cmd.NodeID() || pickItem.IsPicked() {
				continue
			}
			if err = pickItem.MarkPicked(); err != nil {
				return err
			}
			touched = true

			unit, err := invRepo.GetItem(ctx, cmd.Tenant(), pickItem.ItemID())
			if err != nil {
				return err
			}
			if err = unit.MarkPicked(); err != nil {
				return err
			}
			if err = invRepo.UpdateItem(ctx, unit); err != nil {
				return err
			}
		}
		if !touched {
			continue
		}

		ready := good.RecomputeReadiness()
		if err = planRepo.UpdateGood(ctx, good); err != nil {
			return err
		}

		if ready {
			if err = h.markSalePicked(ctx, saleRepo, good, now); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

// markSalePicked moves the good's sale to picked once every unit is
// collected.
func (h ReportStepCommandHandler) markSalePicked(ctx context.Context,
	saleRepo ports.SaleRepository, good *picking.Good, now time.Time) error {

	aggregate, err := saleRepo.Get(ctx, good.Tenant(), good.SaleID())
	if err != nil {
		return err
	}
	if err = aggregate.MarkPicked(aggregate.Version(), now); err != nil {
		return err
	}
	return saleRepo.Update(ctx, aggregate)
}
