package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// AbortPlanCommandHandler aborts a picking plan. The plan transition itself
// is version-guarded; afterwards the handler cancels the plan's active routes
// and cascades a best-effort cancel to every linked non-terminal sale.
// Individual cascade failures are logged and collected, not retried: the
// abort stands, and the operator resolves stragglers from the report.
type AbortPlanCommandHandler struct {
	uowFactory AbortPlanUoWFactory
	cancelSale CancelSaleCommandHandler
	logger     *slog.Logger
}

// NewAbortPlanCommandHandler creates a handler for plan abort.
func NewAbortPlanCommandHandler(uowFactory AbortPlanUoWFactory,
	cancelSale CancelSaleCommandHandler, logger *slog.Logger) AbortPlanCommandHandler {
	return AbortPlanCommandHandler{
		uowFactory: uowFactory,
		cancelSale: cancelSale,
		logger:     logger.With("component", "abort_plan"),
	}
}

// Handle processes the abort command. The returned error joins any cascade
// failures after the abort itself committed.
func (h AbortPlanCommandHandler) Handle(ctx context.Context, cmd AbortPlanCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var saleIDs []kernel.UUID
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		ids, err := h.abort(ctx, cmd)
		if err != nil {
			return err
		}
		saleIDs = ids
		return nil
	})
	if err != nil {
		return err
	}

	return h.cascade(ctx, cmd.Tenant(), saleIDs)
}

func (h AbortPlanCommandHandler) abort(ctx context.Context, cmd AbortPlanCommand) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	planRepo := uow.PlanRepository()
	routeRepo := uow.RouteRepository()
	now := time.Now().UTC()

	plan, err := planRepo.Get(ctx, cmd.Tenant(), cmd.PlanID())
	if err != nil {
		return nil, err
	}

	if err = plan.Abort(plan.Version(), now); err != nil {
		return nil, err
	}
	if err = planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	routes, err := routeRepo.GetByPlan(ctx, cmd.Tenant(), cmd.PlanID())
	if err != nil {
		return nil, err
	}
	for _, route := range routes {
		if route.Status().IsTerminal() {
			continue
		}
		if err = route.Cancel(route.Version(), now); err != nil {
			return nil, err
		}
		if err = routeRepo.Update(ctx, route); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return plan.SaleIDs(), nil
}

// cascade cancels each linked sale in its own transaction. A sale already in
// a terminal state is skipped silently; any other failure is logged and
// joined into the returned error.
func (h AbortPlanCommandHandler) cascade(ctx context.Context, tenant kernel.TenantID, saleIDs []kernel.UUID) error {
	var failures []error
	for _, saleID := range saleIDs {
		cancelCmd, err := NewCancelSaleCommand(tenant, saleID)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		err = h.cancelSale.Handle(ctx, cancelCmd)
		if errors.Is(err, errs.ErrTerminalState) {
			continue
		}
		if err != nil {
			h.logger.WarnContext(ctx, "cascade cancel failed",
				"sale_id", saleID.String(),
				"error", err)
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}
