package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SchedulePlanCommandHandler groups allocated sales into one picking plan.
// Preconditions: every sale is in the allocated state and not yet linked to a
// non-aborted plan. The plan is created as a draft with its goods and pick
// items, scheduled in the same transaction, and every sale moves to
// picking-assigned under its own version guard.
type SchedulePlanCommandHandler struct {
	uowFactory SchedulePlanUoWFactory
}

// NewSchedulePlanCommandHandler creates a handler for plan scheduling.
func NewSchedulePlanCommandHandler(uowFactory SchedulePlanUoWFactory) SchedulePlanCommandHandler {
	return SchedulePlanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the scheduling command and returns the new plan's id.
func (h SchedulePlanCommandHandler) Handle(ctx context.Context, cmd SchedulePlanCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var planID kernel.UUID
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		id, err := h.schedule(ctx, cmd)
		if err != nil {
			return err
		}
		planID = id
		return nil
	})
	return planID, err
}

func (h SchedulePlanCommandHandler) schedule(ctx context.Context, cmd SchedulePlanCommand) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	saleRepo := uow.SaleRepository()
	planRepo := uow.PlanRepository()
	invRepo := uow.InventoryRepository()
	now := time.Now().UTC()

	sales := make([]*sale.Sale, 0, len(cmd.SaleIDs()))
	for _, saleID := range cmd.SaleIDs() {
		aggregate, err := saleRepo.Get(ctx, cmd.Tenant(), saleID)
		if err != nil {
			return kernel.UUID{}, err
		}
		if aggregate.Status() != sale.StatusAllocated {
			return kernel.UUID{}, fmt.Errorf("sale %s is %s, not allocated: %w",
				saleID, aggregate.Status(), errs.ErrInvalidState)
		}

		planned, err := planRepo.IsSalePlanned(ctx, cmd.Tenant(), saleID)
		if err != nil {
			return kernel.UUID{}, err
		}
		if planned {
			return kernel.UUID{}, fmt.Errorf("sale %s: %w", saleID, picking.ErrAlreadyPlanned)
		}

		sales = append(sales, aggregate)
	}

	plan, err := picking.NewPlan(cmd.Tenant(), cmd.SaleIDs(), cmd.ZoneIDs(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	goods, err := h.buildGoods(ctx, invRepo, plan, sales)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = plan.Schedule(kernel.InitialVersion, now); err != nil {
		return kernel.UUID{}, err
	}

	if err = planRepo.Add(ctx, plan, goods); err != nil {
		return kernel.UUID{}, err
	}

	for _, aggregate := range sales {
		if err = aggregate.AssignPicking(aggregate.Version(), now); err != nil {
			return kernel.UUID{}, err
		}
		if err = saleRepo.Update(ctx, aggregate); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return plan.ID(), nil
}

// buildGoods turns each sale's outstanding reservations into a good with one
// pick item per reserved unit, anchored to the shelf node of its draw.
func (h SchedulePlanCommandHandler) buildGoods(ctx context.Context, invRepo ports.InventoryRepository,
	plan *picking.Plan, sales []*sale.Sale) ([]*picking.Good, error) {

	goods := make([]*picking.Good, 0, len(sales))
	for _, aggregate := range sales {
		draws, err := invRepo.GetNetAllocationsBySale(ctx, aggregate.Tenant(), aggregate.ID())
		if err != nil {
			return nil, err
		}

		var items []*picking.PickItem
		for _, draw := range draws {
			reserved, err := invRepo.GetItemsInStatus(ctx, aggregate.Tenant(), draw.LotID, draw.ShelfID,
				inventory.ItemStatusReserved, draw.Quantity)
			if err != nil {
				return nil, err
			}
			for _, unit := range reserved {
				item, err := picking.NewPickItem(aggregate.Tenant(), unit.ID(), draw.NodeID)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
		}

		good, err := picking.NewGood(aggregate.Tenant(), plan.ID(), aggregate.ID(), items)
		if err != nil {
			return nil, err
		}
		goods = append(goods, good)
	}
	return goods, nil
}
