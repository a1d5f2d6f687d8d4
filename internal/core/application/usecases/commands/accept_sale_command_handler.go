package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AcceptSaleCommandHandler handles the business logic for sale acceptance.
// It plans a FIFO allocation over the available lots, executes the planned
// withdrawals, reserves the physical items, writes the movement ledger rows,
// and creates the sale in the allocated state, all in one transaction.
//
// Allocation is all-or-nothing: a shortfall on any line rolls everything back
// and surfaces inventory.ErrInsufficientInventory. Shelf CAS races against a
// concurrent acceptance are retried with bounded backoff.
type AcceptSaleCommandHandler struct {
	uowFactory AcceptSaleUoWFactory
	allocator  *services.Allocator
}

// NewAcceptSaleCommandHandler creates a handler for sale acceptance.
func NewAcceptSaleCommandHandler(uowFactory AcceptSaleUoWFactory) AcceptSaleCommandHandler {
	return AcceptSaleCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewAllocator(),
	}
}

// Handle processes the acceptance command and returns the new sale's id.
func (h AcceptSaleCommandHandler) Handle(ctx context.Context, cmd AcceptSaleCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var saleID kernel.UUID
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		id, err := h.accept(ctx, cmd)
		if err != nil {
			return err
		}
		saleID = id
		return nil
	})
	return saleID, err
}

func (h AcceptSaleCommandHandler) accept(ctx context.Context, cmd AcceptSaleCommand) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invRepo := uow.InventoryRepository()
	saleRepo := uow.SaleRepository()
	now := time.Now().UTC()

	stockIDs := make([]int32, 0, len(cmd.Lines()))
	for _, l := range cmd.Lines() {
		stockIDs = append(stockIDs, l.StockID)
	}

	available, err := invRepo.GetAvailability(ctx, cmd.Tenant(), stockIDs)
	if err != nil {
		return kernel.UUID{}, err
	}

	allocation, err := h.allocator.Plan(cmd.Lines(), available)
	if err != nil {
		return kernel.UUID{}, err
	}

	newSale, err := sale.NewSale(cmd.Tenant(), cmd.OrderRef(), cmd.Lines(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.executeDraws(ctx, invRepo, cmd.Tenant(), newSale.ID(), allocation, available, now); err != nil {
		return kernel.UUID{}, err
	}

	if err = newSale.Allocate(kernel.InitialVersion, allocation.CostPrice, now); err != nil {
		return kernel.UUID{}, err
	}

	if err = saleRepo.Add(ctx, newSale); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newSale.ID(), nil
}

// executeDraws applies the planned withdrawals: shelf CAS decrement, lot
// draw, item reservation, and one ledger row per draw.
func (h AcceptSaleCommandHandler) executeDraws(ctx context.Context, invRepo ports.InventoryRepository,
	tenant kernel.TenantID, saleID kernel.UUID, allocation services.Allocation,
	available map[int32][]inventory.Availability, now time.Time) error {

	lots := make(map[int32]*inventory.Lot)
	for _, slices := range available {
		for _, s := range slices {
			lots[s.Lot.ID()] = s.Lot
		}
	}

	var entries []*inventory.StockEntry
	for _, draw := range allocation.Draws {
		if err := invRepo.DecrementShelf(ctx, tenant, draw.ShelfID, draw.StockID, draw.Quantity); err != nil {
			return err
		}

		lot := lots[draw.LotID]
		if err := lot.Draw(draw.Quantity); err != nil {
			return err
		}
		if err := invRepo.UpdateLot(ctx, lot); err != nil {
			return err
		}

		items, err := invRepo.GetItemsInStatus(ctx, tenant, draw.LotID, draw.ShelfID,
			inventory.ItemStatusInStock, draw.Quantity)
		if err != nil {
			return err
		}
		if int32(len(items)) != draw.Quantity {
			// Item rows drifted from the shelf counter; reserving fewer units
			// than the decrement would lose stock silently.
			return fmt.Errorf("lot %d on shelf %d holds %d loose units, need %d: %w",
				draw.LotID, draw.ShelfID, len(items), draw.Quantity,
				inventory.ErrInsufficientInventory)
		}
		for _, item := range items {
			if err = item.Reserve(); err != nil {
				return err
			}
			if err = invRepo.UpdateItem(ctx, item); err != nil {
				return err
			}
		}

		entry, err := inventory.NewStockEntry(tenant, draw.StockID, draw.LotID, draw.ShelfID,
			inventory.MovementKindAllocation, draw.Quantity, &saleID, now)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	return invRepo.AddEntries(ctx, entries)
}
