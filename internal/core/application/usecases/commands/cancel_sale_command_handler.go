package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/core/ports"
)

// CancelSaleCommandHandler handles sale cancellation: transition the sale to
// cancelled under the version guard, release its outstanding reservations
// back to their shelves and lots, and write the release ledger rows, all in
// one transaction. The terminal event is published after commit,
// at-least-once.
type CancelSaleCommandHandler struct {
	uowFactory CancelSaleUoWFactory
	publisher  ports.SaleEventPublisher
	logger     *slog.Logger
}

// NewCancelSaleCommandHandler creates a handler for sale cancellation.
func NewCancelSaleCommandHandler(uowFactory CancelSaleUoWFactory,
	publisher ports.SaleEventPublisher, logger *slog.Logger) CancelSaleCommandHandler {
	return CancelSaleCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "cancel_sale"),
	}
}

// Handle processes the cancellation command. Version conflicts against a
// concurrent transition are retried with fresh state, bounded.
func (h CancelSaleCommandHandler) Handle(ctx context.Context, cmd CancelSaleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var terminal []sale.Event
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		events, err := h.cancel(ctx, cmd)
		if err != nil {
			return err
		}
		terminal = events
		return nil
	})
	if err != nil {
		return err
	}

	h.publish(ctx, terminal)
	return nil
}

func (h CancelSaleCommandHandler) cancel(ctx context.Context, cmd CancelSaleCommand) ([]sale.Event, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	saleRepo := uow.SaleRepository()
	invRepo := uow.InventoryRepository()
	now := time.Now().UTC()

	aggregate, err := saleRepo.Get(ctx, cmd.Tenant(), cmd.SaleID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(aggregate.Version(), now); err != nil {
		return nil, err
	}

	if err = h.release(ctx, invRepo, aggregate, now); err != nil {
		return nil, err
	}

	events := aggregate.PendingEvents()
	if err = saleRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return events, nil
}

// release reverses the sale's outstanding allocations: restore lots, put
// reserved items back in stock, re-increment shelves, append release rows.
// Items already picked stay picked; their quantity is not restored.
func (h CancelSaleCommandHandler) release(ctx context.Context, invRepo ports.InventoryRepository,
	aggregate *sale.Sale, now time.Time) error {

	draws, err := invRepo.GetNetAllocationsBySale(ctx, aggregate.Tenant(), aggregate.ID())
	if err != nil {
		return err
	}

	var entries []*inventory.StockEntry
	for _, draw := range draws {
		items, err := invRepo.GetItemsInStatus(ctx, aggregate.Tenant(), draw.LotID, draw.ShelfID,
			inventory.ItemStatusReserved, draw.Quantity)
		if err != nil {
			return err
		}

		released := int32(0)
		for _, item := range items {
			if err = item.Release(); err != nil {
				return err
			}
			if err = invRepo.UpdateItem(ctx, item); err != nil {
				return err
			}
			released++
		}
		if released == 0 {
			continue
		}

		lot, err := invRepo.GetLot(ctx, aggregate.Tenant(), draw.LotID)
		if err != nil {
			return err
		}
		if err = lot.Restore(released); err != nil {
			return err
		}
		if err = invRepo.UpdateLot(ctx, lot); err != nil {
			return err
		}

		if err = invRepo.IncrementShelf(ctx, aggregate.Tenant(), draw.ShelfID, draw.StockID, released); err != nil {
			return err
		}

		entry, err := inventory.NewStockEntry(aggregate.Tenant(), draw.StockID, draw.LotID, draw.ShelfID,
			inventory.MovementKindRelease, released, ptrUUID(aggregate.ID()), now)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil
	}
	return invRepo.AddEntries(ctx, entries)
}

func (h CancelSaleCommandHandler) publish(ctx context.Context, events []sale.Event) {
	for _, event := range events {
		if !event.Status().IsTerminal() {
			continue
		}
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.ErrorContext(ctx, "publishing terminal sale event failed",
				"sale_id", event.SaleID().String(),
				"version", event.Version().Int64(),
				"error", err)
		}
	}
}
