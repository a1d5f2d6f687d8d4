package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/core/ports"
)

// ShipSaleCommandHandler ships a packed sale: transitions it under the
// version guard, marks its picked items shipped, and publishes the terminal
// event after commit.
type ShipSaleCommandHandler struct {
	uowFactory CancelSaleUoWFactory
	publisher  ports.SaleEventPublisher
	logger     *slog.Logger
}

// NewShipSaleCommandHandler creates a handler for shipping.
func NewShipSaleCommandHandler(uowFactory CancelSaleUoWFactory,
	publisher ports.SaleEventPublisher, logger *slog.Logger) ShipSaleCommandHandler {
	return ShipSaleCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "ship_sale"),
	}
}

// Handle processes the shipping command.
func (h ShipSaleCommandHandler) Handle(ctx context.Context, cmd ShipSaleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var terminal []sale.Event
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		events, err := h.ship(ctx, cmd)
		if err != nil {
			return err
		}
		terminal = events
		return nil
	})
	if err != nil {
		return err
	}

	for _, event := range terminal {
		if !event.Status().IsTerminal() {
			continue
		}
		if perr := h.publisher.Publish(ctx, event); perr != nil {
			h.logger.ErrorContext(ctx, "publishing terminal sale event failed",
				"sale_id", event.SaleID().String(),
				"version", event.Version().Int64(),
				"error", perr)
		}
	}
	return nil
}

func (h ShipSaleCommandHandler) ship(ctx context.Context, cmd ShipSaleCommand) ([]sale.Event, error) {
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

	if err = aggregate.Ship(aggregate.Version(), now); err != nil {
		return nil, err
	}

	if err = h.shipItems(ctx, invRepo, aggregate); err != nil {
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

// shipItems flips every picked unit of the sale's allocations to shipped.
func (h ShipSaleCommandHandler) shipItems(ctx context.Context, invRepo ports.InventoryRepository,
	aggregate *sale.Sale) error {

	draws, err := invRepo.GetNetAllocationsBySale(ctx, aggregate.Tenant(), aggregate.ID())
	if err != nil {
		return err
	}

	for _, draw := range draws {
		items, err := invRepo.GetItemsInStatus(ctx, aggregate.Tenant(), draw.LotID, draw.ShelfID,
			inventory.ItemStatusPicked, draw.Quantity)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err = item.MarkShipped(); err != nil {
				return err
			}
			if err = invRepo.UpdateItem(ctx, item); err != nil {
				return err
			}
		}
	}
	return nil
}
