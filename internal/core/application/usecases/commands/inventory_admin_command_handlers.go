package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
)

// InventoryAdminCommandHandler executes the administrative inventory edits:
// catalog stocks, shelves, and shelf publication.
type InventoryAdminCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewInventoryAdminCommandHandler creates a handler for inventory edits.
func NewInventoryAdminCommandHandler(uowFactory InventoryUoWFactory) InventoryAdminCommandHandler {
	return InventoryAdminCommandHandler{
		uowFactory: uowFactory,
	}
}

// HandleCreateStock persists a new catalog stock.
func (h InventoryAdminCommandHandler) HandleCreateStock(ctx context.Context, cmd CreateStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	stock, err := inventory.NewStock(0, cmd.Tenant(), cmd.Name(), cmd.Unit())
	if err != nil {
		return err
	}

	return h.inTx(ctx, func(ctx context.Context, uow InventoryUoW) error {
		return uow.InventoryRepository().AddStock(ctx, stock)
	})
}

// HandleCreateShelf persists a new shelf.
func (h InventoryAdminCommandHandler) HandleCreateShelf(ctx context.Context, cmd CreateShelfCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	shelf, err := inventory.NewShelf(0, cmd.Tenant(), cmd.ZoneID(), cmd.NodeID(), cmd.Name())
	if err != nil {
		return err
	}

	return h.inTx(ctx, func(ctx context.Context, uow InventoryUoW) error {
		return uow.InventoryRepository().AddShelf(ctx, shelf)
	})
}

// HandleSetShelfPublication shows or hides a shelf for allocation. Hiding
// never touches quantity already placed there.
func (h InventoryAdminCommandHandler) HandleSetShelfPublication(ctx context.Context,
	cmd SetShelfPublicationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.inTx(ctx, func(ctx context.Context, uow InventoryUoW) error {
		repo := uow.InventoryRepository()

		shelf, err := repo.GetShelf(ctx, cmd.Tenant(), cmd.ShelfID())
		if err != nil {
			return err
		}
		if cmd.Published() {
			shelf.Publish()
		} else {
			shelf.Unpublish()
		}
		return repo.UpdateShelf(ctx, shelf)
	})
}

func (h InventoryAdminCommandHandler) inTx(ctx context.Context, op func(ctx context.Context, uow InventoryUoW) error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := op(ctx, uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
