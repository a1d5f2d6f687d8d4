package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"
)

// ReceiveLotCommandHandler executes a goods receipt: creates the lot, one
// item per barcode with the lot's cost price snapshotted, increments the
// shelf placement, and appends the receipt ledger row, all in one
// transaction.
type ReceiveLotCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewReceiveLotCommandHandler creates a handler for goods receipt.
func NewReceiveLotCommandHandler(uowFactory InventoryUoWFactory) ReceiveLotCommandHandler {
	return ReceiveLotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the receipt command.
func (h ReceiveLotCommandHandler) Handle(ctx context.Context, cmd ReceiveLotCommand) error {
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

	invRepo := uow.InventoryRepository()
	now := time.Now().UTC()

	lot, err := inventory.NewLot(0, cmd.Tenant(), cmd.StockID(), cmd.LotNumber(),
		cmd.Quantity(), cmd.Supplier(), now, cmd.Expiry(), cmd.CostPrice())
	if err != nil {
		return err
	}
	lotID, err := invRepo.AddLot(ctx, lot)
	if err != nil {
		return err
	}

	items := make([]*inventory.Item, 0, len(cmd.Barcodes()))
	for _, barcode := range cmd.Barcodes() {
		// An already registered barcode means a duplicate scan.
		if _, lookupErr := invRepo.GetItemByBarcode(ctx, cmd.Tenant(), barcode); lookupErr == nil {
			return fmt.Errorf("barcode %s already registered: %w", barcode, errs.ErrValueIsInvalid)
		} else if !errors.Is(lookupErr, errs.ErrObjectNotFound) {
			return lookupErr
		}

		item, ierr := inventory.NewItem(0, cmd.Tenant(), cmd.StockID(), lotID,
			cmd.ShelfID(), barcode, cmd.CostPrice())
		if ierr != nil {
			return ierr
		}
		items = append(items, item)
	}
	if err = invRepo.AddItems(ctx, items); err != nil {
		return err
	}

	if err = invRepo.IncrementShelf(ctx, cmd.Tenant(), cmd.ShelfID(), cmd.StockID(), cmd.Quantity()); err != nil {
		return err
	}

	entry, err := inventory.NewStockEntry(cmd.Tenant(), cmd.StockID(), lotID, cmd.ShelfID(),
		inventory.MovementKindReceipt, cmd.Quantity(), nil, now)
	if err != nil {
		return err
	}
	if err = invRepo.AddEntries(ctx, []*inventory.StockEntry{entry}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
