package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for the stock side:
// catalog stocks, lots, shelf placements, items, and the movement ledger.
//
// DecrementShelf is the storage half of the oversell guard: it issues
// UPDATE ... SET quantity = quantity - ? WHERE ... AND quantity >= ? and
// fails with inventory.ErrShelfContention when zero rows are affected, so
// two concurrent allocations can never drive a shelf negative. The loser
// retries from a fresh availability read.
type InventoryRepository interface {
	// AddStock persists a new catalog stock.
	AddStock(ctx context.Context, stock *inventory.Stock) error

	// GetStock retrieves a stock by id within a tenant.
	GetStock(ctx context.Context, tenant kernel.TenantID, id int32) (*inventory.Stock, error)

	// AddShelf persists a new shelf.
	AddShelf(ctx context.Context, shelf *inventory.Shelf) error

	// GetShelf retrieves a shelf by id within a tenant.
	GetShelf(ctx context.Context, tenant kernel.TenantID, id int32) (*inventory.Shelf, error)

	// UpdateShelf persists a shelf's publication state and label.
	UpdateShelf(ctx context.Context, shelf *inventory.Shelf) error

	// AddLot persists a received lot and returns the assigned id.
	AddLot(ctx context.Context, lot *inventory.Lot) (int32, error)

	// UpdateLot persists a lot's quantity and status after a draw or restore.
	UpdateLot(ctx context.Context, lot *inventory.Lot) error

	// GetLot retrieves a lot by id within a tenant.
	GetLot(ctx context.Context, tenant kernel.TenantID, id int32) (*inventory.Lot, error)

	// GetAvailability retrieves the allocatable shelf-and-lot slices for the
	// given stocks, ordered by lot entry date for FIFO draining. Only
	// published shelves and available lots appear.
	GetAvailability(ctx context.Context, tenant kernel.TenantID, stockIDs []int32) (map[int32][]inventory.Availability, error)

	// DecrementShelf atomically removes quantity from a placement via the
	// conditional UPDATE described above.
	DecrementShelf(ctx context.Context, tenant kernel.TenantID, shelfID, stockID, quantity int32) error

	// IncrementShelf adds quantity to a placement, creating it when absent.
	IncrementShelf(ctx context.Context, tenant kernel.TenantID, shelfID, stockID, quantity int32) error

	// AddItems persists freshly received unit items.
	AddItems(ctx context.Context, items []*inventory.Item) error

	// UpdateItem persists an item's status.
	UpdateItem(ctx context.Context, item *inventory.Item) error

	// GetItem retrieves an item by id within a tenant.
	GetItem(ctx context.Context, tenant kernel.TenantID, id int32) (*inventory.Item, error)

	// GetItemByBarcode retrieves an item by its barcode within a tenant.
	GetItemByBarcode(ctx context.Context, tenant kernel.TenantID, barcode string) (*inventory.Item, error)

	// GetItemsInStatus retrieves up to limit items of a lot on a shelf in
	// the given status. A zero limit means no limit. Draws reserve in-stock
	// items; releases return reserved ones; shipping collects picked ones.
	GetItemsInStatus(ctx context.Context, tenant kernel.TenantID, lotID, shelfID int32,
		status inventory.ItemStatus, limit int32) ([]*inventory.Item, error)

	// AddEntries appends movement ledger rows.
	AddEntries(ctx context.Context, entries []*inventory.StockEntry) error

	// GetNetAllocationsBySale retrieves the outstanding allocations of a
	// sale: allocation entries minus the releases already written, grouped
	// by stock, lot, and shelf.
	GetNetAllocationsBySale(ctx context.Context, tenant kernel.TenantID, saleID kernel.UUID) ([]inventory.Draw, error)
}
