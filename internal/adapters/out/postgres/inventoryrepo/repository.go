package inventoryrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// AddStock persists a new catalog stock.
func (r *GormInventoryRepository) AddStock(ctx context.Context, stock *inventory.Stock) error {
	dto := stockFromDomain(stock)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetStock retrieves a stock by id within a tenant.
func (r *GormInventoryRepository) GetStock(ctx context.Context, tenant kernel.TenantID, id int32) (*inventory.Stock, error) {
	var dto StockDTO
	err := r.db.WithContext(ctx).First(&dto, "tenant_id = ? AND id = ?", tenant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock", strconv.Itoa(int(id)))
		}
		return nil, err
	}
	return stockToDomain(dto)
}

// AddShelf persists a new shelf.
func (r *GormInventoryRepository) AddShelf(ctx context.Context, shelf *inventory.Shelf) error {
	dto := shelfFromDomain(shelf)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetShelf retrieves a shelf by id within a tenant.
func (r *GormInventoryRepository) GetShelf(ctx context.Context, tenant kernel.TenantID, id int32) (*inventory.Shelf, error) {
	var dto ShelfDTO
	err := r.db.WithContext(ctx).First(&dto, "tenant_id = ? AND id = ?", tenant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shelf", strconv.Itoa(int(id)))
		}
		return nil, err
	}
	return shelfToDomain(dto)
}

// UpdateShelf persists a shelf's publication state and label.
func (r *GormInventoryRepository) UpdateShelf(ctx context.Context, shelf *inventory.Shelf) error {
	dto := shelfFromDomain(shelf)
	return r.db.WithContext(ctx).Model(&ShelfDTO{}).
		Where("id = ?", dto.ID).
		Select("Name", "Published").
		Updates(&dto).Error
}

// AddLot persists a received lot and returns the assigned id.
func (r *GormInventoryRepository) AddLot(ctx context.Context, lot *inventory.Lot) (int32, error) {
	dto := lotFromDomain(lot)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return 0, err
	}
	return dto.ID, nil
}

// UpdateLot persists a lot's quantity and status after a draw or restore.
func (r *GormInventoryRepository) UpdateLot(ctx context.Context, lot *inventory.Lot) error {
	dto := lotFromDomain(lot)
	return r.db.WithContext(ctx).Model(&LotDTO{}).
		Where("id = ?", dto.ID).
		Select("Quantity", "Status").
		Updates(&dto).Error
}

// GetLot retrieves a lot by id within a tenant.
func (r *GormInventoryRepository) GetLot(ctx context.Context, tenant kernel.TenantID, id int32) (*inventory.Lot, error) {
	var dto LotDTO
	err := r.db.WithContext(ctx).First(&dto, "tenant_id = ? AND id = ?", tenant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("lot", strconv.Itoa(int(id)))
		}
		return nil, err
	}
	return lotToDomain(dto)
}

// GetAvailability retrieves the allocatable shelf-and-lot slices for the given
// stocks. Quantity is counted from in-stock items, so reserved units never
// reappear as available. Slices are ordered by lot entry date for FIFO
// draining.
func (r *GormInventoryRepository) GetAvailability(ctx context.Context, tenant kernel.TenantID,
	stockIDs []int32) (map[int32][]inventory.Availability, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.tenant_id,
			l.stock_id,
			l.lot_number,
			l.quantity,
			l.supplier,
			l.entry_date,
			l.expiry,
			l.cost_price,
			l.status,
			i.shelf_id,
			s.node_id,
			COUNT(i.id)
		FROM lots l
		JOIN items i ON i.lot_id = l.id AND i.status = ?
		JOIN shelves s ON s.id = i.shelf_id AND s.published
		WHERE l.tenant_id = ? AND l.stock_id IN ? AND l.status = ?
		GROUP BY l.id, i.shelf_id, s.node_id
		ORDER BY l.entry_date, l.id, i.shelf_id
	`, int(inventory.ItemStatusInStock), tenant, stockIDs, int(inventory.LotStatusAvailable)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availability := make(map[int32][]inventory.Availability)

	for rows.Next() {
		var dto LotDTO
		var slice inventory.Availability

		err = rows.Scan(&dto.ID, &dto.TenantID, &dto.StockID, &dto.LotNumber, &dto.Quantity,
			&dto.Supplier, &dto.EntryDate, &dto.Expiry, &dto.CostPrice, &dto.Status,
			&slice.ShelfID, &slice.NodeID, &slice.Quantity)
		if err != nil {
			return nil, err
		}

		lot, lotErr := lotToDomain(dto)
		if lotErr != nil {
			return nil, lotErr
		}
		slice.Lot = lot

		availability[dto.StockID] = append(availability[dto.StockID], slice)
	}

	return availability, rows.Err()
}

// DecrementShelf atomically removes quantity from a placement. The conditional
// UPDATE keeps the quantity non-negative under concurrent allocations; zero
// affected rows mean another writer changed the placement since the caller
// planned its draw.
func (r *GormInventoryRepository) DecrementShelf(ctx context.Context, tenant kernel.TenantID,
	shelfID, stockID, quantity int32) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE stock_shelves
		SET quantity = quantity - ?
		WHERE tenant_id = ? AND shelf_id = ? AND stock_id = ? AND quantity >= ?
	`, quantity, tenant, shelfID, stockID, quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("shelf %d cannot cover %d of stock %d: %w",
			shelfID, quantity, stockID, inventory.ErrShelfContention)
	}
	return nil
}

// IncrementShelf adds quantity to a placement, creating it when absent.
func (r *GormInventoryRepository) IncrementShelf(ctx context.Context, tenant kernel.TenantID,
	shelfID, stockID, quantity int32) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO stock_shelves (tenant_id, shelf_id, stock_id, quantity)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (shelf_id, stock_id)
		DO UPDATE SET quantity = stock_shelves.quantity + EXCLUDED.quantity
	`, tenant, shelfID, stockID, quantity).Error
}

// AddItems persists freshly received unit items.
func (r *GormInventoryRepository) AddItems(ctx context.Context, items []*inventory.Item) error {
	if len(items) == 0 {
		return nil
	}

	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, itemFromDomain(item))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// UpdateItem persists an item's status.
func (r *GormInventoryRepository) UpdateItem(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ?", item.ID()).
		Update("status", int(item.Status())).Error
}

// GetItem retrieves an item by id within a tenant.
func (r *GormInventoryRepository) GetItem(ctx context.Context, tenant kernel.TenantID, id int32) (*inventory.Item, error) {
	var dto ItemDTO
	err := r.db.WithContext(ctx).First(&dto, "tenant_id = ? AND id = ?", tenant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", strconv.Itoa(int(id)))
		}
		return nil, err
	}
	return itemToDomain(dto)
}

// GetItemByBarcode retrieves an item by its barcode within a tenant.
func (r *GormInventoryRepository) GetItemByBarcode(ctx context.Context, tenant kernel.TenantID,
	barcode string) (*inventory.Item, error) {
	var dto ItemDTO
	err := r.db.WithContext(ctx).First(&dto, "tenant_id = ? AND barcode = ?", tenant, barcode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", barcode)
		}
		return nil, err
	}
	return itemToDomain(dto)
}

// GetItemsInStatus retrieves up to limit items of a lot on a shelf in the
// given status. A zero limit means no limit.
func (r *GormInventoryRepository) GetItemsInStatus(ctx context.Context, tenant kernel.TenantID,
	lotID, shelfID int32, status inventory.ItemStatus, limit int32) ([]*inventory.Item, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lot_id = ? AND shelf_id = ? AND status = ?",
			tenant, lotID, shelfID, int(status)).
		Order("id")
	if limit > 0 {
		query = query.Limit(int(limit))
	}

	var dtos []ItemDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*inventory.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// AddEntries appends movement ledger rows.
func (r *GormInventoryRepository) AddEntries(ctx context.Context, entries []*inventory.StockEntry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]StockEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryFromDomain(entry))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetNetAllocationsBySale retrieves the outstanding allocations of a sale:
// allocation entries minus the releases already written, grouped by stock,
// lot, and shelf. Fully released groups drop out.
func (r *GormInventoryRepository) GetNetAllocationsBySale(ctx context.Context, tenant kernel.TenantID,
	saleID kernel.UUID) ([]inventory.Draw, error) {
	if err := saleID.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			e.stock_id,
			e.lot_id,
			e.shelf_id,
			s.node_id,
			SUM(CASE WHEN e.kind = ? THEN e.quantity ELSE -e.quantity END) AS net
		FROM stock_entries e
		JOIN shelves s ON s.id = e.shelf_id
		WHERE e.tenant_id = ? AND e.sale_id = ? AND e.kind IN (?, ?)
		GROUP BY e.stock_id, e.lot_id, e.shelf_id, s.node_id
		HAVING SUM(CASE WHEN e.kind = ? THEN e.quantity ELSE -e.quantity END) > 0
		ORDER BY e.stock_id, e.lot_id, e.shelf_id
	`, int(inventory.MovementKindAllocation), tenant, saleID.Bytes(),
		int(inventory.MovementKindAllocation), int(inventory.MovementKindRelease),
		int(inventory.MovementKindAllocation)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	draws := make([]inventory.Draw, 0)
	for rows.Next() {
		var draw inventory.Draw
		if err = rows.Scan(&draw.StockID, &draw.LotID, &draw.ShelfID, &draw.NodeID, &draw.Quantity); err != nil {
			return nil, err
		}
		draws = append(draws, draw)
	}

	return draws, rows.Err()
}
