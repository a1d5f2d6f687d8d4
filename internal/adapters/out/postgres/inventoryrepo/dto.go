// Package inventoryrepo persists the stock side: catalog stocks, shelves and
// their placements, lots, unit items, and the append-only movement ledger.
package inventoryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockDTO is the database row of a catalog stock.
type StockDTO struct {
	ID       int32 `gorm:"primaryKey;autoIncrement"`
	TenantID int32 `gorm:"index"`
	Name     string
	Unit     string
}

// TableName overrides GORM's default naming.
func (StockDTO) TableName() string {
	return "stocks"
}

// ShelfDTO is the database row of a shelf. Unpublished shelves are invisible
// to allocation.
type ShelfDTO struct {
	ID        int32 `gorm:"primaryKey;autoIncrement"`
	TenantID  int32 `gorm:"index"`
	ZoneID    int32
	NodeID    int32
	Name      string
	Published bool
}

// TableName overrides GORM's default naming.
func (ShelfDTO) TableName() string {
	return "shelves"
}

// StockShelfDTO is the aggregate placement of one stock on one shelf. The
// quantity column carries the oversell guard.
type StockShelfDTO struct {
	ShelfID  int32 `gorm:"primaryKey"`
	StockID  int32 `gorm:"primaryKey"`
	TenantID int32 `gorm:"index"`
	Quantity int32
}

// TableName overrides GORM's default naming.
func (StockShelfDTO) TableName() string {
	return "stock_shelves"
}

// LotDTO is the database row of a received lot. The lot number is unique per
// tenant.
type LotDTO struct {
	ID        int32  `gorm:"primaryKey;autoIncrement"`
	TenantID  int32  `gorm:"index;uniqueIndex:idx_lots_tenant_lot_number"`
	StockID   int32  `gorm:"index"`
	LotNumber string `gorm:"uniqueIndex:idx_lots_tenant_lot_number"`
	Quantity  int32
	Supplier  string
	EntryDate time.Time `gorm:"index"`
	Expiry    *time.Time
	CostPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status    int
}

// TableName overrides GORM's default naming.
func (LotDTO) TableName() string {
	return "lots"
}

// ItemDTO is the database row of one physical unit. The barcode is unique per
// tenant.
type ItemDTO struct {
	ID        int32 `gorm:"primaryKey;autoIncrement"`
	TenantID  int32 `gorm:"index;uniqueIndex:idx_items_tenant_barcode"`
	StockID   int32
	LotID     int32           `gorm:"index"`
	ShelfID   int32           `gorm:"index"`
	Barcode   string          `gorm:"uniqueIndex:idx_items_tenant_barcode"`
	CostPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status    int             `gorm:"index"`
}

// TableName overrides GORM's default naming.
func (ItemDTO) TableName() string {
	return "items"
}

// StockEntryDTO is one row of the append-only movement ledger.
type StockEntryDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	TenantID   int32 `gorm:"index"`
	StockID    int32 `gorm:"index"`
	LotID      int32
	ShelfID    int32
	Kind       int
	Quantity   int32
	SaleID     *uuid.UUID `gorm:"type:uuid;index"`
	OccurredAt time.Time  `gorm:"index"`
}

// TableName overrides GORM's default naming.
func (StockEntryDTO) TableName() string {
	return "stock_entries"
}

func stockFromDomain(stock *inventory.Stock) StockDTO {
	return StockDTO{
		ID:       stock.ID(),
		TenantID: int32(stock.Tenant()),
		Name:     stock.Name(),
		Unit:     stock.Unit(),
	}
}

func stockToDomain(dto StockDTO) (*inventory.Stock, error) {
	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}
	return inventory.NewStock(dto.ID, tenant, dto.Name, dto.Unit)
}

func shelfFromDomain(shelf *inventory.Shelf) ShelfDTO {
	return ShelfDTO{
		ID:        shelf.ID(),
		TenantID:  int32(shelf.Tenant()),
		ZoneID:    shelf.ZoneID(),
		NodeID:    shelf.NodeID(),
		Name:      shelf.Name(),
		Published: shelf.IsPublished(),
	}
}

func shelfToDomain(dto ShelfDTO) (*inventory.Shelf, error) {
	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	shelf, err := inventory.NewShelf(dto.ID, tenant, dto.ZoneID, dto.NodeID, dto.Name)
	if err != nil {
		return nil, err
	}
	if dto.Published {
		shelf.Publish()
	}
	return shelf, nil
}

func lotFromDomain(lot *inventory.Lot) LotDTO {
	return LotDTO{
		ID:        lot.ID(),
		TenantID:  int32(lot.Tenant()),
		StockID:   lot.StockID(),
		LotNumber: lot.LotNumber(),
		Quantity:  lot.Quantity(),
		Supplier:  lot.Supplier(),
		EntryDate: lot.EntryDate(),
		Expiry:    lot.Expiry(),
		CostPrice: lot.CostPrice(),
		Status:    int(lot.Status()),
	}
}

func lotToDomain(dto LotDTO) (*inventory.Lot, error) {
	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}
	return inventory.RestoreLot(dto.ID, tenant, dto.StockID, dto.LotNumber, dto.Quantity,
		dto.Supplier, dto.EntryDate, dto.Expiry, dto.CostPrice, inventory.LotStatus(dto.Status))
}

func itemFromDomain(item *inventory.Item) ItemDTO {
	return ItemDTO{
		ID:        item.ID(),
		TenantID:  int32(item.Tenant()),
		StockID:   item.StockID(),
		LotID:     item.LotID(),
		ShelfID:   item.ShelfID(),
		Barcode:   item.Barcode(),
		CostPrice: item.CostPrice(),
		Status:    int(item.Status()),
	}
}

func itemToDomain(dto ItemDTO) (*inventory.Item, error) {
	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}
	return inventory.RestoreItem(dto.ID, tenant, dto.StockID, dto.LotID, dto.ShelfID,
		dto.Barcode, dto.CostPrice, inventory.ItemStatus(dto.Status))
}

func entryFromDomain(entry *inventory.StockEntry) StockEntryDTO {
	var saleID *uuid.UUID
	if id := entry.SaleID(); id != nil {
		raw := id.Bytes()
		saleID = &raw
	}

	return StockEntryDTO{
		TenantID:   int32(entry.Tenant()),
		StockID:    entry.StockID(),
		LotID:      entry.LotID(),
		ShelfID:    entry.ShelfID(),
		Kind:       int(entry.Kind()),
		Quantity:   entry.Quantity(),
		SaleID:     saleID,
		OccurredAt: entry.OccurredAt(),
	}
}
