package inventory

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ItemStatus is the lifecycle state of one physical unit.
type ItemStatus int

const (
	ItemStatusUnknown ItemStatus = iota
	ItemStatusInStock
	ItemStatusReserved
	ItemStatusPicked
	ItemStatusShipped
	ItemStatusExpired
)

// Validate checks the status is one of the defined values.
func (s ItemStatus) Validate() error {
	switch s {
	case ItemStatusInStock, ItemStatusReserved, ItemStatusPicked, ItemStatusShipped, ItemStatusExpired:
		return nil
	case ItemStatusUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("item status",
		fmt.Errorf("%d is not a valid item status", s))
}

// String implements fmt.Stringer.
func (s ItemStatus) String() string {
	switch s {
	case ItemStatusInStock:
		return "in_stock"
	case ItemStatusReserved:
		return "reserved"
	case ItemStatusPicked:
		return "picked"
	case ItemStatusShipped:
		return "shipped"
	case ItemStatusExpired:
		return "expired"
	case ItemStatusUnknown:
	}
	return "unknown"
}

// Item is one physical, individually barcoded unit of a lot sitting on a
// shelf. The cost price is snapshotted from the lot at receipt so later lot
// corrections do not rewrite history.
type Item struct {
	id        int32
	tenant    kernel.TenantID
	stockID   int32
	lotID     int32
	shelfID   int32
	barcode   string
	costPrice decimal.Decimal
	status    ItemStatus
}

// NewItem registers a unit on a shelf in the in-stock state.
func NewItem(id int32, tenant kernel.TenantID, stockID, lotID, shelfID int32,
	barcode string, costPrice decimal.Decimal) (*Item, error) {
	return RestoreItem(id, tenant, stockID, lotID, shelfID, barcode, costPrice, ItemStatusInStock)
}

// RestoreItem reconstructs an item from persistence with an explicit status.
func RestoreItem(id int32, tenant kernel.TenantID, stockID, lotID, shelfID int32,
	barcode string, costPrice decimal.Decimal, status ItemStatus) (*Item, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if stockID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stockId",
			fmt.Errorf("%d is not a valid stock id", stockID))
	}
	if lotID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("lotId",
			fmt.Errorf("%d is not a valid lot id", lotID))
	}
	if shelfID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("shelfId",
			fmt.Errorf("%d is not a valid shelf id", shelfID))
	}
	if barcode == "" {
		return nil, errs.NewValueIsRequiredError("barcode")
	}
	if costPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidError("cost price")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Item{
		id:        id,
		tenant:    tenant,
		stockID:   stockID,
		lotID:     lotID,
		shelfID:   shelfID,
		barcode:   barcode,
		costPrice: costPrice,
		status:    status,
	}, nil
}

// ID returns the item identifier.
func (i *Item) ID() int32 { return i.id }

// Tenant returns the owning tenant.
func (i *Item) Tenant() kernel.TenantID { return i.tenant }

// StockID returns the stock of this unit.
func (i *Item) StockID() int32 { return i.stockID }

// LotID returns the lot this unit arrived in.
func (i *Item) LotID() int32 { return i.lotID }

// ShelfID returns the shelf the unit sits on.
func (i *Item) ShelfID() int32 { return i.shelfID }

// Barcode returns the unit barcode.
func (i *Item) Barcode() string { return i.barcode }

// CostPrice returns the cost price snapshotted at receipt.
func (i *Item) CostPrice() decimal.Decimal { return i.costPrice }

// Status returns the lifecycle state.
func (i *Item) Status() ItemStatus { return i.status }

// Reserve binds the unit to a sale allocation.
func (i *Item) Reserve() error {
	if i.status != ItemStatusInStock {
		return fmt.Errorf("item %s is %s, not in stock: %w", i.barcode, i.status, errs.ErrInvalidState)
	}
	i.status = ItemStatusReserved
	return nil
}

// Release puts a reserved unit back in stock. A unit that was already picked
// cannot be released; it has physically left the shelf.
func (i *Item) Release() error {
	if i.status != ItemStatusReserved {
		return fmt.Errorf("item %s is %s, not reserved: %w", i.barcode, i.status, errs.ErrInvalidState)
	}
	i.status = ItemStatusInStock
	return nil
}

// MarkPicked records that a picker scanned the unit off its shelf.
func (i *Item) MarkPicked() error {
	if i.status != ItemStatusReserved {
		return fmt.Errorf("item %s is %s, not reserved: %w", i.barcode, i.status, errs.ErrInvalidState)
	}
	i.status = ItemStatusPicked
	return nil
}

// MarkShipped records that the unit left the warehouse with its sale.
func (i *Item) MarkShipped() error {
	if i.status != ItemStatusPicked {
		return fmt.Errorf("item %s is %s, not picked: %w", i.barcode, i.status, errs.ErrInvalidState)
	}
	i.status = ItemStatusShipped
	return nil
}

// Expire removes the unit from circulation with its expired lot.
func (i *Item) Expire() error {
	if i.status == ItemStatusShipped {
		return fmt.Errorf("item %s is already shipped: %w", i.barcode, errs.ErrTerminalState)
	}
	i.status = ItemStatusExpired
	return nil
}
