package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrReceiveLotCommandIsNotConstructed = errors.New(
		"ReceiveLotCommand must be created via NewReceiveLotCommand constructor",
	)
	ErrLotNumberIsRequired = errors.New("lot number is required")
	ErrQuantityIsInvalid   = errors.New("quantity must be positive")
	ErrBarcodesMismatch    = errors.New("one barcode per received unit is required")
)

// ReceiveLotCommand represents a goods receipt: a lot of one stock arriving
// on one shelf, with a barcode per physical unit.
type ReceiveLotCommand struct { //nolint:recvcheck //using for validation
	tenant    kernel.TenantID
	stockID   int32
	shelfID   int32
	lotNumber string
	quantity  int32
	supplier  string
	expiry    *time.Time
	costPrice decimal.Decimal
	barcodes  []string

	guard guard.ConstructorGuard
}

// NewReceiveLotCommand creates a goods receipt command.
func NewReceiveLotCommand(tenant kernel.TenantID, stockID, shelfID int32, lotNumber string,
	quantity int32, supplier string, expiry *time.Time, costPrice decimal.Decimal,
	barcodes []string) (ReceiveLotCommand, error) {
	cmd := ReceiveLotCommand{
		stockID:   stockID,
		shelfID:   shelfID,
		supplier:  supplier,
		expiry:    expiry,
		costPrice: costPrice,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setLotNumber(lotNumber),
		cmd.setQuantity(quantity),
		cmd.setBarcodes(barcodes, quantity),
	); err != nil {
		return ReceiveLotCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveLotCommand) Validate() error {
	return c.guard.Validate(ErrReceiveLotCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c ReceiveLotCommand) Tenant() kernel.TenantID { return c.tenant }

// StockID returns the received stock.
func (c ReceiveLotCommand) StockID() int32 { return c.stockID }

// ShelfID returns the shelf the lot lands on.
func (c ReceiveLotCommand) ShelfID() int32 { return c.shelfID }

// LotNumber returns the tenant-unique lot number.
func (c ReceiveLotCommand) LotNumber() string { return c.lotNumber }

// Quantity returns the received quantity.
func (c ReceiveLotCommand) Quantity() int32 { return c.quantity }

// Supplier returns the supplier name.
func (c ReceiveLotCommand) Supplier() string { return c.supplier }

// Expiry returns the optional expiry date.
func (c ReceiveLotCommand) Expiry() *time.Time { return c.expiry }

// CostPrice returns the per-unit cost price.
func (c ReceiveLotCommand) CostPrice() decimal.Decimal { return c.costPrice }

// Barcodes returns one barcode per received unit.
func (c ReceiveLotCommand) Barcodes() []string { return c.barcodes }

func (c *ReceiveLotCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

func (c *ReceiveLotCommand) setLotNumber(lotNumber string) error {
	if lotNumber == "" {
		return ErrLotNumberIsRequired
	}
	c.lotNumber = lotNumber
	return nil
}

func (c *ReceiveLotCommand) setQuantity(quantity int32) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}
	c.quantity = quantity
	return nil
}

func (c *ReceiveLotCommand) setBarcodes(barcodes []string, quantity int32) error {
	if int32(len(barcodes)) != quantity {
		return ErrBarcodesMismatch
	}
	for _, b := range barcodes {
		if b == "" {
			return ErrBarcodesMismatch
		}
	}
	c.barcodes = barcodes
	return nil
}
