package inventory

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LotStatus is the lifecycle state of a received batch.
type LotStatus int

const (
	// LotStatusUnknown catches uninitialized values.
	LotStatusUnknown LotStatus = iota

	// LotStatusAvailable marks a lot that allocation may draw from.
	LotStatusAvailable

	// LotStatusDepleted marks a lot whose quantity reached zero.
	LotStatusDepleted

	// LotStatusExpired marks a lot past its expiry date; allocation skips it.
	LotStatusExpired
)

// Validate checks the status is one of the defined values.
func (s LotStatus) Validate() error {
	switch s {
	case LotStatusAvailable, LotStatusDepleted, LotStatusExpired:
		return nil
	case LotStatusUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("lot status",
		fmt.Errorf("%d is not a valid lot status", s))
}

// String implements fmt.Stringer.
func (s LotStatus) String() string {
	switch s {
	case LotStatusAvailable:
		return "available"
	case LotStatusDepleted:
		return "depleted"
	case LotStatusExpired:
		return "expired"
	case LotStatusUnknown:
	}
	return "unknown"
}

// Lot is a received batch of one stock. The lot number is unique per tenant.
// Quantity only decreases after receipt; a correction is a new lot.
type Lot struct {
	id        int32
	tenant    kernel.TenantID
	stockID   int32
	lotNumber string
	quantity  int32
	supplier  string
	entryDate time.Time
	expiry    *time.Time
	costPrice decimal.Decimal
	status    LotStatus
}

// NewLot records a goods receipt: a fresh available lot with its initial
// quantity and cost price.
func NewLot(id int32, tenant kernel.TenantID, stockID int32, lotNumber string, quantity int32,
	supplier string, entryDate time.Time, expiry *time.Time, costPrice decimal.Decimal) (*Lot, error) {
	return RestoreLot(id, tenant, stockID, lotNumber, quantity, supplier, entryDate, expiry, costPrice, LotStatusAvailable)
}

// RestoreLot reconstructs a lot from persistence with an explicit status.
func RestoreLot(id int32, tenant kernel.TenantID, stockID int32, lotNumber string, quantity int32,
	supplier string, entryDate time.Time, expiry *time.Time, costPrice decimal.Decimal, status LotStatus) (*Lot, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if stockID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stockId",
			fmt.Errorf("%d is not a valid stock id", stockID))
	}
	if lotNumber == "" {
		return nil, errs.NewValueIsRequiredError("lot number")
	}
	if quantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}
	if entryDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("entry date")
	}
	if costPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidError("cost price")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Lot{
		id:        id,
		tenant:    tenant,
		stockID:   stockID,
		lotNumber: lotNumber,
		quantity:  quantity,
		supplier:  supplier,
		entryDate: entryDate,
		expiry:    expiry,
		costPrice: costPrice,
		status:    status,
	}, nil
}

// ID returns the lot identifier.
func (l *Lot) ID() int32 { return l.id }

// Tenant returns the owning tenant.
func (l *Lot) Tenant() kernel.TenantID { return l.tenant }

// StockID returns the stock this lot belongs to.
func (l *Lot) StockID() int32 { return l.stockID }

// LotNumber returns the tenant-unique lot number.
func (l *Lot) LotNumber() string { return l.lotNumber }

// Quantity returns the remaining quantity.
func (l *Lot) Quantity() int32 { return l.quantity }

// Supplier returns the supplier name.
func (l *Lot) Supplier() string { return l.supplier }

// EntryDate returns the goods-receipt date; FIFO allocation orders by it.
func (l *Lot) EntryDate() time.Time { return l.entryDate }

// Expiry returns the optional expiry date.
func (l *Lot) Expiry() *time.Time { return l.expiry }

// CostPrice returns the per-unit cost price at receipt.
func (l *Lot) CostPrice() decimal.Decimal { return l.costPrice }

// Status returns the lifecycle state.
func (l *Lot) Status() LotStatus { return l.status }

// IsAllocatable reports whether allocation may draw from this lot.
func (l *Lot) IsAllocatable() bool {
	return l.status == LotStatusAvailable && l.quantity > 0
}

// Draw removes quantity during allocation. The lot flips to depleted when it
// reaches zero.
func (l *Lot) Draw(quantity int32) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not a positive draw", quantity))
	}
	if !l.IsAllocatable() {
		return fmt.Errorf("lot %s is %s: %w", l.lotNumber, l.status, errs.ErrInvalidState)
	}
	if quantity > l.quantity {
		return fmt.Errorf("lot %s holds %d, requested %d: %w",
			l.lotNumber, l.quantity, quantity, ErrInsufficientInventory)
	}

	l.quantity -= quantity
	if l.quantity == 0 {
		l.status = LotStatusDepleted
	}
	return nil
}

// Restore returns quantity drawn by a reservation that was released before
// picking. This reverses an allocation; it is not a receipt correction.
func (l *Lot) Restore(quantity int32) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not a positive restore", quantity))
	}
	if l.status == LotStatusExpired {
		return fmt.Errorf("lot %s is expired: %w", l.lotNumber, errs.ErrInvalidState)
	}

	l.quantity += quantity
	l.status = LotStatusAvailable
	return nil
}

// Expire marks the lot past its expiry date.
func (l *Lot) Expire() {
	l.status = LotStatusExpired
}
