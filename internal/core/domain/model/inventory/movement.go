package inventory

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MovementKind classifies a ledger entry.
type MovementKind int

const (
	MovementKindUnknown MovementKind = iota

	// MovementKindReceipt records quantity arriving with a lot.
	MovementKindReceipt

	// MovementKindAllocation records quantity reserved for a sale.
	MovementKindAllocation

	// MovementKindRelease records reserved quantity returned to a shelf.
	MovementKindRelease
)

// Validate checks the kind is one of the defined values.
func (k MovementKind) Validate() error {
	switch k {
	case MovementKindReceipt, MovementKindAllocation, MovementKindRelease:
		return nil
	case MovementKindUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("movement kind",
		fmt.Errorf("%d is not a valid movement kind", k))
}

// String implements fmt.Stringer.
func (k MovementKind) String() string {
	switch k {
	case MovementKindReceipt:
		return "receipt"
	case MovementKindAllocation:
		return "allocation"
	case MovementKindRelease:
		return "release"
	case MovementKindUnknown:
	}
	return "unknown"
}

// StockEntry is one row of the append-only movement ledger. Entries are never
// updated or deleted; stock on hand is the sum of signed entries.
type StockEntry struct {
	id         int64
	tenant     kernel.TenantID
	stockID    int32
	lotID      int32
	shelfID    int32
	kind       MovementKind
	quantity   int32
	saleID     *kernel.UUID
	occurredAt time.Time
}

// NewStockEntry appends a movement. Allocation and release entries must
// reference the sale that caused them.
func NewStockEntry(tenant kernel.TenantID, stockID, lotID, shelfID int32,
	kind MovementKind, quantity int32, saleID *kernel.UUID, occurredAt time.Time) (*StockEntry, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if stockID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stockId",
			fmt.Errorf("%d is not a valid stock id", stockID))
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not a positive quantity", quantity))
	}
	if kind != MovementKindReceipt && saleID == nil {
		return nil, errs.NewValueIsRequiredError("sale id")
	}
	if occurredAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("occurred at")
	}

	return &StockEntry{
		tenant:     tenant,
		stockID:    stockID,
		lotID:      lotID,
		shelfID:    shelfID,
		kind:       kind,
		quantity:   quantity,
		saleID:     saleID,
		occurredAt: occurredAt,
	}, nil
}

// ID returns the ledger row id, zero until persisted.
func (e *StockEntry) ID() int64 { return e.id }

// Tenant returns the owning tenant.
func (e *StockEntry) Tenant() kernel.TenantID { return e.tenant }

// StockID returns the moved stock.
func (e *StockEntry) StockID() int32 { return e.stockID }

// LotID returns the lot the movement drew from or restored to.
func (e *StockEntry) LotID() int32 { return e.lotID }

// ShelfID returns the shelf the movement touched.
func (e *StockEntry) ShelfID() int32 { return e.shelfID }

// Kind returns the movement classification.
func (e *StockEntry) Kind() MovementKind { return e.kind }

// Quantity returns the moved quantity, always positive; the kind carries the
// sign.
func (e *StockEntry) Quantity() int32 { return e.quantity }

// SaleID returns the sale behind an allocation or release, nil for receipts.
func (e *StockEntry) SaleID() *kernel.UUID { return e.saleID }

// OccurredAt returns when the movement happened.
func (e *StockEntry) OccurredAt() time.Time { return e.occurredAt }

// Signed returns the quantity with the ledger sign applied: receipts and
// releases add, allocations subtract.
func (e *StockEntry) Signed() int32 {
	if e.kind == MovementKindAllocation {
		return -e.quantity
	}
	return e.quantity
}
