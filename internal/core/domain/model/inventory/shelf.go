package inventory

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrShelfContention is returned when the conditional shelf decrement affects
// zero rows: a concurrent allocation got to the placement first. Unlike
// ErrInsufficientInventory this is transient; callers retry against a fresh
// availability read, which decides whether stock is actually short.
var ErrShelfContention = errors.New("shelf placement was modified concurrently")

// Shelf is a physical storage location. It is anchored to a topology node so
// routes can be computed to it, and carries a publish flag controlling whether
// allocation considers it.
type Shelf struct {
	id        int32
	tenant    kernel.TenantID
	zoneID    int32
	nodeID    int32
	name      string
	published bool
}

// NewShelf creates a published shelf anchored to a node inside a zone.
func NewShelf(id int32, tenant kernel.TenantID, zoneID, nodeID int32, name string) (*Shelf, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if zoneID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("zoneId",
			fmt.Errorf("%d is not a valid zone id", zoneID))
	}
	if nodeID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("nodeId",
			fmt.Errorf("%d is not a valid node id", nodeID))
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("shelf name")
	}

	return &Shelf{id: id, tenant: tenant, zoneID: zoneID, nodeID: nodeID, name: name, published: true}, nil
}

// ID returns the shelf identifier.
func (s *Shelf) ID() int32 { return s.id }

// Tenant returns the owning tenant.
func (s *Shelf) Tenant() kernel.TenantID { return s.tenant }

// ZoneID returns the zone the shelf belongs to.
func (s *Shelf) ZoneID() int32 { return s.zoneID }

// NodeID returns the topology node pickers walk to for this shelf.
func (s *Shelf) NodeID() int32 { return s.nodeID }

// Name returns the shelf label.
func (s *Shelf) Name() string { return s.name }

// IsPublished reports whether allocation may place or draw inventory here.
func (s *Shelf) IsPublished() bool { return s.published }

// Publish makes the shelf visible to allocation.
func (s *Shelf) Publish() { s.published = true }

// Unpublish hides the shelf from allocation. Quantity already on the shelf
// stays and can still be picked.
func (s *Shelf) Unpublish() { s.published = false }

// StockShelf is the on-shelf quantity of one stock on one shelf. The quantity
// must never go negative; Decrement refuses to overdraw and the storage layer
// repeats the same check inside its conditional UPDATE.
type StockShelf struct {
	shelfID  int32
	stockID  int32
	tenant   kernel.TenantID
	quantity int32
}

// NewStockShelf creates a placement with a non-negative starting quantity.
func NewStockShelf(tenant kernel.TenantID, shelfID, stockID, quantity int32) (*StockShelf, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if shelfID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("shelfId",
			fmt.Errorf("%d is not a valid shelf id", shelfID))
	}
	if stockID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stockId",
			fmt.Errorf("%d is not a valid stock id", stockID))
	}
	if quantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}

	return &StockShelf{shelfID: shelfID, stockID: stockID, tenant: tenant, quantity: quantity}, nil
}

// ShelfID returns the shelf of this placement.
func (s *StockShelf) ShelfID() int32 { return s.shelfID }

// StockID returns the stock of this placement.
func (s *StockShelf) StockID() int32 { return s.stockID }

// Tenant returns the owning tenant.
func (s *StockShelf) Tenant() kernel.TenantID { return s.tenant }

// Quantity returns the on-shelf quantity.
func (s *StockShelf) Quantity() int32 { return s.quantity }

// Increment adds quantity, used by receipts and releases.
func (s *StockShelf) Increment(quantity int32) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not a positive increment", quantity))
	}
	s.quantity += quantity
	return nil
}

// Decrement removes quantity for an allocation. It fails with
// ErrInsufficientInventory rather than letting the quantity go negative.
func (s *StockShelf) Decrement(quantity int32) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not a positive decrement", quantity))
	}
	if quantity > s.quantity {
		return fmt.Errorf("shelf %d holds %d of stock %d, requested %d: %w",
			s.shelfID, s.quantity, s.stockID, quantity, ErrInsufficientInventory)
	}
	s.quantity -= quantity
	return nil
}
