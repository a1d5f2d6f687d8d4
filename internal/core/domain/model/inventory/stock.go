package inventory

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrInsufficientInventory is the hard business failure returned when the
// total available quantity across shelves is less than requested. Callers must
// never partially allocate and must not retry automatically.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// Stock is a sellable catalog item. It is created by catalog management and
// immutable afterwards except for renaming.
type Stock struct {
	id     int32
	tenant kernel.TenantID
	name   string
	unit   string
}

// NewStock creates a stock with validated name and unit of measure.
func NewStock(id int32, tenant kernel.TenantID, name, unit string) (*Stock, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("stock name")
	}
	if unit == "" {
		return nil, errs.NewValueIsRequiredError("unit of measure")
	}

	return &Stock{id: id, tenant: tenant, name: name, unit: unit}, nil
}

// ID returns the stock identifier.
func (s *Stock) ID() int32 { return s.id }

// Tenant returns the owning tenant.
func (s *Stock) Tenant() kernel.TenantID { return s.tenant }

// Name returns the display name.
func (s *Stock) Name() string { return s.name }

// Unit returns the unit of measure.
func (s *Stock) Unit() string { return s.unit }

// Rename changes the display name, the only mutation a stock permits.
func (s *Stock) Rename(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("stock name")
	}
	s.name = name
	return nil
}
