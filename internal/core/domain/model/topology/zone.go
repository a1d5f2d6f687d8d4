package topology

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Zone is a named region of the warehouse floor with a bounding rectangle.
// Picking plans are scoped to zone sets; routing never leaves the scope.
type Zone struct {
	id     int32
	tenant kernel.TenantID
	name   string
	bounds kernel.Rect
}

// NewZone creates a zone with validated name and bounds. The id may be zero
// for a zone not yet persisted; storage assigns the definitive id.
func NewZone(id int32, tenant kernel.TenantID, name string, bounds kernel.Rect) (*Zone, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("zone name")
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	return &Zone{id: id, tenant: tenant, name: name, bounds: bounds}, nil
}

// ID returns the zone identifier.
func (z *Zone) ID() int32 { return z.id }

// Tenant returns the owning tenant.
func (z *Zone) Tenant() kernel.TenantID { return z.tenant }

// Name returns the zone name.
func (z *Zone) Name() string { return z.name }

// Bounds returns the zone footprint.
func (z *Zone) Bounds() kernel.Rect { return z.bounds }
