package sale

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Event is one row of the sale event ledger: the status the sale entered and
// the version at which it entered it. Rows are append-only and partitioned by
// creation month.
type Event struct {
	tenant    kernel.TenantID
	saleID    kernel.UUID
	version   kernel.Version
	status    Status
	createdAt time.Time
}

// NewEvent creates a ledger row for one accepted transition.
func NewEvent(tenant kernel.TenantID, saleID kernel.UUID, version kernel.Version,
	status Status, createdAt time.Time) (Event, error) {
	if err := tenant.Validate(); err != nil {
		return Event{}, err
	}
	if err := saleID.Validate(); err != nil {
		return Event{}, err
	}
	if err := version.Validate(); err != nil {
		return Event{}, err
	}
	if err := status.Validate(); err != nil {
		return Event{}, err
	}
	if createdAt.IsZero() {
		return Event{}, errs.NewValueIsRequiredError("created at")
	}

	return Event{
		tenant:    tenant,
		saleID:    saleID,
		version:   version,
		status:    status,
		createdAt: createdAt,
	}, nil
}

// Tenant returns the owning tenant.
func (e Event) Tenant() kernel.TenantID { return e.tenant }

// SaleID returns the sale this event belongs to.
func (e Event) SaleID() kernel.UUID { return e.saleID }

// Version returns the aggregate version this event carries.
func (e Event) Version() kernel.Version { return e.version }

// Status returns the status the sale entered.
func (e Event) Status() Status { return e.status }

// CreatedAt returns when the transition was accepted.
func (e Event) CreatedAt() time.Time { return e.createdAt }

// ValidateStream checks a sale's event history: versions start at the initial
// version and increase gaplessly by one, and all events belong to the same
// sale.
func ValidateStream(events []Event) error {
	if len(events) == 0 {
		return errs.NewValueIsRequiredError("events")
	}

	for i, e := range events {
		expected := kernel.InitialVersion + kernel.Version(i)
		if e.version != expected {
			return errs.NewVersionIsInvalidError("event stream",
				fmt.Errorf("event %d carries version %d, expected %d", i, e.version, expected))
		}
		if !e.saleID.IsEqual(events[0].saleID) {
			return errs.NewValueIsInvalidErrorWithCause("event stream",
				fmt.Errorf("event %d belongs to sale %s", i, e.saleID))
		}
	}
	return nil
}
