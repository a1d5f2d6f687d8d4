package sale

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one requested position of a sale: a stock and a quantity.
type Line struct {
	StockID  int32
	Quantity int32
}

// Sale is the versioned order aggregate. Every accepted transition advances
// the version by one and records a pending event; the repository persists the
// aggregate row and the event in one transaction, guarded by a conditional
// UPDATE on the version column.
type Sale struct {
	id        kernel.UUID
	tenant    kernel.TenantID
	orderRef  string
	lines     []Line
	costPrice decimal.Decimal
	status    Status
	version   kernel.Version

	pending []Event
}

// NewSale accepts an order: a fresh sale in the created state at the initial
// version, with its creation event pending. The order ref must be unique per
// tenant; the repository enforces that with a unique index.
func NewSale(tenant kernel.TenantID, orderRef string, lines []Line, now time.Time) (*Sale, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if orderRef == "" {
		return nil, errs.NewValueIsRequiredError("order ref")
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("sale lines")
	}
	for _, l := range lines {
		if l.StockID <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("stockId",
				fmt.Errorf("%d is not a valid stock id", l.StockID))
		}
		if l.Quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not a positive quantity", l.Quantity))
		}
	}

	s := &Sale{
		id:        kernel.NewUUID(),
		tenant:    tenant,
		orderRef:  orderRef,
		lines:     lines,
		costPrice: decimal.Zero,
		status:    StatusCreated,
		version:   kernel.InitialVersion,
	}

	created, err := NewEvent(tenant, s.id, s.version, s.status, now)
	if err != nil {
		return nil, err
	}
	s.pending = append(s.pending, created)

	return s, nil
}

// RestoreSale reconstructs a sale from its persisted row.
func RestoreSale(id kernel.UUID, tenant kernel.TenantID, orderRef string, lines []Line,
	costPrice decimal.Decimal, status Status, version kernel.Version) (*Sale, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := version.Validate(); err != nil {
		return nil, err
	}

	return &Sale{
		id:        id,
		tenant:    tenant,
		orderRef:  orderRef,
		lines:     lines,
		costPrice: costPrice,
		status:    status,
		version:   version,
	}, nil
}

// Replay reconstructs the sale's status and version from its event stream.
// The stream must be gapless; the last event wins.
func Replay(tenant kernel.TenantID, orderRef string, lines []Line,
	costPrice decimal.Decimal, events []Event) (*Sale, error) {
	if err := ValidateStream(events); err != nil {
		return nil, err
	}

	last := events[len(events)-1]
	return RestoreSale(last.SaleID(), tenant, orderRef, lines, costPrice, last.Status(), last.Version())
}

// ID returns the sale identifier.
func (s *Sale) ID() kernel.UUID { return s.id }

// Tenant returns the owning tenant.
func (s *Sale) Tenant() kernel.TenantID { return s.tenant }

// OrderRef returns the tenant-unique order reference.
func (s *Sale) OrderRef() string { return s.orderRef }

// Lines returns the requested positions.
func (s *Sale) Lines() []Line { return s.lines }

// CostPrice returns the summed cost price of the allocated units.
func (s *Sale) CostPrice() decimal.Decimal { return s.costPrice }

// Status returns the lifecycle state.
func (s *Sale) Status() Status { return s.status }

// Version returns the current aggregate version.
func (s *Sale) Version() kernel.Version { return s.version }

// IsTerminal reports whether the sale reached a final state.
func (s *Sale) IsTerminal() bool { return s.status.IsTerminal() }

// PendingEvents returns the events recorded since the aggregate was loaded,
// in order. The repository appends them and clears the buffer on save.
func (s *Sale) PendingEvents() []Event { return s.pending }

// ClearPendingEvents drops the buffered events after a successful save.
func (s *Sale) ClearPendingEvents() { s.pending = nil }

// Propose applies a transition under the optimistic-concurrency primitive:
// the caller names the version it last read, the state machine validates the
// move, and on success the version advances by one and the matching event is
// buffered. A stale expected version fails with errs.ErrVersionConflict and
// leaves the aggregate untouched.
func (s *Sale) Propose(expected kernel.Version, next Status, now time.Time) error {
	if err := s.status.ValidateTransition(next); err != nil {
		return err
	}

	proposed, err := s.version.Propose(expected)
	if err != nil {
		return err
	}

	event, err := NewEvent(s.tenant, s.id, proposed, next, now)
	if err != nil {
		return err
	}

	s.version = proposed
	s.status = next
	s.pending = append(s.pending, event)
	return nil
}

// Allocate marks inventory reserved and records the summed cost price of the
// reserved units.
func (s *Sale) Allocate(expected kernel.Version, costPrice decimal.Decimal, now time.Time) error {
	if costPrice.IsNegative() {
		return errs.NewValueIsInvalidError("cost price")
	}
	if err := s.Propose(expected, StatusAllocated, now); err != nil {
		return err
	}
	s.costPrice = costPrice
	return nil
}

// AssignPicking links the sale to a scheduled picking plan.
func (s *Sale) AssignPicking(expected kernel.Version, now time.Time) error {
	return s.Propose(expected, StatusPickingAssigned, now)
}

// MarkPicked records that every reserved unit was scanned.
func (s *Sale) MarkPicked(expected kernel.Version, now time.Time) error {
	return s.Propose(expected, StatusPicked, now)
}

// MarkPacked records that the sale is boxed.
func (s *Sale) MarkPacked(expected kernel.Version, now time.Time) error {
	return s.Propose(expected, StatusPacked, now)
}

// Ship closes the sale as shipped.
func (s *Sale) Ship(expected kernel.Version, now time.Time) error {
	return s.Propose(expected, StatusShipped, now)
}

// Cancel closes the sale as cancelled, from any non-terminal state.
func (s *Sale) Cancel(expected kernel.Version, now time.Time) error {
	return s.Propose(expected, StatusCancelled, now)
}
