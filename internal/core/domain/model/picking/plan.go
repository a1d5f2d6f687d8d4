package picking

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrAlreadyPlanned is returned when scheduling is attempted for a sale that
// is already linked to a non-aborted plan.
var ErrAlreadyPlanned = errors.New("sale already belongs to an active plan")

// PlanStatus is the lifecycle state of a picking plan.
type PlanStatus int

const (
	PlanStatusUnknown PlanStatus = iota

	// PlanStatusDraft is the entry state while goods are attached.
	PlanStatusDraft

	// PlanStatusScheduled means the plan is published to route computation.
	PlanStatusScheduled

	// PlanStatusInProgress means at least one route has been claimed.
	PlanStatusInProgress

	// PlanStatusCompleted is terminal: every good is ready to pack.
	PlanStatusCompleted

	// PlanStatusAborted is terminal.
	PlanStatusAborted
)

// Validate checks the status is one of the defined values.
func (s PlanStatus) Validate() error {
	switch s {
	case PlanStatusDraft, PlanStatusScheduled, PlanStatusInProgress,
		PlanStatusCompleted, PlanStatusAborted:
		return nil
	case PlanStatusUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("plan status",
		fmt.Errorf("%d is not a valid plan status", s))
}

// String implements fmt.Stringer.
func (s PlanStatus) String() string {
	switch s {
	case PlanStatusDraft:
		return "draft"
	case PlanStatusScheduled:
		return "scheduled"
	case PlanStatusInProgress:
		return "in_progress"
	case PlanStatusCompleted:
		return "completed"
	case PlanStatusAborted:
		return "aborted"
	case PlanStatusUnknown:
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is allowed.
func (s PlanStatus) IsTerminal() bool {
	return s == PlanStatusCompleted || s == PlanStatusAborted
}

// ValidateTransition checks the plan state machine. Abort is reachable from
// any non-terminal state; forward movement follows draft, scheduled,
// in-progress, completed.
func (s PlanStatus) ValidateTransition(next PlanStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return fmt.Errorf("plan is %s: %w", s, errs.ErrTerminalState)
	}
	if next == PlanStatusAborted {
		return nil
	}

	allowed := map[PlanStatus]PlanStatus{
		PlanStatusDraft:      PlanStatusScheduled,
		PlanStatusScheduled:  PlanStatusInProgress,
		PlanStatusInProgress: PlanStatusCompleted,
	}
	if allowed[s] != next {
		return fmt.Errorf("plan cannot move from %s to %s: %w", s, next, errs.ErrInvalidState)
	}
	return nil
}

// Plan is the versioned picking plan aggregate: a group of allocated sales
// scheduled for one picking run inside a zone scope.
type Plan struct {
	id      kernel.UUID
	tenant  kernel.TenantID
	zoneIDs []int32
	saleIDs []kernel.UUID
	status  PlanStatus
	version kernel.Version

	pending []PlanEvent
}

// NewPlan drafts a plan over a set of sales and an optional zone scope, with
// its creation event pending. Scheduling preconditions on the sales are
// checked by the command handler, which sees the whole tenant state.
func NewPlan(tenant kernel.TenantID, saleIDs []kernel.UUID, zoneIDs []int32, now time.Time) (*Plan, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if len(saleIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("sale ids")
	}
	seen := make(map[kernel.UUID]struct{}, len(saleIDs))
	for _, id := range saleIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("sale ids",
				fmt.Errorf("sale %s listed twice", id))
		}
		seen[id] = struct{}{}
	}

	p := &Plan{
		id:      kernel.NewUUID(),
		tenant:  tenant,
		zoneIDs: zoneIDs,
		saleIDs: saleIDs,
		status:  PlanStatusDraft,
		version: kernel.InitialVersion,
	}

	created, err := NewPlanEvent(tenant, p.id, p.version, p.status, now)
	if err != nil {
		return nil, err
	}
	p.pending = append(p.pending, created)

	return p, nil
}

// RestorePlan reconstructs a plan from its persisted row.
func RestorePlan(id kernel.UUID, tenant kernel.TenantID, saleIDs []kernel.UUID,
	zoneIDs []int32, status PlanStatus, version kernel.Version) (*Plan, error) {
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

	return &Plan{id: id, tenant: tenant, zoneIDs: zoneIDs, saleIDs: saleIDs,
		status: status, version: version}, nil
}

// ID returns the plan identifier.
func (p *Plan) ID() kernel.UUID { return p.id }

// Tenant returns the owning tenant.
func (p *Plan) Tenant() kernel.TenantID { return p.tenant }

// ZoneIDs returns the zone scope; empty means the whole warehouse.
func (p *Plan) ZoneIDs() []int32 { return p.zoneIDs }

// SaleIDs returns the sales grouped into this plan.
func (p *Plan) SaleIDs() []kernel.UUID { return p.saleIDs }

// Status returns the lifecycle state.
func (p *Plan) Status() PlanStatus { return p.status }

// Version returns the current aggregate version.
func (p *Plan) Version() kernel.Version { return p.version }

// IsTerminal reports whether the plan reached a final state.
func (p *Plan) IsTerminal() bool { return p.status.IsTerminal() }

// PendingEvents returns the events recorded since the aggregate was loaded.
func (p *Plan) PendingEvents() []PlanEvent { return p.pending }

// ClearPendingEvents drops the buffered events after a successful save.
func (p *Plan) ClearPendingEvents() { p.pending = nil }

// Propose applies a transition under the optimistic-concurrency primitive.
func (p *Plan) Propose(expected kernel.Version, next PlanStatus, now time.Time) error {
	if err := p.status.ValidateTransition(next); err != nil {
		return err
	}

	proposed, err := p.version.Propose(expected)
	if err != nil {
		return err
	}

	event, err := NewPlanEvent(p.tenant, p.id, proposed, next, now)
	if err != nil {
		return err
	}

	p.version = proposed
	p.status = next
	p.pending = append(p.pending, event)
	return nil
}

// Schedule publishes the draft to route computation.
func (p *Plan) Schedule(expected kernel.Version, now time.Time) error {
	return p.Propose(expected, PlanStatusScheduled, now)
}

// Start records the first claimed route.
func (p *Plan) Start(expected kernel.Version, now time.Time) error {
	return p.Propose(expected, PlanStatusInProgress, now)
}

// Complete closes the plan once every good is ready to pack.
func (p *Plan) Complete(expected kernel.Version, now time.Time) error {
	return p.Propose(expected, PlanStatusCompleted, now)
}

// Abort closes the plan from any non-terminal state. The command handler
// cascades best-effort cancellation to the linked sales.
func (p *Plan) Abort(expected kernel.Version, now time.Time) error {
	return p.Propose(expected, PlanStatusAborted, now)
}
