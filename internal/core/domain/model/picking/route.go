package picking

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrRouteIsStale is returned when a picker tries to claim a route whose
// traversal was invalidated by a topology change. It is distinct from
// errs.ErrVersionConflict: a conflict means reload and retry, stale means the
// route must be recomputed.
var ErrRouteIsStale = errors.New("route is stale")

// RouteStatus is the lifecycle state of a picking route.
type RouteStatus int

const (
	RouteStatusUnknown RouteStatus = iota

	// RouteStatusPending means the route awaits a claimant.
	RouteStatusPending

	// RouteStatusAssigned means exactly one picker claimed the route.
	RouteStatusAssigned

	// RouteStatusCompleted is terminal.
	RouteStatusCompleted

	// RouteStatusStale is terminal: a topology change invalidated the
	// traversal before it finished.
	RouteStatusStale

	// RouteStatusCancelled is terminal: the plan was aborted.
	RouteStatusCancelled
)

// Validate checks the status is one of the defined values.
func (s RouteStatus) Validate() error {
	switch s {
	case RouteStatusPending, RouteStatusAssigned, RouteStatusCompleted,
		RouteStatusStale, RouteStatusCancelled:
		return nil
	case RouteStatusUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("route status",
		fmt.Errorf("%d is not a valid route status", s))
}

// String implements fmt.Stringer.
func (s RouteStatus) String() string {
	switch s {
	case RouteStatusPending:
		return "pending"
	case RouteStatusAssigned:
		return "assigned"
	case RouteStatusCompleted:
		return "completed"
	case RouteStatusStale:
		return "stale"
	case RouteStatusCancelled:
		return "cancelled"
	case RouteStatusUnknown:
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is allowed.
func (s RouteStatus) IsTerminal() bool {
	return s == RouteStatusCompleted || s == RouteStatusStale || s == RouteStatusCancelled
}

// Route is the versioned picking route aggregate: an ordered traversal a
// picker walks to collect items. Stops are topology nodes; PathIDs connect
// each consecutive pair of nodes in NodeIDs.
type Route struct {
	id       kernel.UUID
	tenant   kernel.TenantID
	planID   kernel.UUID
	dependID *kernel.UUID
	nodeIDs  []int32
	pathIDs  []int32
	stops    []int32
	visited  int
	assignee string
	distance float64
	status   RouteStatus
	version  kernel.Version

	pending []RouteEvent
}

// NewRoute creates a pending route over a computed traversal. A dependent
// route may not depend on itself; cross-route cycle checks happen in
// ValidateDependencies over the whole batch.
func NewRoute(tenant kernel.TenantID, planID kernel.UUID, dependID *kernel.UUID,
	nodeIDs, pathIDs, stops []int32, distance float64, now time.Time) (*Route, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if err := planID.Validate(); err != nil {
		return nil, err
	}
	if len(nodeIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("node ids")
	}
	if len(pathIDs) != len(nodeIDs)-1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("path ids",
			fmt.Errorf("%d paths cannot connect %d nodes", len(pathIDs), len(nodeIDs)))
	}
	if len(stops) == 0 {
		return nil, errs.NewValueIsRequiredError("stops")
	}
	if distance < 0 {
		return nil, errs.NewValueIsInvalidError("distance")
	}

	r := &Route{
		id:       kernel.NewUUID(),
		tenant:   tenant,
		planID:   planID,
		nodeIDs:  nodeIDs,
		pathIDs:  pathIDs,
		stops:    stops,
		distance: distance,
		status:   RouteStatusPending,
		version:  kernel.InitialVersion,
	}
	if dependID != nil {
		if dependID.IsEqual(r.id) {
			return nil, errs.NewValueIsInvalidError("route cannot depend on itself")
		}
		d := *dependID
		r.dependID = &d
	}

	created, err := NewRouteEvent(tenant, r.id, r.version, r.status, 0, now)
	if err != nil {
		return nil, err
	}
	r.pending = append(r.pending, created)

	return r, nil
}

// RestoreRoute reconstructs a route from persistence.
func RestoreRoute(id kernel.UUID, tenant kernel.TenantID, planID kernel.UUID, dependID *kernel.UUID,
	nodeIDs, pathIDs, stops []int32, visited int, assignee string, distance float64,
	status RouteStatus, version kernel.Version) (*Route, error) {
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
	if visited < 0 || visited > len(stops) {
		return nil, errs.NewValueIsOutOfRangeError("visited", visited, 0, len(stops))
	}

	return &Route{id: id, tenant: tenant, planID: planID, dependID: dependID,
		nodeIDs: nodeIDs, pathIDs: pathIDs, stops: stops, visited: visited,
		assignee: assignee, distance: distance, status: status, version: version}, nil
}

// ID returns the route identifier.
func (r *Route) ID() kernel.UUID { return r.id }

// Tenant returns the owning tenant.
func (r *Route) Tenant() kernel.TenantID { return r.tenant }

// PlanID returns the plan the route belongs to.
func (r *Route) PlanID() kernel.UUID { return r.planID }

// DependID returns the route that must complete first, or nil.
func (r *Route) DependID() *kernel.UUID { return r.dependID }

// NodeIDs returns the full ordered traversal.
func (r *Route) NodeIDs() []int32 { return r.nodeIDs }

// PathIDs returns the paths connecting each consecutive node pair.
func (r *Route) PathIDs() []int32 { return r.pathIDs }

// Stops returns the nodes the picker collects items at, in visiting order.
func (r *Route) Stops() []int32 { return r.stops }

// Visited returns how many stops have been reported.
func (r *Route) Visited() int { return r.visited }

// NextStop returns the next unvisited stop node, or false when all stops are
// reported.
func (r *Route) NextStop() (int32, bool) {
	if r.visited >= len(r.stops) {
		return 0, false
	}
	return r.stops[r.visited], true
}

// Assignee returns the claiming picker, empty while pending.
func (r *Route) Assignee() string { return r.assignee }

// Distance returns the total traversal distance.
func (r *Route) Distance() float64 { return r.distance }

// Status returns the lifecycle state.
func (r *Route) Status() RouteStatus { return r.status }

// Version returns the current aggregate version.
func (r *Route) Version() kernel.Version { return r.version }

// PendingEvents returns the events recorded since the aggregate was loaded.
func (r *Route) PendingEvents() []RouteEvent { return r.pending }

// ClearPendingEvents drops the buffered events after a successful save.
func (r *Route) ClearPendingEvents() { r.pending = nil }

// UsesPath reports whether the stored traversal crosses the given path.
func (r *Route) UsesPath(pathID int32) bool {
	for _, p := range r.pathIDs {
		if p == pathID {
			return true
		}
	}
	return false
}

func (r *Route) propose(expected kernel.Version, next RouteStatus, nodeID int32, now time.Time) error {
	proposed, err := r.version.Propose(expected)
	if err != nil {
		return err
	}

	event, err := NewRouteEvent(r.tenant, r.id, proposed, next, nodeID, now)
	if err != nil {
		return err
	}

	r.version = proposed
	r.status = next
	r.pending = append(r.pending, event)
	return nil
}

// Claim assigns the route to one picker. Claiming a stale route fails with
// ErrRouteIsStale; claiming anything but a pending route fails the state
// machine; a stale expected version loses the race with ErrVersionConflict.
func (r *Route) Claim(expected kernel.Version, assignee string, now time.Time) error {
	if assignee == "" {
		return errs.NewValueIsRequiredError("assignee")
	}
	if r.status == RouteStatusStale {
		return fmt.Errorf("route %s: %w", r.id, ErrRouteIsStale)
	}
	// Version first: a second claimant holding the version it read must see a
	// conflict, not a state-machine complaint about the winner's claim.
	if _, err := r.version.Propose(expected); err != nil {
		return err
	}
	if r.status != RouteStatusPending {
		return fmt.Errorf("route is %s, not pending: %w", r.status, errs.ErrInvalidState)
	}

	if err := r.propose(expected, RouteStatusAssigned, 0, now); err != nil {
		return err
	}
	r.assignee = assignee
	return nil
}

// ReportStep records arrival at the next stop in visiting order. The status
// stays assigned; the event carries the visited node.
func (r *Route) ReportStep(expected kernel.Version, nodeID int32, now time.Time) error {
	if r.status != RouteStatusAssigned {
		return fmt.Errorf("route is %s, not assigned: %w", r.status, errs.ErrInvalidState)
	}
	next, ok := r.NextStop()
	if !ok {
		return fmt.Errorf("all %d stops already reported: %w", len(r.stops), errs.ErrInvalidState)
	}
	if nodeID != next {
		return fmt.Errorf("expected stop %d, got %d: %w", next, nodeID, errs.ErrInvalidState)
	}

	if err := r.propose(expected, RouteStatusAssigned, nodeID, now); err != nil {
		return err
	}
	r.visited++
	return nil
}

// Complete closes the route once every stop is reported. Dependency ordering
// across routes is checked by the command handler, which loads the
// predecessor.
func (r *Route) Complete(expected kernel.Version, now time.Time) error {
	if r.status != RouteStatusAssigned {
		return fmt.Errorf("route is %s, not assigned: %w", r.status, errs.ErrInvalidState)
	}
	if r.visited < len(r.stops) {
		return fmt.Errorf("%d of %d stops reported: %w", r.visited, len(r.stops), errs.ErrInvalidState)
	}

	return r.propose(expected, RouteStatusCompleted, 0, now)
}

// MarkStale invalidates the route after a topology change. Only pending and
// assigned routes can go stale; finished routes keep their outcome.
func (r *Route) MarkStale(expected kernel.Version, now time.Time) error {
	if r.status.IsTerminal() {
		return fmt.Errorf("route is %s: %w", r.status, errs.ErrTerminalState)
	}

	return r.propose(expected, RouteStatusStale, 0, now)
}

// Cancel closes the route with its aborted plan.
func (r *Route) Cancel(expected kernel.Version, now time.Time) error {
	if r.status.IsTerminal() {
		return fmt.Errorf("route is %s: %w", r.status, errs.ErrTerminalState)
	}

	return r.propose(expected, RouteStatusCancelled, 0, now)
}

// ValidateDependencies checks a freshly computed batch of routes: every
// dependID references another route in the batch and the dependency chain is
// acyclic.
func ValidateDependencies(routes []*Route) error {
	byID := make(map[kernel.UUID]*Route, len(routes))
	for _, r := range routes {
		byID[r.id] = r
	}

	for _, r := range routes {
		seen := map[kernel.UUID]struct{}{r.id: {}}
		for cur := r.dependID; cur != nil; {
			dep, ok := byID[*cur]
			if !ok {
				return errs.NewObjectNotFoundError("depend route", cur.String())
			}
			if _, cycle := seen[dep.id]; cycle {
				return errs.NewValueIsInvalidErrorWithCause("route dependencies",
					fmt.Errorf("cycle through route %s", dep.id))
			}
			seen[dep.id] = struct{}{}
			cur = dep.dependID
		}
	}
	return nil
}
