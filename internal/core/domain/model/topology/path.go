package topology

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// PathStatus is the administrative state of a path.
type PathStatus int

const (
	// PathStatusUnknown catches uninitialized values.
	PathStatusUnknown PathStatus = iota

	// PathStatusActive marks a traversable path.
	PathStatusActive

	// PathStatusBlocked marks a path the routing engine must never select.
	PathStatusBlocked
)

// Validate checks the status is one of the defined values.
func (s PathStatus) Validate() error {
	if s != PathStatusActive && s != PathStatusBlocked {
		return errs.NewValueIsInvalidErrorWithCause("path status",
			fmt.Errorf("%d is not a valid path status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s PathStatus) String() string {
	switch s {
	case PathStatusActive:
		return "active"
	case PathStatusBlocked:
		return "blocked"
	case PathStatusUnknown:
	}
	return "unknown"
}

// Path is a weighted edge between two nodes. A one-way path is traversable
// only from From to To; otherwise both directions are usable. Waypoints are
// intermediate floor positions used for rendering and distance refinement,
// not graph vertices.
type Path struct {
	id        int32
	tenant    kernel.TenantID
	fromNode  int32
	toNode    int32
	distance  float64
	waypoints []kernel.Point
	oneWay    bool
	status    PathStatus
}

// NewPath creates an active path with a validated positive distance.
func NewPath(id int32, tenant kernel.TenantID, fromNode, toNode int32, distance float64, waypoints []kernel.Point, oneWay bool) (*Path, error) {
	return RestorePath(id, tenant, fromNode, toNode, distance, waypoints, oneWay, PathStatusActive)
}

// RestorePath reconstructs a path from persistence with an explicit status.
func RestorePath(id int32, tenant kernel.TenantID, fromNode, toNode int32, distance float64, waypoints []kernel.Point, oneWay bool, status PathStatus) (*Path, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if fromNode <= 0 || toNode <= 0 || fromNode == toNode {
		return nil, errs.NewValueIsInvalidErrorWithCause("path endpoints",
			fmt.Errorf("%d -> %d is not a valid node pair", fromNode, toNode))
	}
	if distance <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("distance",
			fmt.Errorf("%v is not a positive distance", distance))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	for _, wp := range waypoints {
		if err := wp.Validate(); err != nil {
			return nil, err
		}
	}

	return &Path{
		id:        id,
		tenant:    tenant,
		fromNode:  fromNode,
		toNode:    toNode,
		distance:  distance,
		waypoints: waypoints,
		oneWay:    oneWay,
		status:    status,
	}, nil
}

// ID returns the path identifier.
func (p *Path) ID() int32 { return p.id }

// Tenant returns the owning tenant.
func (p *Path) Tenant() kernel.TenantID { return p.tenant }

// From returns the origin node id.
func (p *Path) From() int32 { return p.fromNode }

// To returns the destination node id.
func (p *Path) To() int32 { return p.toNode }

// Distance returns the traversal cost in meters.
func (p *Path) Distance() float64 { return p.distance }

// Waypoints returns the intermediate floor positions, in order.
func (p *Path) Waypoints() []kernel.Point { return p.waypoints }

// IsOneWay reports whether the path is traversable only From -> To.
func (p *Path) IsOneWay() bool { return p.oneWay }

// Status returns the administrative state.
func (p *Path) Status() PathStatus { return p.status }

// IsUsable reports whether the routing engine may select this path.
func (p *Path) IsUsable() bool { return p.status == PathStatusActive }

// Block marks the path unusable. Routes whose stored sequence includes it must
// be flagged stale by the caller in the same transaction.
func (p *Path) Block() {
	p.status = PathStatusBlocked
}

// Unblock restores the path after repair.
func (p *Path) Unblock() {
	p.status = PathStatusActive
}
