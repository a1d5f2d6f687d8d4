package topology

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// NodeKind classifies what a node gives access to.
type NodeKind int

const (
	// NodeKindUnknown catches uninitialized values.
	NodeKindUnknown NodeKind = iota

	// NodeKindDock is a loading dock, the usual start and end of a route.
	NodeKindDock

	// NodeKindShelfAccess is a stop from which one or more shelves are picked.
	NodeKindShelfAccess

	// NodeKindJunction is a pure waypoint in the aisle network.
	NodeKindJunction
)

func nodeKindStrings() map[NodeKind]string {
	return map[NodeKind]string{
		NodeKindUnknown:     "unknown",
		NodeKindDock:        "dock",
		NodeKindShelfAccess: "shelf-access",
		NodeKindJunction:    "junction",
	}
}

// Validate checks the kind is one of the defined values.
func (k NodeKind) Validate() error {
	switch k {
	case NodeKindDock, NodeKindShelfAccess, NodeKindJunction:
		return nil
	case NodeKindUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("node kind",
		fmt.Errorf("%d is not a valid node kind", k))
}

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	if s, ok := nodeKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// Node is a position in the warehouse graph. It belongs to exactly one zone.
type Node struct {
	id       int32
	tenant   kernel.TenantID
	zoneID   int32
	name     string
	kind     NodeKind
	position kernel.Point
}

// NewNode creates a node with validated kind and position.
func NewNode(id int32, tenant kernel.TenantID, zoneID int32, name string, kind NodeKind, position kernel.Point) (*Node, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if zoneID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("zoneId",
			fmt.Errorf("%d is not a valid zone id", zoneID))
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := position.Validate(); err != nil {
		return nil, err
	}

	return &Node{id: id, tenant: tenant, zoneID: zoneID, name: name, kind: kind, position: position}, nil
}

// ID returns the node identifier.
func (n *Node) ID() int32 { return n.id }

// Tenant returns the owning tenant.
func (n *Node) Tenant() kernel.TenantID { return n.tenant }

// ZoneID returns the zone the node belongs to.
func (n *Node) ZoneID() int32 { return n.zoneID }

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Kind returns the node kind.
func (n *Node) Kind() NodeKind { return n.kind }

// Position returns the node position on the floor.
func (n *Node) Position() kernel.Point { return n.position }

// MoveTo relocates the node. This is an administrative edit; routes computed
// against the old position stay valid because edges carry explicit distances.
func (n *Node) MoveTo(position kernel.Point) error {
	if err := position.Validate(); err != nil {
		return err
	}
	n.position = position
	return nil
}
