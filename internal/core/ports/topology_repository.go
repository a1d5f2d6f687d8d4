package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/topology"
)

// TopologyRepository defines the persistence contract for the warehouse
// layout: zones, nodes, and paths. GetGraph loads a consistent snapshot the
// routing engine operates on; administrative edits invalidate it, so callers
// reload per operation.
type TopologyRepository interface {
	// AddZone persists a new zone.
	AddZone(ctx context.Context, zone *topology.Zone) error

	// AddNode persists a new node.
	AddNode(ctx context.Context, node *topology.Node) error

	// UpdateNode persists a moved node.
	UpdateNode(ctx context.Context, node *topology.Node) error

	// GetNode retrieves a node by id within a tenant.
	GetNode(ctx context.Context, tenant kernel.TenantID, id int32) (*topology.Node, error)

	// AddPath persists a new path.
	AddPath(ctx context.Context, path *topology.Path) error

	// UpdatePath persists a blocked or unblocked path.
	UpdatePath(ctx context.Context, path *topology.Path) error

	// GetPath retrieves a path by id within a tenant.
	GetPath(ctx context.Context, tenant kernel.TenantID, id int32) (*topology.Path, error)

	// GetGraph loads the full topology of a tenant as an immutable snapshot.
	GetGraph(ctx context.Context, tenant kernel.TenantID) (*topology.Graph, error)
}
