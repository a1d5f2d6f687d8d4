package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/topology"
	"fulfillment/internal/pkg/guard"
)

// Administrative topology commands. These are thin: the domain constructors
// carry the validation, so the commands only pin the tenant scope and the raw
// input together.

var (
	ErrTopologyCommandIsNotConstructed = errors.New(
		"topology commands must be created via their constructors",
	)
	ErrNameIsRequired = errors.New("name is required")
)

// CreateZoneCommand creates a named zone with rectangular bounds.
type CreateZoneCommand struct { //nolint:recvcheck //using for validation
	tenant kernel.TenantID
	name   string
	bounds kernel.Rect

	guard guard.ConstructorGuard
}

// NewCreateZoneCommand creates a zone creation command.
func NewCreateZoneCommand(tenant kernel.TenantID, name string, bounds kernel.Rect) (CreateZoneCommand, error) {
	cmd := CreateZoneCommand{
		bounds: bounds,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setName(name),
	); err != nil {
		return CreateZoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateZoneCommand) Validate() error {
	return c.guard.Validate(ErrTopologyCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c CreateZoneCommand) Tenant() kernel.TenantID { return c.tenant }

// Name returns the zone name.
func (c CreateZoneCommand) Name() string { return c.name }

// Bounds returns the zone bounds.
func (c CreateZoneCommand) Bounds() kernel.Rect { return c.bounds }

func (c *CreateZoneCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

func (c *CreateZoneCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

// CreateNodeCommand creates a walkable node inside a zone.
type CreateNodeCommand struct { //nolint:recvcheck //using for validation
	tenant   kernel.TenantID
	zoneID   int32
	name     string
	kind     topology.NodeKind
	position kernel.Point

	guard guard.ConstructorGuard
}

// NewCreateNodeCommand creates a node creation command.
func NewCreateNodeCommand(tenant kernel.TenantID, zoneID int32, name string,
	kind topology.NodeKind, position kernel.Point) (CreateNodeCommand, error) {
	cmd := CreateNodeCommand{
		zoneID:   zoneID,
		name:     name,
		kind:     kind,
		position: position,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setTenant(tenant); err != nil {
		return CreateNodeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateNodeCommand) Validate() error {
	return c.guard.Validate(ErrTopologyCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c CreateNodeCommand) Tenant() kernel.TenantID { return c.tenant }

// ZoneID returns the owning zone.
func (c CreateNodeCommand) ZoneID() int32 { return c.zoneID }

// Name returns the node label.
func (c CreateNodeCommand) Name() string { return c.name }

// Kind returns the node kind.
func (c CreateNodeCommand) Kind() topology.NodeKind { return c.kind }

// Position returns the node coordinates.
func (c CreateNodeCommand) Position() kernel.Point { return c.position }

func (c *CreateNodeCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

// AddPathCommand connects two nodes with a walkable path.
type AddPathCommand struct { //nolint:recvcheck //using for validation
	tenant    kernel.TenantID
	fromNode  int32
	toNode    int32
	distance  float64
	waypoints []kernel.Point
	oneWay    bool

	guard guard.ConstructorGuard
}

// NewAddPathCommand creates a path creation command.
func NewAddPathCommand(tenant kernel.TenantID, fromNode, toNode int32,
	distance float64, waypoints []kernel.Point, oneWay bool) (AddPathCommand, error) {
	cmd := AddPathCommand{
		fromNode:  fromNode,
		toNode:    toNode,
		distance:  distance,
		waypoints: waypoints,
		oneWay:    oneWay,
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setTenant(tenant); err != nil {
		return AddPathCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPathCommand) Validate() error {
	return c.guard.Validate(ErrTopologyCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c AddPathCommand) Tenant() kernel.TenantID { return c.tenant }

// FromNode returns the origin node.
func (c AddPathCommand) FromNode() int32 { return c.fromNode }

// ToNode returns the destination node.
func (c AddPathCommand) ToNode() int32 { return c.toNode }

// Distance returns the walking distance in meters.
func (c AddPathCommand) Distance() float64 { return c.distance }

// Waypoints returns the optional drawn polyline.
func (c AddPathCommand) Waypoints() []kernel.Point { return c.waypoints }

// OneWay reports whether the path is traversable only from-to.
func (c AddPathCommand) OneWay() bool { return c.oneWay }

func (c *AddPathCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

// MoveNodeCommand relocates a node.
type MoveNodeCommand struct { //nolint:recvcheck //using for validation
	tenant   kernel.TenantID
	nodeID   int32
	position kernel.Point

	guard guard.ConstructorGuard
}

// NewMoveNodeCommand creates a node move command.
func NewMoveNodeCommand(tenant kernel.TenantID, nodeID int32, position kernel.Point) (MoveNodeCommand, error) {
	cmd := MoveNodeCommand{
		nodeID:   nodeID,
		position: position,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setNodeID(nodeID),
	); err != nil {
		return MoveNodeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveNodeCommand) Validate() error {
	return c.guard.Validate(ErrTopologyCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c MoveNodeCommand) Tenant() kernel.TenantID { return c.tenant }

// NodeID returns the node to move.
func (c MoveNodeCommand) NodeID() int32 { return c.nodeID }

// Position returns the new coordinates.
func (c MoveNodeCommand) Position() kernel.Point { return c.position }

func (c *MoveNodeCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

func (c *MoveNodeCommand) setNodeID(nodeID int32) error {
	if nodeID <= 0 {
		return ErrNodeIDIsInvalid
	}
	c.nodeID = nodeID
	return nil
}
