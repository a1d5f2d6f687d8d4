package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// Administrative inventory commands: catalog stocks and shelves. Validation
// lives in the domain constructors, the commands just pin tenant and input.

var ErrInventoryCommandIsNotConstructed = errors.New(
	"inventory commands must be created via their constructors",
)

// CreateStockCommand creates a sellable catalog stock.
type CreateStockCommand struct { //nolint:recvcheck //using for validation
	tenant kernel.TenantID
	name   string
	unit   string

	guard guard.ConstructorGuard
}

// NewCreateStockCommand creates a stock creation command.
func NewCreateStockCommand(tenant kernel.TenantID, name, unit string) (CreateStockCommand, error) {
	cmd := CreateStockCommand{
		name:  name,
		unit:  unit,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTenant(tenant); err != nil {
		return CreateStockCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateStockCommand) Validate() error {
	return c.guard.Validate(ErrInventoryCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c CreateStockCommand) Tenant() kernel.TenantID { return c.tenant }

// Name returns the stock name.
func (c CreateStockCommand) Name() string { return c.name }

// Unit returns the unit of measure.
func (c CreateStockCommand) Unit() string { return c.unit }

func (c *CreateStockCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

// CreateShelfCommand creates a shelf anchored to a topology node.
type CreateShelfCommand struct { //nolint:recvcheck //using for validation
	tenant kernel.TenantID
	zoneID int32
	nodeID int32
	name   string

	guard guard.ConstructorGuard
}

// NewCreateShelfCommand creates a shelf creation command.
func NewCreateShelfCommand(tenant kernel.TenantID, zoneID, nodeID int32, name string) (CreateShelfCommand, error) {
	cmd := CreateShelfCommand{
		zoneID: zoneID,
		nodeID: nodeID,
		name:   name,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setTenant(tenant); err != nil {
		return CreateShelfCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShelfCommand) Validate() error {
	return c.guard.Validate(ErrInventoryCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c CreateShelfCommand) Tenant() kernel.TenantID { return c.tenant }

// ZoneID returns the zone the shelf belongs to.
func (c CreateShelfCommand) ZoneID() int32 { return c.zoneID }

// NodeID returns the topology node the shelf is reached from.
func (c CreateShelfCommand) NodeID() int32 { return c.nodeID }

// Name returns the shelf label.
func (c CreateShelfCommand) Name() string { return c.name }

func (c *CreateShelfCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

// SetShelfPublicationCommand publishes or hides a shelf for allocation.
type SetShelfPublicationCommand struct { //nolint:recvcheck //using for validation
	tenant    kernel.TenantID
	shelfID   int32
	published bool

	guard guard.ConstructorGuard
}

// NewSetShelfPublicationCommand creates a shelf publication command.
func NewSetShelfPublicationCommand(tenant kernel.TenantID, shelfID int32,
	published bool) (SetShelfPublicationCommand, error) {
	cmd := SetShelfPublicationCommand{
		shelfID:   shelfID,
		published: published,
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setTenant(tenant); err != nil {
		return SetShelfPublicationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetShelfPublicationCommand) Validate() error {
	return c.guard.Validate(ErrInventoryCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c SetShelfPublicationCommand) Tenant() kernel.TenantID { return c.tenant }

// ShelfID returns the shelf to publish or hide.
func (c SetShelfPublicationCommand) ShelfID() int32 { return c.shelfID }

// Published reports the target publication state.
func (c SetShelfPublicationCommand) Published() bool { return c.published }

func (c *SetShelfPublicationCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}
