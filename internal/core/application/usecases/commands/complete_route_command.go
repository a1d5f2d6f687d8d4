package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteRouteCommandIsNotConstructed = errors.New(
	"CompleteRouteCommand must be created via NewCompleteRouteCommand constructor",
)

// CompleteRouteCommand represents a picker finishing their assigned route.
type CompleteRouteCommand struct { //nolint:recvcheck //using for validation
	tenant          kernel.TenantID
	routeID         kernel.UUID
	expectedVersion kernel.Version

	guard guard.ConstructorGuard
}

// NewCompleteRouteCommand creates a completion command.
func NewCompleteRouteCommand(tenant kernel.TenantID, routeID kernel.UUID,
	expectedVersion kernel.Version) (CompleteRouteCommand, error) {
	cmd := CompleteRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setRouteID(routeID),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return CompleteRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteRouteCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRouteCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c CompleteRouteCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// RouteID returns the route to complete.
func (c CompleteRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

// ExpectedVersion returns the version the picker read before completing.
func (c CompleteRouteCommand) ExpectedVersion() kernel.Version {
	return c.expectedVersion
}

func (c *CompleteRouteCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *CompleteRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *CompleteRouteCommand) setExpectedVersion(expectedVersion kernel.Version) error {
	if err := expectedVersion.Validate(); err != nil {
		return err
	}

	c.expectedVersion = expectedVersion
	return nil
}
