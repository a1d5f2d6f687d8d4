package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrClaimRouteCommandIsNotConstructed = errors.New(
		"ClaimRouteCommand must be created via NewClaimRouteCommand constructor",
	)
	ErrAssigneeIsRequired = errors.New("assignee is required")
)

// ClaimRouteCommand represents a picker's request to claim a pending route at
// the version they read from the assignable listing.
type ClaimRouteCommand struct { //nolint:recvcheck //using for validation
	tenant          kernel.TenantID
	routeID         kernel.UUID
	assignee        string
	expectedVersion kernel.Version

	guard guard.ConstructorGuard
}

// NewClaimRouteCommand creates a claim command.
func NewClaimRouteCommand(tenant kernel.TenantID, routeID kernel.UUID,
	assignee string, expectedVersion kernel.Version) (ClaimRouteCommand, error) {
	cmd := ClaimRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setRouteID(routeID),
		cmd.setAssignee(assignee),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return ClaimRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimRouteCommand) Validate() error {
	return c.guard.Validate(ErrClaimRouteCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c ClaimRouteCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// RouteID returns the route to claim.
func (c ClaimRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Assignee returns the claiming picker.
func (c ClaimRouteCommand) Assignee() string {
	return c.assignee
}

// ExpectedVersion returns the version the picker read before claiming.
func (c ClaimRouteCommand) ExpectedVersion() kernel.Version {
	return c.expectedVersion
}

func (c *ClaimRouteCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *ClaimRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *ClaimRouteCommand) setAssignee(assignee string) error {
	if assignee == "" {
		return ErrAssigneeIsRequired
	}

	c.assignee = assignee
	return nil
}

func (c *ClaimRouteCommand) setExpectedVersion(expectedVersion kernel.Version) error {
	if err := expectedVersion.Validate(); err != nil {
		return err
	}

	c.expectedVersion = expectedVersion
	return nil
}
