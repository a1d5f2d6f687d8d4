package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrReportStepCommandIsNotConstructed = errors.New(
		"ReportStepCommand must be created via NewReportStepCommand constructor",
	)
	ErrNodeIDIsInvalid = errors.New("node id must be positive")
)

// ReportStepCommand represents a picker reporting arrival at the next stop of
// their assigned route.
type ReportStepCommand struct { //nolint:recvcheck //using for validation
	tenant          kernel.TenantID
	routeID         kernel.UUID
	nodeID          int32
	expectedVersion kernel.Version

	guard guard.ConstructorGuard
}

// NewReportStepCommand creates a step report command.
func NewReportStepCommand(tenant kernel.TenantID, routeID kernel.UUID,
	nodeID int32, expectedVersion kernel.Version) (ReportStepCommand, error) {
	cmd := ReportStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setRouteID(routeID),
		cmd.setNodeID(nodeID),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return ReportStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportStepCommand) Validate() error {
	return c.guard.Validate(ErrReportStepCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c ReportStepCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// RouteID returns the route being walked.
func (c ReportStepCommand) RouteID() kernel.UUID {
	return c.routeID
}

// NodeID returns the stop the picker arrived at.
func (c ReportStepCommand) NodeID() int32 {
	return c.nodeID
}

// ExpectedVersion returns the version the picker read before reporting.
func (c ReportStepCommand) ExpectedVersion() kernel.Version {
	return c.expectedVersion
}

func (c *ReportStepCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *ReportStepCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *ReportStepCommand) setNodeID(nodeID int32) error {
	if nodeID <= 0 {
		return ErrNodeIDIsInvalid
	}

	c.nodeID = nodeID
	return nil
}

func (c *ReportStepCommand) setExpectedVersion(expectedVersion kernel.Version) error {
	if err := expectedVersion.Validate(); err != nil {
		return err
	}

	c.expectedVersion = expectedVersion
	return nil
}
