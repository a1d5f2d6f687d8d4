package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrComputeRoutesCommandIsNotConstructed = errors.New(
		"ComputeRoutesCommand must be created via NewComputeRoutesCommand constructor",
	)
	ErrStartNodeIsInvalid = errors.New("start node id must be positive")
)

// ComputeRoutesCommand represents a request to compute the picking routes of
// a scheduled plan, starting from the given node.
type ComputeRoutesCommand struct { //nolint:recvcheck //using for validation
	tenant    kernel.TenantID
	planID    kernel.UUID
	startNode int32

	guard guard.ConstructorGuard
}

// NewComputeRoutesCommand creates a route computation command.
func NewComputeRoutesCommand(tenant kernel.TenantID, planID kernel.UUID, startNode int32) (ComputeRoutesCommand, error) {
	cmd := ComputeRoutesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setPlanID(planID),
		cmd.setStartNode(startNode),
	); err != nil {
		return ComputeRoutesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ComputeRoutesCommand) Validate() error {
	return c.guard.Validate(ErrComputeRoutesCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c ComputeRoutesCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// PlanID returns the plan to compute routes for.
func (c ComputeRoutesCommand) PlanID() kernel.UUID {
	return c.planID
}

// StartNode returns the node pickers depart from, typically a dock.
func (c ComputeRoutesCommand) StartNode() int32 {
	return c.startNode
}

func (c *ComputeRoutesCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *ComputeRoutesCommand) setPlanID(planID kernel.UUID) error {
	if err := planID.Validate(); err != nil {
		return err
	}

	c.planID = planID
	return nil
}

func (c *ComputeRoutesCommand) setStartNode(startNode int32) error {
	if startNode <= 0 {
		return ErrStartNodeIsInvalid
	}

	c.startNode = startNode
	return nil
}
