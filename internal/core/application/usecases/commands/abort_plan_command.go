package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAbortPlanCommandIsNotConstructed = errors.New(
	"AbortPlanCommand must be created via NewAbortPlanCommand constructor",
)

// AbortPlanCommand represents a request to abort a picking plan and cascade
// cancellation to its sales and routes.
type AbortPlanCommand struct { //nolint:recvcheck //using for validation
	tenant kernel.TenantID
	planID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAbortPlanCommand creates an abort command.
func NewAbortPlanCommand(tenant kernel.TenantID, planID kernel.UUID) (AbortPlanCommand, error) {
	cmd := AbortPlanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setPlanID(planID),
	); err != nil {
		return AbortPlanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AbortPlanCommand) Validate() error {
	return c.guard.Validate(ErrAbortPlanCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c AbortPlanCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// PlanID returns the plan to abort.
func (c AbortPlanCommand) PlanID() kernel.UUID {
	return c.planID
}

func (c *AbortPlanCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *AbortPlanCommand) setPlanID(planID kernel.UUID) error {
	if err := planID.Validate(); err != nil {
		return err
	}

	c.planID = planID
	return nil
}
