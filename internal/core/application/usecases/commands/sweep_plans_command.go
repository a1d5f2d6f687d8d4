package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSweepPlansCommandIsNotConstructed = errors.New(
	"SweepPlansCommand must be created via NewSweepPlansCommand constructor",
)

// SweepPlansCommand represents one background pass over a tenant's in-progress
// plans, completing those whose routes are all finished and whose goods are
// all ready to pack.
type SweepPlansCommand struct { //nolint:recvcheck //using for validation
	tenant kernel.TenantID

	guard guard.ConstructorGuard
}

// NewSweepPlansCommand creates a sweep command.
func NewSweepPlansCommand(tenant kernel.TenantID) (SweepPlansCommand, error) {
	cmd := SweepPlansCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTenant(tenant); err != nil {
		return SweepPlansCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepPlansCommand) Validate() error {
	return c.guard.Validate(ErrSweepPlansCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c SweepPlansCommand) Tenant() kernel.TenantID {
	return c.tenant
}

func (c *SweepPlansCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}
