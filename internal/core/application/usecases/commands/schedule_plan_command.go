package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSchedulePlanCommandIsNotConstructed = errors.New(
		"SchedulePlanCommand must be created via NewSchedulePlanCommand constructor",
	)
	ErrSaleIDsAreRequired = errors.New("at least one sale id is required")
)

// SchedulePlanCommand represents a request to group allocated sales into one
// picking plan, optionally restricted to a zone scope.
type SchedulePlanCommand struct { //nolint:recvcheck //using for validation
	tenant  kernel.TenantID
	saleIDs []kernel.UUID
	zoneIDs []int32

	guard guard.ConstructorGuard
}

// NewSchedulePlanCommand creates a scheduling command.
func NewSchedulePlanCommand(tenant kernel.TenantID, saleIDs []kernel.UUID, zoneIDs []int32) (SchedulePlanCommand, error) {
	cmd := SchedulePlanCommand{
		zoneIDs: zoneIDs,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setSaleIDs(saleIDs),
	); err != nil {
		return SchedulePlanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SchedulePlanCommand) Validate() error {
	return c.guard.Validate(ErrSchedulePlanCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c SchedulePlanCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// SaleIDs returns the sales to plan.
func (c SchedulePlanCommand) SaleIDs() []kernel.UUID {
	return c.saleIDs
}

// ZoneIDs returns the zone scope; empty means the whole warehouse.
func (c SchedulePlanCommand) ZoneIDs() []int32 {
	return c.zoneIDs
}

func (c *SchedulePlanCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *SchedulePlanCommand) setSaleIDs(saleIDs []kernel.UUID) error {
	if len(saleIDs) == 0 {
		return ErrSaleIDsAreRequired
	}
	for _, id := range saleIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.saleIDs = saleIDs
	return nil
}
