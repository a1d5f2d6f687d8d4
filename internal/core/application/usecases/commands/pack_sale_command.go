package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrPackSaleCommandIsNotConstructed = errors.New(
	"PackSaleCommand must be created via NewPackSaleCommand constructor",
)

// PackSaleCommand represents a request to mark a picked sale as packed.
type PackSaleCommand struct { //nolint:recvcheck //using for validation
	tenant kernel.TenantID
	saleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPackSaleCommand creates a packing command.
func NewPackSaleCommand(tenant kernel.TenantID, saleID kernel.UUID) (PackSaleCommand, error) {
	cmd := PackSaleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setSaleID(saleID),
	); err != nil {
		return PackSaleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PackSaleCommand) Validate() error {
	return c.guard.Validate(ErrPackSaleCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c PackSaleCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// SaleID returns the sale to pack.
func (c PackSaleCommand) SaleID() kernel.UUID {
	return c.saleID
}

func (c *PackSaleCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *PackSaleCommand) setSaleID(saleID kernel.UUID) error {
	if err := saleID.Validate(); err != nil {
		return err
	}

	c.saleID = saleID
	return nil
}
