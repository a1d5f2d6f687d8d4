package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrShipSaleCommandIsNotConstructed = errors.New(
	"ShipSaleCommand must be created via NewShipSaleCommand constructor",
)

// ShipSaleCommand represents a request to ship a packed sale.
type ShipSaleCommand struct { //nolint:recvcheck //using for validation
	tenant kernel.TenantID
	saleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewShipSaleCommand creates a shipping command.
func NewShipSaleCommand(tenant kernel.TenantID, saleID kernel.UUID) (ShipSaleCommand, error) {
	cmd := ShipSaleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setSaleID(saleID),
	); err != nil {
		return ShipSaleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipSaleCommand) Validate() error {
	return c.guard.Validate(ErrShipSaleCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c ShipSaleCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// SaleID returns the sale to ship.
func (c ShipSaleCommand) SaleID() kernel.UUID {
	return c.saleID
}

func (c *ShipSaleCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *ShipSaleCommand) setSaleID(saleID kernel.UUID) error {
	if err := saleID.Validate(); err != nil {
		return err
	}

	c.saleID = saleID
	return nil
}
