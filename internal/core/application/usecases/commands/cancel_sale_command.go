package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelSaleCommandIsNotConstructed = errors.New(
	"CancelSaleCommand must be created via NewCancelSaleCommand constructor",
)

// CancelSaleCommand represents a request to cancel a sale and release its
// reserved inventory.
type CancelSaleCommand struct { //nolint:recvcheck //using for validation
	tenant kernel.TenantID
	saleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelSaleCommand creates a cancellation command.
func NewCancelSaleCommand(tenant kernel.TenantID, saleID kernel.UUID) (CancelSaleCommand, error) {
	cmd := CancelSaleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setSaleID(saleID),
	); err != nil {
		return CancelSaleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelSaleCommand) Validate() error {
	return c.guard.Validate(ErrCancelSaleCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c CancelSaleCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// SaleID returns the sale to cancel.
func (c CancelSaleCommand) SaleID() kernel.UUID {
	return c.saleID
}

func (c *CancelSaleCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *CancelSaleCommand) setSaleID(saleID kernel.UUID) error {
	if err := saleID.Validate(); err != nil {
		return err
	}

	c.saleID = saleID
	return nil
}
