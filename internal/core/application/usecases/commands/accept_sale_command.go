package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAcceptSaleCommandIsNotConstructed = errors.New(
		"AcceptSaleCommand must be created via NewAcceptSaleCommand constructor",
	)
	ErrOrderRefIsRequired = errors.New("order ref is required")
	ErrLinesAreRequired   = errors.New("at least one sale line is required")
	ErrLineIsInvalid      = errors.New("sale line needs a stock id and a positive quantity")
)

// AcceptSaleCommand represents a request to accept an incoming order:
// reserve inventory for every line and create the sale.
type AcceptSaleCommand struct { //nolint:recvcheck //using for validation
	tenant   kernel.TenantID
	orderRef string
	lines    []sale.Line

	guard guard.ConstructorGuard
}

// NewAcceptSaleCommand creates a command to accept an order. Validates the
// tenant, the order ref, and every line.
func NewAcceptSaleCommand(tenant kernel.TenantID, orderRef string, lines []sale.Line) (AcceptSaleCommand, error) {
	cmd := AcceptSaleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setOrderRef(orderRef),
		cmd.setLines(lines),
	); err != nil {
		return AcceptSaleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptSaleCommand) Validate() error {
	return c.guard.Validate(ErrAcceptSaleCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c AcceptSaleCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// OrderRef returns the tenant-unique order reference.
func (c AcceptSaleCommand) OrderRef() string {
	return c.orderRef
}

// Lines returns the requested positions.
func (c AcceptSaleCommand) Lines() []sale.Line {
	return c.lines
}

func (c *AcceptSaleCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *AcceptSaleCommand) setOrderRef(orderRef string) error {
	if orderRef == "" {
		return ErrOrderRefIsRequired
	}

	c.orderRef = orderRef
	return nil
}

func (c *AcceptSaleCommand) setLines(lines []sale.Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for _, l := range lines {
		if l.StockID <= 0 || l.Quantity <= 0 {
			return ErrLineIsInvalid
		}
	}

	c.lines = lines
	return nil
}
