package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrBlockPathCommandIsNotConstructed = errors.New(
		"BlockPathCommand must be created via NewBlockPathCommand constructor",
	)
	ErrPathIDIsInvalid = errors.New("path id must be positive")
)

// BlockPathCommand represents an administrative request to block a path,
// invalidating every active route that crosses it.
type BlockPathCommand struct { //nolint:recvcheck //using for validation
	tenant kernel.TenantID
	pathID int32

	guard guard.ConstructorGuard
}

// NewBlockPathCommand creates a block command.
func NewBlockPathCommand(tenant kernel.TenantID, pathID int32) (BlockPathCommand, error) {
	cmd := BlockPathCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenant(tenant),
		cmd.setPathID(pathID),
	); err != nil {
		return BlockPathCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BlockPathCommand) Validate() error {
	return c.guard.Validate(ErrBlockPathCommandIsNotConstructed)
}

// Tenant returns the tenant scope.
func (c BlockPathCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// PathID returns the path to block.
func (c BlockPathCommand) PathID() int32 {
	return c.pathID
}

func (c *BlockPathCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}

	c.tenant = tenant
	return nil
}

func (c *BlockPathCommand) setPathID(pathID int32) error {
	if pathID <= 0 {
		return ErrPathIDIsInvalid
	}

	c.pathID = pathID
	return nil
}
