package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrRotatePartitionsCommandIsNotConstructed = errors.New(
		"RotatePartitionsCommand must be created via NewRotatePartitionsCommand constructor",
	)
	ErrRetainPeriodsIsInvalid = errors.New("retain periods must be positive")
)

// RotatePartitionsCommand represents a retention run over the event ledgers:
// ensure upcoming partitions exist and drop those older than the retention
// window.
type RotatePartitionsCommand struct { //nolint:recvcheck //using for validation
	retainPeriods int

	guard guard.ConstructorGuard
}

// NewRotatePartitionsCommand creates a retention command keeping the given
// number of monthly periods.
func NewRotatePartitionsCommand(retainPeriods int) (RotatePartitionsCommand, error) {
	cmd := RotatePartitionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRetainPeriods(retainPeriods); err != nil {
		return RotatePartitionsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RotatePartitionsCommand) Validate() error {
	return c.guard.Validate(ErrRotatePartitionsCommandIsNotConstructed)
}

// RetainPeriods returns how many monthly periods stay.
func (c RotatePartitionsCommand) RetainPeriods() int {
	return c.retainPeriods
}

func (c *RotatePartitionsCommand) setRetainPeriods(retainPeriods int) error {
	if retainPeriods <= 0 {
		return ErrRetainPeriodsIsInvalid
	}

	c.retainPeriods = retainPeriods
	return nil
}
