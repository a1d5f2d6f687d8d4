package sale

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a sale.
type Status int

const (
	StatusUnknown Status = iota

	// StatusCreated is the entry state before inventory allocation.
	StatusCreated

	// StatusAllocated means inventory is reserved for every line.
	StatusAllocated

	// StatusPickingAssigned means the sale is linked to a scheduled plan.
	StatusPickingAssigned

	// StatusPicked means every reserved unit has been scanned off its shelf.
	StatusPicked

	// StatusPacked means the sale is boxed and awaiting shipment.
	StatusPacked

	// StatusShipped is terminal.
	StatusShipped

	// StatusCancelled is terminal and reachable from any non-terminal state.
	StatusCancelled
)

// Validate checks the status is one of the defined values.
func (s Status) Validate() error {
	switch s {
	case StatusCreated, StatusAllocated, StatusPickingAssigned,
		StatusPicked, StatusPacked, StatusShipped, StatusCancelled:
		return nil
	case StatusUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("sale status",
		fmt.Errorf("%d is not a valid sale status", s))
}

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusAllocated:
		return "allocated"
	case StatusPickingAssigned:
		return "picking_assigned"
	case StatusPicked:
		return "picked"
	case StatusPacked:
		return "packed"
	case StatusShipped:
		return "shipped"
	case StatusCancelled:
		return "cancelled"
	case StatusUnknown:
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

// ValidateTransition checks the state machine. Terminal states reject every
// transition with ErrTerminalState; Cancelled is reachable from any
// non-terminal state; everything else must follow the forward chain.
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return fmt.Errorf("sale is %s: %w", s, errs.ErrTerminalState)
	}
	if next == StatusCancelled {
		return nil
	}

	allowed := map[Status]Status{
		StatusCreated:         StatusAllocated,
		StatusAllocated:       StatusPickingAssigned,
		StatusPickingAssigned: StatusPicked,
		StatusPicked:          StatusPacked,
		StatusPacked:          StatusShipped,
	}
	if allowed[s] != next {
		return fmt.Errorf("sale cannot move from %s to %s: %w", s, next, errs.ErrInvalidState)
	}
	return nil
}
