package commands

import (
	"errors"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/guard"
)

var ErrMarkDepartedCommandIsNotConstructed = errors.New(
	"MarkDepartedCommand must be created via NewMarkDepartedCommand constructor",
)

// MarkDepartedCommand represents the flight departure tracking event for
// an escrowed order.
type MarkDepartedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDepartedCommand creates a command to mark an order in transit.
func NewMarkDepartedCommand(orderID kernel.UUID) (MarkDepartedCommand, error) {
	cmd := MarkDepartedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return MarkDepartedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDepartedCommand) Validate() error {
	return c.guard.Validate(ErrMarkDepartedCommandIsNotConstructed)
}

// OrderID returns the order whose flight departed.
func (c MarkDepartedCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkDepartedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
