package commands

import (
	"errors"

	"parcelmate/internal/core/domain/model/account"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a party cancelling an order before it
// ships. Any held escrow is refunded and any reserved capacity returned.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	by      account.Identity

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order on behalf of
// the given party.
func NewCancelOrderCommand(orderID kernel.UUID, by account.Identity) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBy(by),
	)
	if err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order being cancelled.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// By returns the party requesting the cancellation.
func (c CancelOrderCommand) By() account.Identity {
	return c.by
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setBy(by account.Identity) error {
	if err := by.Validate(); err != nil {
		return err
	}
	c.by = by
	return nil
}
