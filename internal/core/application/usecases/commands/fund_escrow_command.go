package commands

import (
	"errors"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/guard"
)

var ErrFundEscrowCommandIsNotConstructed = errors.New(
	"FundEscrowCommand must be created via NewFundEscrowCommand constructor",
)

// FundEscrowCommand represents the customer funding the escrow for an
// accepted order: reward plus commission get held until settlement or
// refund.
type FundEscrowCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFundEscrowCommand creates a command to fund an order's escrow.
func NewFundEscrowCommand(orderID kernel.UUID) (FundEscrowCommand, error) {
	cmd := FundEscrowCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return FundEscrowCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FundEscrowCommand) Validate() error {
	return c.guard.Validate(ErrFundEscrowCommandIsNotConstructed)
}

// OrderID returns the order whose escrow is being funded.
func (c FundEscrowCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *FundEscrowCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
