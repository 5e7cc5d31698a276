package commands

import (
	"errors"

	"parcelmate/internal/pkg/guard"
)

var ErrCompleteDeliveredOrdersCommandIsNotConstructed = errors.New(
	"CompleteDeliveredOrdersCommand must be created via NewCompleteDeliveredOrdersCommand constructor",
)

// CompleteDeliveredOrdersCommand triggers settlement of every order stuck
// in the Delivered status. Delivery confirmation and settlement run as
// separate steps, so a crash between them leaves the order Delivered;
// this batch operation sweeps those up.
type CompleteDeliveredOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewCompleteDeliveredOrdersCommand creates a command to settle all
// delivered orders. This is a parameterless command meant for periodic
// execution.
func NewCompleteDeliveredOrdersCommand() CompleteDeliveredOrdersCommand {
	return CompleteDeliveredOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveredOrdersCommandIsNotConstructed)
}
