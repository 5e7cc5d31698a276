package commands

import (
	"errors"

	"parcelmate/internal/core/domain/model/account"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/guard"
)

var ErrReportProblemCommandIsNotConstructed = errors.New(
	"ReportProblemCommand must be created via NewReportProblemCommand constructor",
)

// ReportProblemCommand represents a party raising a dispute on an in-flight
// or delivered order. The escrow stays held until the dispute is resolved
// out of band.
type ReportProblemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	by      account.Identity

	guard guard.ConstructorGuard
}

// NewReportProblemCommand creates a command to dispute an order on behalf
// of the given party.
func NewReportProblemCommand(orderID kernel.UUID, by account.Identity) (ReportProblemCommand, error) {
	cmd := ReportProblemCommand{
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBy(by),
	)
	if err != nil {
		return ReportProblemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportProblemCommand) Validate() error {
	return c.guard.Validate(ErrReportProblemCommandIsNotConstructed)
}

// OrderID returns the order being disputed.
func (c ReportProblemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// By returns the party raising the dispute.
func (c ReportProblemCommand) By() account.Identity {
	return c.by
}

func (c *ReportProblemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ReportProblemCommand) setBy(by account.Identity) error {
	if err := by.Validate(); err != nil {
		return err
	}
	c.by = by
	return nil
}
