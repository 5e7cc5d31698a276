package escrow

import (
	"errors"
	"fmt"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"
	"parcelmate/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not
// created through NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")

// Entry is the ledger record for one order's escrowed funds. At most one
// entry exists per order; the held amount is set exactly once at hold time
// and never mutated afterwards, only released or settled.
type Entry struct {
	orderID    kernel.UUID
	heldAmount kernel.Money
	state      State

	guard guard.ConstructorGuard
}

// NewEntry holds an amount for an order, creating the entry in Held state.
// The amount must be positive. Uniqueness per order is the repository's
// concern, enforced on insert.
func NewEntry(orderID kernel.UUID, heldAmount kernel.Money) (*Entry, error) {
	e := &Entry{
		state: Held,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(e.setOrderID(orderID), e.setHeldAmount(heldAmount)); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an entry from persistence.
func RestoreEntry(orderID kernel.UUID, heldAmount kernel.Money, state State) (*Entry, error) {
	e := &Entry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setOrderID(orderID),
		e.setHeldAmount(heldAmount),
		e.setState(state),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// OrderID returns the order the funds are held for.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// HeldAmount returns the amount locked at hold time. It never changes over
// the life of the entry.
func (e *Entry) HeldAmount() kernel.Money {
	return e.heldAmount
}

// State returns the current escrow state.
func (e *Entry) State() State {
	return e.state
}

// Release refunds the held amount to the customer. Only a Held entry can
// be released; a second call fails rather than moving money twice.
func (e *Entry) Release() error {
	if e.state != Held {
		return errs.NewInvalidEscrowStateError(e.orderID.String(), e.state.String(), "release")
	}

	e.state = Released
	return nil
}

// Settle pays the reward out to the traveler and retains the commission.
// Only a Held entry can be settled; a second call fails rather than
// double-paying.
func (e *Entry) Settle() error {
	if e.state != Held {
		return errs.NewInvalidEscrowStateError(e.orderID.String(), e.state.String(), "settle")
	}

	e.state = Settled
	return nil
}

func (e *Entry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setHeldAmount(heldAmount kernel.Money) error {
	if err := heldAmount.Validate(); err != nil {
		return err
	}
	if heldAmount.Amount() <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"heldAmount is invalid",
			fmt.Errorf("%d is not greater than 0", heldAmount.Amount()),
		)
	}
	e.heldAmount = heldAmount
	return nil
}

func (e *Entry) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	e.state = state
	return nil
}
