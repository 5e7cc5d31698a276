package order

import (
	"fmt"

	"parcelmate/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions so orders follow
// the marketplace workflow.
//
// State transitions:
//
//	Created ──> Searching ──> Accepted ──> InEscrow ──> InTransit ──> Delivered ──> Completed
//	               │              │            │             │             │
//	               │              │            │             └──────┬──────┘
//	               └──────┬───────┘            │                    │
//	                      └────────────────────┴──> Cancelled       └──> Disputed
//
// Completed, Cancelled and Disputed are terminal. Every illegal transition
// fails naming the current state and the attempted event, and leaves the
// state unchanged.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status assigned at construction. An order
	// moves to Searching immediately, since no traveler is assigned yet.
	Created

	// Searching means the order is visible to travelers and waiting for
	// one of them to accept it against a flight.
	Searching

	// Accepted means a traveler took the order and luggage capacity is
	// reserved on the chosen flight. Escrow is not funded yet.
	Accepted

	// InEscrow means the customer funded the escrow: reward plus
	// commission are held for the order.
	InEscrow

	// InTransit means the flight departed and the parcel is on its way.
	InTransit

	// Delivered means one of the parties confirmed delivery. Settlement
	// follows as a separate, retryable step.
	Delivered

	// Completed means the escrow was settled and capacity released.
	// This is the happy-path terminal state.
	Completed

	// Cancelled means the order was cancelled before transit. Terminal.
	Cancelled

	// Disputed means a party reported a problem during or after transit.
	// Terminal until externally resolved.
	Disputed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Searching: "Searching",
		Accepted:  "Accepted",
		InEscrow:  "InEscrow",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Completed: "Completed",
		Cancelled: "Cancelled",
		Disputed:  "Disputed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Searching: "Searching",
		Accepted:  "Accepted",
		InEscrow:  "InEscrow",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Completed: "Completed",
		Cancelled: "Cancelled",
		Disputed:  "Disputed",
	}
}

// Validate checks that the Status value is one of the defined lifecycle
// states. Used when restoring orders from persistence.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StartSearching transitions Created -> Searching. This happens
// automatically at creation time, since no traveler is assigned yet.
func (s Status) StartSearching() (Status, error) {
	if s != Created {
		return 0, errs.NewIllegalTransitionError(s.String(), "startSearching")
	}
	return Searching, nil
}

// Accept transitions Searching -> Accepted when a traveler takes the order.
func (s Status) Accept() (Status, error) {
	if s != Searching {
		return 0, errs.NewIllegalTransitionError(s.String(), "accept")
	}
	return Accepted, nil
}

// FundEscrow transitions Accepted -> InEscrow when the customer funds the
// escrow.
func (s Status) FundEscrow() (Status, error) {
	if s != Accepted {
		return 0, errs.NewIllegalTransitionError(s.String(), "fundEscrow")
	}
	return InEscrow, nil
}

// Depart transitions InEscrow -> InTransit on the flight departure event.
func (s Status) Depart() (Status, error) {
	if s != InEscrow {
		return 0, errs.NewIllegalTransitionError(s.String(), "depart")
	}
	return InTransit, nil
}

// Deliver transitions InTransit -> Delivered when a party confirms
// delivery.
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, errs.NewIllegalTransitionError(s.String(), "confirmDelivery")
	}
	return Delivered, nil
}

// Complete transitions Delivered -> Completed after settlement.
func (s Status) Complete() (Status, error) {
	if s != Delivered {
		return 0, errs.NewIllegalTransitionError(s.String(), "complete")
	}
	return Completed, nil
}

// Cancel transitions to Cancelled. Cancellation is permitted from Created,
// Searching and Accepted (no escrow impact) and from InEscrow (escrow is
// refunded). Later states cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Created, Searching, Accepted, InEscrow:
		return Cancelled, nil
	default:
		return 0, errs.NewIllegalTransitionError(s.String(), "cancel")
	}
}

// Dispute transitions InTransit or Delivered -> Disputed when a party
// reports a problem.
func (s Status) Dispute() (Status, error) {
	switch s {
	case InTransit, Delivered:
		return Disputed, nil
	default:
		return 0, errs.NewIllegalTransitionError(s.String(), "reportProblem")
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Disputed
}

// HoldsCapacity reports whether an order in this status holds a luggage
// capacity reservation against its flight. The reservation exists from
// acceptance until completion or cancellation.
func (s Status) HoldsCapacity() bool {
	switch s {
	case Accepted, InEscrow, InTransit, Delivered:
		return true
	default:
		return false
	}
}

// HoldsEscrow reports whether an order in this status has funds held in
// escrow.
func (s Status) HoldsEscrow() bool {
	switch s {
	case InEscrow, InTransit, Delivered:
		return true
	default:
		return false
	}
}
