package order

import (
	"errors"
	"fmt"
	"time"

	"parcelmate/internal/core/domain/model/account"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"
	"parcelmate/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

const (
	// maxWeightGrams caps an order at 10 kg of luggage.
	maxWeightGrams = 10_000

	// minReward is the smallest reward a customer may offer, in minor
	// currency units.
	minReward = 500

	// commissionRatePercent is the platform commission, fixed at order
	// creation time.
	commissionRatePercent = 25
)

// Order is the aggregate root for one delivery: a parcel a customer wants
// carried from one city to another by a traveler with spare luggage space.
//
// Invariants:
//   - weight is in (0, 10] kg and the reward is at least 500 minor units
//   - commission = round(reward × 25%) is computed once at creation and
//     never changes; total = reward + commission
//   - status transitions follow the lifecycle state machine; an illegal
//     event leaves the order untouched
//   - every transition is appended to an ordered log of
//     (timestamp, from, to, actor) records
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	travelerID *kernel.UUID
	flightID   *kernel.UUID

	route      kernel.Route
	weight     kernel.Weight
	reward     kernel.Money
	commission kernel.Money

	status      Status
	createdAt   time.Time
	acceptedAt  *time.Time
	deliveredAt *time.Time
	completedAt *time.Time

	transitions []Transition

	// version supports optimistic concurrency control in adapters.
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates a new order for a customer. The order starts in Created
// status and immediately moves to Searching, since no traveler is assigned
// yet; both facts are visible in the transition log.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	route kernel.Route,
	weight kernel.Weight,
	reward kernel.Money,
) (*Order, error) {
	o := &Order{
		status:  Created,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRoute(route),
		o.setWeight(weight),
		o.setReward(reward),
	); err != nil {
		return nil, err
	}

	o.commission = o.reward.Percent(commissionRatePercent)
	o.createdAt = time.Now().UTC()

	newStatus, err := o.status.StartSearching()
	if err != nil {
		return nil, err
	}
	o.applyTransition(newStatus, SystemActor)

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. The commission is
// restored as stored, never recomputed, so the escrow invariant survives
// any future change to the commission rate.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	travelerID *kernel.UUID,
	flightID *kernel.UUID,
	route kernel.Route,
	weight kernel.Weight,
	reward kernel.Money,
	commission kernel.Money,
	status Status,
	createdAt time.Time,
	acceptedAt *time.Time,
	deliveredAt *time.Time,
	completedAt *time.Time,
	transitions []Transition,
	version int,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRoute(route),
		o.setWeight(weight),
		o.setReward(reward),
		o.setCommission(commission),
		o.setStatus(status),
		o.setTravelerID(travelerID),
		o.setFlightID(flightID),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	if err := o.validateAssignmentConsistency(); err != nil {
		return nil, err
	}

	o.createdAt = createdAt
	o.acceptedAt = acceptedAt
	o.deliveredAt = deliveredAt
	o.completedAt = completedAt
	o.transitions = append(o.transitions, transitions...)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the id of the customer who created the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// TravelerID returns the assigned traveler's id, or nil before acceptance.
func (o *Order) TravelerID() *kernel.UUID {
	return o.travelerID
}

// FlightID returns the flight the order is reserved against, or nil before
// acceptance.
func (o *Order) FlightID() *kernel.UUID {
	return o.flightID
}

// Route returns the city-to-city itinerary of the parcel.
func (o *Order) Route() kernel.Route {
	return o.route
}

// Weight returns the parcel weight.
func (o *Order) Weight() kernel.Weight {
	return o.weight
}

// Reward returns the reward offered to the traveler.
func (o *Order) Reward() kernel.Money {
	return o.reward
}

// Commission returns the platform commission computed at creation time.
func (o *Order) Commission() kernel.Money {
	return o.commission
}

// Total returns the amount held in escrow: reward plus commission.
func (o *Order) Total() kernel.Money {
	return o.reward.Add(o.commission)
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AcceptedAt returns when a traveler accepted the order, or nil.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// DeliveredAt returns when delivery was confirmed, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CompletedAt returns when the order was settled, or nil.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Transitions returns a copy of the append-only transition log, oldest
// first.
func (o *Order) Transitions() []Transition {
	out := make([]Transition, len(o.transitions))
	copy(out, o.transitions)
	return out
}

// Version returns the aggregate version used for optimistic concurrency
// control by persistence adapters.
func (o *Order) Version() int {
	return o.version
}

// HoldsCapacity reports whether the order currently holds a luggage
// reservation on its flight.
func (o *Order) HoldsCapacity() bool {
	return o.status.HoldsCapacity()
}

// HoldsEscrow reports whether the order currently has funds held in escrow.
func (o *Order) HoldsEscrow() bool {
	return o.status.HoldsEscrow()
}

// IsParty reports whether the identity is the order's customer or its
// assigned traveler.
func (o *Order) IsParty(identity account.Identity) bool {
	if identity.ID().IsEqual(o.customerID) {
		return true
	}
	return o.travelerID != nil && identity.ID().IsEqual(*o.travelerID)
}

// Accept assigns the order to a traveler against a flight and moves it to
// Accepted. The caller is responsible for reserving the flight capacity in
// the same unit of work; if the reservation fails the order must not be
// persisted in Accepted.
func (o *Order) Accept(travelerID, flightID kernel.UUID) error {
	if err := errors.Join(travelerID.Validate(), flightID.Validate()); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.travelerID = &travelerID
	o.flightID = &flightID
	now := time.Now().UTC()
	o.acceptedAt = &now
	o.applyTransition(newStatus, fmt.Sprintf("traveler %s", travelerID))

	return nil
}

// FundEscrow moves the order to InEscrow. The caller holds the order total
// in the ledger within the same unit of work.
func (o *Order) FundEscrow() error {
	newStatus, err := o.status.FundEscrow()
	if err != nil {
		return err
	}

	o.applyTransition(newStatus, fmt.Sprintf("customer %s", o.customerID))
	return nil
}

// MarkDeparted moves the order to InTransit on the flight departure event.
func (o *Order) MarkDeparted() error {
	newStatus, err := o.status.Depart()
	if err != nil {
		return err
	}

	o.applyTransition(newStatus, SystemActor)
	return nil
}

// ConfirmDelivery moves the order to Delivered. Either party of the order
// may confirm; anyone else is rejected without a state change.
func (o *Order) ConfirmDelivery(by account.Identity) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if !o.IsParty(by) {
		return errs.NewValueIsInvalidErrorWithCause(
			"confirmedBy is invalid",
			fmt.Errorf("%s is not a party to order %s", by, o.id),
		)
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.deliveredAt = &now
	o.applyTransition(newStatus, by.String())

	return nil
}

// Complete moves the order to Completed after settlement. The caller
// settles the escrow and releases the flight capacity around this call.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.completedAt = &now
	o.applyTransition(newStatus, SystemActor)

	return nil
}

// Cancel moves the order to Cancelled. Only a party of the order may
// cancel, and only before transit begins.
func (o *Order) Cancel(by account.Identity) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if !o.IsParty(by) {
		return errs.NewValueIsInvalidErrorWithCause(
			"cancelledBy is invalid",
			fmt.Errorf("%s is not a party to order %s", by, o.id),
		)
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.applyTransition(newStatus, by.String())
	return nil
}

// ReportProblem moves the order to Disputed. Terminal until resolved
// outside the engine.
func (o *Order) ReportProblem(by account.Identity) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if !o.IsParty(by) {
		return errs.NewValueIsInvalidErrorWithCause(
			"reportedBy is invalid",
			fmt.Errorf("%s is not a party to order %s", by, o.id),
		)
	}

	newStatus, err := o.status.Dispute()
	if err != nil {
		return err
	}

	o.applyTransition(newStatus, by.String())
	return nil
}

func (o *Order) applyTransition(to Status, actor string) {
	from := o.status
	o.status = to
	o.transitions = append(o.transitions, NewTransition(time.Now().UTC(), from, to, actor))
}

func (o *Order) validateAssignmentConsistency() error {
	assigned := o.travelerID != nil && o.flightID != nil

	if o.status.HoldsCapacity() || o.status == Completed {
		if !assigned {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s order must have a traveler and a flight", o.status),
			)
		}
	}

	if o.status == Created || o.status == Searching {
		if o.travelerID != nil || o.flightID != nil {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s order cannot have a traveler", o.status),
			)
		}
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setTravelerID(travelerID *kernel.UUID) error {
	if travelerID != nil {
		if err := travelerID.Validate(); err != nil {
			return err
		}
	}
	o.travelerID = travelerID
	return nil
}

func (o *Order) setFlightID(flightID *kernel.UUID) error {
	if flightID != nil {
		if err := flightID.Validate(); err != nil {
			return err
		}
	}
	o.flightID = flightID
	return nil
}

func (o *Order) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	o.route = route
	return nil
}

func (o *Order) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	if weight.IsZero() || weight.Grams() > maxWeightGrams {
		return errs.NewValueIsOutOfRangeError("weightKg", weight.Kg(), 0, maxWeightGrams/1000)
	}
	o.weight = weight
	return nil
}

func (o *Order) setReward(reward kernel.Money) error {
	if err := reward.Validate(); err != nil {
		return err
	}
	if reward.Amount() < minReward {
		return errs.NewValueIsOutOfRangeError("reward", reward.Amount(), minReward, nil)
	}
	o.reward = reward
	return nil
}

func (o *Order) setCommission(commission kernel.Money) error {
	if err := commission.Validate(); err != nil {
		return err
	}
	o.commission = commission
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError(
			"order version",
			fmt.Errorf("%d is not a positive version", version),
		)
	}
	o.version = version
	return nil
}
