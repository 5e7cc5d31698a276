package flight

import (
	"errors"
	"fmt"
	"time"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"
	"parcelmate/internal/pkg/guard"
)

// ErrFlightIsNotConstructed is returned when a Flight instance was not
// created through NewFlight or RestoreFlight.
var ErrFlightIsNotConstructed = errors.New("Flight must be created via NewFlight or RestoreFlight constructor")

// maxCapacityGrams caps a traveler's declared luggage offer at 20 kg.
const maxCapacityGrams = 20_000

// Flight is a traveler's capacity offer: a booked flight with declared
// spare luggage space that orders reserve weight against.
//
// Invariants:
//   - totalCapacity is in (0, 20] kg and never changes after posting
//   - reservedCapacity never exceeds totalCapacity
//   - releasing more than is reserved is an invariant violation surfaced
//     to the caller, never clamped
//
// Reserve and Release mutate the aggregate in memory only; making the
// check-and-mutate atomic per flight is the persistence adapter's job.
type Flight struct {
	id         kernel.UUID
	travelerID kernel.UUID

	route     kernel.Route
	departure time.Time
	arrival   time.Time

	totalCapacity    kernel.Weight
	reservedCapacity kernel.Weight

	profile TravelerProfile

	guard guard.ConstructorGuard
}

// NewFlight creates a capacity offer with nothing reserved yet.
func NewFlight(
	id kernel.UUID,
	travelerID kernel.UUID,
	route kernel.Route,
	departure time.Time,
	arrival time.Time,
	totalCapacity kernel.Weight,
	profile TravelerProfile,
) (*Flight, error) {
	f := &Flight{
		reservedCapacity: kernel.ZeroWeight(),
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		f.setID(id),
		f.setTravelerID(travelerID),
		f.setRoute(route),
		f.setDates(departure, arrival),
		f.setTotalCapacity(totalCapacity),
		f.setProfile(profile),
	); err != nil {
		return nil, err
	}

	return f, nil
}

// RestoreFlight reconstructs a flight from persistence, including the
// currently reserved capacity.
func RestoreFlight(
	id kernel.UUID,
	travelerID kernel.UUID,
	route kernel.Route,
	departure time.Time,
	arrival time.Time,
	totalCapacity kernel.Weight,
	reservedCapacity kernel.Weight,
	profile TravelerProfile,
) (*Flight, error) {
	f := &Flight{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		f.setID(id),
		f.setTravelerID(travelerID),
		f.setRoute(route),
		f.setDates(departure, arrival),
		f.setTotalCapacity(totalCapacity),
		f.setProfile(profile),
		f.setReservedCapacity(reservedCapacity),
	); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate ensures the Flight instance was properly constructed.
func (f *Flight) Validate() error {
	if f == nil {
		return ErrFlightIsNotConstructed
	}
	return f.guard.Validate(ErrFlightIsNotConstructed)
}

// IsEqual compares two flights by their unique identifiers.
func (f *Flight) IsEqual(other *Flight) bool {
	return other != nil && f.id.IsEqual(other.id)
}

// ID returns the flight's unique identifier.
func (f *Flight) ID() kernel.UUID {
	return f.id
}

// TravelerID returns the traveler who posted the offer.
func (f *Flight) TravelerID() kernel.UUID {
	return f.travelerID
}

// Route returns the flight's city-to-city itinerary.
func (f *Flight) Route() kernel.Route {
	return f.route
}

// Departure returns the departure time.
func (f *Flight) Departure() time.Time {
	return f.departure
}

// Arrival returns the arrival time.
func (f *Flight) Arrival() time.Time {
	return f.arrival
}

// TotalCapacity returns the declared luggage capacity.
func (f *Flight) TotalCapacity() kernel.Weight {
	return f.totalCapacity
}

// ReservedCapacity returns the summed weight of orders currently holding a
// reservation against this flight.
func (f *Flight) ReservedCapacity() kernel.Weight {
	return f.reservedCapacity
}

// AvailableCapacity returns total minus reserved capacity.
func (f *Flight) AvailableCapacity() kernel.Weight {
	available, err := f.totalCapacity.Sub(f.reservedCapacity)
	if err != nil {
		// reserved <= total is a construction invariant; a failing Sub
		// means the aggregate was corrupted outside its constructors.
		return kernel.ZeroWeight()
	}
	return available
}

// Profile returns the traveler's reputation snapshot.
func (f *Flight) Profile() TravelerProfile {
	return f.profile
}

// DepartsOn reports whether the flight departs on the given calendar date.
func (f *Flight) DepartsOn(date time.Time) bool {
	y1, m1, d1 := f.departure.UTC().Date()
	y2, m2, d2 := date.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CanReserve reports whether the given weight fits into the available
// capacity.
func (f *Flight) CanReserve(weight kernel.Weight) (bool, error) {
	if err := weight.Validate(); err != nil {
		return false, err
	}
	if weight.IsZero() {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"weight is invalid",
			fmt.Errorf("cannot reserve zero weight on flight %s", f.id),
		)
	}

	return weight.LessOrEqual(f.AvailableCapacity()), nil
}

// Reserve adds the weight to the reserved capacity. Fails with
// InsufficientCapacity when the weight does not fit; the aggregate is left
// unchanged.
func (f *Flight) Reserve(weight kernel.Weight) error {
	ok, err := f.CanReserve(weight)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewInsufficientCapacityError(
			f.id.String(), weight.Kg(), f.AvailableCapacity().Kg(),
		)
	}

	f.reservedCapacity = f.reservedCapacity.Add(weight)
	return nil
}

// Release subtracts the weight from the reserved capacity. Releasing more
// than is reserved means a reservation is being released twice or was
// never made; that is reported, not clamped.
func (f *Flight) Release(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}

	rest, err := f.reservedCapacity.Sub(weight)
	if err != nil {
		return err
	}

	f.reservedCapacity = rest
	return nil
}

func (f *Flight) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *Flight) setTravelerID(travelerID kernel.UUID) error {
	if err := travelerID.Validate(); err != nil {
		return err
	}
	f.travelerID = travelerID
	return nil
}

func (f *Flight) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	f.route = route
	return nil
}

func (f *Flight) setDates(departure, arrival time.Time) error {
	if departure.IsZero() {
		return errs.NewValueIsRequiredError("departureDate")
	}
	if arrival.IsZero() {
		return errs.NewValueIsRequiredError("arrivalDate")
	}
	if arrival.Before(departure) {
		return errs.NewValueIsInvalidErrorWithCause(
			"arrivalDate is invalid",
			fmt.Errorf("arrival %s is before departure %s", arrival, departure),
		)
	}

	f.departure = departure.UTC()
	f.arrival = arrival.UTC()
	return nil
}

func (f *Flight) setTotalCapacity(totalCapacity kernel.Weight) error {
	if err := totalCapacity.Validate(); err != nil {
		return err
	}
	if totalCapacity.IsZero() || totalCapacity.Grams() > maxCapacityGrams {
		return errs.NewValueIsOutOfRangeError(
			"totalCapacityKg", totalCapacity.Kg(), 0, maxCapacityGrams/1000,
		)
	}
	f.totalCapacity = totalCapacity
	return nil
}

func (f *Flight) setReservedCapacity(reservedCapacity kernel.Weight) error {
	if err := reservedCapacity.Validate(); err != nil {
		return err
	}
	if !reservedCapacity.LessOrEqual(f.totalCapacity) {
		return errs.NewValueIsInvalidErrorWithCause(
			"reservedCapacityKg is invalid",
			fmt.Errorf("reserved %s exceeds total %s", reservedCapacity, f.totalCapacity),
		)
	}
	f.reservedCapacity = reservedCapacity
	return nil
}

func (f *Flight) setProfile(profile TravelerProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	f.profile = profile
	return nil
}
