package commands

import (
	"errors"
	"time"

	"parcelmate/internal/core/domain/model/account"
	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"
	"parcelmate/internal/pkg/guard"
)

var ErrPostFlightCommandIsNotConstructed = errors.New(
	"PostFlightCommand must be created via NewPostFlightCommand constructor",
)

// PostFlightCommand represents a traveler's capacity offer: a booked
// flight with spare luggage space other people's parcels can ride in.
// Only travelers may post flights; the role is checked at construction.
type PostFlightCommand struct { //nolint:recvcheck //using for validation
	flightID  kernel.UUID
	traveler  account.Identity
	route     kernel.Route
	departure time.Time
	arrival   time.Time
	capacity  kernel.Weight
	profile   flight.TravelerProfile

	guard guard.ConstructorGuard
}

// NewPostFlightCommand creates a command to publish a capacity offer.
// The rating and completedDeliveries snapshot comes from the identity
// collaborator; the capacity cap (20 kg) belongs to the Flight aggregate
// and surfaces on Handle.
func NewPostFlightCommand(
	flightID kernel.UUID,
	traveler account.Identity,
	fromCity, toCity string,
	departure, arrival time.Time,
	totalCapacityKg float64,
	rating float64,
	completedDeliveries int,
) (PostFlightCommand, error) {
	cmd := PostFlightCommand{
		departure: departure,
		arrival:   arrival,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setFlightID(flightID),
		cmd.setTraveler(traveler),
		cmd.setRoute(fromCity, toCity),
		cmd.setCapacity(totalCapacityKg),
		cmd.setProfile(rating, completedDeliveries),
	); err != nil {
		return PostFlightCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PostFlightCommand) Validate() error {
	return c.guard.Validate(ErrPostFlightCommandIsNotConstructed)
}

// FlightID returns the identifier the new flight will carry.
func (c PostFlightCommand) FlightID() kernel.UUID {
	return c.flightID
}

// Traveler returns the identity posting the offer.
func (c PostFlightCommand) Traveler() account.Identity {
	return c.traveler
}

// Route returns the flight itinerary.
func (c PostFlightCommand) Route() kernel.Route {
	return c.route
}

// Departure returns the departure time.
func (c PostFlightCommand) Departure() time.Time {
	return c.departure
}

// Arrival returns the arrival time.
func (c PostFlightCommand) Arrival() time.Time {
	return c.arrival
}

// Capacity returns the declared luggage capacity.
func (c PostFlightCommand) Capacity() kernel.Weight {
	return c.capacity
}

// Profile returns the traveler's reputation snapshot.
func (c PostFlightCommand) Profile() flight.TravelerProfile {
	return c.profile
}

func (c *PostFlightCommand) setFlightID(flightID kernel.UUID) error {
	if err := flightID.Validate(); err != nil {
		return err
	}
	c.flightID = flightID
	return nil
}

func (c *PostFlightCommand) setTraveler(traveler account.Identity) error {
	if err := traveler.Validate(); err != nil {
		return err
	}
	if !traveler.IsTraveler() {
		return errs.NewValueIsInvalidError("traveler role is required to post a flight")
	}
	c.traveler = traveler
	return nil
}

func (c *PostFlightCommand) setRoute(fromCity, toCity string) error {
	route, err := kernel.NewRoute(fromCity, toCity)
	if err != nil {
		return err
	}
	c.route = route
	return nil
}

func (c *PostFlightCommand) setCapacity(totalCapacityKg float64) error {
	capacity, err := kernel.NewWeightFromKg(totalCapacityKg)
	if err != nil {
		return err
	}
	c.capacity = capacity
	return nil
}

func (c *PostFlightCommand) setProfile(rating float64, completedDeliveries int) error {
	profile, err := flight.NewTravelerProfile(rating, completedDeliveries)
	if err != nil {
		return err
	}
	c.profile = profile
	return nil
}
