package commands

import (
	"context"

	"parcelmate/internal/core/domain/model/flight"
)

// PostFlightCommandHandler handles publishing traveler capacity offers.
type PostFlightCommandHandler struct {
	uowFactory FlightUoWFactory
}

// NewPostFlightCommandHandler creates a handler for posting flights.
func NewPostFlightCommandHandler(uowFactory FlightUoWFactory) PostFlightCommandHandler {
	return PostFlightCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the command, creates the flight aggregate with nothing
// reserved and persists it, returning the created snapshot.
func (h PostFlightCommandHandler) Handle(
	ctx context.Context,
	cmd PostFlightCommand,
) (*flight.Flight, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newFlight, err := flight.NewFlight(
		cmd.FlightID(),
		cmd.Traveler().ID(),
		cmd.Route(),
		cmd.Departure(),
		cmd.Arrival(),
		cmd.Capacity(),
		cmd.Profile(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.FlightRepository().Add(ctx, newFlight); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newFlight, nil
}
