package commands

import (
	"context"

	"parcelmate/internal/core/domain/model/order"
)

// AcceptOrderCommandHandler handles the Searching -> Accepted transition.
// The capacity reservation and the state change land in one unit of work:
// if the flight cannot take the parcel the order stays Searching, and if
// the order cannot be accepted the reservation is rolled back.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for accepting orders.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle reserves the parcel weight on the flight and moves the order to
// Accepted, returning the updated snapshot. Fails with
// InsufficientCapacity when the weight does not fit; the caller may retry
// against a different flight.
func (h AcceptOrderCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	theOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	reservedFlight, err := uow.FlightRepository().ReserveCapacity(
		ctx, cmd.FlightID(), theOrder.Weight(),
	)
	if err != nil {
		return nil, err
	}

	if err = theOrder.Accept(reservedFlight.TravelerID(), reservedFlight.ID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, theOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return theOrder, nil
}
