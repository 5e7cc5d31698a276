package commands

import (
	"context"

	"parcelmate/internal/core/domain/model/order"
)

// CompleteOrderCommandHandler handles the Delivered -> Completed
// transition: the escrow hold is settled, the flight capacity released,
// and the order closed, all in one unit of work. The step is retryable,
// so a delivered order whose settlement failed can always be completed
// later.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteOrderCommandHandler creates a handler for settling delivered
// orders.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle settles the order's escrow, releases its flight capacity and
// marks it Completed, returning the final snapshot.
func (h CompleteOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteOrderCommand,
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

	if err = theOrder.Complete(); err != nil {
		return nil, err
	}

	escrowRepo := uow.EscrowRepository()
	entry, err := escrowRepo.Get(ctx, theOrder.ID())
	if err != nil {
		return nil, err
	}

	if err = entry.Settle(); err != nil {
		return nil, err
	}

	if err = escrowRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	flightID := theOrder.FlightID()
	if _, err = uow.FlightRepository().ReleaseCapacity(ctx, *flightID, theOrder.Weight()); err != nil {
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
