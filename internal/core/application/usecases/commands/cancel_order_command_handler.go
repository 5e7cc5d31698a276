package commands

import (
	"context"

	"parcelmate/internal/core/domain/model/order"
)

// CancelOrderCommandHandler handles cancellation of pre-transit orders.
// Refunding the escrow, releasing the flight capacity and the state
// change land in one unit of work, so no money or capacity stays held for
// a cancelled order.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels the order, refunds any held escrow and releases any
// reserved capacity, returning the Cancelled snapshot. Only a party to
// the order may cancel, and only before the parcel is in transit.
func (h CancelOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOrderCommand,
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

	// Capture what the order held before the transition wipes the status.
	holdsEscrow := theOrder.Status().HoldsEscrow()
	holdsCapacity := theOrder.Status().HoldsCapacity()
	flightID := theOrder.FlightID()

	if err = theOrder.Cancel(cmd.By()); err != nil {
		return nil, err
	}

	if holdsEscrow {
		escrowRepo := uow.EscrowRepository()

		entry, escrowErr := escrowRepo.Get(ctx, theOrder.ID())
		if escrowErr != nil {
			return nil, escrowErr
		}

		if err = entry.Release(); err != nil {
			return nil, err
		}

		if err = escrowRepo.Update(ctx, entry); err != nil {
			return nil, err
		}
	}

	if holdsCapacity {
		if _, err = uow.FlightRepository().ReleaseCapacity(ctx, *flightID, theOrder.Weight()); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, theOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return theOrder, nil
}
