package commands

import (
	"context"

	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/order"
)

// FundEscrowCommandHandler handles the Accepted -> InEscrow transition.
// The ledger hold and the state change land in one unit of work, so an
// order is never InEscrow without exactly its total held, and never holds
// money while still Accepted.
type FundEscrowCommandHandler struct {
	uowFactory UoWFactory
}

// NewFundEscrowCommandHandler creates a handler for funding escrows.
func NewFundEscrowCommandHandler(uowFactory UoWFactory) FundEscrowCommandHandler {
	return FundEscrowCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle holds the order total (reward plus commission) in the ledger and
// moves the order to InEscrow, returning the updated snapshot. A second
// fund attempt fails with DuplicateHold.
func (h FundEscrowCommandHandler) Handle(
	ctx context.Context,
	cmd FundEscrowCommand,
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

	if err = theOrder.FundEscrow(); err != nil {
		return nil, err
	}

	entry, err := escrow.NewEntry(theOrder.ID(), theOrder.Total())
	if err != nil {
		return nil, err
	}

	if err = uow.EscrowRepository().Add(ctx, entry); err != nil {
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
