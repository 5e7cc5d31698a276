package commands

import (
	"context"

	"parcelmate/internal/core/domain/model/order"
)

// MarkDepartedCommandHandler handles the InEscrow -> InTransit transition.
type MarkDepartedCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkDepartedCommandHandler creates a handler for departure tracking.
func NewMarkDepartedCommandHandler(uowFactory OrderUoWFactory) MarkDepartedCommandHandler {
	return MarkDepartedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves a funded order to InTransit and returns the updated
// snapshot. Only orders in InEscrow can depart.
func (h MarkDepartedCommandHandler) Handle(
	ctx context.Context,
	cmd MarkDepartedCommand,
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

	if err = theOrder.MarkDeparted(); err != nil {
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
