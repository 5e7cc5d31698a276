package commands

import (
	"context"

	"parcelmate/internal/core/domain/model/order"
)

// ReportProblemCommandHandler handles the transition into Disputed. The
// escrow hold and capacity reservation are left untouched; resolution
// happens out of band.
type ReportProblemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReportProblemCommandHandler creates a handler for dispute reports.
func NewReportProblemCommandHandler(uowFactory OrderUoWFactory) ReportProblemCommandHandler {
	return ReportProblemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the order to Disputed and returns the updated snapshot.
// Only a party to the order may report a problem, and only while the
// parcel is in transit or delivered.
func (h ReportProblemCommandHandler) Handle(
	ctx context.Context,
	cmd ReportProblemCommand,
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

	if err = theOrder.ReportProblem(cmd.By()); err != nil {
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
