package commands

import (
	"context"
	"errors"

	"parcelmate/internal/pkg/errs"
)

// CompleteDeliveredOrdersCommandHandler settles every order in the
// Delivered status. Each order is settled in its own unit of work, so one
// failed settlement never blocks the rest of the sweep.
type CompleteDeliveredOrdersCommandHandler struct {
	uowFactory      UoWFactory
	completeHandler CompleteOrderCommandHandler
}

// NewCompleteDeliveredOrdersCommandHandler creates a handler for the
// delivered-orders sweep.
func NewCompleteDeliveredOrdersCommandHandler(
	uowFactory UoWFactory,
) CompleteDeliveredOrdersCommandHandler {
	return CompleteDeliveredOrdersCommandHandler{
		uowFactory:      uowFactory,
		completeHandler: NewCompleteOrderCommandHandler(uowFactory),
	}
}

// Handle settles all delivered orders. Per-order failures are collected
// and returned joined; orders settled concurrently by another worker are
// skipped without error.
func (h CompleteDeliveredOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteDeliveredOrdersCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	orders, err := uow.OrderRepository().GetAllInDeliveredStatus(ctx)
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return err
	}

	var sweepErrs []error
	for _, delivered := range orders {
		completeCmd, cmdErr := NewCompleteOrderCommand(delivered.ID())
		if cmdErr != nil {
			sweepErrs = append(sweepErrs, cmdErr)
			continue
		}

		_, handleErr := h.completeHandler.Handle(ctx, completeCmd)
		if handleErr != nil && !errors.Is(handleErr, errs.ErrConcurrencyConflict) {
			sweepErrs = append(sweepErrs, handleErr)
		}
	}

	return errors.Join(sweepErrs...)
}
