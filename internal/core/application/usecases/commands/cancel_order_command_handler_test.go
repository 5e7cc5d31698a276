package commands_test

import (
	"testing"

	"parcelmate/internal/core/application/usecases/commands"
	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/order"
	"parcelmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Searching(t *testing.T) {
	ctx := t.Context()

	customer := testCustomer(t)
	testOrder := searchingOrder(t, customer)

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), customer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	// Nothing reserved yet, so no ledger or capacity compensation runs.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	uow.AssertNotCalled(t, "EscrowRepository")
	uow.AssertNotCalled(t, "FlightRepository")
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_InEscrow(t *testing.T) {
	ctx := t.Context()

	customer := testCustomer(t)
	traveler := testTraveler(t)
	testFlt := testFlight(t, traveler)
	testOrder := escrowedOrder(t, customer, traveler, testFlt.ID())

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), customer)
	require.NoError(t, err)

	entry, err := escrow.NewEntry(testOrder.ID(), testOrder.Total())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	flightRepo := new(MockFlightRepository)
	escrowRepo := new(MockEscrowRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("Get", ctx, testOrder.ID()).Return(entry, nil).Once(),
		escrowRepo.On("Update", ctx, mock.AnythingOfType("*escrow.Entry")).Return(nil).Once(),
		uow.On("FlightRepository").Return(flightRepo).Once(),
		flightRepo.On("ReleaseCapacity", ctx, testFlt.ID(), testOrder.Weight()).
			Return(testFlt, nil).
			Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Equal(t, escrow.Released, entry.State())
	orderRepo.AssertExpectations(t)
	flightRepo.AssertExpectations(t)
	escrowRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_InTransitRejected(t *testing.T) {
	ctx := t.Context()

	customer := testCustomer(t)
	traveler := testTraveler(t)
	testFlt := testFlight(t, traveler)
	testOrder := inTransitOrder(t, customer, traveler, testFlt.ID())

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), customer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, order.InTransit, testOrder.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}
