package commands_test

import (
	"testing"

	"parcelmate/internal/core/application/usecases/commands"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/model/order"
	"parcelmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	customer := testCustomer(t)
	traveler := testTraveler(t)
	testOrder := inTransitOrder(t, customer, traveler, kernel.NewUUID())

	cmd, err := commands.NewConfirmDeliveryCommand(testOrder.ID(), customer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory)
	delivered, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, delivered.Status())
	require.NotNil(t, delivered.DeliveredAt())

	last := delivered.Transitions()[len(delivered.Transitions())-1]
	assert.Equal(t, order.InTransit, last.From)
	assert.Equal(t, order.Delivered, last.To)
	assert.Equal(t, customer.String(), last.Actor)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmDeliveryCommandHandler_Handle_StrangerRejected(t *testing.T) {
	ctx := t.Context()

	customer := testCustomer(t)
	traveler := testTraveler(t)
	stranger := testCustomer(t)
	testOrder := inTransitOrder(t, customer, traveler, kernel.NewUUID())

	cmd, err := commands.NewConfirmDeliveryCommand(testOrder.ID(), stranger)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, order.InTransit, testOrder.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestConfirmDeliveryCommandHandler_Handle_NotInTransit(t *testing.T) {
	ctx := t.Context()

	customer := testCustomer(t)
	traveler := testTraveler(t)
	testOrder := escrowedOrder(t, customer, traveler, kernel.NewUUID())

	cmd, err := commands.NewConfirmDeliveryCommand(testOrder.ID(), customer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
}
