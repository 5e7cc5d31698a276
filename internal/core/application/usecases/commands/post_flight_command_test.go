package commands_test

import (
	"testing"
	"time"

	"parcelmate/internal/core/application/usecases/commands"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewPostFlightCommand_ValidInput(t *testing.T) {
	traveler := testTraveler(t)
	flightID := kernel.NewUUID()
	departure := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	cmd, err := commands.NewPostFlightCommand(
		flightID, traveler, "Berlin", "Lisbon",
		departure, departure.Add(4*time.Hour),
		5, 4.5, 12,
	)
	require.NoError(t, err)
	assert.Equal(t, flightID, cmd.FlightID())
	assert.Equal(t, traveler, cmd.Traveler())
	assert.InDelta(t, 5.0, cmd.Capacity().Kg(), 0.0001)
	assert.InDelta(t, 4.5, cmd.Profile().Rating(), 0.0001)
}

func TestNewPostFlightCommand_CustomerRejected(t *testing.T) {
	customer := testCustomer(t)
	departure := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	_, err := commands.NewPostFlightCommand(
		kernel.NewUUID(), customer, "Berlin", "Lisbon",
		departure, departure.Add(4*time.Hour),
		5, 4.5, 12,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewPostFlightCommand_InvalidRating(t *testing.T) {
	traveler := testTraveler(t)
	departure := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	_, err := commands.NewPostFlightCommand(
		kernel.NewUUID(), traveler, "Berlin", "Lisbon",
		departure, departure.Add(4*time.Hour),
		5, 5.5, 12,
	)
	require.Error(t, err)
}

func TestPostFlightCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	traveler := testTraveler(t)
	flightID := kernel.NewUUID()
	departure := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	cmd, err := commands.NewPostFlightCommand(
		flightID, traveler, "Berlin", "Lisbon",
		departure, departure.Add(4*time.Hour),
		5, 4.5, 12,
	)
	require.NoError(t, err)

	flightRepo := new(MockFlightRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("FlightRepository").Return(flightRepo).Once(),
		flightRepo.On("Add", ctx, mock.AnythingOfType("*flight.Flight")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFlightUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPostFlightCommandHandler(factory)
	posted, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, flightID, posted.ID())
	assert.Equal(t, traveler.ID(), posted.TravelerID())
	assert.True(t, posted.ReservedCapacity().IsZero())
	flightRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPostFlightCommandHandler_Handle_OverweightCapacity(t *testing.T) {
	ctx := t.Context()

	traveler := testTraveler(t)
	departure := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	cmd, err := commands.NewPostFlightCommand(
		kernel.NewUUID(), traveler, "Berlin", "Lisbon",
		departure, departure.Add(4*time.Hour),
		20.5, 4.5, 12,
	)
	require.NoError(t, err)

	factory := new(MockFlightUoWFactory)
	handler := commands.NewPostFlightCommandHandler(factory)

	// The 20 kg cap belongs to the aggregate and surfaces on Handle,
	// before any transaction starts.
	_, err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	factory.AssertNotCalled(t, "Create")
}
