package commands_test

import (
	"context"
	"testing"
	"time"

	"parcelmate/internal/core/application/usecases/commands"
	"parcelmate/internal/core/domain/model/account"
	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/model/order"
	"parcelmate/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInDeliveredStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockFlightRepository struct{ mock.Mock }

func (m *MockFlightRepository) Add(ctx context.Context, f *flight.Flight) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlightRepository) Get(ctx context.Context, id kernel.UUID) (*flight.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flight.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetAll(ctx context.Context) ([]*flight.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*flight.Flight), args.Error(1)
}

func (m *MockFlightRepository) ReserveCapacity(
	ctx context.Context,
	id kernel.UUID,
	weight kernel.Weight,
) (*flight.Flight, error) {
	args := m.Called(ctx, id, weight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flight.Flight), args.Error(1)
}

func (m *MockFlightRepository) ReleaseCapacity(
	ctx context.Context,
	id kernel.UUID,
	weight kernel.Weight,
) (*flight.Flight, error) {
	args := m.Called(ctx, id, weight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flight.Flight), args.Error(1)
}

type MockEscrowRepository struct{ mock.Mock }

func (m *MockEscrowRepository) Add(ctx context.Context, e *escrow.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEscrowRepository) Get(ctx context.Context, orderID kernel.UUID) (*escrow.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.Entry), args.Error(1)
}

func (m *MockEscrowRepository) Update(ctx context.Context, e *escrow.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockUoW satisfies every unit-of-work composition the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) FlightRepository() ports.FlightRepository {
	args := m.Called()
	return args.Get(0).(ports.FlightRepository)
}

func (m *MockUoW) EscrowRepository() ports.EscrowRepository {
	args := m.Called()
	return args.Get(0).(ports.EscrowRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockFlightUoWFactory struct{ mock.Mock }

func (m *MockFlightUoWFactory) Create() commands.FlightUoW {
	args := m.Called()
	return args.Get(0).(commands.FlightUoW)
}

// Fixtures shared across handler tests.

func testCustomer(t *testing.T) account.Identity {
	t.Helper()
	identity, err := account.NewIdentity(kernel.NewUUID(), account.Customer)
	require.NoError(t, err)
	return identity
}

func testTraveler(t *testing.T) account.Identity {
	t.Helper()
	identity, err := account.NewIdentity(kernel.NewUUID(), account.Traveler)
	require.NoError(t, err)
	return identity
}

func testRoute(t *testing.T) kernel.Route {
	t.Helper()
	route, err := kernel.NewRoute("Berlin", "Lisbon")
	require.NoError(t, err)
	return route
}

func testWeight(t *testing.T, kg float64) kernel.Weight {
	t.Helper()
	weight, err := kernel.NewWeightFromKg(kg)
	require.NoError(t, err)
	return weight
}

func testMoney(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return money
}

// searchingOrder builds a 3 kg, 3000-reward order owned by the customer,
// in Searching status.
func searchingOrder(t *testing.T, customer account.Identity) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		customer.ID(),
		testRoute(t),
		testWeight(t, 3),
		testMoney(t, 3000),
	)
	require.NoError(t, err)
	return o
}

func acceptedOrder(t *testing.T, customer, traveler account.Identity, flightID kernel.UUID) *order.Order {
	t.Helper()
	o := searchingOrder(t, customer)
	require.NoError(t, o.Accept(traveler.ID(), flightID))
	return o
}

func escrowedOrder(t *testing.T, customer, traveler account.Identity, flightID kernel.UUID) *order.Order {
	t.Helper()
	o := acceptedOrder(t, customer, traveler, flightID)
	require.NoError(t, o.FundEscrow())
	return o
}

func inTransitOrder(t *testing.T, customer, traveler account.Identity, flightID kernel.UUID) *order.Order {
	t.Helper()
	o := escrowedOrder(t, customer, traveler, flightID)
	require.NoError(t, o.MarkDeparted())
	return o
}

func deliveredOrder(t *testing.T, customer, traveler account.Identity, flightID kernel.UUID) *order.Order {
	t.Helper()
	o := inTransitOrder(t, customer, traveler, flightID)
	require.NoError(t, o.ConfirmDelivery(customer))
	return o
}

// testFlight builds a 5 kg offer by the traveler, nothing reserved yet.
func testFlight(t *testing.T, traveler account.Identity) *flight.Flight {
	t.Helper()
	departure := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	profile, err := flight.NewTravelerProfile(4.5, 12)
	require.NoError(t, err)
	f, err := flight.NewFlight(
		kernel.NewUUID(),
		traveler.ID(),
		testRoute(t),
		departure,
		departure.Add(4*time.Hour),
		testWeight(t, 5),
		profile,
	)
	require.NoError(t, err)
	return f
}
