package memory_test

import (
	"sync"
	"testing"
	"time"

	"parcelmate/internal/adapters/out/memory"
	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/model/order"
	"parcelmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlight(t *testing.T, capacityKg float64) *flight.Flight {
	t.Helper()
	route, err := kernel.NewRoute("Berlin", "Lisbon")
	require.NoError(t, err)
	capacity, err := kernel.NewWeightFromKg(capacityKg)
	require.NoError(t, err)
	profile, err := flight.NewTravelerProfile(4.5, 12)
	require.NoError(t, err)
	departure := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	f, err := flight.NewFlight(
		kernel.NewUUID(), kernel.NewUUID(), route,
		departure, departure.Add(4*time.Hour),
		capacity, profile,
	)
	require.NoError(t, err)
	return f
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	route, err := kernel.NewRoute("Berlin", "Lisbon")
	require.NoError(t, err)
	weight, err := kernel.NewWeightFromKg(3)
	require.NoError(t, err)
	reward, err := kernel.NewMoney(3000)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), route, weight, reward)
	require.NoError(t, err)
	return o
}

func TestUnitOfWork_RollbackUndoesWrites(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)

	testFlight := newTestFlight(t, 5)
	seed := factory.Create()
	require.NoError(t, seed.Begin(ctx))
	require.NoError(t, seed.FlightRepository().Add(ctx, testFlight))
	require.NoError(t, seed.Commit(ctx))

	weight, err := kernel.NewWeightFromKg(3)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	reserved, err := uow.FlightRepository().ReserveCapacity(ctx, testFlight.ID(), weight)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, reserved.AvailableCapacity().Kg(), 0.0001)

	testOrder := newTestOrder(t)
	require.NoError(t, uow.OrderRepository().Add(ctx, testOrder))
	require.NoError(t, uow.Rollback(ctx))

	// The reservation is compensated and the order gone.
	check := factory.Create()
	require.NoError(t, check.Begin(ctx))
	current, err := check.FlightRepository().Get(ctx, testFlight.ID())
	require.NoError(t, err)
	assert.InDelta(t, 5.0, current.AvailableCapacity().Kg(), 0.0001)

	_, err = check.OrderRepository().Get(ctx, testOrder.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.NoError(t, check.Rollback(ctx))
}

func TestUnitOfWork_CommitKeepsWrites(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)

	testOrder := newTestOrder(t)
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, testOrder))
	require.NoError(t, uow.Commit(ctx))
	require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoActiveUnitOfWork)

	check := factory.Create()
	require.NoError(t, check.Begin(ctx))
	loaded, err := check.OrderRepository().Get(ctx, testOrder.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Searching, loaded.Status())
	assert.True(t, loaded.ID().IsEqual(testOrder.ID()))
}

func TestUnitOfWork_VersionConflictLosesRace(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)

	testOrder := newTestOrder(t)
	seed := factory.Create()
	require.NoError(t, seed.Begin(ctx))
	require.NoError(t, seed.OrderRepository().Add(ctx, testOrder))
	require.NoError(t, seed.Commit(ctx))

	// Two workers load the same version.
	uow1 := factory.Create()
	require.NoError(t, uow1.Begin(ctx))
	first, err := uow1.OrderRepository().Get(ctx, testOrder.ID())
	require.NoError(t, err)

	uow2 := factory.Create()
	require.NoError(t, uow2.Begin(ctx))
	second, err := uow2.OrderRepository().Get(ctx, testOrder.ID())
	require.NoError(t, err)

	travelerID := kernel.NewUUID()
	flightID := kernel.NewUUID()
	require.NoError(t, first.Accept(travelerID, flightID))
	require.NoError(t, second.Accept(travelerID, flightID))

	require.NoError(t, uow1.OrderRepository().Update(ctx, first))
	require.NoError(t, uow1.Commit(ctx))

	err = uow2.OrderRepository().Update(ctx, second)
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	require.NoError(t, uow2.Rollback(ctx))
}

func TestUnitOfWork_ConcurrentReservationsNeverOverbook(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)

	// 20 workers race for 5 kg in 1 kg slices; at most 5 can win.
	testFlight := newTestFlight(t, 5)
	seed := factory.Create()
	require.NoError(t, seed.Begin(ctx))
	require.NoError(t, seed.FlightRepository().Add(ctx, testFlight))
	require.NoError(t, seed.Commit(ctx))

	weight, err := kernel.NewWeightFromKg(1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := factory.Create()
			if beginErr := uow.Begin(ctx); beginErr != nil {
				results <- beginErr
				return
			}
			_, reserveErr := uow.FlightRepository().ReserveCapacity(ctx, testFlight.ID(), weight)
			if reserveErr != nil {
				_ = uow.Rollback(ctx)
				results <- reserveErr
				return
			}
			results <- uow.Commit(ctx)
		}()
	}
	wg.Wait()
	close(results)

	var wins, capacityFailures int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, errs.ErrInsufficientCapacity)
			capacityFailures++
		}
	}
	assert.Equal(t, 5, wins)
	assert.Equal(t, 15, capacityFailures)

	check := factory.Create()
	require.NoError(t, check.Begin(ctx))
	final, err := check.FlightRepository().Get(ctx, testFlight.ID())
	require.NoError(t, err)
	assert.True(t, final.AvailableCapacity().IsZero())
}

func TestUnitOfWork_EscrowStateGuard(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)

	amount, err := kernel.NewMoney(3750)
	require.NoError(t, err)
	orderID := kernel.NewUUID()
	entry, err := escrow.NewEntry(orderID, amount)
	require.NoError(t, err)

	seed := factory.Create()
	require.NoError(t, seed.Begin(ctx))
	require.NoError(t, seed.EscrowRepository().Add(ctx, entry))
	require.NoError(t, seed.Commit(ctx))

	// A second hold for the same order is rejected.
	dup := factory.Create()
	require.NoError(t, dup.Begin(ctx))
	dupEntry, err := escrow.NewEntry(orderID, amount)
	require.NoError(t, err)
	require.ErrorIs(t, dup.EscrowRepository().Add(ctx, dupEntry), errs.ErrDuplicateHold)
	require.NoError(t, dup.Rollback(ctx))

	// Two workers load the Held entry; one settles, one refunds. Only
	// the first write lands.
	uow1 := factory.Create()
	require.NoError(t, uow1.Begin(ctx))
	settling, err := uow1.EscrowRepository().Get(ctx, orderID)
	require.NoError(t, err)

	uow2 := factory.Create()
	require.NoError(t, uow2.Begin(ctx))
	refunding, err := uow2.EscrowRepository().Get(ctx, orderID)
	require.NoError(t, err)

	require.NoError(t, settling.Settle())
	require.NoError(t, uow1.EscrowRepository().Update(ctx, settling))
	require.NoError(t, uow1.Commit(ctx))

	require.NoError(t, refunding.Release())
	err = uow2.EscrowRepository().Update(ctx, refunding)
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)

	check := factory.Create()
	require.NoError(t, check.Begin(ctx))
	final, err := check.EscrowRepository().Get(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, escrow.Settled, final.State())
}
