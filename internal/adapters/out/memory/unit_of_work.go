package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/model/order"
	"parcelmate/internal/core/ports"
	"parcelmate/internal/pkg/errs"
)

// ErrNoActiveUnitOfWork is returned by Commit and Rollback when no unit of
// work is open. The deferred rollback in handlers ignores it after a
// successful commit.
var ErrNoActiveUnitOfWork = errors.New("no active unit of work")

// UnitOfWorkFactory creates in-memory UnitOfWork instances sharing one
// store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to the given store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork implements transactional semantics over the in-memory store.
// Writes apply immediately under the store lock, with a compensation
// recorded for each; Rollback runs the compensations in reverse, Commit
// discards them. Conflict checks (order version, escrow state, capacity
// fit) happen at write time, exactly as the database adapter's guarded
// UPDATEs do, so of any set of racing writers exactly one wins.
//
// Instances are not safe for concurrent use; create one per operation.
type UnitOfWork struct {
	store  *Store
	active bool
	undo   []func()
}

// Begin opens the unit of work. Calling Begin twice is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit makes all writes of this unit of work permanent.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveUnitOfWork
	}
	uow.undo = nil
	uow.active = false
	return nil
}

// Rollback undoes all writes of this unit of work, newest first.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveUnitOfWork
	}

	uow.store.mu.Lock()
	defer uow.store.mu.Unlock()

	for i := len(uow.undo) - 1; i >= 0; i-- {
		uow.undo[i]()
	}
	uow.undo = nil
	uow.active = false
	return nil
}

// OrderRepository returns the order repository of this unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

// FlightRepository returns the flight repository of this unit of work.
func (uow *UnitOfWork) FlightRepository() ports.FlightRepository {
	return &flightRepository{uow: uow}
}

// EscrowRepository returns the escrow repository of this unit of work.
func (uow *UnitOfWork) EscrowRepository() ports.EscrowRepository {
	return &escrowRepository{uow: uow}
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	key := aggregate.ID().Bytes()
	if _, exists := store.orders[key]; exists {
		return fmt.Errorf("order %s already exists", aggregate.ID())
	}

	snapshot, err := cloneOrder(aggregate, aggregate.Version())
	if err != nil {
		return err
	}

	store.orders[key] = snapshot
	r.uow.undo = append(r.uow.undo, func() {
		delete(store.orders, key)
	})
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	key := aggregate.ID().Bytes()
	previous, exists := store.orders[key]
	if !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if previous.Version() != aggregate.Version() {
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String())
	}

	snapshot, err := cloneOrder(aggregate, aggregate.Version()+1)
	if err != nil {
		return err
	}

	store.orders[key] = snapshot
	r.uow.undo = append(r.uow.undo, func() {
		store.orders[key] = previous
	})
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, exists := store.orders[id.Bytes()]
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return cloneOrder(stored, stored.Version())
}

func (r *orderRepository) GetAllInDeliveredStatus(_ context.Context) ([]*order.Order, error) {
	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	orders := make([]*order.Order, 0)
	for _, stored := range store.orders {
		if stored.Status() != order.Delivered {
			continue
		}
		clone, err := cloneOrder(stored, stored.Version())
		if err != nil {
			return nil, err
		}
		orders = append(orders, clone)
	}

	slices.SortFunc(orders, func(a, b *order.Order) int {
		if a.ID().Less(b.ID()) {
			return -1
		}
		if b.ID().Less(a.ID()) {
			return 1
		}
		return 0
	})
	return orders, nil
}

type flightRepository struct {
	uow *UnitOfWork
}

func (r *flightRepository) Add(_ context.Context, aggregate *flight.Flight) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	key := aggregate.ID().Bytes()
	if _, exists := store.flights[key]; exists {
		return fmt.Errorf("flight %s already exists", aggregate.ID())
	}

	snapshot, err := cloneFlight(aggregate)
	if err != nil {
		return err
	}

	store.flights[key] = snapshot
	r.uow.undo = append(r.uow.undo, func() {
		delete(store.flights, key)
	})
	return nil
}

func (r *flightRepository) Get(_ context.Context, id kernel.UUID) (*flight.Flight, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, exists := store.flights[id.Bytes()]
	if !exists {
		return nil, errs.NewObjectNotFoundError("flight", id.String())
	}

	return cloneFlight(stored)
}

func (r *flightRepository) GetAll(_ context.Context) ([]*flight.Flight, error) {
	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	flights := make([]*flight.Flight, 0, len(store.flights))
	for _, stored := range store.flights {
		clone, err := cloneFlight(stored)
		if err != nil {
			return nil, err
		}
		flights = append(flights, clone)
	}

	slices.SortFunc(flights, func(a, b *flight.Flight) int {
		if a.ID().Less(b.ID()) {
			return -1
		}
		if b.ID().Less(a.ID()) {
			return 1
		}
		return 0
	})
	return flights, nil
}

// ReserveCapacity checks and reserves in one step under the store lock.
// The domain aggregate enforces the fit, so a failed reservation leaves
// the stored flight untouched.
func (r *flightRepository) ReserveCapacity(
	_ context.Context,
	id kernel.UUID,
	weight kernel.Weight,
) (*flight.Flight, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := weight.Validate(); err != nil {
		return nil, err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, exists := store.flights[id.Bytes()]
	if !exists {
		return nil, errs.NewObjectNotFoundError("flight", id.String())
	}

	if err := stored.Reserve(weight); err != nil {
		return nil, err
	}

	r.uow.undo = append(r.uow.undo, func() {
		_ = stored.Release(weight)
	})
	return cloneFlight(stored)
}

func (r *flightRepository) ReleaseCapacity(
	_ context.Context,
	id kernel.UUID,
	weight kernel.Weight,
) (*flight.Flight, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := weight.Validate(); err != nil {
		return nil, err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, exists := store.flights[id.Bytes()]
	if !exists {
		return nil, errs.NewObjectNotFoundError("flight", id.String())
	}

	if err := stored.Release(weight); err != nil {
		return nil, err
	}

	r.uow.undo = append(r.uow.undo, func() {
		_ = stored.Reserve(weight)
	})
	return cloneFlight(stored)
}

type escrowRepository struct {
	uow *UnitOfWork
}

func (r *escrowRepository) Add(_ context.Context, aggregate *escrow.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	key := aggregate.OrderID().Bytes()
	if _, exists := store.escrows[key]; exists {
		return errs.NewDuplicateHoldError(aggregate.OrderID().String())
	}

	snapshot, err := cloneEntry(aggregate)
	if err != nil {
		return err
	}

	store.escrows[key] = snapshot
	r.uow.undo = append(r.uow.undo, func() {
		delete(store.escrows, key)
	})
	return nil
}

func (r *escrowRepository) Get(_ context.Context, orderID kernel.UUID) (*escrow.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, exists := store.escrows[orderID.Bytes()]
	if !exists {
		return nil, errs.NewObjectNotFoundError("escrow entry", orderID.String())
	}

	return cloneEntry(stored)
}

func (r *escrowRepository) Update(_ context.Context, aggregate *escrow.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	key := aggregate.OrderID().Bytes()
	previous, exists := store.escrows[key]
	if !exists {
		return errs.NewObjectNotFoundError("escrow entry", aggregate.OrderID().String())
	}

	if previous.State() != escrow.Held {
		return errs.NewConcurrencyConflictError("escrow entry", aggregate.OrderID().String())
	}

	snapshot, err := cloneEntry(aggregate)
	if err != nil {
		return err
	}

	store.escrows[key] = snapshot
	r.uow.undo = append(r.uow.undo, func() {
		store.escrows[key] = previous
	})
	return nil
}
