// Package memory provides an in-process implementation of the engine's
// persistence ports, used by tests and by deployments that do not need
// durability. It honors the same concurrency contracts as the postgres
// adapter: capacity checks and mutations are one atomic unit per flight,
// order writes are guarded by the aggregate version, and ledger state
// changes are conditional on the entry still being Held.
//
// Isolation is read-uncommitted: writes land in the store as they are
// made and a Rollback undoes them via compensation, so a concurrent
// reader may briefly observe the intermediate state of an open unit of
// work. The guarded writes above still hold at every instant, which is
// the contract the command handlers rely on.
package memory

import (
	"sync"
	"time"

	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Store holds all engine state behind one mutex. Aggregates are kept as
// snapshots: reads hand out clones, writes replace the stored snapshot, so
// no caller ever mutates shared state through an aliased pointer.
type Store struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]*order.Order
	flights map[uuid.UUID]*flight.Flight
	escrows map[uuid.UUID]*escrow.Entry
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orders:  make(map[uuid.UUID]*order.Order),
		flights: make(map[uuid.UUID]*flight.Flight),
		escrows: make(map[uuid.UUID]*escrow.Entry),
	}
}

// cloneOrder deep-copies an order through its restore constructor. The
// clone carries the given version, letting writers bump it atomically with
// the snapshot swap.
func cloneOrder(o *order.Order, version int) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(),
		o.CustomerID(),
		copyUUIDPtr(o.TravelerID()),
		copyUUIDPtr(o.FlightID()),
		o.Route(),
		o.Weight(),
		o.Reward(),
		o.Commission(),
		o.Status(),
		o.CreatedAt(),
		copyTimePtr(o.AcceptedAt()),
		copyTimePtr(o.DeliveredAt()),
		copyTimePtr(o.CompletedAt()),
		o.Transitions(),
		version,
	)
}

// cloneFlight deep-copies a flight through its restore constructor.
func cloneFlight(f *flight.Flight) (*flight.Flight, error) {
	return flight.RestoreFlight(
		f.ID(),
		f.TravelerID(),
		f.Route(),
		f.Departure(),
		f.Arrival(),
		f.TotalCapacity(),
		f.ReservedCapacity(),
		f.Profile(),
	)
}

// cloneEntry deep-copies an escrow entry through its restore constructor.
func cloneEntry(e *escrow.Entry) (*escrow.Entry, error) {
	return escrow.RestoreEntry(e.OrderID(), e.HeldAmount(), e.State())
}

func copyUUIDPtr(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	out := *id
	return &out
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
