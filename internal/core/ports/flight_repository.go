// Package ports defines the contracts between the engine's core and its
// persistence adapters. The interfaces establish dependency inversion:
// the core owns them, adapters implement them.
package ports

import (
	"context"

	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"
)

// FlightRepository defines the persistence contract for flight capacity
// offers.
//
// Capacity mutation lives here rather than on a plain Get/Update pair
// because the availability check and the increment must be one atomic
// unit per flight: no interleaved reservation may observe a stale
// available capacity. The postgres adapter does it in a single guarded
// UPDATE, the in-memory adapter under a per-flight lock.
type FlightRepository interface {
	// Add persists a new flight aggregate to storage.
	Add(ctx context.Context, aggregate *flight.Flight) error

	// Get retrieves a flight aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*flight.Flight, error)

	// GetAll retrieves every posted flight, for the matching engine to
	// filter and rank with live availability.
	GetAll(ctx context.Context) ([]*flight.Flight, error)

	// ReserveCapacity atomically checks that the weight fits into the
	// flight's available capacity and increments the reservation.
	// Fails with InsufficientCapacity when the weight does not fit,
	// leaving the flight untouched. Returns the flight as reserved.
	ReserveCapacity(ctx context.Context, id kernel.UUID, weight kernel.Weight) (*flight.Flight, error)

	// ReleaseCapacity atomically decrements the reservation. Releasing
	// more than is reserved is an invariant violation and fails without
	// mutating. Returns the flight as released.
	ReleaseCapacity(ctx context.Context, id kernel.UUID, weight kernel.Weight) (*flight.Flight, error)
}
