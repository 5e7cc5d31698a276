package ports

import (
	"context"

	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/kernel"
)

// EscrowRepository defines the persistence contract for the ledger.
// Entries are keyed by order id; at most one entry exists per order.
type EscrowRepository interface {
	// Add persists a new escrow entry. A second hold for the same order
	// fails with DuplicateHold, enforced on the storage key.
	Add(ctx context.Context, aggregate *escrow.Entry) error

	// Get retrieves the escrow entry for an order.
	Get(ctx context.Context, orderID kernel.UUID) (*escrow.Entry, error)

	// Update persists a state change of an existing entry. The write is
	// conditional on the entry still being Held, since Held is the only
	// state money moves out of; losing that race fails with
	// ConcurrencyConflict.
	Update(ctx context.Context, aggregate *escrow.Entry) error
}
