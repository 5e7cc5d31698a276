package ports

import (
	"context"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Each order is an independently keyed resource: single-key reads and
// read-modify-writes are atomic, and different orders never contend.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write
	// is guarded by the aggregate version read when the order was
	// loaded; losing that race fails with ConcurrencyConflict and the
	// caller may retry the whole operation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including the transition log.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInDeliveredStatus retrieves orders confirmed as delivered
	// but not yet settled. The completion sweep retries these.
	GetAllInDeliveredStatus(ctx context.Context) ([]*order.Order, error)
}
