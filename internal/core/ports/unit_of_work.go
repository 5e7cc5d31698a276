package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each operation.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents one business transaction boundary: a state-field
// update composed with at most one ledger or capacity side effect, applied
// together or not at all.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction, or to plain storage when none is active.
	OrderRepository() OrderRepository

	// FlightRepository returns a FlightRepository bound to the current
	// transaction, or to plain storage when none is active.
	FlightRepository() FlightRepository

	// EscrowRepository returns an EscrowRepository bound to the current
	// transaction, or to plain storage when none is active.
	EscrowRepository() EscrowRepository
}
