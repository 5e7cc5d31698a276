// Package commands contains the business operations that modify engine
// state. Implements the Command pattern for the write side of the CQRS
// architecture. All commands follow a consistent shape: a guarded command
// object, validation, transaction management, and persistence. Mutating
// handlers return the updated aggregate snapshot so collaborators always
// observe the state they produced.
package commands

import (
	"context"

	"parcelmate/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler asks for the narrowest combination it needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// FlightRepoFactory provides access to the flight repository within
	// a transaction.
	FlightRepoFactory interface {
		FlightRepository() ports.FlightRepository
	}

	// EscrowRepoFactory provides access to the escrow repository within
	// a transaction.
	EscrowRepoFactory interface {
		EscrowRepository() ports.EscrowRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// FlightUoW manages transactions for flight-only operations.
	FlightUoW interface {
		TxManager
		FlightRepoFactory
	}

	// FlightUoWFactory creates new flight unit of work instances.
	FlightUoWFactory interface {
		Create() FlightUoW
	}

	// UoW manages transactions spanning orders, flights and the ledger.
	// Used by commands composing a state transition with a capacity or
	// escrow side effect, which must land together or not at all.
	UoW interface {
		TxManager
		OrderRepoFactory
		FlightRepoFactory
		EscrowRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
