// Package escrowrepo provides data transfer objects and mapping functions
// for ledger persistence. The order id is the primary key, so the
// one-hold-per-order rule is enforced by the storage engine itself.
package escrowrepo

import (
	"time"

	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EscrowEntryDTO represents the database structure for persisting escrow
// entries.
type EscrowEntryDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	HeldAmount int64     `gorm:"type:bigint;not null"`
	State      int       `gorm:"type:int;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for escrow entries.
func (EscrowEntryDTO) TableName() string {
	return "escrow_entries"
}

// fromDomain converts an escrow entry to its database representation.
func fromDomain(aggregate *escrow.Entry) EscrowEntryDTO {
	return EscrowEntryDTO{
		OrderID:    aggregate.OrderID().Bytes(),
		HeldAmount: aggregate.HeldAmount().Amount(),
		State:      int(aggregate.State()),
	}
}

// toDomain converts a database DTO to an escrow entry.
func toDomain(dto EscrowEntryDTO) (*escrow.Entry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	heldAmount, err := kernel.NewMoney(dto.HeldAmount)
	if err != nil {
		return nil, err
	}

	return escrow.RestoreEntry(orderID, heldAmount, escrow.State(dto.State))
}
