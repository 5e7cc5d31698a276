// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. Orders carry an optimistic version column and an
// append-only child table holding the transition log.
package orderrepo

import (
	"time"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed by status for the completion sweep.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	TravelerID  *uuid.UUID `gorm:"type:uuid;index"`
	FlightID    *uuid.UUID `gorm:"type:uuid;index"`
	FromCity    string     `gorm:"type:varchar(255);not null"`
	ToCity      string     `gorm:"type:varchar(255);not null"`
	WeightG     int64      `gorm:"type:bigint;not null"`
	Reward      int64      `gorm:"type:bigint;not null"`
	Commission  int64      `gorm:"type:bigint;not null"`
	Status      int        `gorm:"type:int;not null;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	AcceptedAt  *time.Time
	DeliveredAt *time.Time
	CompletedAt *time.Time
	Version     int             `gorm:"type:int;not null"`
	Transitions []TransitionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// TransitionDTO represents one entry of an order's transition log. The
// composite key (order, sequence) makes the log append-only: existing
// entries are never rewritten, only higher sequence numbers added.
type TransitionDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey;autoIncrement:false"`
	At         time.Time `gorm:"not null"`
	FromStatus int       `gorm:"type:int;not null"`
	ToStatus   int       `gorm:"type:int;not null"`
	Actor      string    `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for transition entries.
func (TransitionDTO) TableName() string {
	return "order_transitions"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var travelerID, flightID *uuid.UUID
	if id := aggregate.TravelerID(); id != nil {
		raw := id.Bytes()
		travelerID = &raw
	}
	if id := aggregate.FlightID(); id != nil {
		raw := id.Bytes()
		flightID = &raw
	}

	orderID := aggregate.ID().Bytes()
	transitions := make([]TransitionDTO, 0, len(aggregate.Transitions()))
	for i, tr := range aggregate.Transitions() {
		transitions = append(transitions, TransitionDTO{
			OrderID:    orderID,
			Seq:        i,
			At:         tr.At,
			FromStatus: int(tr.From),
			ToStatus:   int(tr.To),
			Actor:      tr.Actor,
		})
	}

	return OrderDTO{
		ID:          orderID,
		CustomerID:  aggregate.CustomerID().Bytes(),
		TravelerID:  travelerID,
		FlightID:    flightID,
		FromCity:    aggregate.Route().FromCity(),
		ToCity:      aggregate.Route().ToCity(),
		WeightG:     aggregate.Weight().Grams(),
		Reward:      aggregate.Reward().Amount(),
		Commission:  aggregate.Commission().Amount(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		AcceptedAt:  aggregate.AcceptedAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		CompletedAt: aggregate.CompletedAt(),
		Version:     aggregate.Version(),
		Transitions: transitions,
	}
}

// toDomain converts a database DTO to an order aggregate, reconstructing
// the transition log in sequence order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var travelerID, flightID *kernel.UUID
	if dto.TravelerID != nil {
		tID, idErr := kernel.UUIDFromBytes((*dto.TravelerID)[:])
		if idErr != nil {
			return nil, idErr
		}
		travelerID = &tID
	}
	if dto.FlightID != nil {
		fID, idErr := kernel.UUIDFromBytes((*dto.FlightID)[:])
		if idErr != nil {
			return nil, idErr
		}
		flightID = &fID
	}

	route, err := kernel.NewRoute(dto.FromCity, dto.ToCity)
	if err != nil {
		return nil, err
	}

	weight, err := kernel.WeightFromGrams(dto.WeightG)
	if err != nil {
		return nil, err
	}

	reward, err := kernel.NewMoney(dto.Reward)
	if err != nil {
		return nil, err
	}

	commission, err := kernel.NewMoney(dto.Commission)
	if err != nil {
		return nil, err
	}

	transitions := make([]order.Transition, 0, len(dto.Transitions))
	for _, tr := range dto.Transitions {
		transitions = append(transitions, order.Transition{
			At:    tr.At,
			From:  order.Status(tr.FromStatus),
			To:    order.Status(tr.ToStatus),
			Actor: tr.Actor,
		})
	}

	return order.RestoreOrder(
		id,
		customerID,
		travelerID,
		flightID,
		route,
		weight,
		reward,
		commission,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.AcceptedAt,
		dto.DeliveredAt,
		dto.CompletedAt,
		transitions,
		dto.Version,
	)
}
