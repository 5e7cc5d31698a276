// Package flightrepo provides data transfer objects and mapping functions
// for flight capacity persistence. Capacity mutation happens in single
// guarded UPDATE statements so no interleaved reservation can observe a
// stale availability.
package flightrepo

import (
	"time"

	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// FlightDTO represents the database structure for persisting flight
// capacity offers. Capacities are stored in grams; the reputation snapshot
// is denormalized into the row for ranking in search queries.
type FlightDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TravelerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	FromCity            string    `gorm:"type:varchar(255);not null"`
	ToCity              string    `gorm:"type:varchar(255);not null"`
	Departure           time.Time `gorm:"not null;index"`
	Arrival             time.Time `gorm:"not null"`
	TotalCapacityG      int64     `gorm:"type:bigint;not null"`
	ReservedCapacityG   int64     `gorm:"type:bigint;not null"`
	Rating              float64   `gorm:"type:double precision;not null"`
	CompletedDeliveries int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for flight entities.
func (FlightDTO) TableName() string {
	return "flights"
}

// fromDomain converts a flight aggregate to its database representation.
func fromDomain(aggregate *flight.Flight) FlightDTO {
	return FlightDTO{
		ID:                  aggregate.ID().Bytes(),
		TravelerID:          aggregate.TravelerID().Bytes(),
		FromCity:            aggregate.Route().FromCity(),
		ToCity:              aggregate.Route().ToCity(),
		Departure:           aggregate.Departure(),
		Arrival:             aggregate.Arrival(),
		TotalCapacityG:      aggregate.TotalCapacity().Grams(),
		ReservedCapacityG:   aggregate.ReservedCapacity().Grams(),
		Rating:              aggregate.Profile().Rating(),
		CompletedDeliveries: aggregate.Profile().CompletedDeliveries(),
	}
}

// toDomain converts a database DTO to a flight aggregate.
func toDomain(dto FlightDTO) (*flight.Flight, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	travelerID, err := kernel.UUIDFromBytes(dto.TravelerID[:])
	if err != nil {
		return nil, err
	}

	route, err := kernel.NewRoute(dto.FromCity, dto.ToCity)
	if err != nil {
		return nil, err
	}

	totalCapacity, err := kernel.WeightFromGrams(dto.TotalCapacityG)
	if err != nil {
		return nil, err
	}

	reservedCapacity, err := kernel.WeightFromGrams(dto.ReservedCapacityG)
	if err != nil {
		return nil, err
	}

	profile, err := flight.NewTravelerProfile(dto.Rating, dto.CompletedDeliveries)
	if err != nil {
		return nil, err
	}

	return flight.RestoreFlight(
		id,
		travelerID,
		route,
		dto.Departure,
		dto.Arrival,
		totalCapacity,
		reservedCapacity,
		profile,
	)
}
