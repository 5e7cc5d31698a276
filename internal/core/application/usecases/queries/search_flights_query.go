// Package queries contains the read side of the CQRS architecture. Query
// handlers read the database directly and return flat response DTOs,
// bypassing the aggregates and their unit-of-work machinery.
package queries

import (
	"errors"
	"time"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/services"
	"parcelmate/internal/pkg/guard"
)

var ErrSearchFlightsQueryIsNotConstructed = errors.New(
	"SearchFlightsQuery must be created via NewSearchFlightsQuery constructor",
)

// SearchFlightsQuery retrieves the flights able to carry a parcel, ranked
// for a customer browsing capacity offers. Empty fields do not filter:
// an empty city fragment matches every city, a nil date every date and a
// nil weight every flight regardless of availability.
type SearchFlightsQuery struct { //nolint:recvcheck //using for validation
	fromCity      string
	toCity        string
	departureDate *time.Time
	requiredWeight *kernel.Weight
	sortKey       services.SortKey

	guard guard.ConstructorGuard
}

// NewSearchFlightsQuery creates a flight search. City fragments match
// case-insensitively as substrings; the date matches the calendar day of
// departure in UTC.
func NewSearchFlightsQuery(
	fromCity, toCity string,
	departureDate *time.Time,
	requiredWeightKg *float64,
	sortKey services.SortKey,
) (SearchFlightsQuery, error) {
	if err := sortKey.Validate(); err != nil {
		return SearchFlightsQuery{}, err
	}

	q := SearchFlightsQuery{
		fromCity:      fromCity,
		toCity:        toCity,
		departureDate: departureDate,
		sortKey:       sortKey,
		guard:         guard.NewConstructorGuard(),
	}

	if requiredWeightKg != nil {
		weight, err := kernel.NewWeightFromKg(*requiredWeightKg)
		if err != nil {
			return SearchFlightsQuery{}, err
		}
		q.requiredWeight = &weight
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q SearchFlightsQuery) Validate() error {
	return q.guard.Validate(ErrSearchFlightsQueryIsNotConstructed)
}

// FromCity returns the departure city fragment, empty for any.
func (q SearchFlightsQuery) FromCity() string {
	return q.fromCity
}

// ToCity returns the destination city fragment, empty for any.
func (q SearchFlightsQuery) ToCity() string {
	return q.toCity
}

// DepartureDate returns the calendar date filter, nil for any.
func (q SearchFlightsQuery) DepartureDate() *time.Time {
	return q.departureDate
}

// RequiredWeight returns the capacity filter, nil for any.
func (q SearchFlightsQuery) RequiredWeight() *kernel.Weight {
	return q.requiredWeight
}

// SortKey returns the requested ranking.
func (q SearchFlightsQuery) SortKey() services.SortKey {
	return q.sortKey
}

// SearchFlightsQueryResponse represents one capacity offer in the search
// results, with availability computed at read time.
type SearchFlightsQueryResponse struct {
	ID                  kernel.UUID
	TravelerID          kernel.UUID
	FromCity            string
	ToCity              string
	Departure           time.Time
	Arrival             time.Time
	TotalCapacityKg     float64
	AvailableCapacityKg float64
	Rating              float64
	CompletedDeliveries int
}
