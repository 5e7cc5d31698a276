package services

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"
)

// SortKey selects the ranking applied to matching flights.
type SortKey int

const (
	// SortByDate orders flights by departure date, earliest first.
	// This is the default ranking.
	SortByDate SortKey = iota

	// SortByRating orders flights by traveler rating, highest first.
	SortByRating

	// SortByCapacity orders flights by available capacity, largest first.
	SortByCapacity

	// SortByExperience orders flights by the traveler's completed
	// deliveries, most first.
	SortByExperience
)

// Validate checks that the SortKey is one of the defined rankings.
func (k SortKey) Validate() error {
	switch k {
	case SortByDate, SortByRating, SortByCapacity, SortByExperience:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"sortKey is invalid",
			fmt.Errorf("%d is not a valid sort key", k),
		)
	}
}

// Criteria describes a flight search. Zero fields do not filter: empty
// city fragments match every city, a nil date matches every date and a nil
// required weight matches every flight regardless of availability.
type Criteria struct {
	// FromCity is a case-insensitive substring matched against the
	// flight's departure city.
	FromCity string

	// ToCity is a case-insensitive substring matched against the
	// flight's destination city.
	ToCity string

	// DepartureDate filters to flights departing on this calendar date.
	DepartureDate *time.Time

	// RequiredWeight filters to flights whose available capacity can
	// take at least this much.
	RequiredWeight *kernel.Weight

	// SortKey ranks the matching flights.
	SortKey SortKey
}

// Validate checks the criteria shape.
func (c Criteria) Validate() error {
	if err := c.SortKey.Validate(); err != nil {
		return err
	}
	if c.RequiredWeight != nil {
		if err := c.RequiredWeight.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FlightMatcher is a stateless domain service ranking traveler capacity
// offers against search criteria. It owns no data; callers hand it the
// current set of flights on every query.
type FlightMatcher struct{}

// NewFlightMatcher creates a FlightMatcher instance.
func NewFlightMatcher() FlightMatcher {
	return FlightMatcher{}
}

// Match returns a lazy, restartable sequence of the flights satisfying the
// criteria, ranked by the criteria's sort key with ties broken by flight
// id ascending for determinism.
//
// Filtering and ranking happen anew on every traversal, so availability is
// read from the aggregates as they are at that moment. A traversal is
// still a point-in-time view: a reservation made after it started is only
// caught by the atomic failure path of the reservation itself.
func (m FlightMatcher) Match(flights []*flight.Flight, criteria Criteria) iter.Seq[*flight.Flight] {
	return func(yield func(*flight.Flight) bool) {
		matched := make([]*flight.Flight, 0, len(flights))
		for _, f := range flights {
			if m.matches(f, criteria) {
				matched = append(matched, f)
			}
		}

		slices.SortFunc(matched, comparatorFor(criteria.SortKey))

		for _, f := range matched {
			if !yield(f) {
				return
			}
		}
	}
}

func (m FlightMatcher) matches(f *flight.Flight, criteria Criteria) bool {
	if f.Validate() != nil {
		return false
	}
	if !f.Route().MatchesFrom(criteria.FromCity) {
		return false
	}
	if !f.Route().MatchesTo(criteria.ToCity) {
		return false
	}
	if criteria.DepartureDate != nil && !f.DepartsOn(*criteria.DepartureDate) {
		return false
	}
	if criteria.RequiredWeight != nil &&
		!criteria.RequiredWeight.LessOrEqual(f.AvailableCapacity()) {
		return false
	}
	return true
}

func comparatorFor(key SortKey) func(a, b *flight.Flight) int {
	byID := func(a, b *flight.Flight) int {
		switch {
		case a.ID().Less(b.ID()):
			return -1
		case b.ID().Less(a.ID()):
			return 1
		default:
			return 0
		}
	}

	switch key {
	case SortByRating:
		return func(a, b *flight.Flight) int {
			if c := compareDesc(a.Profile().Rating(), b.Profile().Rating()); c != 0 {
				return c
			}
			return byID(a, b)
		}
	case SortByCapacity:
		return func(a, b *flight.Flight) int {
			if c := compareDesc(a.AvailableCapacity().Grams(), b.AvailableCapacity().Grams()); c != 0 {
				return c
			}
			return byID(a, b)
		}
	case SortByExperience:
		return func(a, b *flight.Flight) int {
			if c := compareDesc(a.Profile().CompletedDeliveries(), b.Profile().CompletedDeliveries()); c != 0 {
				return c
			}
			return byID(a, b)
		}
	default: // SortByDate
		return func(a, b *flight.Flight) int {
			if a.Departure().Before(b.Departure()) {
				return -1
			}
			if b.Departure().Before(a.Departure()) {
				return 1
			}
			return byID(a, b)
		}
	}
}

func compareDesc[T int | int64 | float64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
