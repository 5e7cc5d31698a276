package kernel

import (
	"strings"

	"parcelmate/internal/pkg/errs"
	"parcelmate/internal/pkg/guard"
)

// ErrRouteIsNotConstructed indicates a Route was not created through NewRoute.
var ErrRouteIsNotConstructed = errs.NewValueIsRequiredError(
	"Route must be created via NewRoute",
)

// Route is a city-to-city itinerary shared by orders (where the parcel must
// travel) and flights (where the traveler is going). Both city names are
// required; matching between them is case-insensitive substring search,
// which is how travelers look flights up.
type Route struct {
	fromCity string
	toCity   string

	guard guard.ConstructorGuard
}

// NewRoute creates a Route between two cities. Surrounding whitespace is
// trimmed; empty city names are rejected.
func NewRoute(fromCity, toCity string) (Route, error) {
	fromCity = strings.TrimSpace(fromCity)
	toCity = strings.TrimSpace(toCity)

	if fromCity == "" {
		return Route{}, errs.NewValueIsRequiredError("fromCity")
	}
	if toCity == "" {
		return Route{}, errs.NewValueIsRequiredError("toCity")
	}

	return Route{fromCity: fromCity, toCity: toCity, guard: guard.NewConstructorGuard()}, nil
}

// FromCity returns the departure city.
func (r Route) FromCity() string {
	return r.fromCity
}

// ToCity returns the destination city.
func (r Route) ToCity() string {
	return r.toCity
}

// MatchesFrom reports whether the departure city contains the given
// fragment, ignoring case. The empty fragment matches everything.
func (r Route) MatchesFrom(fragment string) bool {
	return containsFold(r.fromCity, fragment)
}

// MatchesTo reports whether the destination city contains the given
// fragment, ignoring case. The empty fragment matches everything.
func (r Route) MatchesTo(fragment string) bool {
	return containsFold(r.toCity, fragment)
}

// IsEqual reports whether two routes connect the same cities.
func (r Route) IsEqual(other Route) bool {
	return r.fromCity == other.fromCity && r.toCity == other.toCity
}

// String renders the route as "From → To" for messages and logs.
func (r Route) String() string {
	return r.fromCity + " → " + r.toCity
}

// Validate ensures the value was created via the constructor.
func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func containsFold(s, fragment string) bool {
	if fragment == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(fragment)))
}
