package flight

import (
	"errors"
	"fmt"

	"parcelmate/internal/pkg/errs"
	"parcelmate/internal/pkg/guard"
)

// ErrProfileIsNotConstructed indicates a TravelerProfile was not created
// through NewTravelerProfile.
var ErrProfileIsNotConstructed = errors.New(
	"TravelerProfile must be created via NewTravelerProfile constructor",
)

// TravelerProfile is a snapshot of the traveler's reputation taken when the
// flight is posted. The matching engine ranks flights by these numbers; the
// engine itself never computes them, they come from the identity
// collaborator.
type TravelerProfile struct {
	rating              float64
	completedDeliveries int

	guard guard.ConstructorGuard
}

// NewTravelerProfile creates a profile snapshot. Rating is on a 0..5 scale;
// completed deliveries count past settled orders.
func NewTravelerProfile(rating float64, completedDeliveries int) (TravelerProfile, error) {
	if rating < 0 || rating > 5 {
		return TravelerProfile{}, errs.NewValueIsOutOfRangeError("rating", rating, 0, 5)
	}
	if completedDeliveries < 0 {
		return TravelerProfile{}, errs.NewValueIsInvalidErrorWithCause(
			"completedDeliveries is invalid",
			fmt.Errorf("%d is negative", completedDeliveries),
		)
	}

	return TravelerProfile{
		rating:              rating,
		completedDeliveries: completedDeliveries,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Rating returns the traveler's rating on a 0..5 scale.
func (p TravelerProfile) Rating() float64 {
	return p.rating
}

// CompletedDeliveries returns how many deliveries the traveler settled.
func (p TravelerProfile) CompletedDeliveries() int {
	return p.completedDeliveries
}

// Validate ensures the profile was created via the constructor.
func (p TravelerProfile) Validate() error {
	return p.guard.Validate(ErrProfileIsNotConstructed)
}
