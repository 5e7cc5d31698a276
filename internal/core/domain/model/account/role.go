package account

import (
	"fmt"

	"parcelmate/internal/pkg/errs"
)

// Role is the tagged variant distinguishing the two kinds of marketplace
// participants. It is checked explicitly at the points where the role
// matters: only travelers post flights, and only the two parties of an
// order confirm its delivery.
type Role int

const (
	// Unknown represents an invalid or undefined role.
	Unknown Role = iota

	// Customer sends parcels and pays the reward.
	Customer

	// Traveler carries parcels against spare luggage capacity.
	Traveler
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Unknown:  "Unknown",
		Customer: "Customer",
		Traveler: "Traveler",
	}
}

// Validate checks that the Role is one of the defined variants.
func (r Role) Validate() error {
	if r != Customer && r != Traveler {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
