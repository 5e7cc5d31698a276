package escrow

import (
	"fmt"

	"parcelmate/internal/pkg/errs"
)

// State represents the lifecycle of escrowed funds.
//
//	Held ──┬──> Released  (refund to customer)
//	       └──> Settled   (payout to traveler, commission retained)
//
// Released and Settled are terminal; money never moves twice.
type State int

const (
	// Unknown represents an invalid or undefined state.
	Unknown State = iota

	// Held means the funds are locked for the order.
	Held

	// Released means the funds went back to the customer.
	Released

	// Settled means the reward was paid out to the traveler and the
	// platform retained the commission.
	Settled
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:  "Unknown",
		Held:     "Held",
		Released: "Released",
		Settled:  "Settled",
	}
}

// Validate checks that the State is one of the defined variants.
func (s State) Validate() error {
	if s != Held && s != Released && s != Settled {
		return errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%d is not a valid escrow state", s),
		)
	}
	return nil
}

// String returns the human-readable name of the state.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
