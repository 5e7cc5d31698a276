package kernel

import (
	"fmt"
	"math"

	"parcelmate/internal/pkg/errs"
	"parcelmate/internal/pkg/guard"
)

// ErrWeightIsNotConstructed indicates a Weight was not created through one
// of the constructor functions.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError(
	"Weight must be created via NewWeightFromKg, WeightFromGrams, or ZeroWeight",
)

// Weight is a luggage weight backed by an integral number of grams, so that
// sums of reservations against a flight stay exact. Callers speak kilograms;
// the conversion rounds to the nearest gram.
type Weight struct {
	grams int64

	guard guard.ConstructorGuard
}

// NewWeightFromKg creates a Weight from kilograms. The weight must be
// strictly positive; upper bounds are the business of the aggregate that
// owns the weight (orders cap at 10 kg, flight capacity at 20 kg).
func NewWeightFromKg(kg float64) (Weight, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Weight{}, errs.NewValueIsInvalidError("weight is not a number")
	}

	grams := int64(math.Round(kg * 1000))
	if grams <= 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause(
			"weight is invalid",
			fmt.Errorf("%v kg is not greater than 0", kg),
		)
	}

	return Weight{grams: grams, guard: guard.NewConstructorGuard()}, nil
}

// WeightFromGrams creates a Weight from a non-negative gram count, as read
// back from persistence.
func WeightFromGrams(grams int64) (Weight, error) {
	if grams < 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause(
			"weight is invalid",
			fmt.Errorf("%d grams is negative", grams),
		)
	}

	return Weight{grams: grams, guard: guard.NewConstructorGuard()}, nil
}

// ZeroWeight returns the zero weight, used as the initial reserved capacity
// of a freshly posted flight.
func ZeroWeight() Weight {
	return Weight{guard: guard.NewConstructorGuard()}
}

// Grams returns the weight in grams.
func (w Weight) Grams() int64 {
	return w.grams
}

// Kg returns the weight in kilograms.
func (w Weight) Kg() float64 {
	return float64(w.grams) / 1000
}

// Add returns the sum of two weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{grams: w.grams + other.grams, guard: guard.NewConstructorGuard()}
}

// Sub returns the difference w − other. Subtracting more than is present is
// an invariant violation surfaced to the caller, never clamped.
func (w Weight) Sub(other Weight) (Weight, error) {
	if other.grams > w.grams {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause(
			"weight is invalid",
			fmt.Errorf("cannot subtract %d grams from %d grams", other.grams, w.grams),
		)
	}
	return Weight{grams: w.grams - other.grams, guard: guard.NewConstructorGuard()}, nil
}

// LessOrEqual reports whether w fits into other.
func (w Weight) LessOrEqual(other Weight) bool {
	return w.grams <= other.grams
}

// IsZero reports whether the weight is zero.
func (w Weight) IsZero() bool {
	return w.grams == 0
}

// IsEqual reports whether two weights are the same.
func (w Weight) IsEqual(other Weight) bool {
	return w.grams == other.grams
}

// String renders the weight in kilograms for messages and logs.
func (w Weight) String() string {
	return fmt.Sprintf("%.3f kg", w.Kg())
}

// Validate ensures the value was created via a constructor.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}
