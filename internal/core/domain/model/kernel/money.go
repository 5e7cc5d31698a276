package kernel

import (
	"fmt"
	"math"

	"parcelmate/internal/pkg/errs"
	"parcelmate/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed indicates a Money value was not created through
// NewMoney or MoneyFromAmount.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney or MoneyFromAmount",
)

// Money is an amount in minor currency units. Amounts are whole and
// non-negative; all arithmetic is integral so escrow sums never drift.
type Money struct {
	amount int64

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from minor currency units.
// Negative amounts are rejected.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d is negative", amount),
		)
	}

	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromAmount creates a Money value from a numeric amount supplied by a
// caller. The amount must be a whole number of currency units; fractional
// input is rejected rather than silently rounded.
func MoneyFromAmount(value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, errs.NewValueIsInvalidError("amount is not a number")
	}
	if value != math.Trunc(value) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%v is not a whole amount", value),
		)
	}

	return NewMoney(int64(value))
}

// Amount returns the amount in minor currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount, guard: guard.NewConstructorGuard()}
}

// Percent returns pct percent of the amount, rounded half up. This matches
// the marketplace commission rule: commission = round(reward × rate).
func (m Money) Percent(pct int64) Money {
	return Money{amount: (m.amount*pct + 50) / 100, guard: guard.NewConstructorGuard()}
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

// String renders the amount for messages and logs.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}

// Validate ensures the value was created via a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
