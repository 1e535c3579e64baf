package kernel

import (
	"fmt"
	"math"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// Money is an amount in minor currency units (cents). Totals are integer sums
// so that 10.00 x 2 + 5.00 x 1 is exactly 25.00.
type Money struct {
	cents int64
	guard guard.ConstructorGuard
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("cents", cents, int64(0), int64(math.MaxInt64))
	}
	return Money{cents: cents, guard: guard.NewConstructorGuard()}, nil
}

func ZeroMoney() Money {
	return Money{guard: guard.NewConstructorGuard()}
}

func (m Money) Cents() int64 {
	return m.cents
}

// Add fails when the sum does not fit into int64 cents.
func (m Money) Add(other Money) (Money, error) {
	if other.cents > math.MaxInt64-m.cents {
		return Money{}, errs.NewValueIsOutOfRangeError("amount",
			fmt.Sprintf("%s + %s", m, other), int64(0), int64(math.MaxInt64))
	}
	return Money{cents: m.cents + other.cents, guard: guard.NewConstructorGuard()}, nil
}

// Multiply fails for a negative factor or when the product does not fit into
// int64 cents.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, math.MaxInt)
	}
	if quantity != 0 && m.cents > math.MaxInt64/int64(quantity) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount",
			fmt.Sprintf("%s x %d", m, quantity), int64(0), int64(math.MaxInt64))
	}
	return Money{cents: m.cents * int64(quantity), guard: guard.NewConstructorGuard()}, nil
}

func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount with two decimals, e.g. "25.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
