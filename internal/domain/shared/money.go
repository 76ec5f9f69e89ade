package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an immutable monetary amount. The system is single-currency,
// so Money carries no currency code; it exists to keep money arithmetic
// and display formatting in one place instead of scattering
// decimal.Decimal calls and fmt verbs across the domain.
type Money struct {
	amount decimal.Decimal
}

// NewMoney wraps a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromString parses an amount like "1234.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of both amounts. The result may be
// negative; callers that treat that as an invariant violation check
// IsNegative.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Equal reports whether both amounts are numerically equal, regardless
// of decimal exponent ("600" equals "600.00").
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount for user-facing messages, always with two
// decimal places: "$0.00", "$399.99".
func (m Money) String() string {
	return "$" + m.amount.StringFixed(2)
}
