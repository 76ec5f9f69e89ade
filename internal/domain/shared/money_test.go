package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString("1234.50")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("1234.5")))

	_, err = MoneyFromString("not-a-number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid money amount")
}

func TestMoneyArithmetic(t *testing.T) {
	a, err := MoneyFromString("600")
	require.NoError(t, err)
	b, err := MoneyFromString("400")
	require.NoError(t, err)

	assert.True(t, a.Add(b).Equal(NewMoney(decimal.NewFromInt(1000))))
	assert.True(t, a.Sub(b).Equal(NewMoney(decimal.NewFromInt(200))))

	// Sub may go negative; the caller decides whether that is an error.
	diff := b.Sub(a)
	assert.True(t, diff.IsNegative())
	assert.False(t, diff.IsPositive())
	assert.False(t, diff.IsZero())
}

func TestMoneyPredicates(t *testing.T) {
	zero := ZeroMoney()
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())

	one := NewMoney(decimal.NewFromInt(1))
	assert.True(t, one.IsPositive())
	assert.True(t, one.GreaterThan(zero))
	assert.False(t, zero.GreaterThan(one))
}

func TestMoneyEqualIgnoresExponent(t *testing.T) {
	a, err := MoneyFromString("600")
	require.NoError(t, err)
	b, err := MoneyFromString("600.00")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "$0.00", ZeroMoney().String())

	m, err := MoneyFromString("399.9")
	require.NoError(t, err)
	assert.Equal(t, "$399.90", m.String())

	neg := ZeroMoney().Sub(NewMoney(decimal.NewFromFloat(12.345)))
	assert.Equal(t, "$-12.35", neg.String())
}
