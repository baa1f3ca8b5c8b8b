package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(99.99), ZMW)
	require.NoError(t, err)
	assert.Equal(t, ZMW, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.99)))

	_, err = NewMoney(decimal.Zero, "")
	assert.Error(t, err)
}

func TestMoneyAdd(t *testing.T) {
	a := NewMoneyZMWFromFloat(10.50)
	b := NewMoneyZMWFromFloat(4.25)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(14.75)))

	usd, err := NewMoney(decimal.NewFromInt(1), USD)
	require.NoError(t, err)
	_, err = a.Add(usd)
	assert.Error(t, err, "mixed currency addition must fail")
}

func TestMoneySub(t *testing.T) {
	a := NewMoneyZMWFromFloat(10)
	b := NewMoneyZMWFromFloat(3.5)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromFloat(6.5)))
}

func TestMoneyMulAndRound(t *testing.T) {
	// 15% of 199.99 = 29.9985, rounded to 30.00
	price := NewMoneyZMWFromFloat(199.99)
	commission := price.Mul(decimal.NewFromFloat(0.15)).RoundCents()
	assert.Equal(t, "30", commission.Amount().String())
}

func TestMoneyFromString(t *testing.T) {
	m, err := NewMoneyZMWFromString("120.50")
	require.NoError(t, err)
	assert.Equal(t, "ZMW 120.50", m.String())

	_, err = NewMoneyZMWFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, ZeroZMW().IsZero())
	assert.True(t, NewMoneyZMWFromFloat(1).IsPositive())
	assert.True(t, NewMoneyZMWFromFloat(-1).IsNegative())
}

func TestMoneyEqual(t *testing.T) {
	a := NewMoneyZMWFromFloat(5)
	b, err := NewMoneyZMWFromString("5.00")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	usd, err := NewMoney(decimal.NewFromInt(5), USD)
	require.NoError(t, err)
	assert.False(t, a.Equal(usd))
}
