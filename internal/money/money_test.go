package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, "1.24", Round(decimal.NewFromFloat(1.235)).String())
	assert.Equal(t, "1.23", Round(decimal.NewFromFloat(1.234)).String())
}

func TestSafeDivZeroDenominator(t *testing.T) {
	assert.True(t, SafeDiv(decimal.NewFromInt(10), decimal.Zero).IsZero())
}

func TestMaxMin(t *testing.T) {
	a := decimal.NewFromInt(5)
	b := decimal.NewFromInt(9)
	assert.True(t, Max(a, b).Equal(b))
	assert.True(t, Min(a, b).Equal(a))
}
