package usecase

import (
	"math"
	"testing"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountedPrice(t *testing.T) {
	cases := []struct {
		name       string
		price      float64
		percentage float64
		want       float64
	}{
		{"ten percent", 30, 10, 27},
		{"zero", 30, 0, 30},
		{"full", 30, 100, 0},
		{"over hundred goes negative", 30, 150, -15},
		{"negative discount raises price", 30, -10, 33},
		{"fractional", 19.99, 15, 16.9915},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := discountedPrice(tc.price, tc.percentage)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestTaxedPrice(t *testing.T) {
	got, err := taxedPrice(27, 5)
	require.NoError(t, err)
	assert.Equal(t, 28.35, got)

	got, err = taxedPrice(-10, 20)
	require.NoError(t, err)
	assert.InDelta(t, -12.0, got, 1e-9)
}

func TestPricing_RejectsNonFinite(t *testing.T) {
	_, err := discountedPrice(30, math.NaN())
	assert.ErrorIs(t, err, e.ErrInvalidPercentage)

	_, err = taxedPrice(30, math.Inf(1))
	assert.ErrorIs(t, err, e.ErrInvalidPercentage)

	_, err = taxedPrice(math.Inf(-1), 5)
	assert.ErrorIs(t, err, e.ErrPriceNotFinite)
}

func TestPricing_RejectsOverflow(t *testing.T) {
	_, err := taxedPrice(1e308, 100)
	assert.ErrorIs(t, err, e.ErrPriceNotFinite)

	_, err = discountedPrice(-1e308, -100)
	assert.ErrorIs(t, err, e.ErrPriceNotFinite)

	got, err := taxedPrice(1e307, 100)
	require.NoError(t, err)
	assert.InDelta(t, 2e307, got, 1e293)
}
