package watchlist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDifference(t *testing.T) {
	tests := []struct {
		entry, current float64
		want           float64
	}{
		{100, 100, 0},
		{100, 150, 50},
		{100, 50, -50},
		{100, 123.456, 23.46},
		{3, 4, 33.33},
		{3, 2, -33.33},
		{8, 8.01, 0.13}, // 0.125 rounds half away from zero
		{8, 7.99, -0.13},
		{-10, -5, -50}, // negative entry is allowed
		{0.1, 0.3, 200},
		{250, 0, -100},
	}
	for _, tt := range tests {
		got, err := CalculateDifference(tt.entry, tt.current)
		require.NoError(t, err, "CalculateDifference(%v, %v)", tt.entry, tt.current)
		assert.Equal(t, tt.want, got, "CalculateDifference(%v, %v)", tt.entry, tt.current)
	}
}

func TestCalculateDifferenceErrors(t *testing.T) {
	for _, current := range []float64{0, 1, -1, 123.456} {
		_, err := CalculateDifference(0, current)
		assert.ErrorIs(t, err, ErrZeroEntryPrice)
	}

	for _, bad := range [][2]float64{
		{math.NaN(), 1},
		{1, math.NaN()},
		{math.Inf(1), 1},
		{1, math.Inf(-1)},
	} {
		_, err := CalculateDifference(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidInput, "CalculateDifference(%v, %v)", bad[0], bad[1])
	}
}

func TestDifferenceNull(t *testing.T) {
	_, err := Difference(Null, A(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Difference(A(1), Null)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
