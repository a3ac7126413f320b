package watchlist

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Difference returns the percentage change from entry to current, rounded to
// 2 decimal places half away from zero.
//
// It is computed in exact decimal arithmetic, so that 100 -> 123.456 is
// exactly 23.46.
func Difference(entry, current Amount) (Amount, error) {
	if !entry.Valid() {
		return Null, fmt.Errorf("%w: entry price must be a valid number", ErrInvalidInput)
	}
	if !current.Valid() {
		return Null, fmt.Errorf("%w: current price must be a valid number", ErrInvalidInput)
	}
	if entry.IsZero() {
		return Null, ErrZeroEntryPrice
	}
	e, c := entry.Decimal(), current.Decimal()
	return A(c.Sub(e).Mul(hundred).Div(e).Round(2)), nil
}

// CalculateDifference is the float64 form of Difference.
//
// NaN and infinite values are rejected with ErrInvalidInput.
func CalculateDifference(entryPrice, currentPrice float64) (float64, error) {
	if !finite(entryPrice) {
		return 0, fmt.Errorf("%w: entry price must be a valid number", ErrInvalidInput)
	}
	if !finite(currentPrice) {
		return 0, fmt.Errorf("%w: current price must be a valid number", ErrInvalidInput)
	}
	d, err := Difference(A(entryPrice), A(currentPrice))
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
