package watchlist

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is an exact decimal number that may be absent.
//
// It is persisted as a plain JSON number, or null when absent, so that the
// file stays readable by the front end.
type Amount struct {
	value decimal.Decimal
	valid bool
}

// Null is the absent Amount.
var Null Amount

// A returns a present Amount for value.
func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Amount{value: v, valid: true}
	case float64:
		return Amount{value: decimal.NewFromFloat(v), valid: true}
	case int:
		return Amount{value: decimal.NewFromInt(int64(v)), valid: true}
	case int64:
		return Amount{value: decimal.NewFromInt(v), valid: true}
	default:
		panic(fmt.Sprintf("unsupported amount type %T", value))
	}
}

// Valid reports whether the amount is present.
func (a Amount) Valid() bool { return a.valid }

// Decimal returns the value, zero when absent.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// Float64 returns the nearest float64 and whether the amount is present.
func (a Amount) Float64() (float64, bool) {
	if !a.valid {
		return 0, false
	}
	return a.value.InexactFloat64(), true
}

func (a Amount) IsZero() bool     { return a.valid && a.value.IsZero() }
func (a Amount) IsNegative() bool { return a.valid && a.value.IsNegative() }
func (a Amount) IsPositive() bool { return a.valid && a.value.IsPositive() }

// Equal reports whether a and b are both absent, or both present with the
// same numerical value.
func (a Amount) Equal(b Amount) bool {
	if a.valid != b.valid {
		return false
	}
	return !a.valid || a.value.Equal(b.value)
}

// GreaterThan reports whether both amounts are present and a > b.
func (a Amount) GreaterThan(b Amount) bool {
	return a.valid && b.valid && a.value.GreaterThan(b.value)
}

// LessThan reports whether both amounts are present and a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.valid && b.valid && a.value.LessThan(b.value)
}

// String returns the decimal representation, or "-" when absent.
func (a Amount) String() string {
	if !a.valid {
		return "-"
	}
	return a.value.String()
}

// SignedString returns the value with an explicit sign and a percent suffix.
// It is meant for the difference column.
func (a Amount) SignedString() string {
	if !a.valid {
		return "-"
	}
	s := a.value.StringFixed(2) + "%"
	if a.value.IsPositive() {
		return "+" + s
	}
	return s
}

var jsonNull = []byte("null")

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return jsonNull, nil
	}
	return []byte(a.value.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*a = Null
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	*a = Amount{value: d, valid: true}
	return nil
}
