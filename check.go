package watchlist

import (
	"errors"
	"fmt"
)

// Check validates the consistency of a watchlist and returns all the
// problems found, joined.
func Check(stocks []Stock) error {
	var errs error
	seen := make(map[string]int, len(stocks))
	for i, s := range stocks {
		where := fmt.Sprintf("stock #%d %q", i, s.Ticker)

		if j, ok := seen[s.Ticker]; ok {
			errs = errors.Join(errs, fmt.Errorf("%s: duplicate ticker, already used by stock #%d", where, j))
		} else {
			seen[s.Ticker] = i
		}
		if !s.MarketCap.Valid() {
			errs = errors.Join(errs, fmt.Errorf("%s: market cap %q is not one of small, mid, large", where, s.MarketCap))
		}
		if !s.EntryPrice.IsPositive() {
			errs = errors.Join(errs, fmt.Errorf("%s: entry price must be positive, got %v", where, s.EntryPrice))
		}
		if s.CurrentPrice.IsNegative() {
			errs = errors.Join(errs, fmt.Errorf("%s: current price must not be negative, got %v", where, s.CurrentPrice))
		}
		if s.EntryPrice.IsPositive() && s.CurrentPrice.Valid() {
			want, err := Difference(s.EntryPrice, s.CurrentPrice)
			if err == nil && !want.Equal(s.Difference) {
				errs = errors.Join(errs, fmt.Errorf("%s: difference is %v, want %v", where, s.Difference, want))
			}
		}
	}
	return errs
}
