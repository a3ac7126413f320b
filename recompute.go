package watchlist

import (
	"errors"
	"fmt"
)

// Recompute returns a copy of stocks with Difference recomputed from the
// stored entry and current prices. Nothing is fetched.
//
// Stocks without both prices are left as is. Stocks whose difference cannot
// be computed are left as is too, and their errors are joined in err.
func Recompute(stocks []Stock) (out []Stock, updated int, err error) {
	out = make([]Stock, len(stocks))
	copy(out, stocks)

	for i, s := range out {
		if !s.EntryPrice.Valid() || !s.CurrentPrice.Valid() {
			continue
		}
		diff, derr := Difference(s.EntryPrice, s.CurrentPrice)
		if derr != nil {
			err = errors.Join(err, fmt.Errorf("skipping stock %s: %w", s.Ticker, derr))
			continue
		}
		out[i].Difference = diff
		updated++
	}
	return out, updated, err
}
