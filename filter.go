package watchlist

import (
	"slices"
	"strings"
)

// Stocks is a watchlist.
type Stocks []Stock

// Filter selects stocks of a watchlist. The zero value matches everything.
//
// Price bounds apply to the entry price, potential bounds to the uplift
// potential. Bounds are inclusive and Null means unbounded.
type Filter struct {
	Search   string // case insensitive, in ticker or name
	Exchange string
	Currency string

	MinPrice, MaxPrice         Amount
	MinPotential, MaxPotential Amount
}

// Match reports whether s passes all the criteria of f.
func (f Filter) Match(s Stock) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Ticker), q) && !strings.Contains(strings.ToLower(s.Name), q) {
			return false
		}
	}
	if f.Exchange != "" && s.StockExchange != f.Exchange {
		return false
	}
	if f.Currency != "" && s.Currency != f.Currency {
		return false
	}
	if !within(s.EntryPrice, f.MinPrice, f.MaxPrice) {
		return false
	}
	return within(s.UpliftPotential, f.MinPotential, f.MaxPotential)
}

// within reports whether v is in [lo, hi]. An absent v is only within
// unbounded ranges.
func within(v, lo, hi Amount) bool {
	if !lo.Valid() && !hi.Valid() {
		return true
	}
	if !v.Valid() {
		return false
	}
	return !v.LessThan(lo) && !v.GreaterThan(hi)
}

// Filter returns the stocks matching f, in order.
func (s Stocks) Filter(f Filter) Stocks {
	res := make(Stocks, 0, len(s))
	for _, stock := range s {
		if f.Match(stock) {
			res = append(res, stock)
		}
	}
	return res
}

// Exchanges returns the sorted distinct exchanges.
func (s Stocks) Exchanges() []string {
	return distinct(s, func(x Stock) string { return x.StockExchange })
}

// Currencies returns the sorted distinct currencies.
func (s Stocks) Currencies() []string {
	return distinct(s, func(x Stock) string { return x.Currency })
}

func distinct(s Stocks, key func(Stock) string) []string {
	res := make([]string, 0, len(s))
	for _, x := range s {
		res = append(res, key(x))
	}
	slices.Sort(res)
	return slices.Compact(res)
}
