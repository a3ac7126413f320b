package watchlist

import (
	"fmt"
	"time"
)

// TimestampFormat is the layout of Stock.LastModified.
const TimestampFormat = "2006-01-02 15:04"

// This file contains the pure functions applied to a single record during a
// sync. Stock is a value, so each function works on its own copy and the
// caller's record is never modified.

// ApplyPrice returns s with CurrentPrice set to price and Difference
// recomputed against the entry price.
func ApplyPrice(s Stock, price Amount) (Stock, error) {
	if !price.Valid() {
		return s, fmt.Errorf("%w: no price", ErrInvalidPrice)
	}
	if price.IsNegative() {
		return s, fmt.Errorf("%w: price must not be negative, got %v", ErrInvalidPrice, price)
	}
	diff, err := Difference(s.EntryPrice, price)
	if err != nil {
		return s, fmt.Errorf("%s: %w", s.Ticker, err)
	}
	s.CurrentPrice = price
	s.Difference = diff
	return s, nil
}

// UpdateHighest returns s with CurrentPrice set to price, and HighestPrice
// raised to price if it was never observed or price is a new high.
func UpdateHighest(s Stock, price Amount) Stock {
	if !s.HighestPrice.Valid() || price.GreaterThan(s.HighestPrice) {
		s.HighestPrice = price
	}
	s.CurrentPrice = price
	return s
}

// RefreshTimestamp returns s with LastModified set to now, in local time,
// truncated to the minute.
func RefreshTimestamp(s Stock, now time.Time) Stock {
	s.LastModified = now.Local().Format(TimestampFormat)
	return s
}

// HasChanged reports whether the persisted price state differs between old
// and new. Only CurrentPrice, Difference and, if trackHighest, HighestPrice
// are compared: the other fields are never modified by a sync.
func HasChanged(old, new []Stock, trackHighest bool) bool {
	if len(old) != len(new) {
		return true
	}
	for i := range old {
		o, n := old[i], new[i]
		if !o.CurrentPrice.Equal(n.CurrentPrice) || !o.Difference.Equal(n.Difference) {
			return true
		}
		if trackHighest && !o.HighestPrice.Equal(n.HighestPrice) {
			return true
		}
	}
	return false
}
