package watchlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// MarketCap is the market capitalization bucket of a stock.
type MarketCap string

const (
	SmallCap MarketCap = "small"
	MidCap   MarketCap = "mid"
	LargeCap MarketCap = "large"
)

// Valid reports whether m is one of the known buckets.
func (m MarketCap) Valid() bool {
	switch m {
	case SmallCap, MidCap, LargeCap:
		return true
	}
	return false
}

// Stock is one tracked position of the watchlist.
//
// Only the price derived fields (CurrentPrice, Difference, HighestPrice and
// LastModified) are maintained by this package, everything else is edited by
// hand or by other tools.
type Stock struct {
	ID            int       `json:"id"`
	Ticker        string    `json:"ticker"`
	Name          string    `json:"name"`
	YahooTicker   string    `json:"yahoo_ticker"` // market data symbol, empty to disable sync
	StockExchange string    `json:"stock_exchange"`
	Currency      string    `json:"currency"`
	MarketCap     MarketCap `json:"market_cap"`

	EntryPrice      Amount `json:"entry_price"`
	CurrentPrice    Amount `json:"current_price"`
	Difference      Amount `json:"difference"` // percent, derived from EntryPrice and CurrentPrice
	UpliftPotential Amount `json:"uplift_potential"`

	SixMonthsPriceTarget    Amount `json:"six_months_price_target"`
	TwelveMonthsPriceTarget Amount `json:"twelve_months_price_target"`

	OneMonthHighestPrice     Amount `json:"one_month_highest_price"`
	TwoMonthsHighestPrice    Amount `json:"two_months_highest_price"`
	ThreeMonthsHighestPrice  Amount `json:"three_months_highest_price"`
	SixMonthsHighestPrice    Amount `json:"six_months_highest_price"`
	TwelveMonthsHighestPrice Amount `json:"twelve_months_highest_price"`
	HighestPrice             Amount `json:"highest_price"` // running all time high, Null if never observed

	Notes        string `json:"notes"`
	Links        string `json:"links"`
	Agent        string `json:"agent"`
	LastModified string `json:"last_modified"` // "2006-01-02 15:04" local time
	CreatedAt    string `json:"created_at"`

	// raw holds the properties as read from the file, in file order. Nil
	// for a record built in memory.
	raw []rawField
}

// rawField is a property as read from the file.
type rawField struct {
	key   string
	value json.RawMessage
}

// Syncable reports whether the stock has a market data symbol.
func (s Stock) Syncable() bool { return strings.TrimSpace(s.YahooTicker) != "" }

// field is a persisted property of a Stock.
type field struct {
	key string
	ptr any // pointer to the Stock field
}

// fields lists the persisted properties in their default order.
func (s *Stock) fields() []field {
	return []field{
		{"id", &s.ID},
		{"ticker", &s.Ticker},
		{"name", &s.Name},
		{"yahoo_ticker", &s.YahooTicker},
		{"stock_exchange", &s.StockExchange},
		{"currency", &s.Currency},
		{"market_cap", &s.MarketCap},
		{"entry_price", &s.EntryPrice},
		{"current_price", &s.CurrentPrice},
		{"difference", &s.Difference},
		{"uplift_potential", &s.UpliftPotential},
		{"six_months_price_target", &s.SixMonthsPriceTarget},
		{"twelve_months_price_target", &s.TwelveMonthsPriceTarget},
		{"one_month_highest_price", &s.OneMonthHighestPrice},
		{"two_months_highest_price", &s.TwoMonthsHighestPrice},
		{"three_months_highest_price", &s.ThreeMonthsHighestPrice},
		{"six_months_highest_price", &s.SixMonthsHighestPrice},
		{"twelve_months_highest_price", &s.TwelveMonthsHighestPrice},
		{"highest_price", &s.HighestPrice},
		{"notes", &s.Notes},
		{"links", &s.Links},
		{"agent", &s.Agent},
		{"last_modified", &s.LastModified},
		{"created_at", &s.CreatedAt},
	}
}

// decodeField decodes raw into the field at ptr.
//
// Ids are lenient: integral numbers like 1.0 are read as int, anything else
// reads as 0 and is written back as found.
func decodeField(ptr any, raw json.RawMessage) error {
	id, ok := ptr.(*int)
	if !ok {
		return json.Unmarshal(raw, ptr)
	}
	*id = 0
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	d, err := decimal.NewFromString(n.String())
	if err == nil && d.IsInteger() {
		*id = int(d.IntPart())
	}
	return nil
}

// canonical returns the encoding of the value raw decodes to in a field of
// the same type as ptr. Two values with the same canonical encoding are
// the same value.
func canonical(ptr any, raw json.RawMessage) ([]byte, error) {
	fresh := reflect.New(reflect.TypeOf(ptr).Elem()).Interface()
	if raw != nil {
		if err := decodeField(fresh, raw); err != nil {
			return nil, err
		}
	}
	return marshal(fresh)
}

// MarshalJSON writes a record read from a file in its original layout: the
// same keys in the same order, and the original text of every value that
// did not change. Properties absent from the file are only added once they
// are set.
//
// A record built in memory is written with all the known properties, in
// their default order.
func (s Stock) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	fields := s.fields()
	if s.raw == nil {
		for _, f := range fields {
			w.Append(f.key, f.ptr)
		}
		return w.MarshalJSON()
	}

	known := make(map[string]any, len(fields))
	for _, f := range fields {
		known[f.key] = f.ptr
	}
	written := make(map[string]bool, len(s.raw))
	for _, r := range s.raw {
		ptr, ok := known[r.key]
		if !ok {
			w.AppendRaw(r.key, r.value)
			continue
		}
		written[r.key] = true
		current, err := marshal(ptr)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value for key %q: %w", r.key, err)
		}
		if original, err := canonical(ptr, r.value); err == nil && bytes.Equal(current, original) {
			w.AppendRaw(r.key, r.value)
		} else {
			w.AppendRaw(r.key, current)
		}
	}
	for _, f := range fields {
		if written[f.key] {
			continue
		}
		current, err := marshal(f.ptr)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value for key %q: %w", f.key, err)
		}
		if zero, _ := canonical(f.ptr, nil); bytes.Equal(current, zero) {
			continue
		}
		w.AppendRaw(f.key, current)
	}
	return w.MarshalJSON()
}

func (s *Stock) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil
	}
	raw, err := objectFields(data)
	if err != nil {
		return err
	}

	var res Stock
	known := make(map[string]any)
	for _, f := range res.fields() {
		known[f.key] = f.ptr
	}
	for _, r := range raw {
		if ptr, ok := known[r.key]; ok {
			if err := decodeField(ptr, r.value); err != nil {
				return fmt.Errorf("invalid %q: %w", r.key, err)
			}
		}
	}
	res.raw = raw
	*s = res
	return nil
}

// objectFields splits a JSON object into its properties, in order. A
// repeated key keeps its first position and its last value.
func objectFields(data []byte) ([]rawField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	fields := make([]rawField, 0, 32)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if i, ok := index[key]; ok {
			fields[i].value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, rawField{key, value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

// String returns a short human description, mostly for logs.
func (s Stock) String() string {
	return fmt.Sprintf("%s (%s)", s.Ticker, s.Name)
}
