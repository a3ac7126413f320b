package watchlist

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockJSON(t *testing.T) {
	const input = `{
		"id": 7,
		"ticker": "AT&T",
		"name": "AT&T Inc.",
		"yahoo_ticker": "T",
		"currency": "USD",
		"market_cap": "large",
		"entry_price": 15,
		"current_price": null,
		"zz_custom": {"a": [1, 2]},
		"aa_custom": "kept"
	}`
	var s Stock
	require.NoError(t, json.Unmarshal([]byte(input), &s))

	assert.Equal(t, 7, s.ID)
	assert.Equal(t, "AT&T", s.Ticker)
	assert.Equal(t, LargeCap, s.MarketCap)
	assert.True(t, s.EntryPrice.Equal(A(15)))
	assert.False(t, s.CurrentPrice.Valid())
	assert.True(t, s.Syncable())

	out, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"id":7,"ticker":"AT&T","name":"AT&T Inc.","yahoo_ticker":"T","currency":"USD","market_cap":"large",`+
		`"entry_price":15,"current_price":null,"zz_custom":{"a":[1,2]},"aa_custom":"kept"}`, string(out))
}

func TestStockJSONInMemory(t *testing.T) {
	s := Stock{ID: 1, Ticker: "X", Notes: "a&b", EntryPrice: A(10)}
	out, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"ticker":"X","name":"","yahoo_ticker":"","stock_exchange":"","currency":"","market_cap":"",`+
		`"entry_price":10,"current_price":null,"difference":null,"uplift_potential":null,`+
		`"six_months_price_target":null,"twelve_months_price_target":null,`+
		`"one_month_highest_price":null,"two_months_highest_price":null,"three_months_highest_price":null,`+
		`"six_months_highest_price":null,"twelve_months_highest_price":null,"highest_price":null,`+
		`"notes":"a&b","links":"","agent":"","last_modified":"","created_at":""}`, string(out))
}

func TestStockJSONKeepsLayout(t *testing.T) {
	const input = `{"ticker":"B","id":2,"notes":null,"links":null,"entry_price":10.0,"current_price":null}`
	var s Stock
	require.NoError(t, json.Unmarshal([]byte(input), &s))

	out, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, input, string(out), "an untouched record is written as read")

	s, err = ApplyPrice(s, A(12))
	require.NoError(t, err)
	s = UpdateHighest(s, A(12))
	s = RefreshTimestamp(s, time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local))
	s.Notes = "watch earnings"

	out, err = s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"ticker":"B","id":2,"notes":"watch earnings","links":null,"entry_price":10.0,"current_price":12,`+
		`"difference":20,"highest_price":12,"last_modified":"2024-03-01 14:30"}`, string(out))
}

func TestStockJSONLenientID(t *testing.T) {
	tests := []struct {
		input string
		id    int
	}{
		{`{"id":1.0}`, 1},
		{`{"id":3e2}`, 300},
		{`{"id":"abc"}`, 0},
		{`{"id":1.5}`, 0},
		{`{"id":null}`, 0},
	}
	for _, tt := range tests {
		var s Stock
		require.NoError(t, json.Unmarshal([]byte(tt.input), &s), tt.input)
		assert.Equal(t, tt.id, s.ID, tt.input)

		out, err := s.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, tt.input, string(out), "ids are written back as found")
	}

	var s Stock
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc"}`), &s))
	s.ID = 9
	out, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"id":9}`, string(out))
}

func TestStockJSONDuplicateKeys(t *testing.T) {
	var s Stock
	require.NoError(t, json.Unmarshal([]byte(`{"ticker":"A","name":"x","ticker":"B"}`), &s))
	assert.Equal(t, "B", s.Ticker)
	out, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"ticker":"B","name":"x"}`, string(out))
}

func TestStockJSONErrors(t *testing.T) {
	var s Stock
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"entry_price":"cheap"}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"ticker":5}`), &s))
}

func TestStockUnknownFieldsSurviveUpdates(t *testing.T) {
	var s Stock
	require.NoError(t, json.Unmarshal([]byte(`{"ticker":"X","entry_price":100,"sector":"tech"}`), &s))

	s, err := ApplyPrice(s, A(110))
	require.NoError(t, err)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"sector":"tech"`)
	assert.Contains(t, string(out), `"difference":10`)
}

func TestStockSyncable(t *testing.T) {
	assert.False(t, Stock{}.Syncable())
	assert.False(t, Stock{YahooTicker: "  "}.Syncable())
	assert.True(t, Stock{YahooTicker: "OTP.BD"}.Syncable())
}

func TestMarketCapValid(t *testing.T) {
	for _, m := range []MarketCap{SmallCap, MidCap, LargeCap} {
		assert.True(t, m.Valid())
	}
	assert.False(t, MarketCap("huge").Valid())
	assert.False(t, MarketCap("").Valid())
}
