package watchlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tickers(s Stocks) []string {
	res := []string{}
	for _, x := range s {
		res = append(res, x.Ticker)
	}
	return res
}

func TestFilter(t *testing.T) {
	stocks := Stocks{
		{Ticker: "AAPL", Name: "Apple", StockExchange: "NASDAQ", Currency: "USD", EntryPrice: A(150), UpliftPotential: A(10)},
		{Ticker: "OTP", Name: "OTP Bank", StockExchange: "BET", Currency: "HUF", EntryPrice: A(15000), UpliftPotential: A(25)},
		{Ticker: "MSFT", Name: "Microsoft", StockExchange: "NASDAQ", Currency: "USD", EntryPrice: A(300)},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"AAPL", "OTP", "MSFT"}},
		{"search ticker", Filter{Search: "aap"}, []string{"AAPL"}},
		{"search name", Filter{Search: "bank"}, []string{"OTP"}},
		{"exchange", Filter{Exchange: "NASDAQ"}, []string{"AAPL", "MSFT"}},
		{"currency", Filter{Currency: "HUF"}, []string{"OTP"}},
		{"min price", Filter{MinPrice: A(300)}, []string{"OTP", "MSFT"}},
		{"price range", Filter{MinPrice: A(100), MaxPrice: A(300)}, []string{"AAPL", "MSFT"}},
		{"potential excludes unknown", Filter{MinPotential: A(0)}, []string{"AAPL", "OTP"}},
		{"max potential", Filter{MaxPotential: A(20)}, []string{"AAPL"}},
		{"combined", Filter{Exchange: "NASDAQ", Search: "micro"}, []string{"MSFT"}},
		{"none", Filter{Currency: "EUR"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tickers(stocks.Filter(tt.filter)))
		})
	}

	assert.Equal(t, []string{"BET", "NASDAQ"}, stocks.Exchanges())
	assert.Equal(t, []string{"HUF", "USD"}, stocks.Currencies())
}
