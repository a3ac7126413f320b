package renderer

import (
	"fmt"

	"github.com/etnz/watchlist"
)

// Stocks renders the watchlist as a markdown table.
func Stocks(stocks watchlist.Stocks) string {
	var m markdown
	m.Printf("# Watchlist\n\n")
	if len(stocks) == 0 {
		m.Printf("No stocks.\n")
		return m.String()
	}

	m.Printf("| Ticker | Name | Exchange | Entry | Current | Difference | Potential | Highest | Modified |\n")
	m.Printf("|:---|:---|:---|---:|---:|---:|---:|---:|:---|\n")
	for _, s := range stocks {
		m.Row(
			s.Ticker,
			s.Name,
			s.StockExchange,
			Price(s.EntryPrice, s.Currency),
			Price(s.CurrentPrice, s.Currency),
			Percent(s.Difference),
			Percent(s.UpliftPotential),
			Price(s.HighestPrice, s.Currency),
			s.LastModified,
		)
	}
	m.Printf("\n%d stocks\n", len(stocks))
	return m.String()
}

// Recompute renders the outcome of a recompute.
func Recompute(total, updated int) string {
	return fmt.Sprintf("# Recompute\n\n%d of %d differences updated.\n", updated, total)
}
