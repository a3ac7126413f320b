package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/renderer"
)

// amountFlag is a flag.Value for an optional amount.
type amountFlag struct{ *watchlist.Amount }

func (f amountFlag) String() string {
	if f.Amount == nil || !f.Valid() {
		return ""
	}
	return f.Amount.String()
}

func (f amountFlag) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		*f.Amount = watchlist.Null
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f.Amount = watchlist.A(d)
	return nil
}

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	filter watchlist.Filter
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the watchlist" }
func (*listCmd) Usage() string {
	return `stocksync list [-search <text>] [-exchange <name>] [-currency <code>]
               [-min-price <n>] [-max-price <n>] [-min-potential <n>] [-max-potential <n>]

  Displays the stocks of the watchlist matching all the criteria.
  Price bounds apply to the entry price, and are inclusive.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter.Search, "search", "", "text to search in the ticker or the name")
	f.StringVar(&c.filter.Exchange, "exchange", "", "stock exchange")
	f.StringVar(&c.filter.Currency, "currency", "", "currency code")
	f.Var(amountFlag{&c.filter.MinPrice}, "min-price", "minimum entry price")
	f.Var(amountFlag{&c.filter.MaxPrice}, "max-price", "maximum entry price")
	f.Var(amountFlag{&c.filter.MinPotential}, "min-potential", "minimum uplift potential, in percent")
	f.Var(amountFlag{&c.filter.MaxPotential}, "max-potential", "maximum uplift potential, in percent")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	stocks, err := a.Read()
	if err != nil {
		return a.Fail("cannot read watchlist", err)
	}
	printMarkdown(renderer.Stocks(stocks.Filter(c.filter)))
	return subcommands.ExitSuccess
}
