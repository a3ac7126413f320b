package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/renderer"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the watchlist" }
func (*checkCmd) Usage() string {
	return `stocksync check

  Reports duplicate tickers, invalid market caps, invalid prices and
  differences inconsistent with the prices. Exits with 1 if any is found.
`
}
func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	problems := watchlist.Check(stocks)
	printMarkdown(renderer.Problems(problems))
	if problems != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
