package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/watchlist/renderer"
)

// syncCmd holds the flags for the 'sync' subcommand.
type syncCmd struct {
	noPush  bool
	recover bool
	quiet   bool
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "fetch current prices, update the watchlist and commit it" }
func (*syncCmd) Usage() string {
	return `stocksync sync [-no-push] [-recover] [-q]

  Fetches the current price of every stock with a yahoo_ticker, updates
  current_price, difference and highest_price, and commits the watchlist
  if anything changed. This is the default subcommand.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noPush, "no-push", false, "commit but do not push")
	f.BoolVar(&c.recover, "recover", false, "commit the watchlist if a previous run left it uncommitted")
	f.BoolVar(&c.quiet, "q", false, "do not print the summary")
}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	s := a.Syncer()
	if c.noPush {
		s.Push = false
	}
	if c.recover {
		s.RecoverUncommitted = true
	}

	res, err := s.Sync(ctx)
	a.Record(res, err)
	if err != nil {
		return a.Fail("sync failed", err)
	}
	if !c.quiet {
		printMarkdown(renderer.Sync(res))
	}
	return subcommands.ExitSuccess
}
