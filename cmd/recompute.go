package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/renderer"
	"github.com/etnz/watchlist/store"
)

type recomputeCmd struct{}

func (*recomputeCmd) Name() string     { return "recompute" }
func (*recomputeCmd) Synopsis() string { return "recompute differences from the stored prices" }
func (*recomputeCmd) Usage() string {
	return `stocksync recompute

  Recomputes the difference of every stock from its entry and current
  prices, without fetching anything. The watchlist is only written if a
  difference changed.
`
}
func (*recomputeCmd) SetFlags(f *flag.FlagSet) {}

func (c *recomputeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	stocks, updated, err := recompute(a)
	if err != nil {
		return a.Fail("recompute failed", err)
	}
	printMarkdown(renderer.Recompute(len(stocks), updated))
	return subcommands.ExitSuccess
}

// recompute updates the differences of the configured watchlist. Stocks
// that cannot be recomputed are logged.
func recompute(a *app) (watchlist.Stocks, int, error) {
	stocks, err := a.Read()
	if err != nil {
		return nil, 0, err
	}
	out, updated, rerr := watchlist.Recompute(stocks)
	if rerr != nil {
		a.log.Warn("some differences were not recomputed", zap.Error(rerr))
	}
	if !watchlist.HasChanged(stocks, out, false) {
		a.log.Info("differences are up to date", zap.String("path", a.cfg.StocksFile))
		return out, updated, nil
	}
	if err := (store.File{}).Write(a.cfg.StocksFile, out); err != nil {
		return nil, 0, err
	}
	a.log.Info("differences updated", zap.String("path", a.cfg.StocksFile), zap.Int("stocks", updated))
	return out, updated, nil
}
