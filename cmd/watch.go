package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/etnz/watchlist/watch"
)

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	debounce time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "recompute differences whenever the watchlist is edited" }
func (*watchCmd) Usage() string {
	return `stocksync watch [-debounce <duration>]

  Watches the watchlist file and recomputes the differences after each
  edit. Runs until interrupted. Under systemd, readiness is notified once
  the watch is in place.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.debounce, "debounce", watch.DefaultDebounce, "delay between the last edit and the recompute")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &watch.Watcher{
		Path:     a.cfg.StocksFile,
		Debounce: c.debounce,
		Logger:   a.log,
		OnChange: func(context.Context) error {
			_, _, err := recompute(a)
			return err
		},
		Ready: func() { notify(a.log, daemon.SdNotifyReady) },
	}
	err = w.Run(ctx)
	notify(a.log, daemon.SdNotifyStopping)
	if err != nil {
		return a.Fail("watch failed", err)
	}
	return subcommands.ExitSuccess
}

// notify sends state to systemd, when running as a notify service.
func notify(log *zap.Logger, state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		log.Warn("cannot notify systemd", zap.String("state", state), zap.Error(err))
		return
	}
	if sent {
		log.Debug("systemd notified", zap.String("state", state))
	}
}
