// Package cmd implements the stocksync command line application.
package cmd

import (
	"flag"
	"slices"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/config"
	"github.com/etnz/watchlist/git"
	"github.com/etnz/watchlist/metrics"
	"github.com/etnz/watchlist/store"
	"github.com/etnz/watchlist/yahoo"
)

// Commands lists the subcommands by group.
var Commands = map[string][]subcommands.Command{
	"prices": {
		&syncCmd{},
		&recomputeCmd{},
		&watchCmd{},
	},
	"watchlist": {
		&listCmd{},
		&checkCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML configuration file")
var stocksFile = flag.String("stocks-file", "", "Path to the watchlist file, overrides the configuration")

// DefaultCommand runs when no subcommand is given.
const DefaultCommand = "sync"

// Parse parses the global flags in args into fs. Without a subcommand, the
// remaining arguments are DefaultCommand.
func Parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return nil
	}
	return fs.Parse(append(slices.Clone(args), DefaultCommand))
}

// app holds what the subcommands share.
type app struct {
	cfg config.Config
	log *zap.Logger
}

// newApp loads the configuration and builds the logger.
func newApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *stocksFile != "" {
		cfg.StocksFile = *stocksFile
	}
	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log}, nil
}

// Syncer returns the syncer for the configured watchlist.
func (a *app) Syncer() *watchlist.Syncer {
	return &watchlist.Syncer{
		Path:               a.cfg.StocksFile,
		Store:              store.File{},
		Quoter:             yahoo.New(a.cfg.Quotes.BaseURL, a.cfg.Quotes.Timeout),
		VCS:                &git.Repo{Root: a.cfg.RepoRoot, Env: a.cfg.Git.Env()},
		TrackHighest:       a.cfg.TrackHighest,
		Push:               a.cfg.Push,
		RecoverUncommitted: a.cfg.RecoverUncommitted,
		Logger:             a.log,
	}
}

// Read loads the configured watchlist.
func (a *app) Read() (watchlist.Stocks, error) {
	stocks, err := store.File{}.Read(a.cfg.StocksFile)
	return watchlist.Stocks(stocks), err
}

// Record writes the metrics of a sync run, if enabled.
func (a *app) Record(res watchlist.Result, err error) {
	if a.cfg.Metrics.Textfile == "" {
		return
	}
	r := metrics.New()
	r.Record(res, err)
	if err := r.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.log.Warn("failed to write metrics", zap.String("path", a.cfg.Metrics.Textfile), zap.Error(err))
	}
}

// Fail logs a fatal error and returns the failure status. The stack is
// logged in debug mode.
func (a *app) Fail(msg string, err error) subcommands.ExitStatus {
	fields := []zap.Field{zap.Error(err)}
	if a.cfg.Debug {
		fields = append(fields, zap.Stack("stack"))
	}
	a.log.Error(msg, fields...)
	return subcommands.ExitFailure
}
