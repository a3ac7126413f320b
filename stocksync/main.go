// Command stocksync keeps the prices of a stock watchlist up to date.
//
// Run without a subcommand, it synchronizes the watchlist once, which is
// what a cron job or a CI schedule needs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/etnz/watchlist/cmd"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "fatal error:", r)
			os.Exit(1)
		}
	}()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	cmd.Completion().Complete("stocksync")

	// errors exit, flag.CommandLine is ExitOnError.
	cmd.Parse(flag.CommandLine, os.Args[1:])
	os.Exit(int(commander.Execute(context.Background())))
}
