// Command folio records and inspects portfolio movements from the shell.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"coinfolio/internal/cli"
	"coinfolio/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cli.Commands(cli.OpenDefault) {
		commander.Register(c, "")
	}

	flag.Parse()
	status := commander.Execute(context.Background())
	logger.Sync()
	os.Exit(int(status))
}
