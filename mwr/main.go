// Command mwr computes the money-weighted return of a portfolio ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/mwr/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Handles shell completion requests, it exits when one is detected.
	cmd.Completion().Complete("mwr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.Configure()

	if name := flag.Arg(0); name != "" && !isRegistered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// isRegistered reports whether name is a built-in subcommand.
func isRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		if sub.Name() == name {
			found = true
		}
	})
	return found
}
