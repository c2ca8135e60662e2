package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/mwr"
	"github.com/etnz/mwr/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	date string
	top  int
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the open positions and their market value" }
func (*holdingsCmd) Usage() string {
	return `mwr holdings [-d <date>] [-top <n>]

  Displays the positions held on a given date, valued at the latest current
  price recorded in the ledger, with their cost basis and unrealized gain.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the holdings (defaults to today).")
	f.IntVar(&c.top, "top", 0, "Only show the n largest positions, all of them when 0.")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseReportDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	s := mwr.NewSnapshot(ledger, on)
	printMarkdown(renderer.RenderValuation(renderer.NewValuation(s, c.top)))
	return subcommands.ExitSuccess
}
