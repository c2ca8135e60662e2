package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/mwr"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	output string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mwr fmt [-o <file>]

  Validates and formats the ledger file. This command reads all transactions,
  validates them, sorts them by date, and writes them in the canonical JSONL
  format. A JSONL ledger is formatted in-place; a CSV ledger is written next
  to it with a .jsonl extension, unless -o is given.

Usage Examples:
# Formats the default ledger file.
$ mwr fmt

# Converts a CSV ledger.
$ mwr -ledger-file transactions.csv fmt -o transactions.jsonl
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, '-' for the standard output.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledger.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = formattedPath(*ledgerFile)
	}
	out, closeFn, err := createOutput(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	if err := mwr.EncodeLedger(out, ledger); err != nil {
		closeFn()
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := closeFn(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d transactions into %s.\n", ledger.Len(), output)
	return subcommands.ExitSuccess
}

// formattedPath is where a ledger is formatted by default.
func formattedPath(path string) string {
	if isCSV(path) {
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"
	}
	return path
}
