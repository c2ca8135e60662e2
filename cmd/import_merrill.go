package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/mwr"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type importMerrillCmd struct {
	prices string
	output string
}

func (*importMerrillCmd) Name() string { return "import-merrill" }
func (*importMerrillCmd) Synopsis() string {
	return "convert a Merrill Edge activity export into a JSONL ledger"
}
func (*importMerrillCmd) Usage() string {
	return `mwr import-merrill [-prices <SYMBOL=PRICE,...>] [-o <file>] <export.csv>

  Reads a Merrill Edge CSV activity export and writes the equivalent ledger
  in JSONL. Current prices are not looked up online, provide them with -prices
  to value the positions.

Usage Examples:
$ mwr import-merrill -prices AAPL=180.95,MSFT=410 -o transactions.jsonl export.csv
`
}

func (c *importMerrillCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.prices, "prices", "", "Comma separated current prices, like AAPL=180.95,MSFT=410.")
	f.StringVar(&c.output, "o", "-", "Output ledger file, '-' for the standard output.")
}

func (c *importMerrillCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one Merrill export file")
		return subcommands.ExitUsageError
	}
	currency := mwr.NormalizeCurrency(*defaultCurrency)
	prices, err := parsePrices(c.prices, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing prices: %v\n", err)
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	txs, err := mwr.ConvertMerrill(in, prices, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	ledger := mwr.NewLedger(txs...)
	if err := ledger.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: converted ledger is invalid: %v\n", err)
		return subcommands.ExitFailure
	}

	out, closeFn, err := createOutput(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
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
	fmt.Fprintf(os.Stderr, "Converted %d transactions.\n", ledger.Len())
	return subcommands.ExitSuccess
}

// parsePrices parses a list like "AAPL=180.95,MSFT=410".
func parsePrices(s, currency string) (map[string]mwr.Money, error) {
	prices := make(map[string]mwr.Money)
	if strings.TrimSpace(s) == "" {
		return prices, nil
	}
	for _, item := range strings.Split(s, ",") {
		symbol, value, ok := strings.Cut(item, "=")
		symbol = strings.TrimSpace(symbol)
		if !ok || symbol == "" {
			return nil, fmt.Errorf("invalid price %q, want SYMBOL=PRICE", item)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid price for %s: %w", symbol, err)
		}
		prices[symbol] = mwr.M(d, currency)
	}
	return prices, nil
}
