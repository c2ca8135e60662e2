package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/mwr"
	"github.com/etnz/mwr/date"
	"github.com/etnz/mwr/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// returnsCmd holds the flags for the 'returns' subcommand.
type returnsCmd struct {
	date   string
	ledger string
	value  string
	json   bool
	query  string
	csv    string
	html   string
}

func (*returnsCmd) Name() string { return "returns" }
func (*returnsCmd) Synopsis() string {
	return "compute money-weighted returns over the standard periods"
}
func (*returnsCmd) Usage() string {
	return `mwr returns [-d <date>] [-l <ledger>] [-value <amount>] [-json [-q <jsonpath>]] [-csv <file>] [-html <file>]

  Computes the annualized money-weighted return (XIRR) of the portfolio over
  the year to date, the last 1 to 5 years, and since inception, all ending on
  the report date. Periods without activity are omitted.

  The ending value defaults to the market value of the open positions at their
  current price. Use -value to provide it explicitly.

Usage Examples:
$ mwr returns -value 12500
$ mwr returns -json -q '$[0].moneyWeightedReturn'
$ mwr returns -csv returns.csv
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the report (defaults to today).")
	f.StringVar(&c.ledger, "l", "", "Ledger file, overrides the global -ledger-file.")
	f.StringVar(&c.value, "value", "", "Total portfolio value on the report date (defaults to the holdings value).")
	f.BoolVar(&c.json, "json", false, "Print the results as JSON.")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON results, implies -json.")
	f.StringVar(&c.csv, "csv", "", "Export the results as CSV to this file, '-' for the standard output.")
	f.StringVar(&c.html, "html", "", "Export the report as HTML to this file, '-' for the standard output.")
}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseReportDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	path := *ledgerFile
	if c.ledger != "" {
		path = c.ledger
	}
	ledger, err := DecodeLedgerFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	ending, err := endingValue(ledger, on, c.value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing value: %v\n", err)
		return subcommands.ExitUsageError
	}

	results, err := mwr.ComputeReturns(ledger, ending, on)
	if errors.Is(err, mwr.ErrEmptyLedger) {
		fmt.Fprintf(os.Stderr, "Warning: ledger %q has no transactions.\n", path)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.csv != "" {
		if err := exportCSV(c.csv, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting CSV: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	report := renderer.RenderReturns(renderer.NewReturns(results, on))
	if c.html != "" {
		if err := exportHTML(c.html, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting HTML: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	switch {
	case c.json || c.query != "":
		out, err := queryJSON(results, c.query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
	case c.csv == "-" || c.html == "-":
		// the standard output already holds the export.
	default:
		printMarkdown(report)
	}
	return subcommands.ExitSuccess
}

// parseReportDate parses the report date, empty means today.
func parseReportDate(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// endingValue parses value in the ledger currency, or computes the market
// value of the holdings on 'on' when value is empty.
func endingValue(l *mwr.Ledger, on date.Date, value string) (mwr.Money, error) {
	currency := l.Currency()
	if currency == "" {
		currency = mwr.NormalizeCurrency(*defaultCurrency)
	}
	if value == "" {
		v := mwr.NewSnapshot(l, on).TotalValue()
		if v.Currency() == "" {
			v = mwr.M(v.Decimal(), currency)
		}
		return v, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return mwr.Money{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	if d.IsNegative() {
		return mwr.Money{}, fmt.Errorf("invalid amount %q: must not be negative", value)
	}
	return mwr.M(d, currency), nil
}

// queryJSON marshals results, and applies the JSONPath query when not empty.
func queryJSON(results []mwr.PerformanceResult, query string) ([]byte, error) {
	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil || query == "" {
		return out, err
	}
	var doc any
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, err
	}
	val, err := jsonpath.Get(query, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", query, err)
	}
	return json.MarshalIndent(val, "", "  ")
}

func exportCSV(path string, results []mwr.PerformanceResult) error {
	f, closeFn, err := createOutput(path)
	if err != nil {
		return err
	}
	if err := renderer.WriteCSV(f, results); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportHTML(path, report string) error {
	html, err := renderer.HTML(report)
	if err != nil {
		return err
	}
	f, closeFn, err := createOutput(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(html); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
