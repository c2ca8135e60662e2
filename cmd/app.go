// Package cmd implements the CLI application to compute money-weighted returns.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/mwr"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&returnsCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")

	c.Register(&importMerrillCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", envOr(EnvLedgerFile, "transactions.jsonl"), "Path to the ledger file, JSONL or CSV (by extension)")
var defaultCurrency = flag.String("currency", envOr(EnvDefaultCurrency, "USD"), "Currency of CSV ledgers and broker imports")

// Verbose enables logging to stderr.
var Verbose = flag.Bool("v", envBool(EnvVerbose), "verbose output, logs skipped periods and solver warnings")

// Configure applies the global flags. It must be called after the flags have been parsed.
func Configure() {
	if *Verbose {
		mwr.Logger.SetOutput(os.Stderr)
		mwr.Logger.SetPrefix("mwr: ")
		return
	}
	log.SetOutput(io.Discard)
}

// envOr returns the value of the environment variable key, or fallback when unset.
func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

// DecodeLedger reads the ledger from the global ledger file.
func DecodeLedger() (*mwr.Ledger, error) { return DecodeLedgerFile(*ledgerFile) }

// DecodeLedgerFile reads a ledger file. Files with a .csv extension are read
// as CSV in the default currency, anything else as JSONL.
func DecodeLedgerFile(path string) (*mwr.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger: %w", err)
	}
	defer f.Close()

	var l *mwr.Ledger
	if isCSV(path) {
		l, err = mwr.DecodeCSV(f, *defaultCurrency)
	} else {
		l, err = mwr.DecodeLedger(f)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", path, err)
	}
	log.Printf("loaded %d transactions from %s", l.Len(), path)
	return l, nil
}

func isCSV(path string) bool { return strings.EqualFold(filepath.Ext(path), ".csv") }

// createOutput opens path for writing, "-" or "" is the standard output.
func createOutput(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// printMarkdown renders markdown for the terminal, falling back to raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
