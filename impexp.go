package mwr

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/mwr/date"
	"github.com/shopspring/decimal"
)

// this file contains functions to handle the CSV import/export format.
// It should remain spreadsheet friendly: one transaction per row, amounts in
// the ledger currency.

// csvHeader is the column order written by EncodeCSV.
var csvHeader = []string{"Date", "Type", "Symbol", "Shares", "PricePerShare", "CurrentPrice", "CashAmount"}

// normalizeHeader makes header matching insensitive to case, spaces and underscores.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	return strings.ReplaceAll(h, "_", "")
}

// csvRow gives access to the cells of a record by normalized header name.
type csvRow struct {
	index  map[string]int
	record []string
}

func newCSVIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalizeHeader(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return index
}

// Get returns the trimmed cell for column, or "" when the column or the cell is missing.
func (r csvRow) Get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// Decimal parses the cell as a decimal, an empty cell is zero.
func (r csvRow) Decimal(column string) (decimal.Decimal, error) {
	return parseAmount(r.Get(column))
}

// parseAmount parses amounts the way spreadsheets and brokers export them:
// "$1,234.50", "(12.00)" for negatives, "" for zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" || s == "--" {
		return decimal.Zero, nil
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg, s = true, s[1:len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// usDateFormats are the layouts accepted besides ISO-8601.
var usDateFormats = []string{"1/2/2006", "01/02/2006", "1/2/06"}

// parseLedgerDate parses ISO dates and the US month/day/year dates brokers export.
func parseLedgerDate(s string) (date.Date, error) {
	if d, err := date.Parse(s); err == nil {
		return d, nil
	}
	for _, layout := range usDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return date.New(t.Date()), nil
		}
	}
	return date.Date{}, fmt.Errorf("invalid date %q", s)
}

// DecodeCSV reads a ledger from CSV with the columns Date, Type, Symbol,
// Shares, PricePerShare, CurrentPrice and CashAmount. Header matching
// ignores case, spaces and underscores; missing columns and empty cells
// are zero. Amounts are in currency.
func DecodeCSV(r io.Reader, currency string) (*Ledger, error) {
	currency = NormalizeCurrency(currency)
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	index := newCSVIndex(header)

	var txs []Transaction
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := csvRow{index: index, record: record}
		if row.Get("date") == "" && row.Get("type") == "" {
			continue // blank line
		}
		tx, err := decodeCSVTransaction(row, currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	ledger := NewLedger(txs...)
	if err := ledger.Validate(); err != nil {
		return nil, err
	}
	return ledger, nil
}

func decodeCSVTransaction(row csvRow, currency string) (Transaction, error) {
	on, err := parseLedgerDate(row.Get("date"))
	if err != nil {
		return Transaction{}, err
	}
	kind, err := ParseKind(row.Get("type"))
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{Date: on, Kind: kind, Symbol: row.Get("symbol")}
	var shares, price, current, cash decimal.Decimal
	for column, dst := range map[string]*decimal.Decimal{
		"shares":        &shares,
		"pricepershare": &price,
		"currentprice":  &current,
		"cashamount":    &cash,
	} {
		if *dst, err = row.Decimal(column); err != nil {
			return Transaction{}, fmt.Errorf("column %s: %w", column, err)
		}
	}
	tx.Shares = Q(shares)
	tx.Price = M(price, currency)
	tx.CurrentPrice = M(current, currency)
	tx.Amount = M(cash, currency)
	return tx, nil
}

// EncodeCSV writes the ledger in the format read by DecodeCSV.
func EncodeCSV(w io.Writer, ledger *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for tx := range ledger.Transactions() {
		record := []string{
			tx.Date.String(),
			tx.Kind.String(),
			tx.Symbol,
			tx.Shares.String(),
			tx.Price.value.String(),
			tx.CurrentPrice.value.String(),
			tx.Amount.value.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
