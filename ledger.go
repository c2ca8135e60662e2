package mwr

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/mwr/date"
)

// ErrEmptyLedger is returned when an operation needs at least one transaction.
var ErrEmptyLedger = errors.New("ledger has no transactions")

// ErrCurrencyMismatch is returned when amounts in different currencies are combined.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order, transactions
// on the same day keep their recording order. A Ledger is never modified
// once created.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates a ledger from transactions in any order.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{transactions: slices.Clone(txs)}
	slices.SortStableFunc(l.transactions, func(a, b Transaction) int {
		return a.Date.DaysSince(b.Date)
	})
	return l
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions iterates over the transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return slices.Values(l.transactions)
}

// Inception returns the date of the earliest transaction.
func (l *Ledger) Inception() (date.Date, error) {
	if len(l.transactions) == 0 {
		return date.Date{}, ErrEmptyLedger
	}
	return l.transactions[0].Date, nil
}

// Between returns the transactions whose date is within r, boundaries included.
func (l *Ledger) Between(r date.Range) []Transaction {
	var res []Transaction
	for _, tx := range l.transactions {
		if tx.Date.After(r.To) {
			break
		}
		if r.Contains(tx.Date) {
			res = append(res, tx)
		}
	}
	return res
}

// Symbols returns the sorted set of symbols traded in the ledger.
func (l *Ledger) Symbols() []string {
	var symbols []string
	for _, tx := range l.transactions {
		if tx.Symbol != "" && !slices.Contains(symbols, tx.Symbol) {
			symbols = append(symbols, tx.Symbol)
		}
	}
	slices.Sort(symbols)
	return symbols
}

// Currency returns the currency of the ledger, or "" if no transaction carries one.
func (l *Ledger) Currency() string {
	for _, tx := range l.transactions {
		if c := tx.Currency(); c != "" {
			return c
		}
	}
	return ""
}

// checkCurrency returns an error if any amount of the ledger is not in currency.
// An empty currency matches any other.
func (l *Ledger) checkCurrency(currency string) error {
	if currency == "" {
		return nil
	}
	for i, tx := range l.transactions {
		for _, m := range []Money{tx.Amount, tx.Price, tx.CurrentPrice} {
			if c := m.Currency(); c != "" && c != currency {
				return fmt.Errorf("transaction #%d on %v is in %s, want %s: %w", i+1, tx.Date, c, currency, ErrCurrencyMismatch)
			}
		}
	}
	return nil
}

// Validate checks every transaction and that the ledger uses a single currency.
func (l *Ledger) Validate() error {
	currency := l.Currency()
	if currency != "" {
		if err := ValidateCurrency(currency); err != nil {
			return fmt.Errorf("invalid ledger currency: %w", err)
		}
	}
	for i, tx := range l.transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid %v transaction #%d on %v: %w", tx.Kind, i+1, tx.Date, err)
		}
		for _, m := range []Money{tx.Amount, tx.Price, tx.CurrentPrice} {
			if c := m.Currency(); c != "" && c != currency {
				return fmt.Errorf("transaction #%d on %v is in %s, ledger is in %s: %w", i+1, tx.Date, c, currency, ErrCurrencyMismatch)
			}
		}
	}
	return nil
}
