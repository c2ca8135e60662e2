package mwr

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/mwr/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jsonTransaction is the JSONL representation of a transaction. All the
// amounts of a line share the same currency.
type jsonTransaction struct {
	Date         date.Date       `json:"date"`
	Type         string          `json:"type"`
	Symbol       string          `json:"symbol,omitempty"`
	Shares       decimal.Decimal `json:"shares"`
	Price        decimal.Decimal `json:"price"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Currency     string          `json:"currency"`
	Memo         string          `json:"memo,omitempty"`
}

// DecodeLedger decodes transactions from a stream of JSONL data from an io.Reader,
// decodes each line into a transaction, and returns a sorted and validated Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var jt jsonTransaction
		if err := json.Unmarshal(lineBytes, &jt); err != nil {
			return nil, fmt.Errorf("line %d: could not decode transaction %q: %w", line, string(lineBytes), err)
		}
		kind, err := ParseKind(jt.Type)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cur := NormalizeCurrency(jt.Currency)
		txs = append(txs, Transaction{
			Date:         jt.Date,
			Kind:         kind,
			Symbol:       jt.Symbol,
			Shares:       Q(jt.Shares),
			Price:        M(jt.Price, cur),
			Amount:       M(jt.Amount, cur),
			CurrentPrice: M(jt.CurrentPrice, cur),
			Memo:         jt.Memo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	ledger := NewLedger(txs...)
	if err := ledger.Validate(); err != nil {
		return nil, err
	}
	return ledger, nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	w.Append("type", t.Kind)
	w.Optional("symbol", t.Symbol)
	w.Optional("shares", t.Shares.value)
	w.Optional("price", t.Price.value)
	w.Optional("amount", t.Amount.value)
	w.Optional("currentPrice", t.CurrentPrice.value)
	w.Optional("currency", t.Currency())
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// EncodeTransaction writes a single transaction to a writer in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes all transactions of a ledger in JSONL format.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for tx := range ledger.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
