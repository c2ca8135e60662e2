package mwr

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/mwr/date"
)

// merrillKinds maps keywords found in a broker transaction type to a Kind.
// Order matters, the first match wins.
var merrillKinds = []struct {
	keywords []string
	kind     Kind
}{
	{[]string{"bought", "buy"}, Buy},
	{[]string{"sold", "sell"}, Sell},
	{[]string{"dividend", "div"}, Dividend},
	{[]string{"deposit", "contribution"}, Deposit},
	{[]string{"withdrawal", "distribution"}, Withdrawal},
	{[]string{"interest"}, Dividend},
}

// MerrillKind maps a Merrill Edge transaction type like "Purchase Bought" or
// "Dividend Reinvest" to a transaction kind.
func MerrillKind(s string) (Kind, error) {
	t := strings.ToLower(s)
	for _, m := range merrillKinds {
		for _, k := range m.keywords {
			if strings.Contains(t, k) {
				return m.kind, nil
			}
		}
	}
	return 0, fmt.Errorf("unsupported Merrill transaction type %q", s)
}

// ConvertMerrill reads a Merrill Edge activity export and converts it into
// transactions in currency.
//
// Quantities and prices are taken as absolute values, the trade date falls
// back to the settlement date. Cash events and dividends take the absolute
// row amount. Current prices of symbols are looked up in prices, missing
// symbols get a zero current price.
func ConvertMerrill(r io.Reader, prices map[string]Money, currency string) ([]Transaction, error) {
	currency = NormalizeCurrency(currency)
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read Merrill header: %w", err)
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
		tx, err := convertMerrillRow(csvRow{index: index, record: record}, prices, currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func convertMerrillRow(row csvRow, prices map[string]Money, currency string) (Transaction, error) {
	on, err := merrillDate(row)
	if err != nil {
		return Transaction{}, err
	}
	kind, err := MerrillKind(row.Get("transactiontype"))
	if err != nil {
		return Transaction{}, err
	}
	quantity, err := row.Decimal("quantity")
	if err != nil {
		return Transaction{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := row.Decimal("price")
	if err != nil {
		return Transaction{}, fmt.Errorf("price: %w", err)
	}
	amount, err := row.Decimal("amount")
	if err != nil {
		return Transaction{}, fmt.Errorf("amount: %w", err)
	}

	tx := Transaction{
		Date:         on,
		Kind:         kind,
		Symbol:       row.Get("symbol"),
		Shares:       Q(quantity.Abs()),
		Price:        M(price.Abs(), currency),
		Amount:       M(0, currency),
		CurrentPrice: M(0, currency),
		Memo:         row.Get("description"),
	}
	if p, ok := prices[tx.Symbol]; ok && tx.Symbol != "" {
		tx.CurrentPrice = p
	}
	switch kind {
	case Deposit, Withdrawal:
		tx.Amount = M(amount.Abs(), currency)
		tx.Shares = Q(0)
		tx.Price = M(0, currency)
	case Dividend:
		tx.Amount = M(amount.Abs(), currency)
	}
	return tx, nil
}

// merrillDate returns the trade date, or the settlement date when the trade date is empty.
func merrillDate(row csvRow) (date.Date, error) {
	for _, column := range []string{"tradedate", "settlementdate"} {
		if s := row.Get(column); s != "" {
			return parseLedgerDate(s)
		}
	}
	return date.Date{}, errors.New("row has neither a trade date nor a settlement date")
}
