package mwr

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeLedger(t *testing.T) {
	input := `{"date":"2023-01-01","type":"Deposit","amount":10000,"currency":"USD"}

{"date":"2023-1-2","type":"buy","symbol":"ACME","shares":10,"price":100,"currentPrice":120,"currency":"usd","memo":"first buy"}
`
	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	if ledger.Len() != 2 {
		t.Fatalf("DecodeLedger() read %d transactions, want 2", ledger.Len())
	}
	var txs []Transaction
	for tx := range ledger.Transactions() {
		txs = append(txs, tx)
	}
	if txs[1].Kind != Buy || txs[1].Symbol != "ACME" || txs[1].Memo != "first buy" {
		t.Errorf("DecodeLedger() second transaction = %+v", txs[1])
	}
	assertMoney(t, "CashFlow()", txs[1].CashFlow(), USD(-1000))
	assertMoney(t, "CurrentPrice", txs[1].CurrentPrice, USD(120))
	if got := ledger.Currency(); got != "USD" {
		t.Errorf("Currency() = %q, want USD", got)
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "invalid json", input: `{"date":`},
		{name: "unknown type", input: `{"date":"2023-01-01","type":"split"}`},
		{name: "missing type", input: `{"date":"2023-01-01","amount":1}`},
		{name: "invalid date", input: `{"date":"01/01/2023","type":"deposit","amount":1}`},
		{name: "mixed currencies", input: `{"date":"2023-01-01","type":"deposit","amount":1,"currency":"USD"}
{"date":"2023-01-02","type":"deposit","amount":1,"currency":"EUR"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tc.input)); err == nil {
				t.Errorf("DecodeLedger(%q) succeeded, want error", tc.input)
			}
		})
	}
}

func TestEncodeLedger(t *testing.T) {
	ledger := NewLedger(
		NewDeposit(day("2023-01-01"), USD(10000)),
		NewBuy(day("2023-01-02"), "ACME", Q(10), USD(100)).WithCurrentPrice(USD(120)),
	)
	var b bytes.Buffer
	if err := EncodeLedger(&b, ledger); err != nil {
		t.Fatalf("EncodeLedger() failed: %v", err)
	}
	want := `{"date":"2023-01-01","type":"Deposit","amount":10000,"currency":"USD"}
{"date":"2023-01-02","type":"Buy","symbol":"ACME","shares":10,"price":100,"currentPrice":120,"currency":"USD"}
`
	if got := b.String(); got != want {
		t.Errorf("EncodeLedger() =\n%s\nwant\n%s", got, want)
	}

	back, err := DecodeLedger(&b)
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	var i int
	for tx := range back.Transactions() {
		assertMoney(t, "CashFlow()", tx.CashFlow(), ledger.transactions[i].CashFlow())
		i++
	}
}
