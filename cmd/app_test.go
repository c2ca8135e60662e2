package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/mwr"
	"github.com/etnz/mwr/date"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write %s: %v", name, err)
	}
	return path
}

func TestDecodeLedgerFile(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		wantLen int
	}{
		{
			name: "jsonl",
			file: "ledger.jsonl",
			content: `{"date":"2024-01-01","type":"Deposit","amount":1000,"currency":"USD"}
{"date":"2024-01-02","type":"Buy","symbol":"AAPL","shares":5,"price":100,"currentPrice":110,"currency":"USD"}
`,
			wantLen: 2,
		},
		{
			name: "csv",
			file: "ledger.CSV",
			content: `Date,Type,Symbol,Shares,PricePerShare,CurrentPrice,CashAmount
2024-01-01,Deposit,,,,,1000
`,
			wantLen: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := DecodeLedgerFile(writeFile(t, tc.file, tc.content))
			if err != nil {
				t.Fatalf("DecodeLedgerFile() failed: %v", err)
			}
			if l.Len() != tc.wantLen {
				t.Errorf("DecodeLedgerFile() has %d transactions, want %d", l.Len(), tc.wantLen)
			}
			if got := l.Currency(); got != "USD" {
				t.Errorf("Currency() = %q, want USD", got)
			}
		})
	}

	if _, err := DecodeLedgerFile(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Errorf("DecodeLedgerFile() on a missing file succeeded, want error")
	}
}

func TestEndingValue(t *testing.T) {
	l := mwr.NewLedger(
		mwr.NewDeposit(date.MustParse("2024-01-01"), mwr.M(1000, "USD")),
		mwr.NewBuy(date.MustParse("2024-01-02"), "AAPL", mwr.Q(5), mwr.M(100, "USD")).WithCurrentPrice(mwr.M(110, "USD")),
	)
	on := date.MustParse("2024-06-30")

	got, err := endingValue(l, on, "")
	if err != nil {
		t.Fatalf("endingValue() failed: %v", err)
	}
	if want := mwr.M(550, "USD"); !got.Equal(want) {
		t.Errorf("endingValue() from holdings = %v, want %v", got, want)
	}

	got, err = endingValue(l, on, "1234.5")
	if err != nil {
		t.Fatalf("endingValue() failed: %v", err)
	}
	if want := mwr.M(1234.5, "USD"); !got.Equal(want) {
		t.Errorf("endingValue() = %v, want %v", got, want)
	}

	for _, bad := range []string{"abc", "-10"} {
		if _, err := endingValue(l, on, bad); err == nil {
			t.Errorf("endingValue(%q) succeeded, want error", bad)
		}
	}
}

func TestQueryJSON(t *testing.T) {
	results := []mwr.PerformanceResult{{
		Period:              mwr.YearToDate,
		Start:               date.MustParse("2024-01-01"),
		End:                 date.MustParse("2024-12-31"),
		MoneyWeightedReturn: 10.5,
		TotalContributions:  mwr.M(1000, "USD"),
		TotalWithdrawals:    mwr.M(0, "USD"),
		StartingValue:       mwr.M(0, "USD"),
		EndingValue:         mwr.M(1105, "USD"),
	}}

	out, err := queryJSON(results, "$[0].period")
	if err != nil {
		t.Fatalf("queryJSON() failed: %v", err)
	}
	if got, want := string(out), `"YTD"`; got != want {
		t.Errorf("queryJSON() = %s, want %s", got, want)
	}

	out, err = queryJSON(results, "")
	if err != nil {
		t.Fatalf("queryJSON() failed: %v", err)
	}
	if !strings.Contains(string(out), `"moneyWeightedReturn": 10.5`) {
		t.Errorf("queryJSON() = %s, want the full results", out)
	}

	if _, err := queryJSON(results, "$[[["); err == nil {
		t.Errorf("queryJSON() with an invalid query succeeded, want error")
	}
}

func TestParsePrices(t *testing.T) {
	got, err := parsePrices("AAPL=180.95, MSFT = 410", "USD")
	if err != nil {
		t.Fatalf("parsePrices() failed: %v", err)
	}
	if len(got) != 2 || !got["AAPL"].Equal(mwr.M(180.95, "USD")) || !got["MSFT"].Equal(mwr.M(410, "USD")) {
		t.Errorf("parsePrices() = %v, want AAPL and MSFT", got)
	}
	if got, err := parsePrices("", "USD"); err != nil || len(got) != 0 {
		t.Errorf("parsePrices(\"\") = %v, %v, want empty", got, err)
	}
	for _, bad := range []string{"AAPL", "=10", "AAPL=ten"} {
		if _, err := parsePrices(bad, "USD"); err == nil {
			t.Errorf("parsePrices(%q) succeeded, want error", bad)
		}
	}
}

func TestFormattedPath(t *testing.T) {
	testCases := []struct{ in, want string }{
		{"transactions.jsonl", "transactions.jsonl"},
		{"data/transactions.csv", "data/transactions.jsonl"},
		{"export.CSV", "export.jsonl"},
	}
	for _, tc := range testCases {
		if got := formattedPath(tc.in); got != tc.want {
			t.Errorf("formattedPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
