package mwr

import (
	"testing"
)

func TestNewSnapshot(t *testing.T) {
	ledger := NewLedger(
		NewDeposit(day("2025-01-01"), USD(100000)),
		NewBuy(day("2025-01-10"), "AAPL", Q(100), USD(150)).WithCurrentPrice(USD(150)),
		NewBuy(day("2025-01-15"), "GOOG", Q(10), USD(2800)).WithCurrentPrice(USD(2800)),
		NewSell(day("2025-02-01"), "AAPL", Q(25), USD(160)).WithCurrentPrice(USD(165)),
		NewBuy(day("2025-02-10"), "MSFT", Q(5), USD(400)).WithCurrentPrice(USD(420)),
		NewSell(day("2025-03-01"), "MSFT", Q(5), USD(410)).WithCurrentPrice(USD(410)), // closed
		NewBuy(day("2025-04-01"), "AAPL", Q(10), USD(170)).WithCurrentPrice(USD(175)),
	)

	testCases := []struct {
		name       string
		on         string
		wantShares map[string]float64
		wantTotal  float64
	}{
		{
			name:       "Before any trade",
			on:         "2025-01-09",
			wantShares: map[string]float64{},
			wantTotal:  0,
		},
		{
			name:       "After the first sell",
			on:         "2025-02-05",
			wantShares: map[string]float64{"AAPL": 75, "GOOG": 10},
			wantTotal:  75*165 + 10*2800,
		},
		{
			name:       "Closed positions are dropped",
			on:         "2025-03-05",
			wantShares: map[string]float64{"AAPL": 75, "GOOG": 10},
			wantTotal:  75*165 + 10*2800,
		},
		{
			name:       "Latest price wins",
			on:         "2025-05-01",
			wantShares: map[string]float64{"AAPL": 85, "GOOG": 10},
			wantTotal:  85*175 + 10*2800,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSnapshot(ledger, day(tc.on))
			positions := s.Positions()
			if len(positions) != len(tc.wantShares) {
				t.Fatalf("Positions() = %d positions, want %d", len(positions), len(tc.wantShares))
			}
			for _, p := range positions {
				if want := Q(tc.wantShares[p.Symbol]); !p.Shares.Equal(want) {
					t.Errorf("%s shares = %v, want %v", p.Symbol, p.Shares, want)
				}
			}
			assertMoney(t, "TotalValue()", s.TotalValue(), USD(tc.wantTotal))
		})
	}
}

func TestSnapshot_Position(t *testing.T) {
	ledger := NewLedger(
		NewBuy(day("2025-01-10"), "AAPL", Q(100), USD(150)).WithCurrentPrice(USD(180)),
		NewBuy(day("2025-01-15"), "GOOG", Q(10), USD(2800)).WithCurrentPrice(USD(2520)),
	)
	s := NewSnapshot(ledger, day("2025-02-01"))

	top := s.Top(1)
	if len(top) != 1 || top[0].Symbol != "GOOG" {
		t.Fatalf("Top(1) = %v, want GOOG", top)
	}
	if got := len(s.Top(10)); got != 2 {
		t.Errorf("Top(10) returned %d positions, want 2", got)
	}

	aapl := s.Positions()[0]
	assertMoney(t, "MarketValue()", aapl.MarketValue(), USD(18000))
	assertMoney(t, "CostBasis", aapl.CostBasis, USD(15000))
	assertMoney(t, "UnrealizedGain()", aapl.UnrealizedGain(), USD(3000))
	if got := aapl.UnrealizedGainPercent(); !got.Equal(20) {
		t.Errorf("UnrealizedGainPercent() = %v, want 20%%", got)
	}
	if got := top[0].UnrealizedGainPercent(); !got.Equal(-10) {
		t.Errorf("GOOG UnrealizedGainPercent() = %v, want -10%%", got)
	}
	// 18000 / (18000 + 25200)
	if got := s.Allocation(aapl); !got.Equal(Percent(100 * 18000.0 / 43200.0)) {
		t.Errorf("Allocation() = %v, want %v", got, Percent(100*18000.0/43200.0))
	}
	if got := (Position{}).UnrealizedGainPercent(); got != 0 {
		t.Errorf("UnrealizedGainPercent() without cost basis = %v, want 0", got)
	}
}
