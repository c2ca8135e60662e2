package mwr

import (
	"cmp"
	"slices"

	"github.com/etnz/mwr/date"
	"github.com/shopspring/decimal"
)

// Position is the holding of one security in a Snapshot.
type Position struct {
	Symbol       string
	Shares       Quantity
	CurrentPrice Money
	CostBasis    Money // net amount paid for the shares held, buys minus sells
}

// MarketValue is the value of the position at its current price.
func (p Position) MarketValue() Money { return p.CurrentPrice.Mul(p.Shares) }

// UnrealizedGain is the market value above the cost basis.
func (p Position) UnrealizedGain() Money { return p.MarketValue().Sub(p.CostBasis) }

// UnrealizedGainPercent is the unrealized gain relative to the cost basis,
// zero when there is no cost basis.
func (p Position) UnrealizedGainPercent() Percent {
	if p.CostBasis.IsZero() {
		return 0
	}
	ratio := p.UnrealizedGain().DivMoney(p.CostBasis).Mul(decimal.NewFromInt(100))
	return Percent(ratio.InexactFloat64())
}

// Snapshot represents a view of the portfolio at a single point in time. It
// derives positions from the trades recorded up to its date.
type Snapshot struct {
	on        date.Date
	currency  string
	positions []Position
}

// NewSnapshot computes the positions held on 'on'.
//
// Positions are netted per symbol from buys and sells, the current price is
// the one carried by the latest transaction of the symbol. Only positions
// with a positive number of shares are kept.
func NewSnapshot(l *Ledger, on date.Date) *Snapshot {
	s := &Snapshot{on: on, currency: l.Currency()}
	index := make(map[string]int)
	var all []Position
	for tx := range l.Transactions() {
		if tx.Date.After(on) {
			break
		}
		if !tx.Kind.IsTrade() {
			continue
		}
		i, ok := index[tx.Symbol]
		if !ok {
			i = len(all)
			index[tx.Symbol] = i
			all = append(all, Position{Symbol: tx.Symbol, CostBasis: M(0, s.currency)})
		}
		p := &all[i]
		switch tx.Kind {
		case Buy:
			p.Shares = p.Shares.Add(tx.Shares)
			p.CostBasis = p.CostBasis.Add(tx.TotalAmount())
		case Sell:
			p.Shares = p.Shares.Sub(tx.Shares)
			p.CostBasis = p.CostBasis.Sub(tx.TotalAmount())
		}
		p.CurrentPrice = tx.CurrentPrice
	}
	for _, p := range all {
		if p.Shares.IsPositive() {
			s.positions = append(s.positions, p)
		}
	}
	return s
}

// On returns the date of the snapshot.
func (s *Snapshot) On() date.Date { return s.on }

// Currency returns the currency of the snapshot values.
func (s *Snapshot) Currency() string { return s.currency }

// Positions returns the positions in order of first purchase.
func (s *Snapshot) Positions() []Position { return slices.Clone(s.positions) }

// TotalValue is the market value of all positions.
func (s *Snapshot) TotalValue() Money {
	total := M(0, s.currency)
	for _, p := range s.positions {
		total = total.Add(p.MarketValue())
	}
	return total
}

// Top returns the n positions with the largest market value, largest first.
func (s *Snapshot) Top(n int) []Position {
	top := s.Positions()
	slices.SortStableFunc(top, func(a, b Position) int {
		return cmp.Compare(b.MarketValue().AsFloat(), a.MarketValue().AsFloat())
	})
	if n < len(top) {
		top = top[:n]
	}
	return top
}

// Allocation returns the share of the total value held in p.
func (s *Snapshot) Allocation(p Position) Percent {
	total := s.TotalValue()
	if total.IsZero() {
		return 0
	}
	return Percent(p.MarketValue().DivMoney(total).Mul(decimal.NewFromInt(100)).InexactFloat64())
}
