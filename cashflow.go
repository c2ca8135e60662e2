package mwr

import (
	"slices"

	"github.com/etnz/mwr/date"
)

// CashFlow is a signed amount of money moving on a given date, negative when
// invested, positive when returned to the investor.
type CashFlow struct {
	Date   date.Date
	Amount float64
}

// BuildCashFlows returns the cash flow series of a period: one point per
// transaction with a non-zero cash flow, followed by the ending value at end
// as if the whole portfolio was liquidated on that day.
//
// txs are expected in chronological order.
func BuildCashFlows(txs []Transaction, ending Money, end date.Date) []CashFlow {
	flows := make([]CashFlow, 0, len(txs)+1)
	for _, tx := range txs {
		cf := tx.CashFlow()
		if cf.IsZero() {
			continue
		}
		flows = append(flows, CashFlow{Date: tx.Date, Amount: cf.AsFloat()})
	}
	return append(flows, CashFlow{Date: end, Amount: ending.AsFloat()})
}

// sortedCashFlows returns a chronologically sorted copy of flows.
func sortedCashFlows(flows []CashFlow) []CashFlow {
	sorted := slices.Clone(flows)
	slices.SortStableFunc(sorted, func(a, b CashFlow) int {
		return a.Date.DaysSince(b.Date)
	})
	return sorted
}
