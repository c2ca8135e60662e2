package mwr

import "github.com/etnz/mwr/date"

// PerformanceResult holds the money-weighted return of one analysis period
// and the cash totals it was computed from.
type PerformanceResult struct {
	Period              string
	Start, End          date.Date
	MoneyWeightedReturn Percent // annualized
	TotalContributions  Money   // deposits and buys, as positive amounts
	TotalWithdrawals    Money   // withdrawals, sells and dividends, signed like their cash flow
	StartingValue       Money   // always zero, historical valuations are not tracked
	EndingValue         Money
	Solution            Solution
}

// NetGainLoss is what the portfolio earned over the period beyond the
// money put in and taken out.
//
// StartingValue is zero, so the whole ending value counts as gain.
func (p PerformanceResult) NetGainLoss() Money {
	return p.EndingValue.Sub(p.StartingValue).Sub(p.TotalContributions).Add(p.TotalWithdrawals)
}

// Range returns the dates covered by the result.
func (p PerformanceResult) Range() date.Range { return date.Range{From: p.Start, To: p.End} }

func (p PerformanceResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("period", p.Period)
	w.Append("startDate", p.Start)
	w.Append("endDate", p.End)
	w.Append("moneyWeightedReturn", float64(p.MoneyWeightedReturn))
	w.Append("totalContributions", p.TotalContributions)
	w.Append("totalWithdrawals", p.TotalWithdrawals)
	w.Append("startingValue", p.StartingValue)
	w.Append("endingValue", p.EndingValue)
	w.Append("netGainLoss", p.NetGainLoss())
	w.Append("solver", p.Solution.Status)
	w.Append("iterations", p.Solution.Iterations)
	return w.MarshalJSON()
}
