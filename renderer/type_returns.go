package renderer

import (
	"fmt"

	"github.com/etnz/mwr"
	"github.com/etnz/mwr/date"
)

// Returns is the money-weighted return report in json.
// Values are already formatted, templates only lay them out.
type Returns struct {
	// Date is the last day of every period.
	Date string `json:"date"`
	// Currency of the amounts.
	Currency string `json:"currency,omitempty"`
	// Rows holds one entry per analysis period, in period order.
	Rows []ReturnsRow `json:"rows"`
}

// ReturnsRow is the return of a single analysis period.
type ReturnsRow struct {
	Period        string `json:"period"`
	Start         string `json:"start"`
	End           string `json:"end"`
	MWR           string `json:"mwr"`
	Contributions string `json:"contributions"`
	Withdrawals   string `json:"withdrawals"`
	EndingValue   string `json:"endingValue"`
	NetGainLoss   string `json:"netGainLoss"`
	// Status is how the solver stopped.
	Status string `json:"status"`
	// Uncertain is set when the rate is a best effort.
	Uncertain bool `json:"uncertain,omitempty"`
}

// NewReturns creates the report of results computed on 'on'.
func NewReturns(results []mwr.PerformanceResult, on date.Date) *Returns {
	r := &Returns{
		Date: on.String(),
		Rows: make([]ReturnsRow, 0, len(results)),
	}
	for _, p := range results {
		if r.Currency == "" {
			r.Currency = p.EndingValue.Currency()
		}
		r.Rows = append(r.Rows, ReturnsRow{
			Period:        p.Period,
			Start:         p.Start.String(),
			End:           p.End.String(),
			MWR:           p.MoneyWeightedReturn.String(),
			Contributions: p.TotalContributions.String(),
			Withdrawals:   p.TotalWithdrawals.String(),
			EndingValue:   p.EndingValue.String(),
			NetGainLoss:   p.NetGainLoss().SignedString(),
			Status:        p.Solution.Status.String(),
			Uncertain:     !p.Solution.Converged(),
		})
	}
	return r
}

// HasUncertain reports whether any period rate is a best effort.
func (r *Returns) HasUncertain() bool {
	for _, row := range r.Rows {
		if row.Uncertain {
			return true
		}
	}
	return false
}

// String is a one line summary of the report, used in verbose logs.
func (r *Returns) String() string {
	return fmt.Sprintf("%d periods on %s", len(r.Rows), r.Date)
}
