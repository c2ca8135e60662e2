package renderer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/etnz/mwr"
)

var csvHeader = []string{
	"Period", "Start Date", "End Date", "MWR %",
	"Total Contributions", "Total Withdrawals", "Ending Value", "Net Gain/Loss",
}

// WriteCSV writes results as CSV, one row per period, amounts with two decimals.
func WriteCSV(w io.Writer, results []mwr.PerformanceResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.Period,
			r.Start.String(),
			r.End.String(),
			fmt.Sprintf("%.2f", float64(r.MoneyWeightedReturn)),
			r.TotalContributions.Fixed(),
			r.TotalWithdrawals.Fixed(),
			r.EndingValue.Fixed(),
			r.NetGainLoss().Fixed(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
