package mwr

import (
	"fmt"

	"github.com/etnz/mwr/date"
)

// Names of the standard analysis periods.
const (
	YearToDate = "YTD"
	AllTime    = "All Time"
)

// TrailingYears is the number of trailing year periods reported.
const TrailingYears = 5

// AnalysisPeriod is a named window of dates, both ends included.
type AnalysisPeriod struct {
	Name string
	date.Range
}

// TrailingName returns the name of the n trailing years period.
func TrailingName(n int) string {
	if n == 1 {
		return "1 Year"
	}
	return fmt.Sprintf("%d Years", n)
}

// StandardPeriods returns the analysis periods ending on 'on', in report
// order: year-to-date, the trailing 1 to 5 years, and all time since inception.
//
// Periods are returned even when they start after 'on', see [Segment].
func StandardPeriods(on, inception date.Date) []AnalysisPeriod {
	periods := make([]AnalysisPeriod, 0, TrailingYears+2)
	periods = append(periods, AnalysisPeriod{Name: YearToDate, Range: date.Range{From: on.StartOfYear(), To: on}})
	for n := 1; n <= TrailingYears; n++ {
		periods = append(periods, AnalysisPeriod{Name: TrailingName(n), Range: date.Range{From: on.AddYears(-n), To: on}})
	}
	return append(periods, AnalysisPeriod{Name: AllTime, Range: date.Range{From: inception, To: on}})
}

// Segment is an analysis period with the ledger transactions it contains.
type Segment struct {
	Period       AnalysisPeriod
	Transactions []Transaction
}

// Segment splits the ledger into the standard analysis periods ending on
// 'on'. Periods starting after 'on' and periods without any transaction are
// left out.
//
// The all time period starts at the ledger's first transaction, so an empty
// ledger is an error.
func (l *Ledger) Segment(on date.Date) ([]Segment, error) {
	inception, err := l.Inception()
	if err != nil {
		return nil, fmt.Errorf("cannot define the %s period: %w", AllTime, err)
	}
	var segments []Segment
	for _, p := range StandardPeriods(on, inception) {
		if p.Empty() {
			continue
		}
		txs := l.Between(p.Range)
		if len(txs) == 0 {
			continue
		}
		segments = append(segments, Segment{Period: p, Transactions: txs})
	}
	return segments, nil
}
