package mwr

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/etnz/mwr/date"
	"golang.org/x/sync/errgroup"
)

// ComputeReturns computes the money-weighted return of the portfolio over
// each standard analysis period ending on 'on', given its total value on
// that day. A zero 'on' means today.
//
// Results follow the order of [StandardPeriods], restricted to periods with
// activity. An empty ledger yields an empty result and [ErrEmptyLedger].
// A period whose cash flows cannot define a rate is left out without failing
// the others. Transactions in another currency than ending yield
// [ErrCurrencyMismatch].
func ComputeReturns(l *Ledger, ending Money, on date.Date) ([]PerformanceResult, error) {
	if on.IsZero() {
		on = date.Today()
	}
	if err := l.checkCurrency(ending.Currency()); err != nil {
		return []PerformanceResult{}, fmt.Errorf("ending value in %s: %w", ending.Currency(), err)
	}
	segments, err := l.Segment(on)
	if err != nil {
		return []PerformanceResult{}, err
	}

	results := make([]PerformanceResult, len(segments))
	ok := make([]bool, len(segments))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range segments {
		g.Go(func() error {
			r, err := periodReturn(s, ending)
			if errors.Is(err, ErrInsufficientData) {
				Logger.Printf("skipping %s period: %v", s.Period.Name, err)
				return nil
			}
			if err != nil {
				return err
			}
			results[i], ok[i] = r, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return []PerformanceResult{}, err
	}

	res := make([]PerformanceResult, 0, len(results))
	for i, r := range results {
		if ok[i] {
			res = append(res, r)
		}
	}
	return res, nil
}

// periodReturn computes the result of a single segment.
func periodReturn(s Segment, ending Money) (PerformanceResult, error) {
	flows := BuildCashFlows(s.Transactions, ending, s.Period.To)
	sol, err := Solve(flows)
	if err != nil {
		return PerformanceResult{}, err
	}
	if !sol.Converged() {
		Logger.Printf("%s period: solver stopped with %v after %d iterations, rate %.6f has NPV residual %g",
			s.Period.Name, sol.Status, sol.Iterations, sol.Rate, sol.Residual(flows))
	}

	currency := ending.Currency()
	contributions, withdrawals := M(0, currency), M(0, currency)
	for _, tx := range s.Transactions {
		switch tx.Kind {
		case Deposit, Buy:
			contributions = contributions.Add(tx.CashFlow().Abs())
		case Withdrawal, Sell, Dividend:
			withdrawals = withdrawals.Add(tx.CashFlow())
		}
	}

	return PerformanceResult{
		Period:              s.Period.Name,
		Start:               s.Period.From,
		End:                 s.Period.To,
		MoneyWeightedReturn: Percent(sol.Rate * 100),
		TotalContributions:  contributions,
		TotalWithdrawals:    withdrawals,
		StartingValue:       M(0, currency),
		EndingValue:         ending,
		Solution:            sol,
	}, nil
}
