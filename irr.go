package mwr

import (
	"errors"
	"fmt"
	"math"

	"github.com/etnz/mwr/date"
)

// ErrInsufficientData is returned when there are not enough cash flows to
// define a rate of return.
var ErrInsufficientData = errors.New("at least two cash flows are required")

// Solver parameters.
const (
	InitialGuess  = 0.10
	Tolerance     = 1e-5
	MaxIterations = 100
	MinRate       = -0.99
	MaxRate       = 10.0
)

// SolveStatus tells how the solver stopped.
type SolveStatus int

const (
	// Converged means the NPV at the rate is within Tolerance of zero.
	Converged SolveStatus = iota
	// FlatDerivative means the NPV derivative vanished before convergence,
	// the rate is the best estimate reached so far.
	FlatDerivative
	// IterationLimit means MaxIterations were spent without convergence,
	// the rate is the last estimate.
	IterationLimit
)

func (s SolveStatus) String() string {
	switch s {
	case Converged:
		return "converged"
	case FlatDerivative:
		return "flat derivative"
	case IterationLimit:
		return "iteration limit"
	default:
		return fmt.Sprintf("SolveStatus(%d)", int(s))
	}
}

func (s SolveStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Solution is the outcome of the IRR solver.
type Solution struct {
	Rate       float64     // Rate is the annualized effective rate, 0.1 means 10% per year.
	Iterations int         // Iterations is the number of Newton steps performed.
	Status     SolveStatus // Status tells whether Rate is exact or a best effort.
}

// Converged reports whether the rate is a root of the NPV within Tolerance.
func (s Solution) Converged() bool { return s.Status == Converged }

// Residual returns the NPV of flows at the solution rate. Callers can use it
// to judge a best effort solution.
func (s Solution) Residual(flows []CashFlow) float64 { return NPV(flows, s.Rate) }

// discounted holds a cash flow with its date turned into years since the first flow.
type discounted struct {
	years, amount float64
}

func discount(flows []CashFlow) []discounted {
	sorted := sortedCashFlows(flows)
	first := sorted[0].Date
	res := make([]discounted, len(sorted))
	for i, f := range sorted {
		res[i] = discounted{years: date.YearsBetween(first, f.Date), amount: f.Amount}
	}
	return res
}

// npv returns the net present value and its derivative with respect to rate.
func npv(flows []discounted, rate float64) (value, derivative float64) {
	for _, f := range flows {
		pv := f.amount / math.Pow(1+rate, f.years)
		value += pv
		derivative -= f.years * pv / (1 + rate)
	}
	return value, derivative
}

// NPV returns the net present value of flows discounted at the annual rate,
// to the date of the earliest flow.
func NPV(flows []CashFlow, rate float64) float64 {
	if len(flows) == 0 {
		return 0
	}
	v, _ := npv(discount(flows), rate)
	return v
}

// Solve finds the annualized rate that zeroes the NPV of flows using
// Newton-Raphson iterations starting at InitialGuess.
//
// The rate is kept within [MinRate, MaxRate] and the search stops after
// MaxIterations, so Solve always terminates with a finite rate. Failing to
// converge is reported in the Solution status, not as an error.
func Solve(flows []CashFlow) (Solution, error) {
	if len(flows) < 2 {
		return Solution{}, fmt.Errorf("cannot solve IRR of %d cash flows: %w", len(flows), ErrInsufficientData)
	}
	series := discount(flows)

	rate := InitialGuess
	for i := 0; i < MaxIterations; i++ {
		value, derivative := npv(series, rate)
		if math.Abs(value) < Tolerance {
			return Solution{Rate: rate, Iterations: i, Status: Converged}, nil
		}
		if math.Abs(derivative) < Tolerance {
			return Solution{Rate: rate, Iterations: i, Status: FlatDerivative}, nil
		}
		rate = clamp(rate-value/derivative, MinRate, MaxRate)
	}
	return Solution{Rate: rate, Iterations: MaxIterations, Status: IterationLimit}, nil
}

// SolveIRR returns the annualized internal rate of return of flows. See [Solve].
func SolveIRR(flows []CashFlow) (float64, error) {
	s, err := Solve(flows)
	return s.Rate, err
}

func clamp(x, lo, hi float64) float64 {
	// NaN compares false with everything, pin it to the lower bound.
	if !(x > lo) {
		return lo
	}
	return min(x, hi)
}
