package mwr

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSolveIRR(t *testing.T) {
	testCases := []struct {
		name  string
		flows []CashFlow
		want  float64
		tol   float64
	}{
		{
			name:  "ten percent in a year",
			flows: []CashFlow{{day("2023-01-01"), -1000}, {day("2024-01-01"), 1100}},
			want:  0.10,
			tol:   1e-4,
		},
		{
			name:  "break even",
			flows: []CashFlow{{day("2023-01-01"), -1000}, {day("2024-01-01"), 1000}},
			want:  0,
			tol:   1e-4,
		},
		{
			name:  "twenty percent loss",
			flows: []CashFlow{{day("2023-01-01"), -1000}, {day("2024-01-01"), 800}},
			want:  -0.20,
			tol:   1e-3,
		},
		{
			name:  "five percent in half a year annualizes",
			flows: []CashFlow{{day("2024-01-01"), -10000}, {day("2024-07-01"), 10500}},
			want:  0.1029,
			tol:   1e-3,
		},
		{
			name: "unsorted input",
			flows: []CashFlow{
				{day("2024-01-01"), 1100},
				{day("2023-01-01"), -1000},
			},
			want: 0.10,
			tol:  1e-4,
		},
		{
			name: "same day flows are summed",
			flows: []CashFlow{
				{day("2023-01-01"), -600},
				{day("2023-01-01"), -400},
				{day("2024-01-01"), 1100},
			},
			want: 0.10,
			tol:  1e-4,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SolveIRR(tc.flows)
			if err != nil {
				t.Fatalf("SolveIRR() failed: %v", err)
			}
			if !approxEqual(got, tc.want, tc.tol) {
				t.Errorf("SolveIRR() = %.6f, want %.6f ± %g", got, tc.want, tc.tol)
			}
			if r := NPV(tc.flows, got); math.Abs(r) >= Tolerance {
				t.Errorf("NPV(%.6f) = %g, want below %g", got, r, Tolerance)
			}
		})
	}
}

func TestSolve_InsufficientData(t *testing.T) {
	for _, flows := range [][]CashFlow{nil, {{day("2023-01-01"), -1000}}} {
		_, err := Solve(flows)
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("Solve(%v) error = %v, want %v", flows, err, ErrInsufficientData)
		}
	}
}

func TestSolve_Clamping(t *testing.T) {
	testCases := []struct {
		name  string
		flows []CashFlow
	}{
		{
			name:  "only inflows",
			flows: []CashFlow{{day("2023-01-01"), 1000}, {day("2024-01-01"), 1000}},
		},
		{
			name:  "only outflows",
			flows: []CashFlow{{day("2023-01-01"), -1000}, {day("2024-01-01"), -1000}},
		},
		{
			name:  "huge gain in a day",
			flows: []CashFlow{{day("2023-01-01"), -1}, {day("2023-01-02"), 1e6}},
		},
		{
			name:  "total loss",
			flows: []CashFlow{{day("2023-01-01"), -1000}, {day("2023-06-01"), 0}, {day("2024-01-01"), 0.0001}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := Solve(tc.flows)
			if err != nil {
				t.Fatalf("Solve() failed: %v", err)
			}
			if sol.Rate < MinRate || sol.Rate > MaxRate || math.IsNaN(sol.Rate) {
				t.Errorf("Solve().Rate = %v, want within [%v, %v]", sol.Rate, MinRate, MaxRate)
			}
			if sol.Iterations > MaxIterations {
				t.Errorf("Solve().Iterations = %d, want at most %d", sol.Iterations, MaxIterations)
			}
		})
	}
}

func TestSolve_Status(t *testing.T) {
	testCases := []struct {
		name       string
		flows      []CashFlow
		wantStatus SolveStatus
		wantRate   float64
	}{
		{
			name:       "converged",
			flows:      []CashFlow{{day("2023-01-01"), -1000}, {day("2024-01-01"), 1100}},
			wantStatus: Converged,
			wantRate:   0.10,
		},
		{
			name:       "all flows on the same day have a flat derivative",
			flows:      []CashFlow{{day("2023-01-01"), -100}, {day("2023-01-01"), 50}},
			wantStatus: FlatDerivative,
			wantRate:   InitialGuess,
		},
		{
			name:       "only inflows exhaust the iterations",
			flows:      []CashFlow{{day("2023-01-01"), 1000}, {day("2024-01-01"), 1000}},
			wantStatus: IterationLimit,
			wantRate:   MaxRate,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := Solve(tc.flows)
			if err != nil {
				t.Fatalf("Solve() failed: %v", err)
			}
			if sol.Status != tc.wantStatus {
				t.Errorf("Solve().Status = %v, want %v", sol.Status, tc.wantStatus)
			}
			if !approxEqual(sol.Rate, tc.wantRate, 1e-4) {
				t.Errorf("Solve().Rate = %v, want %v", sol.Rate, tc.wantRate)
			}
			if sol.Converged() != (tc.wantStatus == Converged) {
				t.Errorf("Solve().Converged() = %v with status %v", sol.Converged(), sol.Status)
			}
		})
	}
}

func TestSolve_DoesNotMutateInput(t *testing.T) {
	flows := []CashFlow{
		{day("2024-01-01"), 1100},
		{day("2023-01-01"), -1000},
	}
	before := slices.Clone(flows)
	if _, err := Solve(flows); err != nil {
		t.Fatalf("Solve() failed: %v", err)
	}
	if diff := cmp.Diff(before, flows, cmp.Comparer(func(a, b CashFlow) bool { return a == b })); diff != "" {
		t.Errorf("Solve() mutated its input (-before +after):\n%s", diff)
	}
}

// TestSolve_AlwaysBounded feeds arbitrary cash flow series to the solver,
// it must always terminate with a finite rate within bounds.
func TestSolve_AlwaysBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	start := day("2015-01-01")
	for i := 0; i < 500; i++ {
		n := 2 + rng.IntN(10)
		flows := make([]CashFlow, n)
		for j := range flows {
			flows[j] = CashFlow{
				Date:   start.Add(rng.IntN(3650)),
				Amount: (rng.Float64() - 0.5) * math.Pow(10, float64(rng.IntN(7))),
			}
		}
		sol, err := Solve(flows)
		if err != nil {
			t.Fatalf("Solve(%v) failed: %v", flows, err)
		}
		if math.IsNaN(sol.Rate) || sol.Rate < MinRate || sol.Rate > MaxRate {
			t.Fatalf("Solve(%v).Rate = %v, want within [%v, %v]", flows, sol.Rate, MinRate, MaxRate)
		}
	}
}

func TestNPV(t *testing.T) {
	flows := []CashFlow{{day("2023-01-01"), -1000}, {day("2024-01-01"), 1100}}
	if got := NPV(flows, 0); got != 100 {
		t.Errorf("NPV(0) = %v, want 100", got)
	}
	if got := NPV(nil, 0.1); got != 0 {
		t.Errorf("NPV(nil) = %v, want 0", got)
	}
	sol, _ := Solve(flows)
	if r := sol.Residual(flows); math.Abs(r) >= Tolerance {
		t.Errorf("Residual() = %v, want below %v", r, Tolerance)
	}
}
