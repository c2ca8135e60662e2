package mwr

import (
	"math"
	"testing"

	"github.com/etnz/mwr/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// day is a helper for test to parse a date from const
func day(s string) date.Date { return date.MustParse(s) }

// approxEqual reports whether a and b are within tol of each other.
func approxEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// assertMoney fails the test if got and want are not the same amount.
func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Decimal().Equal(want.Decimal()) {
		t.Errorf("%s = %s, want %s", name, got.Decimal(), want.Decimal())
	}
}
