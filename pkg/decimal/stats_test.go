package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestNewRateFromString(t *testing.T) {
	r, err := NewRateFromString("0.015")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Percent().StringFixed(2); got != "1.50" {
		t.Fatalf("Percent = %s", got)
	}
	if _, err := NewRateFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}
}

func TestRateBounds(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"0", true},
		{"0.5", true},
		{"1", true},
		{"1.0001", false},
		{"-0.01", false},
	}
	for _, c := range cases {
		r := NewRate(stddec.RequireFromString(c.in))
		if r.Valid() != c.valid {
			t.Fatalf("Valid(%s) = %v, want %v", c.in, r.Valid(), c.valid)
		}
		if (r.Check() == nil) != c.valid {
			t.Fatalf("Check(%s) = %v", c.in, r.Check())
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(1, 3).StringFixed(2); got != "33.33" {
		t.Fatalf("Percent(1,3) = %s", got)
	}
	if got := Percent(3, 6).StringFixed(2); got != "50.00" {
		t.Fatalf("Percent(3,6) = %s", got)
	}
	if !Percent(5, 0).IsZero() {
		t.Fatalf("Percent with zero total should be zero")
	}
}

func TestMean(t *testing.T) {
	if got := Mean(20, 3).String(); got != "6.67" {
		t.Fatalf("Mean(20,3) = %s", got)
	}
	if got := Mean(34, 5).String(); got != "6.8" {
		t.Fatalf("Mean(34,5) = %s", got)
	}
	if !Mean(10, 0).IsZero() {
		t.Fatalf("Mean over no runs should be zero")
	}
}
