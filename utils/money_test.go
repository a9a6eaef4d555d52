package utils

import "testing"

func TestLineTotal(t *testing.T) {
	cases := []struct {
		price    float64
		discount float64
		quantity int
		want     float64
	}{
		{100, 0, 1, 100},
		{100, 10, 2, 180},
		{19.99, 0, 3, 59.97},
		{0.1, 0.03, 3, 0.21}, // exact under decimal arithmetic
		{50, 50, 4, 0},
		{10, 12, 1, -2}, // discount above price is the caller's problem
	}
	for _, tc := range cases {
		if got := LineTotal(tc.price, tc.discount, tc.quantity); got != tc.want {
			t.Errorf("LineTotal(%v, %v, %d) = %v, want %v", tc.price, tc.discount, tc.quantity, got, tc.want)
		}
	}
}

func TestSumTotals(t *testing.T) {
	if got := SumTotals(); got != 0 {
		t.Errorf("empty sum = %v, want 0", got)
	}
	if got := SumTotals(0.1, 0.2); got != 0.3 {
		t.Errorf("SumTotals(0.1, 0.2) = %v, want 0.3", got)
	}
	if got := SumTotals(200, -20); got != 180 {
		t.Errorf("SumTotals(200, -20) = %v, want 180", got)
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "USD 0,00"},
		{12.34, "USD 12,34"},
		{1250.5, "USD 1250,50"},
		{-35, "USD -35,00"},
	}
	for _, tc := range cases {
		if got := FormatUSD(tc.in); got != tc.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.005, 1.0},  // float 1.005 sits just below the half
		{1.015, 1.01}, // same
		{2.675, 2.67},
		{1.23, 1.23},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
