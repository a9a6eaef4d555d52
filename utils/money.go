package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// LineTotal computes (price - discount) * quantity exactly and returns the
// result rounded to 2 decimal places.
func LineTotal(price, discount float64, quantity int) float64 {
	total := decimal.NewFromFloat(price).
		Sub(decimal.NewFromFloat(discount)).
		Mul(decimal.NewFromInt(int64(quantity)))
	f, _ := total.Round(2).Float64()
	return f
}

// SumTotals adds a list of monetary amounts without accumulating float error.
func SumTotals(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// FormatUSD renders an amount the way the invoice template prints it:
// "USD 12,34" with a comma as decimal separator.
func FormatUSD(amount float64) string {
	s := decimal.NewFromFloat(amount).StringFixed(2)
	return "USD " + strings.Replace(s, ".", ",", 1)
}
