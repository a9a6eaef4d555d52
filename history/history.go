package history

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jlvilasoler/hashrate/models"
	"github.com/jlvilasoler/hashrate/utils"
)

// Query holds the composable history filters. Zero values mean "no filter";
// set filters combine with logical AND.
type Query struct {
	Cliente string // case-insensitive substring on client name
	Tipo    string // exact match on document type (Factura | Recibo)
	Mes     string // prefix match on billing month (YYYY or YYYY-MM)
}

// Filter returns the entries matching q, preserving order. The input slice is
// never mutated.
func Filter(entries []Entry, q Query) []Entry {
	cliente := strings.ToLower(q.Cliente)

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if cliente != "" && !strings.Contains(strings.ToLower(e.Cliente), cliente) {
			continue
		}
		if q.Tipo != "" && e.DocumentType() != q.Tipo {
			continue
		}
		if q.Mes != "" && !strings.HasPrefix(e.BillingMonth(), q.Mes) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Summary are the aggregate counters shown above the table. They are always
// computed from the full unfiltered list.
type Summary struct {
	Facturas   int     `json:"facturas"`
	Recibos    int     `json:"recibos"`
	Total      int     `json:"total"`
	MontoTotal float64 `json:"monto_total"`
}

func Stats(entries []Entry) Summary {
	var s Summary
	totals := make([]float64, 0, len(entries))
	for _, e := range entries {
		if e.DocumentType() == models.TypeFactura {
			s.Facturas++
		} else {
			s.Recibos++
		}
		totals = append(totals, e.Total)
	}
	s.Total = len(entries)
	s.MontoTotal = utils.SumTotals(totals...)
	return s
}

// MonthTotal is one bar of the monthly chart.
type MonthTotal struct {
	Mes   string  `json:"mes"`
	Total float64 `json:"total"`
}

// MonthlyTotals groups entries by billing month and sums totals per month.
// Months sort ascending lexicographically, which is chronological for the
// YYYY-MM format.
func MonthlyTotals(entries []Entry) []MonthTotal {
	perMonth := make(map[string][]float64)
	for _, e := range entries {
		m := e.BillingMonth()
		perMonth[m] = append(perMonth[m], e.Total)
	}

	months := make([]string, 0, len(perMonth))
	for m := range perMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthTotal, 0, len(months))
	for _, m := range months {
		out = append(out, MonthTotal{Mes: m, Total: utils.SumTotals(perMonth[m]...)})
	}
	return out
}

// RemoveAt deletes the element at positional index i from the full list,
// keeping the relative order of the rest.
func RemoveAt(entries []Entry, i int) ([]Entry, error) {
	if i < 0 || i >= len(entries) {
		return nil, fmt.Errorf("index %d out of range (len %d)", i, len(entries))
	}
	out := make([]Entry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	out = append(out, entries[i+1:]...)
	return out, nil
}
