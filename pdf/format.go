package pdf

import (
	"fmt"
	"regexp"
	"time"
)

var shortMonths = [12]string{
	"ENE", "FEB", "MAR", "ABR", "MAY", "JUN",
	"JUL", "AGO", "SEP", "OCT", "NOV", "DIC",
}

func formatDDMMYY(d time.Time) string {
	return fmt.Sprintf("%02d/%02d/%02d", d.Day(), int(d.Month()), d.Year()%100)
}

// formatFechaTexto renders the header date, e.g. "ENE 2, 2026".
func formatFechaTexto(d time.Time) string {
	return fmt.Sprintf("%s %d, %d", shortMonths[d.Month()-1], d.Day(), d.Year())
}

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// monthToRange expands a YYYY-MM billing period into the day range the
// template prints ("01/09-30/09"). Anything else passes through untouched.
func monthToRange(ym string) string {
	if !monthRe.MatchString(ym) {
		return ym
	}
	var y, m int
	fmt.Sscanf(ym, "%d-%d", &y, &m)
	lastDay := time.Date(y, time.Month(m+1), 0, 0, 0, 0, 0, time.UTC).Day()
	return fmt.Sprintf("01/%02d-%02d/%02d", m, lastDay, m)
}

var serviceCodeRe = regexp.MustCompile(`(?i)L7|L9|S21`)

// serviceCode pattern-matches the short product code out of a service name,
// defaulting to L7 when none matches.
func serviceCode(serviceName string) string {
	code := serviceCodeRe.FindString(serviceName)
	if code == "" {
		return "L7"
	}
	return upperASCII(code)
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}

// truncate hard-cuts s to max characters, without word-boundary awareness.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
