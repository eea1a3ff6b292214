// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats a USD amount with comma grouping and cents.
// e.g., 1234567.891 -> "$1,234,567.89"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("$%s.%02d", FormatNumber(cents/100), cents%100)
}

// FormatMoneyCompact formats a USD amount with human-readable suffixes for
// chart axes and cards. e.g., 1234567 -> "$1.2M"
func FormatMoneyCompact(v float64) string {
	if v < 0 {
		return "-" + FormatMoneyCompact(-v)
	}
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 10_000:
		return fmt.Sprintf("$%.0fk", v/1_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.1fk", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 fraction as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatMonths formats a month count as years and months.
// e.g., 26 -> "2y 2m", 7 -> "7m"
func FormatMonths(months int) string {
	if months < 0 {
		return "—"
	}
	years := months / 12
	rem := months % 12

	if years > 0 && rem > 0 {
		return fmt.Sprintf("%dy %dm", years, rem)
	}
	if years > 0 {
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dm", rem)
}

// FormatMonthIndex formats an optional month-index KPI: the milestone
// month number, or a dash when never reached.
func FormatMonthIndex(m *int) string {
	if m == nil {
		return "—"
	}
	return fmt.Sprintf("month %d (%s)", *m, FormatMonths(*m+1))
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return "-" + FormatMoney(-delta)
}
