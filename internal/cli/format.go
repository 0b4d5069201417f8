// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

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

// FormatPoints formats a point amount with the RP unit.
// e.g., 12500 -> "12,500 RP"
func FormatPoints(n int64) string {
	return FormatNumber(n) + " RP"
}

// FormatSigned formats a point delta with an explicit sign.
// e.g., 300 -> "+300", -1200 -> "-1,200"
func FormatSigned(n int64) string {
	if n >= 0 {
		return "+" + FormatNumber(n)
	}
	return FormatNumber(n)
}

// FormatDate renders a day as "2006-01-02".
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatLimit renders an optional usage cap, "∞" when unlimited.
func FormatLimit(limit *int) string {
	if limit == nil {
		return "∞"
	}
	return strconv.Itoa(*limit)
}

// FormatDays renders a day count, e.g. 45 -> "45 days", 1 -> "1 day".
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
