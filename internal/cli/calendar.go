package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nagaosooooooora-dev/roman-points/internal/ledger"
)

// RenderCalendar renders one calendar month with the daily net point
// change under each day number. Days outside the month are blank;
// today is highlighted when it falls inside the month.
func RenderCalendar(month time.Time, net map[string]int64, today time.Time) string {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	next := first.AddDate(0, 1, 0)
	todayKey := ledger.DayKey(today)

	todayStyle := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(first.Format("January 2006")))
	b.WriteString("\n  ")
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%8s", d)))
	}
	b.WriteString("\n")

	// Leading blanks up to the first weekday.
	col := int(first.Weekday())
	b.WriteString("  ")
	b.WriteString(strings.Repeat(" ", col*8))

	var netLine strings.Builder
	netLine.WriteString("  ")
	netLine.WriteString(strings.Repeat(" ", col*8))

	flush := func() {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(netLine.String(), " "))
		b.WriteString("\n")
		netLine.Reset()
		netLine.WriteString("  ")
	}

	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		key := ledger.DayKey(d)
		dayStr := fmt.Sprintf("%8d", d.Day())
		if key == todayKey {
			b.WriteString(todayStyle.Render(dayStr))
		} else {
			b.WriteString(valueStyle.Render(dayStr))
		}

		if v := net[key]; v != 0 {
			netLine.WriteString(StyleAmount(v, fmt.Sprintf("%8s", FormatSigned(v))))
		} else {
			netLine.WriteString(strings.Repeat(" ", 8))
		}

		col++
		if col == 7 {
			col = 0
			flush()
			b.WriteString("  ")
		}
	}
	if col != 0 {
		flush()
	}

	return strings.TrimRight(b.String(), " \n") + "\n"
}
