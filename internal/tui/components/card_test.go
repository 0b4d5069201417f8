package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, tc := range []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{103, 4},
		{80, 3},
		{7, 2},
	} {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
}

func TestMetricCardWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	for _, outer := range []int{20, 28, 35} {
		card := MetricCard("Balance", "12,345 RP", "note", outer)
		if got := lipgloss.Width(card); got != outer {
			t.Errorf("MetricCard outer width = %d, want %d", got, outer)
		}
	}
}

func TestMetricCardRowMatchesTotalWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]struct{ Label, Value, Note string }{
		{"Balance", "9,000 RP", ""},
		{"This month", "1,200 RP", "earn rate halved"},
		{"Daily avg", "42.5", "last 30d"},
	}, 90)

	if got := lipgloss.Width(row); got != 90 {
		t.Errorf("MetricCardRow width = %d, want 90", got)
	}
}
