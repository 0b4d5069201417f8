package components

import (
	"strings"

	"github.com/nagaosooooooora-dev/roman-points/internal/cli"
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	low, high := values[0], values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	span := high - low
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 3) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int((v - low) / span * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(sparkBlocks[idx])
	}

	return style.Render(buf.String())
}

// BalanceChart renders the running balance as a filled row chart with
// y-axis labels. The scale always includes zero so a flat positive
// balance doesn't look like a cliff.
func BalanceChart(series []int64, width, height int) string {
	if len(series) == 0 || height < 2 {
		return ""
	}
	t := theme.Active

	low, high := series[0], series[0]
	for _, v := range series {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	if low > 0 {
		low = 0
	}
	if high <= low {
		high = low + 1
	}
	span := float64(high - low)

	yLabelW := len(cli.FormatNumber(high)) + 1
	if w := len(cli.FormatNumber(low)) + 1; w > yLabelW {
		yLabelW = w
	}
	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// Resample the series to the chart width.
	denom := chartW - 1
	if denom < 1 {
		denom = 1
	}
	cols := make([]int64, chartW)
	for x := 0; x < chartW; x++ {
		cols[x] = series[x*(len(series)-1)/denom]
	}

	lineStyle := lipgloss.NewStyle().Foreground(t.Accent)
	fillStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	zeroRow := int(float64(height-1) * float64(high) / span)

	var b strings.Builder
	for row := 0; row < height; row++ {
		// Value at the top of this row's band.
		rowValue := high - int64(float64(row)/float64(height-1)*span)

		label := ""
		if row == 0 {
			label = cli.FormatNumber(high)
		} else if row == height-1 {
			label = cli.FormatNumber(low)
		} else if row == zeroRow && low < 0 {
			label = "0"
		}
		b.WriteString(labelStyle.Render(lipgloss.PlaceHorizontal(yLabelW, lipgloss.Right, label)))
		b.WriteString(" ")

		for x := 0; x < chartW; x++ {
			v := cols[x]
			switch {
			case v >= rowValue && rowValue > 0:
				b.WriteString(lineStyle.Render("█"))
			case v <= rowValue && rowValue <= 0 && v < 0:
				b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render("█"))
			default:
				b.WriteString(fillStyle.Render("·"))
			}
		}
		if row < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// NetBars renders one compact row of daily net markers: green up-blocks
// for earning days, red down-blocks for net spends, dots for quiet days.
func NetBars(nets []int64) string {
	if len(nets) == 0 {
		return ""
	}
	t := theme.Active

	var high int64 = 1
	for _, v := range nets {
		if v > high {
			high = v
		}
		if -v > high {
			high = -v
		}
	}

	earnStyle := lipgloss.NewStyle().Foreground(t.Green)
	spendStyle := lipgloss.NewStyle().Foreground(t.Red)
	idleStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for _, v := range nets {
		switch {
		case v == 0:
			b.WriteString(idleStyle.Render("·"))
		case v > 0:
			idx := int(float64(v) / float64(high) * float64(len(sparkBlocks)-1))
			b.WriteString(earnStyle.Render(string(sparkBlocks[idx])))
		default:
			idx := int(float64(-v) / float64(high) * float64(len(sparkBlocks)-1))
			b.WriteString(spendStyle.Render(string(sparkBlocks[idx])))
		}
	}
	return b.String()
}
