package cli

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/YoshitsuguKoike/habittrack/internal/domain/model/field"
)

// Chart colors, one per series in field order
var seriesColors = []lipgloss.Color{
	lipgloss.Color("#8884d8"),
	lipgloss.Color("#82ca9d"),
	lipgloss.Color("#e57373"),
	lipgloss.Color("#4db6ac"),
	lipgloss.Color("#ffd54f"),
	lipgloss.Color("#ff8a65"),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8a8f98"))
)

func seriesColor(i int) lipgloss.Color {
	return seriesColors[i%len(seriesColors)]
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// displayValue renders a stored value for humans. Booleans read Yes/No.
func displayValue(f field.Field, v *field.Value) string {
	if v == nil || v.IsNull() {
		return ""
	}
	if f.Type == field.TypeBoolean && v.Bool != nil {
		if *v.Bool {
			return "Yes"
		}
		return "No"
	}
	shown, err := v.Display(f)
	if err != nil {
		return ""
	}
	return shown
}

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// sparkline draws values as a row of block characters scaled to the largest
// value. Zero and negative values draw the lowest tick.
func sparkline(values []float64) string {
	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if peak > 0 && v > 0 {
			idx = int(math.Round(v / peak * float64(len(sparkTicks)-1)))
		}
		b.WriteRune(sparkTicks[idx])
	}
	return b.String()
}
