package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rusenback/steammon/internal/monitor"
	"github.com/rusenback/steammon/internal/storage"
)

var (
	graphTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))
	graphAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	rateGraphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))
)

// renderSparkline creates a compact sparkline of the last width values
func renderSparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(data) == 0 {
		return strings.Repeat("▁", width)
	}

	start := 0
	if len(data) > width {
		start = len(data) - width
	}
	displayData := data[start:]

	min, max := math.MaxFloat64, 0.0
	for _, v := range displayData {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		min = math.Max(0, max-10)
		max = max + 10
	}

	dataRange := max - min
	if dataRange == 0 {
		dataRange = 1
	}

	chars := []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	var result strings.Builder

	// Pad on the left so the newest value is always at the right edge
	for i := len(displayData); i < width; i++ {
		result.WriteString("▁")
	}

	for _, value := range displayData {
		normalized := (value - min) / dataRange
		charIndex := int(normalized * float64(len(chars)-1))
		if charIndex >= len(chars) {
			charIndex = len(chars) - 1
		}
		if charIndex < 0 {
			charIndex = 0
		}
		result.WriteString(chars[charIndex])
	}

	return result.String()
}

// renderRateGraph renders the throughput history as a bar chart
func renderRateGraph(data []float64, width, height int, timeRange storage.TimeRange, fromHistory bool) string {
	var s strings.Builder

	source := "this session"
	if fromHistory {
		source = timeRange.String()
	}
	s.WriteString(graphTitleStyle.Render("📈 Download rate - "+source) + "\n")
	s.WriteString(graphAxisStyle.Render("[1]30m [2]1h [3]6h [4]1d [5]1w") + "\n\n")

	if len(data) == 0 {
		s.WriteString("Waiting for data...")
		return s.String()
	}

	current := data[len(data)-1]
	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, v)
	}
	s.WriteString(rateGraphStyle.Render("█") + fmt.Sprintf(" now: %s Mbps  peak: %s Mbps\n\n",
		monitor.FormatRate(current), monitor.FormatRate(peak)))

	maxVal := peak
	if maxVal == 0 {
		maxVal = 1
	}

	graphHeight := height - 10
	if graphHeight < 3 {
		graphHeight = 3
	}

	// Limit data points to available width (leave room for Y-axis labels)
	maxWidth := width - 12
	if maxWidth < 10 {
		maxWidth = 10
	}
	display := data
	if len(display) > maxWidth {
		display = display[len(display)-maxWidth:]
	}

	for row := graphHeight; row > 0; row-- {
		var line strings.Builder

		switch row {
		case graphHeight:
			line.WriteString(graphAxisStyle.Render(fmt.Sprintf("%7.1f ", maxVal)))
		case (graphHeight + 1) / 2:
			line.WriteString(graphAxisStyle.Render(fmt.Sprintf("%7.1f ", maxVal/2)))
		default:
			line.WriteString("        ")
		}
		line.WriteString(graphAxisStyle.Render("│"))

		threshold := (float64(row) - 0.5) / float64(graphHeight) * maxVal
		for _, v := range display {
			if v > 0 && v >= threshold {
				line.WriteString(rateGraphStyle.Render("█"))
			} else {
				line.WriteString(" ")
			}
		}
		s.WriteString(line.String() + "\n")
	}

	s.WriteString("        " + graphAxisStyle.Render("└"+strings.Repeat("─", len(display))))
	return s.String()
}
