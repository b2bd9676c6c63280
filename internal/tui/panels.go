package tui

import (
	"fmt"
	"strings"

	"github.com/rusenback/steammon/internal/model"
	"github.com/rusenback/steammon/internal/monitor"
)

// renderStatusPanel renders the current download status
func (m Model) renderStatusPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("🎮 Steam downloads") + "\n\n")

	if m.loading && m.polls == 0 {
		s.WriteString("Loading...\n")
		return panelStyle.Width(width - 4).Height(height - 4).Render(s.String())
	}

	var state string
	switch m.status.Kind {
	case model.StatusDownloading:
		state = downloadingStyle.Render("⬇ Downloading")
	case model.StatusPaused:
		state = pausedStyle.Render("⏸ Paused")
	default:
		state = noDataStyle.Render("ℹ No download activity")
	}
	s.WriteString(state + "\n\n")

	item := "No active game"
	if m.status.HasItem() {
		item = truncate(m.status.Item, width-14)
	}
	s.WriteString(labelStyle.Render("Game:   ") + item + "\n")

	if m.status.AppID != "" {
		s.WriteString(labelStyle.Render("AppID:  ") + m.status.AppID + "\n")
	}

	rate := "-"
	if r, ok := m.status.RateMbps(); ok {
		rate = monitor.FormatRate(r) + " Mbps"
	}
	s.WriteString(labelStyle.Render("Rate:   ") + rate + "\n")
	s.WriteString(renderSparkline(m.rateHistory, width-12) + "\n\n")

	s.WriteString(labelStyle.Render(fmt.Sprintf("Polls:  %d every %s", m.polls, m.interval)) + "\n")
	if !m.lastPoll.IsZero() {
		s.WriteString(labelStyle.Render("Last:   "+m.lastPoll.Format("15:04:05")) + "\n")
	}
	s.WriteString(labelStyle.Render("Root:   "+truncate(m.client.Root(), width-14)) + "\n")

	if m.message != "" {
		s.WriteString("\n" + m.message + "\n")
	}

	return panelStyle.Width(width - 4).Height(height - 4).Render(s.String())
}

// renderGraphPanel renders the rate graph, from storage when available
func (m Model) renderGraphPanel(width, height int) string {
	content := renderRateGraph(m.graphData(), width-8, height-4, m.timeRange, len(m.history) > 0)
	return panelStyle.Width(width - 4).Height(height - 4).Render(content)
}

// renderLogPanel renders the last lines of content_log.txt
func (m Model) renderLogPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📋 content_log.txt") + "\n\n")

	switch {
	case m.err != nil:
		s.WriteString(errorLogStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case !m.logFound:
		s.WriteString("content_log.txt not found")
	case len(m.logs) == 0:
		s.WriteString("No log lines yet...")
	default:
		visible := height - 8
		if visible < 1 {
			visible = 1
		}
		lines := m.logs
		if len(lines) > visible {
			lines = lines[len(lines)-visible:]
		}
		for _, line := range lines {
			s.WriteString(styleLogLine(line, width-10) + "\n")
		}
	}

	return panelStyle.Width(width - 4).Height(height - 4).Render(s.String())
}
