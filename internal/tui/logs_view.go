package tui

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Log line patterns
	ratePattern    = regexp.MustCompile(`(?i)current download rate`)
	errorPattern   = regexp.MustCompile(`(?i)\b(error|failed|fail|corrupt|invalid)\b`)
	warningPattern = regexp.MustCompile(`(?i)\b(warn|warning|paused|suspended)\b`)
	appIDPattern   = regexp.MustCompile(`(?i)\bAppID\s+\d+`)

	timestampPattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\]`)

	timestampStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	rateLogStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	errorLogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	warningLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387"))
	defaultLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4"))
	appIDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

// styleLogLine colours one content_log line, cut to maxWidth runes
func styleLogLine(line string, maxWidth int) string {
	line = truncate(line, maxWidth)

	var prefix string
	if loc := timestampPattern.FindStringIndex(line); loc != nil {
		prefix = timestampStyle.Render(line[:loc[1]])
		line = line[loc[1]:]
	}

	var base lipgloss.Style
	switch {
	case ratePattern.MatchString(line):
		base = rateLogStyle
	case errorPattern.MatchString(line):
		base = errorLogStyle
	case warningPattern.MatchString(line):
		base = warningLogStyle
	default:
		base = defaultLogStyle
	}

	// Highlight app ids, style the rest with the base style
	var out string
	last := 0
	for _, loc := range appIDPattern.FindAllStringIndex(line, -1) {
		out += base.Render(line[last:loc[0]]) + appIDStyle.Render(line[loc[0]:loc[1]])
		last = loc[1]
	}
	out += base.Render(line[last:])

	return prefix + out
}
