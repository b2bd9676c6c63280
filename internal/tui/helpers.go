package tui

// truncate shortens a string to a maximum length in runes
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// graphData returns what the graph shows: stored history for the selected
// range when there is any, otherwise this session's samples
func (m Model) graphData() []float64 {
	if len(m.history) == 0 {
		return m.rateHistory
	}
	data := make([]float64, len(m.history))
	for i, p := range m.history {
		data[i] = p.RateMbps
	}
	return data
}
