package tui

import "github.com/charmbracelet/lipgloss"

// View renders the TUI interface
func (m Model) View() string {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 100, 40
	}

	// 40% left, 60% right for the top row; logs take the bottom 40%
	leftWidth := int(float64(width) * 0.4)
	rightWidth := width - leftWidth

	topHeight := int(float64(height) * 0.6)
	bottomHeight := height - topHeight - 2

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderStatusPanel(leftWidth, topHeight),
		m.renderGraphPanel(rightWidth, topHeight),
	)
	bottomRow := m.renderLogPanel(width, bottomHeight)

	help := helpStyle.Render("[r] refresh  [1-5] graph range  [q] quit")

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow, help)
}
