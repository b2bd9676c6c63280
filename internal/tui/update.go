package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/steammon/internal/model"
	"github.com/rusenback/steammon/internal/storage"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "r", "R":
			m.loading = true
			m.message = "Refreshing..."
			return m, fetchStatus(m.client, m.logLines, false)

		case "1", "2", "3", "4", "5":
			ranges := []storage.TimeRange{
				storage.Range30Min,
				storage.Range1Hour,
				storage.Range6Hour,
				storage.Range1Day,
				storage.Range1Week,
			}
			cmd := m.setTimeRange(ranges[msg.String()[0]-'1'])
			return m, cmd
		}

	case tickMsg:
		return m, tea.Batch(fetchStatus(m.client, m.logLines, true), tickCmd(m.interval))

	case statusMsg:
		m.loading = false
		m.message = ""
		m.status = msg.status
		m.lastPoll = msg.at
		m.polls++

		m.logs = msg.logs
		m.logFound = msg.logFound
		m.err = msg.err

		// Shift rate data left and add new value at the end. Polls without
		// a reading are left out so they do not show as paused.
		if rate, ok := msg.status.RateMbps(); ok {
			m.rateHistory = append(m.rateHistory[1:], rate)
		}

		if m.storage != nil {
			if msg.scheduled {
				m.storage.Record(model.Sample{Timestamp: msg.at, Status: msg.status})
			}
			return m, queryHistory(m.storage, m.timeRange)
		}

	case historyMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("History error: %v", msg.err)
		} else {
			m.history = msg.points
		}
	}

	return m, nil
}

// setTimeRange switches the graph range and reloads history when it is kept
func (m *Model) setTimeRange(r storage.TimeRange) tea.Cmd {
	m.timeRange = r
	if m.storage == nil {
		m.message = "History is disabled, graph shows this session only"
		return nil
	}
	return queryHistory(m.storage, r)
}
