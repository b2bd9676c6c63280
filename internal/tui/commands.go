package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/steammon/internal/steam"
	"github.com/rusenback/steammon/internal/storage"
)

// tickCmd creates a command that sends a tick message after d
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchStatus creates a command that polls the client once. Only scheduled
// polls are recorded to history.
func fetchStatus(client steam.SteamClient, logLines int, scheduled bool) tea.Cmd {
	return func() tea.Msg {
		status := client.Status()
		logs, found, err := client.TailLog(logLines)
		return statusMsg{
			status:    status,
			logs:      logs,
			logFound:  found,
			err:       err,
			at:        time.Now(),
			scheduled: scheduled,
		}
	}
}

// queryHistory creates a command that loads stored rates for a time range
func queryHistory(store *storage.Storage, r storage.TimeRange) tea.Cmd {
	return func() tea.Msg {
		points, err := store.Query(r)
		return historyMsg{points: points, err: err}
	}
}
