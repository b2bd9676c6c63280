package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/steammon/internal/model"
	"github.com/rusenback/steammon/internal/steam"
	"github.com/rusenback/steammon/internal/storage"
)

// Options configures the dashboard
type Options struct {
	Interval time.Duration
	LogLines int
	Storage  *storage.Storage // nil disables history
}

// Model represents the TUI application state
type Model struct {
	client   steam.SteamClient
	interval time.Duration
	logLines int

	status   model.DownloadStatus
	lastPoll time.Time
	polls    int
	loading  bool
	err      error
	message  string

	logs     []string
	logFound bool

	// In-memory rate history, newest last
	rateHistory   []float64
	maxDataPoints int

	// Storage and time range
	storage   *storage.Storage
	timeRange storage.TimeRange
	history   []storage.DataPoint

	width  int
	height int
}

// Message types for Bubbletea update loop
type tickMsg time.Time

type statusMsg struct {
	status    model.DownloadStatus
	logs      []string
	logFound  bool
	err       error
	at        time.Time
	scheduled bool // false for manual refreshes
}

type historyMsg struct {
	points []storage.DataPoint
	err    error
}

// NewModel creates a new TUI model
func NewModel(client steam.SteamClient, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	if opts.LogLines <= 0 {
		opts.LogLines = 10
	}

	maxPoints := 150
	return Model{
		client:        client,
		interval:      opts.Interval,
		logLines:      opts.LogLines,
		loading:       true,
		maxDataPoints: maxPoints,
		// Pre-fill with zeros so graph is full-width from the start
		rateHistory: make([]float64, maxPoints),
		storage:     opts.Storage,
		timeRange:   storage.Range30Min,
	}
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchStatus(m.client, m.logLines, true), tickCmd(m.interval))
}
