// internal/monitor/monitor.go
package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rusenback/steammon/internal/model"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is the pause between two polls
const DefaultInterval = 60 * time.Second

// StatusSource produces one poll result per call
type StatusSource interface {
	Status() model.DownloadStatus
}

// Recorder receives every poll result, e.g. the history store
type Recorder interface {
	Record(sample model.Sample)
}

type Config struct {
	Interval time.Duration
	Out      io.Writer
	Logger   logrus.FieldLogger
	Recorder Recorder
}

// Monitor polls a StatusSource at a fixed interval and prints one line per poll
type Monitor struct {
	cfg    Config
	source StatusSource
}

func New(source StatusSource, cfg Config) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &Monitor{
		cfg:    cfg,
		source: source,
	}
}

// Run polls iterations times, or until ctx is cancelled when iterations <= 0.
// Unbounded runs are a sequence of single-poll cycles, so every line is
// tagged [1]. There is no wait after the last poll. Cancellation returns
// ctx.Err().
func (m *Monitor) Run(ctx context.Context, iterations int) error {
	start := time.Now()
	logger := m.cfg.Logger.WithField("interval", m.cfg.Interval)

	for i := 1; iterations <= 0 || i <= iterations; i++ {
		if err := ctx.Err(); err != nil {
			logger.WithField("elapsed", time.Since(start).Round(time.Second)).Info("monitoring stopped")
			return err
		}

		index := i
		if iterations <= 0 {
			index = 1
		}
		m.Tick(index)

		if iterations > 0 && i == iterations {
			break
		}

		if err := m.wait(ctx); err != nil {
			logger.WithField("elapsed", time.Since(start).Round(time.Second)).Info("monitoring stopped")
			return err
		}
	}

	logger.WithFields(logrus.Fields{
		"iterations": iterations,
		"elapsed":    time.Since(start).Round(time.Second),
	}).Debug("monitoring finished")
	return nil
}

// Tick takes one sample, prints it tagged with index and returns it
func (m *Monitor) Tick(index int) model.DownloadStatus {
	status := m.source.Status()

	m.cfg.Logger.WithFields(logrus.Fields{
		"iteration": index,
		"status":    status.Kind,
		"item":      status.Item,
	}).Debug("poll")

	fmt.Fprintln(m.cfg.Out, FormatLine(index, status))

	if m.cfg.Recorder != nil {
		m.cfg.Recorder.Record(model.Sample{Timestamp: time.Now(), Status: status})
	}
	return status
}

func (m *Monitor) wait(ctx context.Context) error {
	timer := time.NewTimer(m.cfg.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
