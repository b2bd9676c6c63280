package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rusenback/steammon/internal/model"
	"github.com/rusenback/steammon/internal/steam"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	calls    int
	statuses []model.DownloadStatus
	onCall   func(n int)
}

func (f *fakeSource) Status() model.DownloadStatus {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	if f.onCall != nil {
		f.onCall(n)
	}
	if len(f.statuses) == 0 {
		return model.DownloadStatus{Kind: model.StatusNoData}
	}
	return f.statuses[(n-1)%len(f.statuses)]
}

type sliceRecorder struct {
	samples []model.Sample
}

func (r *sliceRecorder) Record(s model.Sample) {
	r.samples = append(r.samples, s)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func outputLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func ratePtr(v float64) *float64 {
	return &v
}

func TestRun_Bounded(t *testing.T) {
	var out bytes.Buffer
	rec := &sliceRecorder{}
	src := &fakeSource{statuses: []model.DownloadStatus{
		{Kind: model.StatusDownloading, Item: "Game1", Rate: ratePtr(12.5)},
		{Kind: model.StatusPaused, Item: "Game1", Rate: ratePtr(0)},
		{Kind: model.StatusNoData},
	}}

	m := New(src, Config{Interval: time.Millisecond, Out: &out, Logger: quietLogger(), Recorder: rec})
	require.NoError(t, m.Run(context.Background(), ModeFive.Iterations()))

	assert.Equal(t, []string{
		"[1] ⬇ Game1: 12.5 Mbps",
		"[2] ⏸ Game1",
		"[3] ℹ No download activity",
		"[4] ⬇ Game1: 12.5 Mbps",
		"[5] ⏸ Game1",
	}, outputLines(&out))
	assert.Len(t, rec.samples, 5)
	assert.Equal(t, model.StatusPaused, rec.samples[1].Status.Kind)
}

func TestRun_NoWaitAfterLastPoll(t *testing.T) {
	var out bytes.Buffer
	m := New(&fakeSource{}, Config{Interval: time.Hour, Out: &out, Logger: quietLogger()})

	done := make(chan error, 1)
	go func() { done <- m.Run(context.Background(), ModeOnce.Iterations()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run(1) should return without waiting for the interval")
	}
	assert.Equal(t, []string{"[1] ℹ No download activity"}, outputLines(&out))
}

func TestRun_ContinuousUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	src := &fakeSource{onCall: func(n int) {
		if n == 3 {
			cancel()
		}
	}}

	m := New(src, Config{Interval: time.Millisecond, Out: &out, Logger: quietLogger()})
	err := m.Run(ctx, ModeContinuous.Iterations())

	require.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []string{
		"[1] ℹ No download activity",
		"[1] ℹ No download activity",
		"[1] ℹ No download activity",
	}, outputLines(&out))
}

func TestRun_InterruptDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var out bytes.Buffer
	m := New(&fakeSource{}, Config{Interval: time.Hour, Out: &out, Logger: quietLogger()})

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, 0) }()

	time.AfterFunc(20*time.Millisecond, cancel)

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run should stop promptly when cancelled")
	}
	assert.Equal(t, []string{"[1] ℹ No download activity"}, outputLines(&out))
}

func TestRun_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	m := New(&fakeSource{}, Config{Out: &out, Logger: quietLogger()})

	require.ErrorIs(t, m.Run(ctx, 5), context.Canceled)
	assert.Empty(t, out.String())
}

func TestTick_EndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/steam/logs", 0o755))
	require.NoError(t, fs.MkdirAll("/steam/steamapps", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/steam/logs/content_log.txt",
		[]byte("[2024-05-01 10:00:00] Current download rate: 31.4 Mbps\n[2024-05-01 10:01:00] Current download rate: 0 Mbps\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/steam/steamapps/appmanifest_10.acf",
		[]byte("\"AppState\"\n{\n\t\"appid\"\t\t\"10\"\n\t\"name\"\t\t\"Game1\"\n\t\"StateFlags\"\t\t\"3\"\n}\n"), 0o644))

	cfg := steam.DefaultConfig("/steam")
	cfg.Fs = fs
	cfg.Logger = quietLogger()
	client, err := steam.NewClient(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	m := New(client, Config{Out: &out, Logger: quietLogger()})

	status := m.Tick(1)
	assert.Equal(t, model.StatusPaused, status.Kind)
	assert.Equal(t, "Game1", status.Item)
	assert.Equal(t, "[1] ⏸ Game1\n", out.String())
}

func TestFormatLine(t *testing.T) {
	testCases := []struct {
		name     string
		status   model.DownloadStatus
		expected string
	}{
		{"downloading", model.DownloadStatus{Kind: model.StatusDownloading, Item: "Dota 2", Rate: ratePtr(7.2)}, "[2] ⬇ Dota 2: 7.2 Mbps"},
		{"downloading whole number", model.DownloadStatus{Kind: model.StatusDownloading, Item: "Dota 2", Rate: ratePtr(5)}, "[2] ⬇ Dota 2: 5.0 Mbps"},
		{"downloading without item", model.DownloadStatus{Kind: model.StatusDownloading, Rate: ratePtr(12.5)}, "[2] ⬇ No active game: 12.5 Mbps"},
		{"paused", model.DownloadStatus{Kind: model.StatusPaused, Item: "X", Rate: ratePtr(0)}, "[2] ⏸ X"},
		{"paused without item", model.DownloadStatus{Kind: model.StatusPaused, Rate: ratePtr(0)}, "[2] ⏸ No active game"},
		{"no data", model.DownloadStatus{Kind: model.StatusNoData, Item: "X"}, "[2] ℹ No download activity"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatLine(2, tc.status))
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		count    int
	}{
		{"once", ModeOnce, 1},
		{" FIVE \n", ModeFive, 5},
		{"Continuous", ModeContinuous, 0},
		{"", ModeFive, 5},
		{"forever", ModeFive, 5},
	}

	for _, tt := range tests {
		mode := ParseMode(tt.input)
		assert.Equal(t, tt.expected, mode, "input %q", tt.input)
		assert.Equal(t, tt.count, mode.Iterations(), "input %q", tt.input)
	}
}

func TestPromptMode(t *testing.T) {
	ctx := context.Background()

	var out bytes.Buffer
	mode, err := PromptMode(ctx, strings.NewReader("once\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, ModeOnce, mode)
	assert.Equal(t, "Choose mode (once / five / continuous): ", out.String())

	mode, err = PromptMode(ctx, strings.NewReader("continuous"), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, ModeContinuous, mode)

	mode, err = PromptMode(ctx, strings.NewReader(""), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, ModeFive, mode)
}

func TestPromptMode_CancelWhileReading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// Nothing is ever written, the reader stays blocked
	pr, pw := io.Pipe()
	defer pw.Close()

	done := make(chan error, 1)
	go func() {
		_, err := PromptMode(ctx, pr, io.Discard)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("PromptMode should return once the context is cancelled")
	}
}

type fakeLog struct {
	lines []string
	ok    bool
	err   error
}

func (f fakeLog) TailLog(n int) ([]string, bool, error) {
	return f.lines, f.ok, f.err
}

func TestDumpLog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, DumpLog(&out, fakeLog{}, 10))
	assert.Equal(t, "content_log.txt not found\n", out.String())

	out.Reset()
	require.NoError(t, DumpLog(&out, fakeLog{lines: []string{"a", "b"}, ok: true}, 10))
	assert.Equal(t, "Last 10 lines of content_log.txt:\n\na\nb\n\n", out.String())

	boom := errors.New("boom")
	require.ErrorIs(t, DumpLog(&out, fakeLog{err: boom}, 10), boom)
}
