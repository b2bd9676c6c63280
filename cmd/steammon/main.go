// cmd/steammon/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/rusenback/steammon/internal/config"
	"github.com/rusenback/steammon/internal/monitor"
	"github.com/rusenback/steammon/internal/steam"
	"github.com/rusenback/steammon/internal/storage"
	"github.com/rusenback/steammon/internal/tui"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Fatalf("log level: %v", err)
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		stop()
		logger.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	root, err := steam.Locate(cfg.Steam.Root)
	if err != nil {
		return fmt.Errorf("locate steam: %w", err)
	}
	logger.Debugf("using steam installation at %s", root)

	client, err := steam.NewClient(steam.Config{
		Root:   root,
		Window: cfg.Monitor.Window,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("open steam installation: %w", err)
	}

	var store *storage.Storage
	if cfg.History.Enabled {
		store, err = storage.NewStorage(storage.Options{
			Path:      cfg.History.Path,
			Root:      root,
			Retention: cfg.History.Retention,
			Logger:    logger,
		})
		if err != nil {
			return fmt.Errorf("initialize history: %w", err)
		}
		defer store.Close()
	}

	if cfg.Monitor.Tail > 0 {
		if err := monitor.DumpLog(os.Stdout, client, cfg.Monitor.Tail); err != nil {
			logger.Warnf("read content log: %v", err)
		}
	}

	if cfg.UI.TUI {
		m := tui.NewModel(client, tui.Options{
			Interval: cfg.Monitor.Interval,
			Storage:  store,
		})
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run dashboard: %w", err)
		}
		return nil
	}

	var mode monitor.Mode
	if cfg.Monitor.Mode != "" {
		mode = monitor.ParseMode(cfg.Monitor.Mode)
	} else {
		mode, err = monitor.PromptMode(ctx, os.Stdin, os.Stdout)
		if errors.Is(err, context.Canceled) {
			fmt.Println()
			return nil
		}
	}
	if mode == monitor.ModeContinuous {
		fmt.Println("Continuous monitoring started (Ctrl+C to stop)")
	}

	mcfg := monitor.Config{
		Interval: cfg.Monitor.Interval,
		Out:      os.Stdout,
		Logger:   logger,
	}
	if store != nil {
		mcfg.Recorder = store
	}

	err = monitor.New(client, mcfg).Run(ctx, mode.Iterations())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
