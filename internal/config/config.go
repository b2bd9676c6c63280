package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from flags, env and config files.
type Config struct {
	Steam struct {
		Root string
	}
	Monitor struct {
		Mode     string
		Interval time.Duration
		Window   int
		Tail     int
	}
	History struct {
		Enabled   bool
		Path      string
		Retention time.Duration
	}
	Log struct {
		Level string
	}
	UI struct {
		TUI bool
	}
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"root":              "steam.root",
	"mode":              "monitor.mode",
	"interval":          "monitor.interval",
	"window":            "monitor.window",
	"tail":              "monitor.tail",
	"history":           "history.enabled",
	"history-path":      "history.path",
	"history-retention": "history.retention",
	"log-level":         "log.level",
	"tui":               "ui.tui",
}

// Load reads configuration from args, STEAMMON_* environment variables, an
// optional .env file and an optional config file. pflag.ErrHelp is returned
// as is when -h is given.
func Load(args []string) (Config, error) {
	// .env is optional, but a broken one is reported
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("STEAMMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("steam.root", "")
	v.SetDefault("monitor.mode", "")
	v.SetDefault("monitor.interval", 60*time.Second)
	v.SetDefault("monitor.window", 200)
	v.SetDefault("monitor.tail", 0)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "")
	v.SetDefault("history.retention", 7*24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.tui", false)

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if err := readConfigFile(v, flags); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	if cfg.Monitor.Interval <= 0 {
		return Config{}, fmt.Errorf("monitor interval must be positive, got %s", cfg.Monitor.Interval)
	}

	return cfg, nil
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("steammon", pflag.ContinueOnError)
	flags.SortFlags = false

	flags.StringP("mode", "m", "", "polling mode: once, five or continuous (prompted when empty)")
	flags.String("root", "", "Steam installation directory (discovered when empty)")
	flags.Duration("interval", 60*time.Second, "pause between polls")
	flags.Int("window", 200, "number of trailing log lines searched for a rate")
	flags.Int("tail", 0, "print the last N lines of content_log.txt before polling")
	flags.Bool("tui", false, "run the interactive dashboard")
	flags.Bool("history", false, "record polls in the history database")
	flags.String("history-path", "", "history database path (default ~/.steammon/history.db)")
	flags.Duration("history-retention", 7*24*time.Hour, "how long history rows are kept")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.BoolP("verbose", "v", false, "shorthand for --log-level=debug")
	flags.StringP("config", "c", "", "config file")

	return flags
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	if file, _ := flags.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".steammon"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
