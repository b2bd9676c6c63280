package steam

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultWindow is how many trailing log lines are searched for a rate reading
const DefaultWindow = 200

// Config holds the Steam client configuration
type Config struct {
	Root   string
	Window int
	Fs     afero.Fs
	Logger logrus.FieldLogger
}

func DefaultConfig(root string) Config {
	return Config{
		Root:   root,
		Window: DefaultWindow,
	}
}

// Client reads the content log and app manifests of one Steam installation
type Client struct {
	root   string
	window int
	fs     afero.Fs
	log    logrus.FieldLogger
}

// NewClient creates a client for the installation at cfg.Root.
// The root has to exist; everything below it may be missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}

	ok, err := afero.DirExists(cfg.Fs, cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("stat steam root: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotInstalled, cfg.Root)
	}

	return &Client{
		root:   cfg.Root,
		window: cfg.Window,
		fs:     cfg.Fs,
		log:    cfg.Logger.WithField("root", cfg.Root),
	}, nil
}

// Root returns the installation directory
func (c *Client) Root() string {
	return c.root
}

// LogPath returns the path of content_log.txt
func (c *Client) LogPath() string {
	return filepath.Join(c.root, "logs", "content_log.txt")
}

// ManifestDir returns the directory holding appmanifest_*.acf files
func (c *Client) ManifestDir() string {
	return filepath.Join(c.root, "steamapps")
}
