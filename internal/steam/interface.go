// internal/steam/interface.go
package steam

import "github.com/rusenback/steammon/internal/model"

// SteamClient lets the monitor and the TUI be tested without a real installation
type SteamClient interface {
	Root() string
	Status() model.DownloadStatus
	TailLog(n int) ([]string, bool, error)
}

var _ SteamClient = (*Client)(nil)
