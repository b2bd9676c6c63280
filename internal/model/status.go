// internal/model/status.go
package model

// StatusKind is the classified download state of one poll
type StatusKind string

const (
	// StatusNoData means no rate line was found in the log window
	StatusNoData StatusKind = "NO_DATA"

	// StatusPaused means the most recent rate reading was zero
	StatusPaused StatusKind = "PAUSED"

	// StatusDownloading means the most recent rate reading was non-zero
	StatusDownloading StatusKind = "DOWNLOADING"
)

// String returns the string representation of StatusKind
func (k StatusKind) String() string {
	return string(k)
}

// DownloadStatus is the result of one poll.
// Rate is nil for StatusNoData and set for the other kinds.
type DownloadStatus struct {
	Kind  StatusKind
	Item  string // "" when no manifest is active
	AppID string
	Rate  *float64 // Mbps
}

// HasItem reports whether an active item was found
func (s DownloadStatus) HasItem() bool {
	return s.Item != ""
}

// RateMbps returns the rate sample and whether one exists
func (s DownloadStatus) RateMbps() (float64, bool) {
	if s.Rate == nil {
		return 0, false
	}
	return *s.Rate, true
}
