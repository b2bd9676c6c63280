package monitor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rusenback/steammon/internal/model"
)

const noActiveGame = "No active game"

// FormatLine renders one poll result as a console line
func FormatLine(index int, status model.DownloadStatus) string {
	item := status.Item
	if item == "" {
		item = noActiveGame
	}

	switch status.Kind {
	case model.StatusDownloading:
		rate, _ := status.RateMbps()
		return fmt.Sprintf("[%d] ⬇ %s: %s Mbps", index, item, FormatRate(rate))
	case model.StatusPaused:
		return fmt.Sprintf("[%d] ⏸ %s", index, item)
	default:
		return fmt.Sprintf("[%d] ℹ No download activity", index)
	}
}

// FormatRate prints the shortest exact representation, keeping one decimal
// for whole numbers (5 -> "5.0")
func FormatRate(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
