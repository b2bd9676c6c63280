package steam

import (
	"regexp"
	"strconv"
)

var ratePattern = regexp.MustCompile(`(?i)Current download rate:\s*([0-9.]+)\s*Mbps`)

// ExtractRate scans the last window lines newest first and returns the first
// rate reading found, in Mbps. A window <= 0 searches every line.
func ExtractRate(lines []string, window int) (float64, bool) {
	if window > 0 && len(lines) > window {
		lines = lines[len(lines)-window:]
	}

	for i := len(lines) - 1; i >= 0; i-- {
		m := ratePattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		// [0-9.]+ also matches things like "1.2.3"
		rate, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return rate, true
	}

	return 0, false
}

// CurrentRate returns the most recent rate reading of the content log
func (c *Client) CurrentRate() (float64, bool, error) {
	lines, ok, err := c.TailLog(c.window)
	if err != nil || !ok {
		return 0, false, err
	}

	rate, found := ExtractRate(lines, c.window)
	if !found {
		c.log.WithField("window", c.window).Debug("no download rate in log window")
	}
	return rate, found, nil
}
