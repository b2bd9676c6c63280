package steam

import "github.com/rusenback/steammon/internal/model"

// Classify combines a rate reading and the active item name into a status.
// Without a rate the result is always NoData; zero means paused and any
// other value downloading. The item is passed through as is.
func Classify(rate float64, hasRate bool, item string) model.DownloadStatus {
	status := model.DownloadStatus{Item: item}

	switch {
	case !hasRate:
		status.Kind = model.StatusNoData
	case rate == 0:
		status.Kind = model.StatusPaused
		status.Rate = &rate
	default:
		status.Kind = model.StatusDownloading
		status.Rate = &rate
	}

	return status
}

// Status reads the log and the manifests and classifies the result.
// Read errors are logged and treated like missing data.
func (c *Client) Status() model.DownloadStatus {
	rate, hasRate, err := c.CurrentRate()
	if err != nil {
		c.log.WithError(err).Warn("read download rate")
		hasRate = false
	}

	record, found, err := c.ActiveItem()
	if err != nil {
		c.log.WithError(err).Warn("scan app manifests")
		found = false
	}

	var item string
	if found {
		item = record.Name
	}

	status := Classify(rate, hasRate, item)
	if found {
		status.AppID = record.AppID
	}
	return status
}
