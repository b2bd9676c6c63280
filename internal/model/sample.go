// internal/model/sample.go
package model

import "time"

// Sample is one poll result stamped with the time it was taken
type Sample struct {
	Timestamp time.Time
	Status    DownloadStatus
}
