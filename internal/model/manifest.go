package model

// StateFullyInstalled is the StateFlags value of an idle, fully installed app
const StateFullyInstalled = 4

// ManifestRecord is what we keep from one appmanifest_*.acf file
type ManifestRecord struct {
	Path       string
	AppID      string
	Name       string
	StateFlags uint64
}

// Active reports whether the app has any work pending (update, download, ...)
func (r ManifestRecord) Active() bool {
	return r.StateFlags != StateFullyInstalled
}
