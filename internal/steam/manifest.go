// internal/steam/manifest.go
package steam

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/rusenback/steammon/internal/model"
	"github.com/spf13/afero"
)

const manifestPattern = "appmanifest_*.acf"

var (
	manifestNamePattern  = regexp.MustCompile(`"name"\s+"(.+)"`)
	manifestStatePattern = regexp.MustCompile(`"StateFlags"\s+"(\d+)"`)
	manifestAppIDPattern = regexp.MustCompile(`"appid"\s+"(\d+)"`)
	manifestFilePattern  = regexp.MustCompile(`^appmanifest_(\d+)\.acf$`)
)

// ListManifests parses every app manifest in the steamapps directory, in
// filename order. Manifests without a name or StateFlags are skipped, as are
// files that cannot be read.
func (c *Client) ListManifests() ([]model.ManifestRecord, error) {
	dir := c.ManifestDir()

	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.log.WithField("path", dir).Debug("steamapps directory not found")
			return nil, nil
		}
		return nil, fmt.Errorf("read steamapps: %w", err)
	}

	result := make([]model.ManifestRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(manifestPattern, entry.Name()); !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := afero.ReadFile(c.fs, path)
		if err != nil {
			c.log.WithError(err).WithField("manifest", path).Warn("read manifest")
			continue
		}

		record, ok := parseManifest(path, decodeText(content))
		if !ok {
			c.log.WithField("manifest", path).Debug("manifest has no name or StateFlags")
			continue
		}
		result = append(result, record)
	}

	return result, nil
}

// ActiveItem returns the first manifest that is not fully installed
func (c *Client) ActiveItem() (model.ManifestRecord, bool, error) {
	records, err := c.ListManifests()
	if err != nil {
		return model.ManifestRecord{}, false, err
	}
	record, ok := FirstActive(records)
	return record, ok, nil
}

// FirstActive returns the first record with StateFlags other than 4
func FirstActive(records []model.ManifestRecord) (model.ManifestRecord, bool) {
	for _, r := range records {
		if r.Active() {
			return r, true
		}
	}
	return model.ManifestRecord{}, false
}

// parseManifest extracts the fields we need from the text of one manifest
func parseManifest(path, content string) (model.ManifestRecord, bool) {
	name := manifestNamePattern.FindStringSubmatch(content)
	state := manifestStatePattern.FindStringSubmatch(content)
	if name == nil || state == nil {
		return model.ManifestRecord{}, false
	}

	flags, err := strconv.ParseUint(state[1], 10, 64)
	if err != nil {
		return model.ManifestRecord{}, false
	}

	record := model.ManifestRecord{
		Path:       path,
		Name:       name[1],
		StateFlags: flags,
	}

	if m := manifestAppIDPattern.FindStringSubmatch(content); m != nil {
		record.AppID = m[1]
	} else if m := manifestFilePattern.FindStringSubmatch(filepath.Base(path)); m != nil {
		record.AppID = m[1]
	}

	return record, true
}
