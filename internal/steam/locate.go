package steam

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Locate resolves the Steam installation directory. A non-empty override
// wins over platform discovery but still has to exist.
func Locate(override string) (string, error) {
	fs := afero.NewOsFs()
	if override != "" {
		return checkRoot(fs, override)
	}
	return locate(fs)
}

func checkRoot(fs afero.Fs, path string) (string, error) {
	path = filepath.Clean(path)
	ok, err := afero.DirExists(fs, path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s doesn't exist", ErrNotInstalled, path)
	}
	return path, nil
}

// firstExisting returns the first candidate that is an existing directory
func firstExisting(fs afero.Fs, candidates []string) (string, error) {
	for _, dir := range candidates {
		if ok, _ := afero.DirExists(fs, dir); ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: tried %d locations", ErrNotInstalled, len(candidates))
}
