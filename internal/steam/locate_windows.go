//go:build windows

package steam

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sys/windows/registry"
)

// locate reads SteamPath from HKCU\Software\Valve\Steam
func locate(fs afero.Fs) (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, `Software\Valve\Steam`, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("%w: not in windows registry", ErrNotInstalled)
	}
	defer key.Close()

	path, _, err := key.GetStringValue("SteamPath")
	if err != nil {
		return "", fmt.Errorf("%w: SteamPath not set: %v", ErrNotInstalled, err)
	}

	return checkRoot(fs, filepath.FromSlash(path))
}
