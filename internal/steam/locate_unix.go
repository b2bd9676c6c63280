//go:build !windows

package steam

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

func locate(fs afero.Fs) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	return firstExisting(fs, candidateRoots(home))
}

// candidateRoots lists the usual install locations on Linux and macOS
func candidateRoots(home string) []string {
	return []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		filepath.Join(home, "Library", "Application Support", "Steam"),
	}
}
