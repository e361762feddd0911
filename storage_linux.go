//go:build linux

package depccg

import (
	"os"
	"path/filepath"
)

// defaultModelDir returns the default models directory for Linux.
// Uses $XDG_DATA_HOME/depccg/models/ if set,
// otherwise ~/.local/share/depccg/models/
func defaultModelDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "depccg", "models"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "depccg", "models"), nil
}
