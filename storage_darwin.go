//go:build darwin

package depccg

import (
	"os"
	"path/filepath"
)

// defaultModelDir returns the default models directory for macOS.
// Returns ~/Library/Application Support/depccg/models/
func defaultModelDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "Application Support", "depccg", "models"), nil
}
