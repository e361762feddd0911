//go:build windows

package depccg

import (
	"os"
	"path/filepath"
)

// defaultModelDir returns the default models directory for Windows.
// Returns %APPDATA%\depccg\models\
func defaultModelDir() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		appData = filepath.Join(home, "AppData", "Roaming")
	}
	return filepath.Join(appData, "depccg", "models"), nil
}
