package depccg

import (
	"fmt"
	"os"
)

// EnvModelDir is the environment variable overriding the models directory.
// It takes precedence over Config.ModelDir and the platform default.
const EnvModelDir = "DEPCCG_MODEL_DIR"

// resolveModelDir picks the models directory.
// Priority: env var > configured > platform default.
func resolveModelDir(configured string) (string, error) {
	if envDir := os.Getenv(EnvModelDir); envDir != "" {
		return envDir, nil
	}
	if configured != "" {
		return configured, nil
	}
	dir, err := defaultModelDir()
	if err != nil {
		return "", fmt.Errorf("resolving default model directory: %w", err)
	}
	return dir, nil
}

// ensureDir creates a directory and all parent directories if they don't
// exist.
func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}
