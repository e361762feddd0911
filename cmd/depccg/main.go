// Command depccg manages CCG supertagging models from the command line.
//
// Configuration is read from the environment and, optionally, a YAML
// config file:
//   - DEPCCG_CONFIG: path to a YAML config file (optional)
//   - DEPCCG_MODEL_DIR: override for the models directory (optional)
//   - DEPCCG_STORE_BASE_URL: override for the artifact store URL (optional)
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/smallcluster/depccg"
)

// CLI exit codes for standardized error reporting.
const (
	// ExitSuccess indicates the operation completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitInvalidArgs indicates an invalid model identifier or arguments.
	ExitInvalidArgs = 2

	// ExitModelNotFound indicates the model is not in the catalog.
	ExitModelNotFound = 3

	// ExitNotDownloaded indicates the model artifact is missing locally.
	ExitNotDownloaded = 4

	// ExitUnsupportedFramework indicates the model's framework has no
	// registered loader.
	ExitUnsupportedFramework = 5
)

func main() {
	var (
		cfg depccg.Config
		err error
	)
	if path := os.Getenv("DEPCCG_CONFIG"); path != "" {
		cfg, err = depccg.LoadConfigFile(path)
	} else {
		cfg, err = depccg.ConfigFromEnv()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitInvalidArgs)
	}

	cmd := depccg.NewCommand(cfg, depccg.DefaultCatalog())
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCodeFromError(err))
	}
}

// exitCodeFromError maps error types to exit codes.
func exitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, depccg.ErrModelNotFound):
		return ExitModelNotFound
	case errors.Is(err, depccg.ErrInvalidModelID):
		return ExitInvalidArgs
	case errors.Is(err, depccg.ErrNotDownloaded):
		return ExitNotDownloaded
	case errors.Is(err, depccg.ErrUnsupportedFramework):
		return ExitUnsupportedFramework
	default:
		return ExitGeneralError
	}
}
