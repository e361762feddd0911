package depccg

import "errors"

// Sentinel errors for model resolution and loading.
// Use errors.Is() to check for specific error conditions.
var (
	// ErrModelNotFound indicates the composite key is absent from the catalog.
	ErrModelNotFound = errors.New("depccg: no such model")

	// ErrInvalidModelID indicates malformed bracket syntax in a model
	// identifier. Catalog keys are structured values, so this only arises
	// from user-facing identifier strings.
	ErrInvalidModelID = errors.New("depccg: invalid model identifier")

	// ErrNotDownloaded indicates the model artifact is absent from the
	// local models directory. The error message names the download
	// command to run.
	ErrNotDownloaded = errors.New("depccg: model not downloaded")

	// ErrUnsupportedFramework indicates a descriptor's framework tag is
	// not one the loader dispatcher can handle.
	ErrUnsupportedFramework = errors.New("depccg: unsupported model framework")
)
