package depccg

import (
	"fmt"
	"os"
	"path/filepath"
)

// Supertagger is the runtime object produced by a framework loader.
// It is opaque to this package.
type Supertagger = any

// LoaderFunc constructs a supertagger from a local artifact path and a
// device id. The meaning of device (CPU vs a numbered accelerator) is
// entirely the loader's concern.
type LoaderFunc func(path string, device int) (Supertagger, error)

// Loader resolves catalog entries to local artifact paths and dispatches
// to the constructor registered for the descriptor's framework.
//
// Every Load call is independent: the only state consulted is the
// catalog and the on-disk models directory.
type Loader struct {
	// catalog resolves keys to descriptors.
	catalog *Catalog

	// dir is the local models directory.
	dir string

	// loaders maps each framework to its constructor function.
	loaders map[Framework]LoaderFunc
}

// NewLoader creates a Loader over the given catalog and configuration.
// loaders maps frameworks to their constructors; loading a model whose
// framework has no entry fails with ErrUnsupportedFramework.
func NewLoader(catalog *Catalog, cfg Config, loaders map[Framework]LoaderFunc) (*Loader, error) {
	dir, err := resolveModelDir(cfg.ModelDir)
	if err != nil {
		return nil, err
	}
	return &Loader{catalog: catalog, dir: dir, loaders: loaders}, nil
}

// artifactPath returns the expected local artifact path for a descriptor:
// the extracted directory for chainer models, the archive file for
// allennlp models.
func artifactPath(dir string, spec ModelSpec) string {
	if spec.Framework == FrameworkAllenNLP {
		return filepath.Join(dir, spec.ArchiveName())
	}
	return filepath.Join(dir, spec.Name)
}

// ResolvePath returns the local artifact path for key along with its
// descriptor. The only precondition checked is that the path exists on
// disk: a missing artifact yields ErrNotDownloaded whose message names
// the exact download command to run. No content validation is performed.
func (l *Loader) ResolvePath(key ModelKey) (string, ModelSpec, error) {
	spec, err := l.catalog.Lookup(key)
	if err != nil {
		return "", ModelSpec{}, err
	}

	path := artifactPath(l.dir, spec)
	if _, err := os.Stat(path); err != nil {
		return "", ModelSpec{}, fmt.Errorf("%w: run 'depccg download %s' to fetch the %s model",
			ErrNotDownloaded, key, key.Language)
	}
	return path, spec, nil
}

// Load resolves key, then invokes the registered loader for the
// descriptor's framework with the artifact path and device. The tagger is
// returned together with the descriptor so callers hold both the runtime
// object and the static configuration in one unit.
func (l *Loader) Load(key ModelKey, device int) (Supertagger, ModelSpec, error) {
	path, spec, err := l.ResolvePath(key)
	if err != nil {
		return nil, ModelSpec{}, err
	}

	load, ok := l.loaders[spec.Framework]
	if !ok {
		return nil, ModelSpec{}, fmt.Errorf("%w %q for language %s: variant %q",
			ErrUnsupportedFramework, spec.Framework, key.Language, key.Variant)
	}

	tagger, err := load(path, device)
	if err != nil {
		return nil, ModelSpec{}, fmt.Errorf("loading model %s: %w", key, err)
	}
	return tagger, spec, nil
}
