package depccg

import (
	"fmt"
	"strings"
)

// Framework identifies the runtime family that owns a model's artifact
// layout and the constructor used to load it.
type Framework string

// The closed set of frameworks the loader dispatcher can handle.
const (
	// FrameworkChainer marks models whose artifact is an archive
	// extracted into a directory in the models dir.
	FrameworkChainer Framework = "chainer"

	// FrameworkAllenNLP marks models consumed directly as their archive
	// file.
	FrameworkAllenNLP Framework = "allennlp"
)

// Supported reports whether f is one of the frameworks this package can
// dispatch to.
func (f Framework) Supported() bool {
	return f == FrameworkChainer || f == FrameworkAllenNLP
}

// ModelKey identifies a model by language and optional variant.
// An empty Variant means the language's default model.
type ModelKey struct {
	// Language is the natural-language code, e.g. "en".
	Language string

	// Variant distinguishes multiple trained models for the same
	// language, e.g. "elmo". Empty for the default model.
	Variant string
}

// String returns the canonical identifier form: "en" or "en[elmo]".
func (k ModelKey) String() string {
	if k.Variant == "" {
		return k.Language
	}
	return k.Language + "[" + k.Variant + "]"
}

// ParseModelID parses "lang" or "lang[variant]" into a ModelKey.
// Returns ErrInvalidModelID if bracket syntax is malformed: an opening
// bracket must be matched by a closing bracket as the final character.
func ParseModelID(s string) (ModelKey, error) {
	if s == "" {
		return ModelKey{}, fmt.Errorf("%w: empty identifier", ErrInvalidModelID)
	}

	open := strings.Index(s, "[")
	if open == -1 {
		if strings.Contains(s, "]") {
			return ModelKey{}, fmt.Errorf("%w: %q", ErrInvalidModelID, s)
		}
		return ModelKey{Language: s}, nil
	}

	if !strings.HasSuffix(s, "]") {
		return ModelKey{}, fmt.Errorf("%w: %q", ErrInvalidModelID, s)
	}

	lang := s[:open]
	variant := s[open+1 : len(s)-1]
	if lang == "" || variant == "" || strings.ContainsAny(variant, "[]") {
		return ModelKey{}, fmt.Errorf("%w: %q", ErrInvalidModelID, s)
	}

	return ModelKey{Language: lang, Variant: variant}, nil
}

// ModelSpec is the immutable configuration record for one model variant.
type ModelSpec struct {
	// Framework selects the loader function and the artifact layout
	// convention.
	Framework Framework

	// Name is the stable identifier the local artifact filename is
	// derived from.
	Name string

	// RemoteID addresses the artifact in the remote store. It has no
	// semantics beyond being passed to the Fetcher.
	RemoteID string

	// GrammarConfig is the path, relative to the models directory, of the
	// grammar configuration consumed by the tagger constructor.
	GrammarConfig string

	// SemanticTemplate is the path, relative to the models directory, of
	// the semantic template resource. Passed through unchanged.
	SemanticTemplate string
}

// archiveExt is the fixed extension of model artifacts in the remote store.
const archiveExt = ".tar.gz"

// ArchiveName returns the local artifact filename, e.g. "tri_headfirst.tar.gz".
func (s ModelSpec) ArchiveName() string {
	return s.Name + archiveExt
}
