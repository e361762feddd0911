package depccg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loaderSpy records invocations of a framework loader function.
type loaderSpy struct {
	calls  int
	path   string
	device int
	tagger Supertagger
	err    error
}

func (s *loaderSpy) fn(path string, device int) (Supertagger, error) {
	s.calls++
	s.path = path
	s.device = device
	return s.tagger, s.err
}

func newTestLoader(t *testing.T, catalog *Catalog, dir string, chainer, allennlp *loaderSpy) *Loader {
	t.Helper()

	t.Setenv(EnvModelDir, "")
	loader, err := NewLoader(catalog, Config{ModelDir: dir}, map[Framework]LoaderFunc{
		FrameworkChainer:  chainer.fn,
		FrameworkAllenNLP: allennlp.fn,
	})
	require.NoError(t, err)
	return loader
}

func TestResolvePathLayout(t *testing.T) {
	dir := t.TempDir()
	catalog := testCatalog(t)
	loader := newTestLoader(t, catalog, dir, &loaderSpy{}, &loaderSpy{})

	// chainer: extracted directory, no archive suffix.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ja_headfinal"), 0755))
	path, spec, err := loader.ResolvePath(ModelKey{Language: "ja"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ja_headfinal"), path)
	assert.Equal(t, FrameworkChainer, spec.Framework)

	// allennlp: the archive file itself.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lstm_parser_elmo.tar.gz"), []byte("x"), 0644))
	path, spec, err = loader.ResolvePath(ModelKey{Language: "en", Variant: "elmo"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lstm_parser_elmo.tar.gz"), path)
	assert.Equal(t, FrameworkAllenNLP, spec.Framework)
}

func TestResolvePathMissingArtifact(t *testing.T) {
	loader := newTestLoader(t, testCatalog(t), t.TempDir(), &loaderSpy{}, &loaderSpy{})

	_, _, err := loader.ResolvePath(ModelKey{Language: "en", Variant: "elmo"})
	require.ErrorIs(t, err, ErrNotDownloaded)

	// The message must name the variant, the language and the download
	// command to run.
	assert.Contains(t, err.Error(), "elmo")
	assert.Contains(t, err.Error(), "en")
	assert.Contains(t, err.Error(), "depccg download en[elmo]")
}

func TestLoadMissingArtifactSkipsDispatch(t *testing.T) {
	chainer := &loaderSpy{}
	allennlp := &loaderSpy{}
	loader := newTestLoader(t, testCatalog(t), t.TempDir(), chainer, allennlp)

	_, _, err := loader.Load(ModelKey{Language: "en", Variant: "elmo"}, 0)
	require.ErrorIs(t, err, ErrNotDownloaded)

	assert.Zero(t, chainer.calls, "no loader may run for a missing artifact")
	assert.Zero(t, allennlp.calls, "no loader may run for a missing artifact")
}

func TestLoadUnsupportedFramework(t *testing.T) {
	catalog, err := NewCatalog([]CatalogEntry{
		{
			Key:  ModelKey{Language: "en", Variant: "bert"},
			Spec: ModelSpec{Framework: Framework("tensorflow"), Name: "bert_parser"},
		},
	})
	require.NoError(t, err)

	chainer := &loaderSpy{}
	allennlp := &loaderSpy{}

	// The models directory deliberately does not exist: an unsupported
	// framework must fail before any filesystem access.
	loader := newTestLoader(t, catalog, filepath.Join(t.TempDir(), "missing"), chainer, allennlp)

	_, _, err = loader.Load(ModelKey{Language: "en", Variant: "bert"}, 0)
	require.ErrorIs(t, err, ErrUnsupportedFramework)
	assert.Contains(t, err.Error(), "en")
	assert.Contains(t, err.Error(), "bert")

	assert.Zero(t, chainer.calls)
	assert.Zero(t, allennlp.calls)
}

func TestLoadUnregisteredLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ja_headfinal"), 0755))

	t.Setenv(EnvModelDir, "")
	loader, err := NewLoader(testCatalog(t), Config{ModelDir: dir}, map[Framework]LoaderFunc{
		// chainer deliberately unregistered
		FrameworkAllenNLP: (&loaderSpy{}).fn,
	})
	require.NoError(t, err)

	_, _, err = loader.Load(ModelKey{Language: "ja"}, -1)
	require.ErrorIs(t, err, ErrUnsupportedFramework)
	assert.Contains(t, err.Error(), "ja")
}

func TestLoadChainerEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ja_headfinal"), 0755))

	catalog := testCatalog(t)
	tagger := struct{ name string }{"chainer tagger"}
	chainer := &loaderSpy{tagger: tagger}
	allennlp := &loaderSpy{}
	loader := newTestLoader(t, catalog, dir, chainer, allennlp)

	got, spec, err := loader.Load(ModelKey{Language: "ja"}, -1)
	require.NoError(t, err)

	assert.Equal(t, tagger, got)
	want, lookupErr := catalog.Lookup(ModelKey{Language: "ja"})
	require.NoError(t, lookupErr)
	assert.Equal(t, want, spec)

	assert.Equal(t, 1, chainer.calls)
	assert.Equal(t, filepath.Join(dir, "ja_headfinal"), chainer.path)
	assert.Equal(t, -1, chainer.device)
	assert.Zero(t, allennlp.calls, "the allennlp loader must never run for a chainer model")
}

func TestLoadAllenNLPEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lstm_parser_elmo.tar.gz"), []byte("x"), 0644))

	tagger := struct{ name string }{"allennlp tagger"}
	chainer := &loaderSpy{}
	allennlp := &loaderSpy{tagger: tagger}
	loader := newTestLoader(t, testCatalog(t), dir, chainer, allennlp)

	got, spec, err := loader.Load(ModelKey{Language: "en", Variant: "elmo"}, 0)
	require.NoError(t, err)

	assert.Equal(t, tagger, got)
	assert.Equal(t, "lstm_parser_elmo", spec.Name)
	assert.Equal(t, 1, allennlp.calls)
	assert.Equal(t, filepath.Join(dir, "lstm_parser_elmo.tar.gz"), allennlp.path)
	assert.Equal(t, 0, allennlp.device)
	assert.Zero(t, chainer.calls)
}

func TestLoadLoaderErrorWrapped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ja_headfinal"), 0755))

	loadErr := errors.New("corrupt weights")
	chainer := &loaderSpy{err: loadErr}
	loader := newTestLoader(t, testCatalog(t), dir, chainer, &loaderSpy{})

	_, _, err := loader.Load(ModelKey{Language: "ja"}, -1)
	require.ErrorIs(t, err, loadErr)
	assert.Contains(t, err.Error(), "ja")
}
