package depccg

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Fetcher downloads model artifacts from the remote store into the local
// models directory.
type Fetcher struct {
	// catalog resolves keys to descriptors.
	catalog *Catalog

	// dir is the local models directory.
	dir string

	// baseURL is the remote store endpoint, without trailing slash.
	baseURL string

	// httpClient is used for all download requests.
	httpClient HTTPClient

	// logger receives diagnostic messages. May be nil.
	logger Logger
}

// NewFetcher creates a Fetcher over the given catalog and configuration.
// The models directory is created if it does not exist.
func NewFetcher(catalog *Catalog, cfg Config, opts ...FetcherOption) (*Fetcher, error) {
	dir, err := resolveModelDir(cfg.ModelDir)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	baseURL := cfg.StoreBaseURL
	if baseURL == "" {
		baseURL = DefaultStoreBaseURL
	}

	f := &Fetcher{
		catalog:    catalog,
		dir:        dir,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// ModelDir returns the local models directory.
func (f *Fetcher) ModelDir() string {
	return f.dir
}

// artifactURL builds the download URL for a descriptor. The remote id is
// the sole addressing parameter.
func (f *Fetcher) artifactURL(spec ModelSpec) string {
	q := url.Values{}
	q.Set("export", "download")
	q.Set("id", spec.RemoteID)
	q.Set("confirm", "yes")
	q.Set("downloadformat", "tar.gz")
	return f.baseURL + "?" + q.Encode()
}

// Download fetches the artifact for key and writes it to the models
// directory, overwriting any existing file unconditionally. For chainer
// models the archive is then extracted in place; the archive itself is
// kept. AllenNLP archives are the artifact and are left as-is.
//
// There is no retry, resume or checksum verification: a transfer failure
// propagates to the caller wrapped only with operation context.
func (f *Fetcher) Download(ctx context.Context, key ModelKey) error {
	spec, err := f.catalog.Lookup(key)
	if err != nil {
		return err
	}

	dest := filepath.Join(f.dir, spec.ArchiveName())
	if f.logger != nil {
		f.logger.Info("downloading model", "model", key.String(), "url", f.artifactURL(spec))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.artifactURL(spec), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading model %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading model %s: unexpected status %d", key, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	if spec.Framework == FrameworkChainer {
		if f.logger != nil {
			f.logger.Info("extracting model archive", "archive", dest)
		}
		if err := extractTarGz(dest, f.dir); err != nil {
			return fmt.Errorf("extracting %s: %w", dest, err)
		}
	}

	if f.logger != nil {
		f.logger.Info("download finished", "model", key.String())
	}
	return nil
}

// extractTarGz explodes archive into destDir, leaving the archive file in
// place. Entries that would escape destDir are rejected.
func extractTarGz(archive, destDir string) error {
	in, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(destDir, hdr.Name)
		rel, err := filepath.Rel(destDir, target)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			out, err := os.Create(target)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		default:
			// Other entry types do not occur in model archives; skip.
		}
	}
}
