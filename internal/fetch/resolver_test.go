package fetch_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/fetch"
	"github.com/quantmind-br/jesse/internal/utils"
	"github.com/quantmind-br/jesse/tests/testutil"
)

func zipPayload(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newResolver(t *testing.T, opts fetch.ResolverOptions) *fetch.Resolver {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = testutil.NewTestLogger(t)
	}
	return fetch.NewResolver(opts)
}

// isolateTempDir points os.TempDir at a fresh directory so staging files can be observed
func isolateTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	return dir
}

func assertNoStagingFiles(t *testing.T, tmp string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(tmp, utils.TempPrefix+"*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFetch_DestinationExists(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	dest := t.TempDir()
	r := newResolver(t, fetch.ResolverOptions{})

	_, err := r.Fetch(context.Background(), srv.URL+"/a.zip", dest, domain.FetchOptions{})
	require.Error(t, err)

	var exists *domain.DestinationExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, dest, exists.Path)
	assert.True(t, domain.IsPrecondition(err))
	assert.Zero(t, hits.Load())
}

func TestFetch_DestinationExistsBeforeParsing(t *testing.T) {
	dest := t.TempDir()
	r := newResolver(t, fetch.ResolverOptions{})

	_, err := r.Fetch(context.Background(), "svn://example.com/repo", dest, domain.FetchOptions{})

	var exists *domain.DestinationExistsError
	assert.ErrorAs(t, err, &exists)
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{})

	_, err := r.Fetch(context.Background(), "svn://example.com/repo", dest, domain.FetchOptions{})

	var unsupported *domain.UnsupportedSchemeError
	require.ErrorAs(t, err, &unsupported)
	assert.NoDirExists(t, dest)
}

func TestFetch_LocalDisallowed(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{})

	for _, source := range []string{src, "file://" + src} {
		_, err := r.Fetch(context.Background(), source, dest, domain.FetchOptions{})

		var disallowed *domain.DisallowedSchemeError
		require.ErrorAs(t, err, &disallowed)
		assert.Equal(t, "file", disallowed.Scheme)
		assert.True(t, domain.IsPrecondition(err))
		assert.NoDirExists(t, dest)
	}
}

func TestFetch_LocalDirectory(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "setup.py"), []byte("setup()"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "pkg", "mod.py"), []byte("x = 1"), 0o644))
	require.NoError(t, os.Symlink("pkg/mod.py", filepath.Join(src, "link.py")))

	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{})

	got, err := r.Fetch(context.Background(), "file://"+src, dest, domain.FetchOptions{AllowFile: true})
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	content, err := os.ReadFile(filepath.Join(dest, "pkg", "mod.py"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1", string(content))

	target, err := os.Readlink(filepath.Join(dest, "link.py"))
	require.NoError(t, err)
	assert.Equal(t, "pkg/mod.py", target)
}

func TestFetch_LocalArchive(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "project.zip")
	require.NoError(t, os.WriteFile(archivePath, zipPayload(t, map[string]string{"app/main.py": "print(1)"}), 0o644))

	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{})

	_, err := r.Fetch(context.Background(), archivePath, dest, domain.FetchOptions{AllowFile: true})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "app", "main.py"))
}

func TestFetch_LocalMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{})

	_, err := r.Fetch(context.Background(), missing, dest, domain.FetchOptions{AllowFile: true})
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "file", fetchErr.Scheme)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFetch_HTTP(t *testing.T) {
	tmp := isolateTempDir(t)
	payload := zipPayload(t, map[string]string{"widget/__init__.py": "", "widget/core.py": "import os"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/releases/widget.zip", r.URL.Path)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{HTTPClient: srv.Client()})

	got, err := r.Fetch(context.Background(), srv.URL+"/releases/widget.zip", dest, domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	content, err := os.ReadFile(filepath.Join(dest, "widget", "core.py"))
	require.NoError(t, err)
	assert.Equal(t, "import os", string(content))
	assertNoStagingFiles(t, tmp)
}

func TestFetch_HTTPBasicAuth(t *testing.T) {
	payload := zipPayload(t, map[string]string{"a.py": "a"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	source := strings.Replace(srv.URL, "http://", "http://alice:s3cret@", 1) + "/a.zip"
	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{HTTPClient: srv.Client()})

	_, err := r.Fetch(context.Background(), source, dest, domain.FetchOptions{})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "a.py"))
}

func TestFetch_HTTPEmptyBody(t *testing.T) {
	tmp := isolateTempDir(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{HTTPClient: srv.Client()})

	got, err := r.Fetch(context.Background(), srv.URL+"/empty.zip", dest, domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, dest, got)
	assert.NoDirExists(t, dest)
	assertNoStagingFiles(t, tmp)
}

func TestFetch_HTTPStatusError(t *testing.T) {
	tmp := isolateTempDir(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{HTTPClient: srv.Client()})

	_, err := r.Fetch(context.Background(), srv.URL+"/missing.zip", dest, domain.FetchOptions{})
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, "http", fetchErr.Scheme)
	assert.NoDirExists(t, dest)
	assertNoStagingFiles(t, tmp)
}

func TestFetch_HTTPUnsupportedPayload(t *testing.T) {
	tmp := isolateTempDir(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>not an archive</html>")
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{HTTPClient: srv.Client()})

	_, err := r.Fetch(context.Background(), srv.URL+"/index", dest, domain.FetchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnpack)
	assertNoStagingFiles(t, tmp)
}

func TestFetch_HTTPProgress(t *testing.T) {
	payload := zipPayload(t, map[string]string{"a.py": "a"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	var out bytes.Buffer
	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{
		HTTPClient:     srv.Client(),
		Progress:       true,
		ProgressWriter: &out,
	})

	_, err := r.Fetch(context.Background(), srv.URL+"/a.zip", dest, domain.FetchOptions{})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "a.py"))
}

func TestFetch_HTTPCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := filepath.Join(t.TempDir(), "out")
	r := newResolver(t, fetch.ResolverOptions{HTTPClient: srv.Client()})

	_, err := r.Fetch(ctx, srv.URL+"/a.zip", dest, domain.FetchOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
