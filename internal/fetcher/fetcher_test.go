package fetcher

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return New(Options{
		UserAgent:  "test-agent",
		Timeout:    5 * time.Second,
		MaxRetries: 3,
	})
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte("shapefile bytes"))
	}))
	defer srv.Close()

	c := newTestClient()
	body, err := c.Download(context.Background(), srv.URL+"/data")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "shapefile bytes", string(data))
}

func TestDownload_UnsupportedScheme(t *testing.T) {
	c := newTestClient()
	_, err := c.Download(context.Background(), "gopher://example.com/data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")
}

func TestDownloadToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("file content here"))
	}))
	defer srv.Close()

	c := newTestClient()
	path := filepath.Join(t.TempDir(), "out.zip")

	n, err := c.DownloadToFile(context.Background(), srv.URL+"/file", path)
	require.NoError(t, err)
	assert.Equal(t, int64(17), n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file content here", string(data))
}

func TestDownload_RetryOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := newTestClient()
	body, err := c.Download(context.Background(), srv.URL+"/flaky")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "recovered", string(data))
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDownload_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient()
	_, err := c.Download(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func zipArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestFetchArchive(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"tl_2023_us_cbsa.shp": "shp",
		"tl_2023_us_cbsa.dbf": "dbf",
		"tl_2023_us_cbsa.shx": "shx",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "tl_2023_us_cbsa")
	c := newTestClient()
	extracted, err := c.FetchArchive(context.Background(), srv.URL+"/tl_2023_us_cbsa.zip", dest)
	require.NoError(t, err)
	assert.Len(t, extracted, 3)

	data, err := os.ReadFile(filepath.Join(dest, "tl_2023_us_cbsa.shp"))
	require.NoError(t, err)
	assert.Equal(t, "shp", string(data))
}

func TestAdaptiveLimiter(t *testing.T) {
	l := NewAdaptiveLimiter(10, 10)
	assert.InDelta(t, 10, float64(l.Limit()), 1e-9)

	l.OnRateLimit()
	assert.InDelta(t, 5, float64(l.Limit()), 1e-9)

	for range 10 {
		l.OnRateLimit()
	}
	assert.InDelta(t, 2.5, float64(l.Limit()), 1e-9)

	for range 20 {
		l.OnSuccess()
	}
	assert.InDelta(t, 20, float64(l.Limit()), 1e-9)
}

func TestParseFTPURL(t *testing.T) {
	host, path, err := parseFTPURL("ftp://ftp2.census.gov/geo/tiger/TIGER2023/CBSA/tl_2023_us_cbsa.zip")
	require.NoError(t, err)
	assert.Equal(t, "ftp2.census.gov:21", host)
	assert.Equal(t, "/geo/tiger/TIGER2023/CBSA/tl_2023_us_cbsa.zip", path)

	host, _, err = parseFTPURL("ftp://ftp2.census.gov:2121/geo/file.zip")
	require.NoError(t, err)
	assert.Equal(t, "ftp2.census.gov:2121", host)

	_, _, err = parseFTPURL("https://example.com/file.zip")
	assert.Error(t, err)

	_, _, err = parseFTPURL("ftp://ftp2.census.gov")
	assert.Error(t, err)
}
