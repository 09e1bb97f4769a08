// Package fetcher downloads dataset archives over HTTP or FTP and
// unpacks them into the data directory.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Fetcher downloads remote dataset files.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)

	// FetchArchive downloads a ZIP archive and extracts it under destDir.
	// Returns the extracted file paths.
	FetchArchive(ctx context.Context, url string, destDir string) ([]string, error)
}

// Options configures the fetcher client.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
}

// Client fetches census.gov and BTS archives, dispatching on URL scheme:
// http and https go through the retrying HTTP transport, ftp through the
// census FTP mirror client.
type Client struct {
	http *httpFetcher
	ftp  *ftpFetcher
}

// New creates a fetcher client with the given options.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "corridors-cli/1.0"
	}
	return &Client{
		http: newHTTPFetcher(opts),
		ftp:  newFTPFetcher(opts),
	}
}

// Download fetches the URL and returns the response body.
func (c *Client) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: parse url %s", rawURL)
	}

	switch u.Scheme {
	case "http", "https":
		return c.http.download(ctx, rawURL)
	case "ftp":
		return c.ftp.download(ctx, rawURL)
	default:
		return nil, eris.Errorf("fetcher: unsupported scheme %q in %s", u.Scheme, rawURL)
	}
}

// DownloadToFile fetches the URL and writes it to the given path.
func (c *Client) DownloadToFile(ctx context.Context, rawURL string, path string) (int64, error) {
	body, err := c.Download(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer body.Close() //nolint:errcheck

	file, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrap(err, "fetcher: create file")
	}
	defer file.Close() //nolint:errcheck

	n, err := io.Copy(file, body)
	if err != nil {
		return n, eris.Wrap(err, "fetcher: write file")
	}

	return n, nil
}

// FetchArchive downloads a ZIP archive to a temporary file, extracts it
// under destDir, and removes the temporary file.
func (c *Client) FetchArchive(ctx context.Context, rawURL string, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "fetcher: create dest dir")
	}

	tmp, err := os.CreateTemp("", "corridors-*.zip")
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: create temp file")
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath) //nolint:errcheck

	n, err := c.DownloadToFile(ctx, rawURL, tmpPath)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("fetcher: downloaded archive",
		zap.String("url", rawURL),
		zap.Int64("bytes", n),
	)

	extracted, err := ExtractZIP(tmpPath, destDir)
	if err != nil {
		return nil, err
	}

	for _, p := range extracted {
		zap.L().Debug("fetcher: extracted", zap.String("path", filepath.Base(p)))
	}
	return extracted, nil
}
