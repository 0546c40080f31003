package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/blendget/blendget/internal/release"
)

// userAgent is sent with every download request.
const userAgent = "blendget/1.0"

// Config holds configuration for the downloader.
type Config struct {
	// CacheDir is the root cache directory; required.
	CacheDir string
	// Index records completed downloads; required.
	Index Index
	// Progress receives byte progress; nil disables reporting.
	Progress ProgressFunc
	// Client overrides the HTTP client (for tests).
	Client *http.Client
}

// Downloader streams release archives into the cache. There is no retry
// and no resume: a failed download is restarted from zero by the next
// invocation.
type Downloader struct {
	client   *http.Client
	cacheDir string
	index    Index
	progress ProgressFunc
}

// New creates a downloader.
func New(cfg Config) (*Downloader, error) {
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("cache dir is required")
	}
	if cfg.Index == nil {
		return nil, fmt.Errorf("cache index is required")
	}
	if cfg.Client == nil {
		// No overall client timeout: archives run to hundreds of
		// megabytes. Cancellation comes from the context.
		cfg.Client = &http.Client{}
	}
	return &Downloader{
		client:   cfg.Client,
		cacheDir: cfg.CacheDir,
		index:    cfg.Index,
		progress: cfg.Progress,
	}, nil
}

// Get returns the local path of the entry's archive, downloading it unless
// the cache index already has a completed copy. The second return value
// reports a cache hit, in which case no network request was made.
func (d *Downloader) Get(ctx context.Context, entry *release.Entry) (string, bool, error) {
	key := Key(entry.URL)
	if path, ok := d.index.Lookup(key); ok {
		return path, true, nil
	}

	dir := filepath.Join(d.cacheDir, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create cache dir: %w", err)
	}

	finalPath := filepath.Join(dir, entry.Name)
	if err := d.fetch(ctx, entry.URL, finalPath); err != nil {
		return "", false, err
	}

	if err := d.index.Add(key, finalPath); err != nil {
		return "", false, fmt.Errorf("record download: %w", err)
	}
	return finalPath, false, nil
}

// fetch streams url to finalPath with write-to-temp-then-rename. On any
// failure the temp file is removed and nothing appears at finalPath.
func (d *Downloader) fetch(ctx context.Context, url, finalPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return &release.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &release.NotFoundError{URL: url}
	case resp.StatusCode >= 500:
		return &release.ServerError{URL: url, StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s: unexpected status code %d", url, resp.StatusCode)
	}

	total := resp.ContentLength
	if total > 0 {
		if err := d.checkDiskSpace(ctx, total); err != nil {
			return err
		}
	}

	tmpPath := filepath.Join(filepath.Dir(finalPath), "."+filepath.Base(finalPath)+".partial")
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	pw := &progressWriter{w: tmpFile, total: total, progress: d.progress}
	written, err := io.Copy(pw, resp.Body)
	if err != nil {
		if isDiskFull(err) {
			return &DiskFullError{Path: d.cacheDir, Err: err}
		}
		return &release.NetworkError{URL: url, Err: err}
	}

	// A short body means the connection dropped mid-stream; a restart
	// from zero on the next invocation beats caching a truncated archive.
	if total > 0 && written != total {
		return &release.NetworkError{
			URL: url,
			Err: fmt.Errorf("connection closed after %d of %d bytes", written, total),
		}
	}
	pw.finish()

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	cleanupNeeded = false
	return nil
}

// checkDiskSpace fails fast with a DiskFullError when the cache filesystem
// cannot hold the announced body.
func (d *Downloader) checkDiskSpace(ctx context.Context, total int64) error {
	usage, err := disk.UsageWithContext(ctx, d.cacheDir)
	if err != nil {
		// Probing is advisory; a write failure still surfaces ENOSPC.
		return nil
	}
	if usage.Free < uint64(total) {
		return &DiskFullError{
			Path: d.cacheDir,
			Err:  fmt.Errorf("need %d bytes, %d free", total, usage.Free),
		}
	}
	return nil
}
