package dictionary

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxDownloadSize caps dictionary downloads at 64 MB.
const maxDownloadSize = 64 << 20

// IsRemote reports whether src names an http(s) URL rather than a local file.
func IsRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Download fetches a dictionary file from rawURL into destPath. Files whose
// URL path ends in .gz are decompressed on the fly.
func Download(ctx context.Context, client *http.Client, rawURL, destPath string) error {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "librelingo-cli")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}
	if resp.ContentLength > maxDownloadSize {
		return fmt.Errorf("Content-Length %d exceeds limit of %d bytes", resp.ContentLength, maxDownloadSize)
	}

	var body io.Reader = io.LimitReader(resp.Body, maxDownloadSize)
	if u, err := url.Parse(rawURL); err == nil && strings.HasSuffix(u.Path, ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		body = gz
	}

	// Write to a sibling temp file so a failed download never leaves a
	// truncated dictionary at destPath.
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".dict-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), destPath)
}
