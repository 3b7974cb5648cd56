// Package imagecache downloads remote seed images and keeps them on disk.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/tintscale/internal/util/http"
)

// Options configures where and how images are cached.
type Options struct {
	// Dir is the cache directory. Empty means DefaultDir.
	Dir string

	// Refresh downloads the image even when a cached copy exists.
	Refresh bool

	// Fetch is passed through to the HTTP fetcher.
	Fetch httputil.FetchOptions
}

// DefaultDir returns ~/.cache/tintscale/images, or the platform equivalent.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "tintscale", "images"), nil
	}
	return filepath.Join(cacheDir, "tintscale", "images"), nil
}

// Filename derives a stable cache filename from a URL: the first 16 bytes
// of its SHA-256 plus the URL's extension (".img" when it has none).
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}
	return fmt.Sprintf("%x%s", hash[:16], strings.ToLower(ext))
}

// Fetch returns the local path of a cached copy of url, downloading it
// first when needed.
func Fetch(ctx context.Context, url string, opts Options) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL %q: must start with http:// or https://", url)
	}

	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, Filename(url))
	if !opts.Refresh {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	return path, nil
}
