// Package image loads seed images from disk or over HTTP.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/tintscale/internal/util/http"
	"github.com/jmylchreest/tintscale/internal/util/imagecache"
)

// Loader loads an image from a path or URL.
type Loader interface {
	Load(ctx context.Context, path string) (image.Image, error)
}

// SupportedImageExtensions returns the file extensions that can be decoded.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsURL reports whether path should be fetched rather than opened.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// Load decodes the image at path. Supported formats: JPEG, PNG, GIF, WebP.
func (FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); !slices.Contains(SupportedImageExtensions(), ext) {
		return nil, fmt.Errorf("unsupported image extension %q (supported: %s)", ext, strings.Join(SupportedImageExtensions(), ", "))
	}

	return decodeFile(path)
}

// decodeFile decodes by content, whatever the file is called.
func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
// When Cache is set, remote images are stored on disk and reused.
type SmartLoader struct {
	File  FileLoader
	Fetch httputil.FetchOptions
	Cache *imagecache.Options
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if !IsURL(path) {
		return l.File.Load(ctx, path)
	}

	if l.Cache != nil {
		opts := *l.Cache
		opts.Fetch = l.Fetch
		cached, err := imagecache.Fetch(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		return decodeFile(cached)
	}

	data, err := httputil.Fetch(ctx, path, l.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}
