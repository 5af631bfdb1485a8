// Package imagecache downloads remote images into a local cache directory so
// that repeated analyses of the same URL do not fetch it again.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/chromavant/chroma/internal/util/http"
)

// CacheOptions configures image caching behavior.
type CacheOptions struct {
	// CacheDir is the directory where images will be cached.
	// If empty, defaults to DefaultCacheDir.
	CacheDir string

	// Refresh downloads the image even if it is already cached.
	Refresh bool

	// Fetch configures the HTTP request.
	Fetch httputil.FetchOptions
}

// DefaultCacheDir returns the default cache directory path,
// <user cache dir>/chroma/images.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "chroma", "images"), nil
	}
	return filepath.Join(cacheDir, "chroma", "images"), nil
}

// cacheFilename derives a stable file name from a URL: a hash of the URL
// followed by the URL's extension, if it has a short one.
func cacheFilename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if len(ext) > 5 || strings.Contains(ext, "/") {
		ext = ""
	}

	return fmt.Sprintf("%x%s", hash[:16], strings.ToLower(ext))
}

// Fetch returns the path of a cached copy of url, downloading it first if it
// is not cached yet.
func Fetch(ctx context.Context, url string, opts CacheOptions) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		cacheDir = defaultDir
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cachedPath := filepath.Join(cacheDir, cacheFilename(url))
	if !opts.Refresh {
		if _, err := os.Stat(cachedPath); err == nil {
			return cachedPath, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	// Stage in a temp file and rename into place.
	tmp, err := os.CreateTemp(cacheDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), cachedPath); err != nil {
		return "", fmt.Errorf("failed to store cached image: %w", err)
	}

	return cachedPath, nil
}
