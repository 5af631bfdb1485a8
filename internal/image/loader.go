// Package image provides utilities for loading, decoding and sampling images.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/chromavant/chroma/internal/util/http"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(path string) (image.Image, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data, path)
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	fetch      httputil.FetchOptions
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
	}
}

// WithFetchOptions sets the options used for HTTP(S) requests.
func (l *SmartLoader) WithFetchOptions(opts httputil.FetchOptions) *SmartLoader {
	l.fetch = opts
	return l
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(path string) (image.Image, error) {
	if !IsURL(path) {
		return l.fileLoader.Load(path)
	}

	data, err := l.fetchURL(context.Background(), path)
	if err != nil {
		return nil, err
	}
	return decode(data, path)
}

func (l *SmartLoader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	data, err := httputil.Fetch(ctx, url, l.fetch)
	if err != nil {
		return nil, samplingError("fetch", url, err)
	}
	return data, nil
}

// ReadSource returns the undecoded bytes of a local file or HTTP(S) URL.
func ReadSource(ctx context.Context, path string, opts httputil.FetchOptions) ([]byte, error) {
	if IsURL(path) {
		return (&SmartLoader{fetch: opts}).fetchURL(ctx, path)
	}
	return readFile(path)
}

// DetectMIMEType sniffs the MIME type of encoded image data.
func DetectMIMEType(data []byte) string {
	return http.DetectContentType(data)
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks if the given path is valid and points to a supported image file.
// HTTP(S) URLs are accepted without fetching them.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	if IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}

	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// isImageFile checks if a file has a supported image extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, samplingError("open", path, errors.New("image path cannot be empty"))
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, samplingError("open", path, errors.New("image file not found"))
		}
		return nil, samplingError("open", path, err)
	}
	if info.IsDir() {
		return nil, samplingError("open", path, errors.New("path is a directory, not a file"))
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, samplingError("open", path, err)
	}
	return data, nil
}

// Decode decodes encoded image data. The source path or URL is used in
// error messages only.
func Decode(data []byte, source string) (image.Image, error) {
	return decode(data, source)
}

func decode(data []byte, path string) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) && !isImageFile(path) && !IsURL(path) {
			err = fmt.Errorf("%w (supported extensions: %s)", err, strings.Join(SupportedImageExtensions(), ", "))
		}
		return nil, samplingError("decode", path, fmt.Errorf("failed to decode image (format: %s): %w", format, err))
	}
	return img, nil
}
