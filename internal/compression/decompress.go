// Package compression provides utilities for decompressing single-stream
// compressed files.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/chromavant/chroma/internal/security"
)

// Extensions returns the file extensions Decompress recognises.
func Extensions() []string {
	return []string{".gz", ".xz", ".bz2"}
}

// IsCompressed reports whether name has a recognised compression extension.
func IsCompressed(name string) bool {
	return slices.Contains(Extensions(), strings.ToLower(filepath.Ext(name)))
}

// Decompress decompresses data according to the extension of name.
// Data with an unrecognised extension is returned unchanged. The output is
// limited to limit bytes; larger output fails with security.ErrSizeLimit.
func Decompress(data []byte, name string, limit int64) ([]byte, error) {
	var (
		r   io.Reader
		err error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		r, err = decompressGz(data)
	case ".xz":
		r, err = decompressXz(data)
	case ".bz2":
		r = bzip2.NewReader(bytes.NewReader(data))
	default:
		if int64(len(data)) > limit {
			return nil, fmt.Errorf("%s: %w", name, security.ErrSizeLimit)
		}
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	out, err := io.ReadAll(security.NewLimitedReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", filepath.Base(name), err)
	}
	return out, nil
}

// decompressGz opens a gzip stream.
func decompressGz(data []byte) (io.Reader, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gzr, nil
}

// decompressXz opens an xz stream.
func decompressXz(data []byte) (io.Reader, error) {
	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return xzr, nil
}
