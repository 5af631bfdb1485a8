package image

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chromavant/chroma/internal/colour"
	"github.com/chromavant/chroma/internal/compression"
)

// MaxRawBytes bounds the decompressed size of a raw pixel dump.
const MaxRawBytes = 256 * 1024 * 1024

// ParseDimensions parses a "WIDTHxHEIGHT" string such as "200x150".
func ParseDimensions(s string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid dimensions %q: expected WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err = strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("invalid dimensions %q: width and height must be positive", s)
	}
	return width, height, nil
}

// LoadRaw reads a raw, row-major RGBA dump of width*height pixels.
// Files ending in .gz, .xz or .bz2 are decompressed first.
func LoadRaw(path string, width, height int) ([]byte, error) {
	need, err := colour.PixelBufferLen(width, height)
	if err != nil {
		return nil, samplingError("raw", path, err)
	}
	if need > MaxRawBytes {
		return nil, samplingError("raw", path, fmt.Errorf("%dx%d needs %d bytes, more than the %d byte limit", width, height, need, MaxRawBytes))
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	pix, err := compression.Decompress(data, path, MaxRawBytes)
	if err != nil {
		return nil, samplingError("raw", path, err)
	}

	if len(pix) < need {
		return nil, samplingError("raw", path, fmt.Errorf("need %d bytes for %dx%d, got %d", need, width, height, len(pix)))
	}
	return pix[:need], nil
}
