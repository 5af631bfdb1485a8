package image

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"golang.org/x/image/draw"
)

// DefaultMaxSize is the length of the longer side of a sampled image.
const DefaultMaxSize = 200

// Interpolation specifies the interpolation method used when resizing.
type Interpolation string

const (
	// InterpolationBilinear uses bilinear interpolation, close to what a
	// browser canvas does when drawing a scaled image.
	InterpolationBilinear Interpolation = "bilinear"

	// InterpolationCatmullRom uses Catmull-Rom for higher quality scaling.
	InterpolationCatmullRom Interpolation = "catmullrom"

	// InterpolationNearest uses nearest-neighbour sampling.
	// Fastest, and never invents colours that are not in the source.
	InterpolationNearest Interpolation = "nearest"
)

// ValidInterpolations returns the supported interpolation methods.
func ValidInterpolations() []Interpolation {
	return []Interpolation{InterpolationBilinear, InterpolationCatmullRom, InterpolationNearest}
}

// ParseInterpolation parses an interpolation name. An empty name selects bilinear.
func ParseInterpolation(s string) (Interpolation, error) {
	if s == "" {
		return InterpolationBilinear, nil
	}
	i := Interpolation(s)
	if !slices.Contains(ValidInterpolations(), i) {
		return "", fmt.Errorf("unknown interpolation: %s (valid: %v)", s, ValidInterpolations())
	}
	return i, nil
}

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpolationCatmullRom:
		return draw.CatmullRom
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.BiLinear
	}
}

// ScaledSize returns the dimensions of an image scaled so that its longer
// side is maxSize, preserving aspect ratio. Fractional sizes are truncated
// and neither side drops below one pixel.
func ScaledSize(width, height, maxSize int) (int, int) {
	ratio := float64(maxSize) / float64(max(width, height))
	w := max(int(float64(width)*ratio), 1)
	h := max(int(float64(height)*ratio), 1)
	return w, h
}

// Sample draws img onto a new non-premultiplied RGBA buffer whose longer
// side is maxSize. The returned buffer's Pix holds row-major RGBA samples
// with Stride == 4*width.
func Sample(img image.Image, maxSize int, interp Interpolation) (*image.NRGBA, error) {
	if img == nil {
		return nil, samplingError("sample", "", errors.New("image is nil"))
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, samplingError("sample", "", errors.New("image has no pixels"))
	}
	if maxSize < 1 {
		return nil, samplingError("sample", "", fmt.Errorf("max size must be positive, got %d", maxSize))
	}

	w, h := ScaledSize(bounds.Dx(), bounds.Dy(), maxSize)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	interp.scaler().Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	return dst, nil
}
