package colour

import "math"

const (
	// DefaultStep is the quantisation step applied to each channel.
	DefaultStep = 20

	// DefaultAlphaThreshold is the minimum alpha for a pixel to be counted.
	// Pixels below it are treated as fully transparent.
	DefaultAlphaThreshold = 128
)

// PixelSample is a single RGBA sample as produced by the sampler.
type PixelSample struct {
	R, G, B, A uint8
}

// QuantizedKey identifies a coarse colour bucket. Each channel is a multiple
// of the quantisation step, clamped to 255.
type QuantizedKey struct {
	R, G, B uint8
}

// RGB returns the bucket's representative colour.
func (k QuantizedKey) RGB() RGB {
	return RGB{R: k.R, G: k.G, B: k.B}
}

// ColorBucket is a histogram entry.
type ColorBucket struct {
	Key   QuantizedKey
	Count int
}

// Quantize maps a channel value onto the step grid: round(v/step)*step,
// clamped to [0, 255]. A step of 1 or less leaves the value unchanged.
func Quantize(v uint8, step int) uint8 {
	if step <= 1 {
		return v
	}
	q := math.Round(float64(v)/float64(step)) * float64(step)
	if q > 255 {
		return 255
	}
	return uint8(q)
}

// QuantizeSample returns the bucket key for an opaque pixel.
func QuantizeSample(p PixelSample, step int) QuantizedKey {
	return QuantizedKey{
		R: Quantize(p.R, step),
		G: Quantize(p.G, step),
		B: Quantize(p.B, step),
	}
}

// Histogram is a frequency count of quantised colours that remembers the
// order in which buckets were first seen. Ties in later ranking are broken
// by that order, which keeps results deterministic for identical input.
type Histogram struct {
	step           int
	alphaThreshold uint8
	buckets        []ColorBucket
	index          map[QuantizedKey]int
	total          int
}

// NewHistogram creates an empty histogram.
func NewHistogram(step int, alphaThreshold uint8) *Histogram {
	return &Histogram{
		step:           step,
		alphaThreshold: alphaThreshold,
		index:          make(map[QuantizedKey]int),
	}
}

// Add counts a pixel. Pixels with alpha below the threshold are skipped and
// Add reports false for them.
func (h *Histogram) Add(p PixelSample) bool {
	if p.A < h.alphaThreshold {
		return false
	}

	key := QuantizeSample(p, h.step)
	if i, ok := h.index[key]; ok {
		h.buckets[i].Count++
	} else {
		h.index[key] = len(h.buckets)
		h.buckets = append(h.buckets, ColorBucket{Key: key, Count: 1})
	}
	h.total++
	return true
}

// AddPixels counts every complete RGBA quadruple in a row-major buffer.
func (h *Histogram) AddPixels(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		h.Add(PixelSample{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]})
	}
}

// Buckets returns a copy of the buckets in first-seen order.
func (h *Histogram) Buckets() []ColorBucket {
	out := make([]ColorBucket, len(h.buckets))
	copy(out, h.buckets)
	return out
}

// Len returns the number of distinct buckets.
func (h *Histogram) Len() int {
	return len(h.buckets)
}

// Total returns the number of opaque pixels counted.
func (h *Histogram) Total() int {
	return h.total
}
