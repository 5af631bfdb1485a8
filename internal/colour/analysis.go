package colour

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrPixelBuffer is returned when a pixel buffer does not match its dimensions.
var ErrPixelBuffer = errors.New("invalid pixel buffer")

// Options holds the tunables of the analysis. The zero value is not valid;
// start from DefaultOptions.
type Options struct {
	Step           int
	TopK           int
	AlphaThreshold int
	HueMetric      HueMetric
}

// DefaultOptions returns the standard analysis configuration.
func DefaultOptions() Options {
	return Options{
		Step:           DefaultStep,
		TopK:           DefaultTopK,
		AlphaThreshold: DefaultAlphaThreshold,
		HueMetric:      HueLinear,
	}
}

// Validate validates the analysis options.
func (o Options) Validate() error {
	if o.Step < 1 || o.Step > 255 {
		return fmt.Errorf("quantisation step must be between 1 and 255, got %d", o.Step)
	}
	if o.TopK < 1 {
		return fmt.Errorf("palette size must be at least 1, got %d", o.TopK)
	}
	if o.AlphaThreshold < 0 || o.AlphaThreshold > 255 {
		return fmt.Errorf("alpha threshold must be between 0 and 255, got %d", o.AlphaThreshold)
	}
	if _, err := ParseHueMetric(string(o.HueMetric)); err != nil {
		return err
	}
	return nil
}

// AnalysisResult is the outcome of analysing one image.
type AnalysisResult struct {
	Palette            []ColorData `json:"palette"`
	DominantColor      string      `json:"dominantColor"`
	ColorHarmony       Harmony     `json:"colorHarmony"`
	ContrastSuggestion string      `json:"contrastSuggestion"`
}

// PixelBufferLen returns the number of bytes in a row-major RGBA buffer of
// width*height pixels. Non-positive dimensions and sizes that do not fit in
// an int fail with ErrPixelBuffer.
func PixelBufferLen(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrPixelBuffer, width, height)
	}
	if width > math.MaxInt/4/height {
		return 0, fmt.Errorf("%w: dimensions %dx%d are too large", ErrPixelBuffer, width, height)
	}
	return width * height * 4, nil
}

// AnalyzePixels builds the palette and derived metadata for a row-major RGBA
// buffer of width*height pixels. Bytes beyond width*height*4 are ignored.
func AnalyzePixels(pix []byte, width, height int, opts Options) (*AnalysisResult, error) {
	need, err := PixelBufferLen(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) < need {
		return nil, fmt.Errorf("%w: need %d bytes for %dx%d, got %d", ErrPixelBuffer, need, width, height, len(pix))
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	h := NewHistogram(opts.Step, uint8(opts.AlphaThreshold))
	h.AddPixels(pix[:need])

	return Summarise(h, opts), nil
}

// Summarise ranks a completed histogram and derives the dominant colour,
// harmony label and contrast suggestion. A histogram without opaque pixels
// produces an empty palette, a black dominant colour, a monochromatic label
// and a white contrast suggestion.
func Summarise(h *Histogram, opts Options) *AnalysisResult {
	palette := Rank(h, opts.TopK)

	dominant := Black
	if len(palette) > 0 {
		dominant = palette[0].Hex
	}

	return &AnalysisResult{
		Palette:            palette,
		DominantColor:      dominant,
		ColorHarmony:       ClassifyHarmony(PaletteHues(palette), opts.HueMetric),
		ContrastSuggestion: SuggestContrast(palette),
	}
}

// ToJSON converts the result to indented JSON.
func (r *AnalysisResult) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// String returns a human-readable representation of the result.
func (r *AnalysisResult) String() string {
	var sb strings.Builder
	sb.WriteString(FormatPalette(r.Palette))
	fmt.Fprintf(&sb, "Dominant colour:     %s\n", r.DominantColor)
	fmt.Fprintf(&sb, "Harmony:             %s\n", r.ColorHarmony)
	fmt.Fprintf(&sb, "Contrast suggestion: %s\n", r.ContrastSuggestion)
	return sb.String()
}
