// Package analysis ties image loading, sampling and palette extraction
// together into a single analysis entry point.
package analysis

import (
	"errors"
	"fmt"
	goimage "image"

	"github.com/hashicorp/go-hclog"

	"github.com/chromavant/chroma/internal/colour"
	"github.com/chromavant/chroma/internal/compression"
	"github.com/chromavant/chroma/internal/image"
)

// Analyzer runs palette analysis over pixel buffers, decoded images and
// image files. It holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	logger  hclog.Logger
	opts    colour.Options
	maxSize int
	interp  image.Interpolation
	loader  image.Loader
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for debug output.
func WithLogger(logger hclog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithOptions sets the quantisation, ranking and harmony options.
func WithOptions(opts colour.Options) Option {
	return func(a *Analyzer) {
		a.opts = opts
	}
}

// WithMaxSize sets the length of the longer side of the sampled image.
func WithMaxSize(maxSize int) Option {
	return func(a *Analyzer) {
		a.maxSize = maxSize
	}
}

// WithInterpolation sets the interpolation used when sampling.
func WithInterpolation(interp image.Interpolation) Option {
	return func(a *Analyzer) {
		a.interp = interp
	}
}

// WithLoader sets the loader used by AnalyzePath.
func WithLoader(loader image.Loader) Option {
	return func(a *Analyzer) {
		if loader != nil {
			a.loader = loader
		}
	}
}

// New creates an Analyzer with default settings, modified by opts.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:  hclog.NewNullLogger(),
		opts:    colour.DefaultOptions(),
		maxSize: image.DefaultMaxSize,
		interp:  image.InterpolationBilinear,
		loader:  image.NewSmartLoader(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Options returns the analysis options in use.
func (a *Analyzer) Options() colour.Options {
	return a.opts
}

// Analyze analyses a row-major RGBA buffer of width*height pixels.
// The buffer is used as-is; no resampling takes place.
func (a *Analyzer) Analyze(pix []byte, width, height int) (*colour.AnalysisResult, error) {
	result, err := colour.AnalyzePixels(pix, width, height, a.opts)
	if err != nil {
		if errors.Is(err, colour.ErrPixelBuffer) {
			return nil, &image.SamplingError{Op: "pixels", Err: err}
		}
		return nil, err
	}

	a.logger.Debug("palette extracted",
		"width", width,
		"height", height,
		"colours", len(result.Palette),
		"dominant", result.DominantColor,
		"harmony", result.ColorHarmony)

	return result, nil
}

// AnalyzeImage samples img down (or up) to the configured size and analyses
// the sampled pixels.
func (a *Analyzer) AnalyzeImage(img goimage.Image) (*colour.AnalysisResult, error) {
	sampled, err := image.Sample(img, a.maxSize, a.interp)
	if err != nil {
		return nil, err
	}

	b := sampled.Bounds()
	a.logger.Debug("sampled image",
		"source", img.Bounds().Size().String(),
		"sample", b.Size().String(),
		"interpolation", a.interp)

	return a.Analyze(sampled.Pix, b.Dx(), b.Dy())
}

// AnalyzePath loads an image from a file path or HTTP(S) URL and analyses it.
func (a *Analyzer) AnalyzePath(path string) (*colour.AnalysisResult, error) {
	a.logger.Debug("loading image", "path", path)

	img, err := a.loader.Load(path)
	if err != nil {
		return nil, err
	}

	result, err := a.AnalyzeImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to analyse %s: %w", path, err)
	}
	return result, nil
}

// AnalyzeRaw loads a raw RGBA pixel dump of the given dimensions and analyses
// it without resampling.
func (a *Analyzer) AnalyzeRaw(path string, width, height int) (*colour.AnalysisResult, error) {
	a.logger.Debug("loading raw pixels", "path", path, "width", width, "height", height, "compressed", compression.IsCompressed(path))

	pix, err := image.LoadRaw(path, width, height)
	if err != nil {
		return nil, err
	}
	return a.Analyze(pix, width, height)
}
