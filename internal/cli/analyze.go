package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/chromavant/chroma/internal/analysis"
	"github.com/chromavant/chroma/internal/colour"
	"github.com/chromavant/chroma/internal/image"
)

// localOptions holds the flags that configure the local palette analysis.
type localOptions struct {
	hueMetric     string
	maxSize       int
	interpolation string
}

// analyzeOptions holds the analyze command flags.
type analyzeOptions struct {
	localOptions
	format  string
	output  string
	preview bool
	raw     string
	cache   bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <image|url>",
		Short: "Analyse the colour palette of an image",
		Long: `Analyse the colour palette of an image.

The image is resampled so that its longer side is 200 pixels (--max-size), transparent
pixels are skipped, and the remaining colours are grouped into buckets of
20 levels per channel. The five largest buckets form the palette. The result
also names the dominant colour, the harmony of the palette hues and a text
colour that contrasts with the dominant colour.

Supported image formats: JPEG, PNG, GIF, WebP. HTTP(S) URLs are fetched.

Environment:
  CHROMA_HUE_METRIC   default for --hue-metric
  CHROMA_MAX_SIZE     default for --max-size
  CHROMA_LOG_LEVEL    log level (trace, debug, info, warn, error)
  CHROMA_CACHE_DIR    directory for --cache (default: user cache dir)

Examples:
  # Analyse an image
  chroma analyze photo.jpg

  # Output the result as JSON
  chroma analyze --format json photo.jpg

  # Print just the palette hex codes with colour previews
  chroma analyze -f hex --preview https://example.com/photo.png

  # Measure hue spread around the colour wheel
  chroma analyze --hue-metric circular photo.jpg

  # Analyse an already downsampled raw RGBA dump
  chroma analyze --raw 200x150 pixels.rgba.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format (text, json, hex)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews (default: on when stdout is a terminal)")
	opts.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "keep downloaded images in the cache directory and reuse them")
	cmd.Flags().StringVar(&opts.raw, "raw", "", "treat the input as a raw RGBA dump of the given WIDTHxHEIGHT (.gz and .xz are decompressed)")

	return cmd
}

// addFlags registers the local analysis flags on cmd.
func (o *localOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.hueMetric, "hue-metric", string(colour.HueLinear), "hue span metric for harmony (linear, circular)")
	cmd.Flags().IntVar(&o.maxSize, "max-size", image.DefaultMaxSize, "length of the longer side of the sampled image")
	cmd.Flags().StringVar(&o.interpolation, "interpolation", string(image.InterpolationBilinear), "resampling method (bilinear, catmullrom, nearest)")
}

// resolveLocal applies CHROMA_HUE_METRIC and CHROMA_MAX_SIZE to flags that
// were not given.
func (o *localOptions) resolveLocal(cmd *cobra.Command) error {
	flags := cmd.Flags()
	o.hueMetric = stringSetting(flags, "hue-metric", "CHROMA_HUE_METRIC")

	if !flags.Changed("max-size") {
		if v := strings.TrimSpace(os.Getenv("CHROMA_MAX_SIZE")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid CHROMA_MAX_SIZE %q: %w", v, err)
			}
			o.maxSize = n
		}
	}
	if o.maxSize < 1 {
		return fmt.Errorf("max size must be positive, got %d", o.maxSize)
	}
	return nil
}

// resolve applies environment defaults to flags that were not given.
func (o *analyzeOptions) resolve(cmd *cobra.Command) error {
	if err := o.resolveLocal(cmd); err != nil {
		return err
	}

	if !cmd.Flags().Changed("preview") {
		o.preview = o.output == "" && isTerminal(cmd.OutOrStdout())
	}

	switch o.format {
	case "text", "json", "hex":
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, hex)", o.format)
	}
	return nil
}

// analyzer builds an Analyzer from the resolved options.
func (o *localOptions) analyzer(logger hclog.Logger) (*analysis.Analyzer, error) {
	metric, err := colour.ParseHueMetric(o.hueMetric)
	if err != nil {
		return nil, err
	}
	interp, err := image.ParseInterpolation(o.interpolation)
	if err != nil {
		return nil, err
	}

	opts := colour.DefaultOptions()
	opts.HueMetric = metric

	return analysis.New(
		analysis.WithLogger(logger),
		analysis.WithOptions(opts),
		analysis.WithMaxSize(o.maxSize),
		analysis.WithInterpolation(interp),
	), nil
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, source string) error {
	logger := newLogger(cmd)

	if err := opts.resolve(cmd); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a, err := opts.analyzer(logger)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	source, err = localSource(cmd.Context(), logger, source, opts.cache)
	if err != nil {
		return fmt.Errorf("unable to analyze image: %w", err)
	}

	result, err := analyzeSource(a, source, opts.raw)
	if err != nil {
		return fmt.Errorf("unable to analyze image: %w", err)
	}

	output, err := formatResult(result, opts.format, opts.preview)
	if err != nil {
		return err
	}
	return writeOutput(cmd, logger, opts.output, output)
}

// analyzeSource runs the analysis for an image path, URL or raw dump.
func analyzeSource(a *analysis.Analyzer, source, raw string) (*colour.AnalysisResult, error) {
	if raw != "" {
		w, h, err := image.ParseDimensions(raw)
		if err != nil {
			return nil, err
		}
		return a.AnalyzeRaw(source, w, h)
	}

	if err := image.ValidateImagePath(source); err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}
	return a.AnalyzePath(source)
}

// formatResult formats the analysis result according to the specified format.
func formatResult(result *colour.AnalysisResult, format string, preview bool) (string, error) {
	switch format {
	case "json":
		data, err := result.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case "hex":
		return formatHex(result.Palette, preview), nil
	case "text", "":
		return formatText(result, preview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, hex)", format)
	}
}

// formatHex formats the palette as one hex code per line.
func formatHex(palette []colour.ColorData, preview bool) string {
	if len(palette) == 0 {
		return ""
	}
	if !preview {
		return strings.Join(colour.PaletteHex(palette), "\n") + "\n"
	}

	var sb strings.Builder
	for _, c := range palette {
		sb.WriteString(colour.FormatColourWithPreview(c.RGB, 8))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatText formats the full result as a palette table and a summary.
func formatText(result *colour.AnalysisResult, preview bool) string {
	var sb strings.Builder

	if len(result.Palette) == 0 {
		sb.WriteString("No opaque pixels found; palette is empty.\n\n")
	} else {
		headers := []string{"#", "HEX", "RGB", "HSL", "SHARE"}
		if preview {
			headers = append(headers, "PREVIEW")
		}
		table := NewTable(headers)
		for i, c := range result.Palette {
			row := []string{strconv.Itoa(i + 1), c.Hex, c.RGB.String(), c.HSL.String(), fmt.Sprintf("%d%%", c.Percentage)}
			if preview {
				row = append(row, colour.ColourPreviewWithText(c.RGB, c.Hex, 9))
			}
			table.AddRow(row)
		}
		sb.WriteString(table.Render())
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Dominant colour:     %s\n", result.DominantColor)
	fmt.Fprintf(&sb, "Harmony:             %s\n", result.ColorHarmony)
	fmt.Fprintf(&sb, "Contrast suggestion: %s", result.ContrastSuggestion)

	dominant, err1 := colour.ParseHex(result.DominantColor)
	suggestion, err2 := colour.ParseHex(result.ContrastSuggestion)
	if err1 == nil && err2 == nil {
		fmt.Fprintf(&sb, " (contrast ratio %.2f:1)", colour.ContrastRatio(dominant, suggestion))
	}
	sb.WriteString("\n")

	return sb.String()
}
