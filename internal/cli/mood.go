package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/chromavant/chroma/internal/colour"
	"github.com/chromavant/chroma/internal/image"
	"github.com/chromavant/chroma/internal/mood"
	httputil "github.com/chromavant/chroma/internal/util/http"
)

// moodAnalyzer requests a mood analysis for encoded image data.
type moodAnalyzer interface {
	Analyze(ctx context.Context, data []byte, mimeType string) (*mood.Analysis, error)
}

// newMoodClient creates the model client. Tests replace it.
var newMoodClient = func(ctx context.Context, cfg mood.Config, logger hclog.Logger) (moodAnalyzer, error) {
	return mood.NewClient(ctx, cfg, logger)
}

// moodOptions holds the mood command flags.
type moodOptions struct {
	localOptions
	model     string
	backend   string
	format    string
	output    string
	withLocal bool
	cache     bool
}

// moodReport is the JSON output of the mood command.
type moodReport struct {
	Remote *mood.Analysis         `json:"remote"`
	Local  *colour.AnalysisResult `json:"local,omitempty"`
}

func newMoodCmd() *cobra.Command {
	opts := &moodOptions{}

	cmd := &cobra.Command{
		Use:   "mood <image|url>",
		Short: "Ask a Gemini model to describe the mood of an image's palette",
		Long: `Ask a Gemini model to describe the mood of an image's palette.

The image is sent to the model, which returns five named colours, a mood
description, three design applications, an accent colour and a typography
pairing. Unlike analyze, the result differs between runs.

Environment:
  GOOGLE_API_KEY         API key for the gemini-api backend
  CHROMA_GENAI_MODEL     default for --model
  CHROMA_GENAI_BACKEND   default for --genai-backend
  CHROMA_HUE_METRIC      default for --hue-metric (with --with-local)
  CHROMA_MAX_SIZE        default for --max-size (with --with-local)

Examples:
  # Describe an image
  chroma mood photo.jpg

  # Show the local analysis alongside, as JSON
  chroma mood --with-local --format json photo.jpg

  # Use Vertex AI with application default credentials
  chroma mood --genai-backend vertex-ai photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMood(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.model, "model", mood.DefaultModel, "Gemini model name")
	cmd.Flags().StringVar(&opts.backend, "genai-backend", mood.DefaultBackend, "Google Gen AI backend (gemini-api or vertex-ai)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "keep downloaded images in the cache directory and reuse them")
	cmd.Flags().BoolVar(&opts.withLocal, "with-local", false, "include the local palette analysis")
	opts.addFlags(cmd)

	return cmd
}

func runMood(cmd *cobra.Command, opts *moodOptions, source string) error {
	logger := newLogger(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported format: %s (supported: text, json)", opts.format)
	}
	if opts.withLocal {
		if err := opts.resolveLocal(cmd); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	cfg := mood.ConfigFromEnv()
	if cmd.Flags().Changed("model") || cfg.Model == "" {
		cfg.Model = opts.model
	}
	if cmd.Flags().Changed("genai-backend") || cfg.Backend == "" {
		cfg.Backend = opts.backend
	}

	client, err := newMoodClient(ctx, cfg, logger.Named("mood"))
	if err != nil {
		return err
	}

	source, err = localSource(ctx, logger, source, opts.cache)
	if err != nil {
		return fmt.Errorf("unable to analyze image: %w", err)
	}

	data, err := image.ReadSource(ctx, source, httputil.FetchOptions{})
	if err != nil {
		return fmt.Errorf("unable to analyze image: %w", err)
	}
	mimeType := image.DetectMIMEType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return fmt.Errorf("unable to analyze image: unsupported content type %s", mimeType)
	}

	report := moodReport{}
	if opts.withLocal {
		a, err := opts.analyzer(logger)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		img, err := image.Decode(data, source)
		if err != nil {
			return fmt.Errorf("unable to analyze image: %w", err)
		}
		if report.Local, err = a.AnalyzeImage(img); err != nil {
			return fmt.Errorf("unable to analyze image: %w", err)
		}
	}

	logger.Info("requesting mood analysis", "model", cfg.Model, "backend", cfg.Backend)
	report.Remote, err = client.Analyze(ctx, data, mimeType)
	if err != nil {
		return fmt.Errorf("unable to analyze image: %w", err)
	}

	var output string
	if opts.format == "json" {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		output = string(out) + "\n"
	} else {
		output = formatMood(report, opts.output == "" && isTerminal(cmd.OutOrStdout()))
	}

	return writeOutput(cmd, logger, opts.output, output)
}

// formatMood formats a mood report for terminal output.
func formatMood(report moodReport, terminal bool) string {
	var sb strings.Builder
	a := report.Remote

	table := NewTable([]string{"HEX", "NAME", "DESCRIPTION"})
	if terminal {
		table.EnableTerminalAwareWidth(2, 20)
	}
	for _, s := range a.Palette {
		table.AddRow([]string{s.Hex, s.Name, s.Description})
	}
	sb.WriteString(table.Render())

	fmt.Fprintf(&sb, "\nMood:\n  %s\n", a.Mood)
	sb.WriteString("\nDesign usage:\n")
	for _, u := range a.DesignUsage {
		fmt.Fprintf(&sb, "  - %s\n", u)
	}
	fmt.Fprintf(&sb, "\nAccent: %s\n  %s\n", a.ContrastSuggestion.Hex, a.ContrastSuggestion.Reason)
	fmt.Fprintf(&sb, "\nTypography: %s\n", a.TypographyPairing)

	if report.Local != nil {
		sb.WriteString("\nLocal analysis:\n")
		sb.WriteString(formatText(report.Local, false))
	}

	return sb.String()
}
