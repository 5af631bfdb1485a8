// Package cli provides the command-line interface for chroma.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/chromavant/chroma/internal/image"
	"github.com/chromavant/chroma/internal/util/imagecache"
	"github.com/chromavant/chroma/internal/version"
)

// NewRootCmd builds the chroma command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chroma",
		Short: "Deterministic colour palette analysis",
		Long: `Chroma extracts the dominant colours of an image and describes them.

The local analysis quantises the image into colour buckets, ranks the five
most common, classifies the harmony of their hues and suggests a contrasting
text colour. The same image always produces the same result.

The mood command additionally asks a Gemini model for a qualitative reading
of the palette.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newMoodCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the chroma version, commit, build date, Go version and platform.

Release builds carry linker-set stamps. Other builds report the module
version and VCS revision recorded by the Go toolchain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.GetInfo())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}

// newLogger creates the command logger. CHROMA_LOG_LEVEL takes precedence
// over --verbose and --quiet.
func newLogger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Warn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = hclog.Debug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = hclog.Error
	}
	if v := os.Getenv("CHROMA_LOG_LEVEL"); v != "" {
		if l := hclog.LevelFromString(v); l != hclog.NoLevel {
			level = l
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "chroma",
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})
}

// stringSetting returns the value of a string flag, falling back to the
// environment variable env when the flag was not given.
func stringSetting(flags *pflag.FlagSet, name, env string) string {
	value, _ := flags.GetString(name)
	if flags.Changed(name) {
		return value
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return value
}

// localSource returns source unchanged, or the path of a cached copy when
// caching is enabled and source is a URL.
func localSource(ctx context.Context, logger hclog.Logger, source string, cache bool) (string, error) {
	if !cache || !image.IsURL(source) {
		return source, nil
	}

	path, err := imagecache.Fetch(ctx, source, imagecache.CacheOptions{
		CacheDir: os.Getenv("CHROMA_CACHE_DIR"),
	})
	if err != nil {
		return "", err
	}
	logger.Debug("using cached image", "url", source, "path", path)
	return path, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeOutput writes output to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, logger hclog.Logger, path, output string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), output)
		return err
	}

	logger.Debug("writing output", "path", path)
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil { // #nosec G306 - output is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
