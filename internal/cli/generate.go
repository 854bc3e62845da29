package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/source"
)

// generateCommand creates the generate command, the main entry point of the
// CLI. It reads entries from a file or stdin, runs the full pipeline, and
// writes one artifact per requested format.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		formatsStr string
		stopWords  string
		paletteStr string
		output     string
		configFile string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate a word cloud from text entries",
		Long: `Generate a word cloud from text entries.

Entries are read one per line from the given file, or from stdin when the
file is "-" or omitted. Entries are aggregated into ranked weighted terms
(whole phrases by default, individual tokens with --mode token) and placed
on the canvas along an outward spiral, largest first.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			cfg.applyUnset(cmd, &opts)

			opts.Formats = parseList(formatsStr, opts.Formats)
			if len(opts.Formats) == 0 {
				opts.Formats = []string{pipeline.FormatPNG}
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if cmd.Flags().Changed("stop-words") {
				opts.StopWords = splitList(stopWords)
			}
			if cmd.Flags().Changed("palette") {
				opts.Palette = splitList(paletteStr)
			}
			return c.runGenerate(cmd.Context(), inputArg(args), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/wordcloud/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached results exist")

	// Aggregation flags
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "aggregation mode: phrase (default), token")
	cmd.Flags().IntVar(&opts.MaxTerms, "max-terms", 0, "maximum number of terms to place (default 100)")
	cmd.Flags().StringVar(&stopWords, "stop-words", "", "comma-separated stop words (token mode, replaces built-in set)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for color assignment (default 42)")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height in pixels (default 600)")
	cmd.Flags().StringVar(&opts.FontFamily, "font", "", "font family (system lookup, embedded fallback)")
	cmd.Flags().Float64Var(&opts.MinFontSize, "min-font-size", 0, "font size for the rarest term (default 16)")
	cmd.Flags().Float64Var(&opts.MaxFontSize, "max-font-size", 0, "font size for the most frequent term (default 64)")
	cmd.Flags().Float64Var(&opts.Padding, "padding", 0, "collision padding around each term in pixels (default 2)")
	cmd.Flags().Float64Var(&opts.AngleStep, "angle-step", 0, "spiral angle increment in radians (default 0.35)")
	cmd.Flags().Float64Var(&opts.RadiusStep, "radius-step", 0, "spiral radius increment in pixels (default 0.5)")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0, "spiral steps before a term is skipped (default 2000)")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG output scale factor (default 1.0)")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color as hex (default #ffffff)")
	cmd.Flags().StringVar(&paletteStr, "palette", "", "comma-separated hex colors (replaces built-in palette)")

	return cmd
}

// runGenerate reads entries, executes the pipeline, and writes artifacts.
func (c *CLI) runGenerate(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	entries, err := readEntries(ctx, input)
	if err != nil {
		return err
	}
	logger.Debug("Read entries", "input", input, "count", len(entries))

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()
	opts.Logger = logger
	tracker := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Generating word cloud...")
	spinner.Start()

	result, err := runner.Execute(ctx, entries, opts)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeEmptyInput {
			spinner.Stop()
			printInfo("No terms to render (input was empty or all entries were filtered)")
			return nil
		}
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.StopWithSuccess("Generated word cloud")
	tracker.done(fmt.Sprintf("Pipeline finished, %d term(s) placed", result.Stats.PlacedCount))
	printDetail("entries: %d, terms: %d, placed: %d, skipped: %d",
		result.Stats.EntryCount, result.Stats.TermCount,
		result.Stats.PlacedCount, result.Stats.SkippedCount)
	if result.CacheInfo.TermsHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		printDetail("cached: %s", cacheSummary(result.CacheInfo))
	}

	return writeArtifacts(result.Artifacts, opts.Formats, input, output)
}

// inputArg resolves the positional input argument. Missing or "-" means
// stdin.
func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// readEntries fetches the entry snapshot from the file or stdin.
func readEntries(ctx context.Context, input string) ([]string, error) {
	var src source.Source
	if input == "-" {
		src = source.NewReaderSource(os.Stdin)
	} else {
		src = source.NewFileSource(input)
	}
	return src.FetchAll(ctx)
}

// parseList splits a comma-separated flag value, falling back to the
// current value when the flag is empty.
func parseList(s string, current []string) []string {
	if s == "" {
		return current
	}
	return splitList(s)
}

// splitList splits a comma-separated value, trimming whitespace.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// cacheSummary describes which stages hit the cache.
func cacheSummary(info pipeline.CacheInfo) string {
	var stages []string
	if info.TermsHit {
		stages = append(stages, "terms")
	}
	if info.LayoutHit {
		stages = append(stages, "layout")
	}
	if info.RenderHit {
		stages = append(stages, "artifacts")
	}
	return strings.Join(stages, ", ")
}

// basePath derives the base output path from the output and input paths.
// If output is empty, the input file name (minus extension) is used; stdin
// input falls back to "wordcloud". A known format extension on output is
// stripped so multiple formats can share the base.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "wordcloud"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes one file per format. A single format honors the
// exact --output path; multiple formats share the base path with per-format
// extensions.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 {
		format := formats[0]
		path := output
		if path == "" {
			path = basePath("", input) + "." + format
		}
		if err := writeFile(path, artifacts[format]); err != nil {
			return err
		}
		printFile(path)
		return nil
	}

	base := basePath(output, input)
	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := writeFile(path, artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
