package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/source"
)

// pollInterval is how often the watched file is checked for changes.
const pollInterval = 500 * time.Millisecond

// liveCommand creates the live command, which watches an entries file and
// regenerates the word cloud whenever it changes.
func (c *CLI) liveCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		configFile string
		noCache    bool
		quietMs    int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "live <file>",
		Short: "Watch an entries file and regenerate on change",
		Long: `Watch an entries file and regenerate on change.

The live command polls the entries file and reruns the pipeline whenever
its modification time changes. Bursts of writes within the quiet window
collapse into a single regeneration; a change arriving while a generation
is in flight queues exactly one follow-up run. Press 'r' to force a
regeneration, 'q' to quit.`,
		Args: cobra.ExactArgs(1),
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
			window := time.Duration(quietMs) * time.Millisecond
			return c.runLive(cmd.Context(), args[0], opts, output, window, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, json (comma-separated)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/wordcloud/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&quietMs, "quiet-window", 0, "debounce window in milliseconds (default 300)")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "aggregation mode: phrase (default), token")
	cmd.Flags().IntVar(&opts.MaxTerms, "max-terms", 0, "maximum number of terms to place (default 100)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for color assignment (default 42)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height in pixels (default 600)")
	cmd.Flags().StringVar(&opts.FontFamily, "font", "", "font family (system lookup, embedded fallback)")

	return cmd
}

// runLive wires the coalescer to the bubbletea program and runs the watch
// loop until quit.
func (c *CLI) runLive(ctx context.Context, path string, opts pipeline.Options, output string, window time.Duration, noCache bool) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()
	opts.Logger = c.Logger

	m := liveModel{
		ctx:    ctx,
		runner: runner,
		path:   path,
		opts:   opts,
		output: output,
	}

	// The coalescer fires after the quiet window; it needs the program to
	// deliver the message, and the program needs the model, so the send
	// function is bound after construction.
	var send func(tea.Msg)
	m.coalescer = source.NewCoalescer(window, func() {
		if send != nil {
			send(regenerateMsg{})
		}
	})
	defer m.coalescer.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	send = p.Send

	_, err := p.Run()
	return err
}

// =============================================================================
// Messages
// =============================================================================

// tickMsg drives the file modification poll.
type tickMsg time.Time

// regenerateMsg requests a pipeline run.
type regenerateMsg struct{}

// generatedMsg carries the outcome of a pipeline run.
type generatedMsg struct {
	result *pipeline.Result
	paths  []string
	empty  bool
	err    error
}

// =============================================================================
// Model
// =============================================================================

// liveModel is the bubbletea model for the live watch loop.
type liveModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	path   string
	opts   pipeline.Options
	output string

	coalescer *source.Coalescer
	lastMod   time.Time

	generating bool
	pending    bool
	runs       int
	lastRun    time.Time
	lastStats  pipeline.Stats
	lastPaths  []string
	lastEmpty  bool
	err        error
}

func (m liveModel) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.generate())
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.coalescer.Trigger()
		}

	case tickMsg:
		if info, err := os.Stat(m.path); err == nil {
			if !m.lastMod.IsZero() && info.ModTime().After(m.lastMod) {
				m.coalescer.Trigger()
			}
			m.lastMod = info.ModTime()
		}
		return m, m.tick()

	case regenerateMsg:
		if m.generating {
			// One follow-up run is enough; the next run reads the
			// latest file contents anyway.
			m.pending = true
			return m, nil
		}
		m.generating = true
		return m, m.generate()

	case generatedMsg:
		m.generating = false
		m.runs++
		m.lastRun = time.Now()
		m.err = msg.err
		m.lastEmpty = msg.empty
		if msg.err == nil && msg.result != nil {
			m.lastStats = msg.result.Stats
			m.lastPaths = msg.paths
		}
		if m.pending {
			m.pending = false
			m.generating = true
			return m, m.generate()
		}
		return m, nil
	}
	return m, nil
}

func (m liveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("wordcloud live"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.path))
	b.WriteString("\n\n")

	switch {
	case m.generating:
		b.WriteString(StyleWarning.Render("● generating..."))
	case m.err != nil:
		b.WriteString(StyleWarning.Render("✗ " + m.err.Error()))
	case m.lastEmpty:
		b.WriteString(StyleDim.Render("○ nothing to render (empty input)"))
	case m.runs > 0:
		b.WriteString(StyleSuccess.Render("✓ up to date"))
	default:
		b.WriteString(StyleDim.Render("waiting..."))
	}
	b.WriteString("\n")

	if m.runs > 0 && m.err == nil && !m.lastEmpty {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  terms: %d  placed: %d  skipped: %d",
			m.lastStats.TermCount, m.lastStats.PlacedCount, m.lastStats.SkippedCount)))
		b.WriteString("\n")
		for _, p := range m.lastPaths {
			b.WriteString("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(p) + "\n")
		}
	}
	if m.runs > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  runs: %d  last: %s", m.runs, m.lastRun.Format("15:04:05"))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r regenerate  q quit"))
	b.WriteString("\n")
	return b.String()
}

// tick schedules the next file modification check.
func (m liveModel) tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// generate runs the pipeline and writes artifacts off the UI goroutine.
func (m liveModel) generate() tea.Cmd {
	runner, path, opts := m.runner, m.path, m.opts
	out := m.output
	ctx := m.ctx

	return func() tea.Msg {
		entries, err := source.NewFileSource(path).FetchAll(ctx)
		if err != nil {
			return generatedMsg{err: err}
		}

		result, err := runner.Execute(ctx, entries, opts)
		if err != nil {
			if apperrors.GetCode(err) == apperrors.ErrCodeEmptyInput {
				return generatedMsg{empty: true}
			}
			return generatedMsg{err: err}
		}

		var paths []string
		base := basePath(out, path)
		if len(opts.Formats) == 1 && out != "" {
			paths = append(paths, out)
			if err := writeFile(out, result.Artifacts[opts.Formats[0]]); err != nil {
				return generatedMsg{err: err}
			}
		} else {
			for _, format := range opts.Formats {
				p := fmt.Sprintf("%s.%s", base, format)
				if err := writeFile(p, result.Artifacts[format]); err != nil {
					return generatedMsg{err: err}
				}
				paths = append(paths, p)
			}
		}

		return generatedMsg{result: result, paths: paths}
	}
}
