package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	apperrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// barWidth is the width of the relative-frequency bar in the terms table.
const barWidth = 20

// termsCommand creates the terms command for inspecting the ranked term set
// without rendering anything.
func (c *CLI) termsCommand() *cobra.Command {
	var (
		stopWords  string
		configFile string
		noCache    bool
		top        int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "terms [file]",
		Short: "Show the ranked term table without rendering",
		Long: `Show the ranked term table without rendering.

The terms command runs only the aggregation stage and prints the resulting
ranked terms with their counts. Useful for tuning stop words and the
aggregation mode before generating images.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			cfg.applyUnset(cmd, &opts)

			if cmd.Flags().Changed("stop-words") {
				opts.StopWords = splitList(stopWords)
			}
			return c.runTerms(cmd.Context(), inputArg(args), opts, top, noCache)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/wordcloud/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached results exist")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "aggregation mode: phrase (default), token")
	cmd.Flags().IntVar(&opts.MaxTerms, "max-terms", 0, "maximum number of terms to keep (default 100)")
	cmd.Flags().StringVar(&stopWords, "stop-words", "", "comma-separated stop words (token mode, replaces built-in set)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for color assignment (default 42)")
	cmd.Flags().IntVar(&top, "top", 0, "show only the top N terms (0 = all)")

	return cmd
}

// runTerms aggregates entries and prints the ranked table.
func (c *CLI) runTerms(ctx context.Context, input string, opts pipeline.Options, top int, noCache bool) error {
	entries, err := readEntries(ctx, input)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()
	opts.Logger = c.Logger

	ranked, err := runner.Aggregate(ctx, entries, opts)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeEmptyInput {
			printInfo("No terms (input was empty or all entries were filtered)")
			return nil
		}
		return err
	}

	shown := ranked
	if top > 0 && top < len(shown) {
		shown = shown[:top]
	}

	fmt.Println(renderTermsTable(shown, ranked[0].Count))
	printDetail("%d terms from %d entries", len(ranked), len(entries))
	return nil
}

// renderTermsTable formats ranked terms as a bordered table with a
// relative-frequency bar scaled to the top term.
func renderTermsTable(ranked []cloud.WeightedTerm, maxCount int) string {
	rows := make([][]string, 0, len(ranked))
	for i, t := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			t.Text,
			fmt.Sprintf("%d", t.Count),
			frequencyBar(t.Count, maxCount),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Term", "Count", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return StyleDim
			case 2:
				return StyleNumber
			case 3:
				return StyleDim
			default:
				return StyleValue
			}
		})

	return t.Render()
}

// frequencyBar renders a proportional bar for count relative to maxCount.
func frequencyBar(count, maxCount int) string {
	if maxCount <= 0 {
		return ""
	}
	n := count * barWidth / maxCount
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}
