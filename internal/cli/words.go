package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/style"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// defaultTop is the number of rows the words command prints.
const defaultTop = 20

// wordsCommand creates the words command, which shows the counted words
// without laying them out.
func (c *CLI) wordsCommand() *cobra.Command {
	var top int
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "words [file|-]",
		Short: "List the most frequent words of a document",
		Long: `List the most frequent words of a document after filtering, together
with the font size each word would be drawn in. Use it to tune --min-length,
--stop-words, and --max-words before rendering.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.configPath, args)
			if err != nil {
				return err
			}
			return c.runWords(cmd.Context(), cmd.OutOrStdout(), opts, top)
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", defaultTop, "number of words to show (0 for all)")
	flags.addReadFlags(cmd.Flags())

	return cmd
}

func (c *CLI) runWords(ctx context.Context, w io.Writer, opts pipeline.Options, top int) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	freqs, err := runner.ReadWords(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, wordsTable(freqs, top, style.FontSizer{Min: style.DefaultMinFontSize, Max: style.DefaultMaxFontSize}))
	printDetail("%d distinct words, %d occurrences", len(freqs), words.Total(freqs))
	return nil
}

// wordsTable renders the top n frequencies with their share of all counted
// words and the font size the default scale assigns them.
func wordsTable(freqs []words.Frequency, n int, sizer style.FontSizer) string {
	counts := make([]int, len(freqs))
	for i, f := range freqs {
		counts[i] = f.Count
	}
	span := style.SpanOf(counts)
	total := words.Total(freqs)

	shown := words.Top(freqs, n)
	rows := make([][]string, len(shown))
	for i, f := range shown {
		share := 0.0
		if total > 0 {
			share = 100 * float64(f.Count) / float64(total)
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			f.Word,
			strconv.Itoa(f.Count),
			fmt.Sprintf("%.1f%%", share),
			strconv.FormatFloat(sizer.Size(f.Count, span), 'f', 1, 64),
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numberStyle := cellStyle.Foreground(colorCyan).Align(lipgloss.Right)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "WORD", "COUNT", "SHARE", "SIZE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return cellStyle.Foreground(colorWhite)
			default:
				return numberStyle
			}
		}).
		String()
}
