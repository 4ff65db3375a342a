package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
)

// layoutCommand creates the layout command, which stops after placement and
// writes the word positions as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	var margin float64
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "layout [file|-]",
		Short: "Compute a tag cloud layout and write it as JSON",
		Long: `Compute a tag cloud layout and write it as JSON.

The document lists the canvas size and, for every placed word, its top-left
corner, box size, baseline, font size, and color in image coordinates. It is
the same document 'render -f json' produces, printed with indentation.

Without -o the layout is written to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.configPath, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("margin") || opts.Margin == 0 {
				opts.Margin = margin
			}
			return c.runLayout(cmd.Context(), cmd, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Float64Var(&margin, "margin", sink.DefaultMargin, "canvas margin in pixels")
	flags.addReadFlags(cmd.Flags())
	flags.addLayoutFlags(cmd.Flags())

	return cmd
}

// runLayout reads the words, lays them out, and writes the JSON document.
func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	freqs, err := runner.ReadWords(ctx, opts)
	if err != nil {
		return err
	}
	sp := newSpinner(ctx, os.Stderr, fmt.Sprintf("Placing %d words...", len(freqs)))
	sp.Start()
	cl, hit, err := runner.BuildCloudWithCacheInfo(ctx, freqs, opts)
	sp.Stop()
	if err != nil {
		return err
	}
	data, err := sink.RenderJSON(cl, sink.WithJSONMargin(opts.Margin), sink.WithJSONIndent())
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	prog.done("layout complete", "words", len(cl.Tags), "cached", hit)

	if output == "" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(pipeline.Stats{UniqueWords: len(freqs), Placed: len(cl.Tags), SpiralSteps: cl.SpiralSteps}, hit)
	printNewline()
	printNextStep("Render", appName+" render "+displayInput(opts))

	return nil
}

// displayInput names the input for suggested follow-up commands.
func displayInput(opts pipeline.Options) string {
	if opts.Input != "" {
		return opts.Input
	}
	return "-"
}
