package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
)

// renderCommand creates the render command, which runs the whole pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var output string
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a tag cloud from a text document",
		Long: `Render a tag cloud from a text document.

The input is read according to its extension: .txt and .md are split into
words, .lst holds one entry per line, and .json is an array of strings. Use
'-' to read from stdin and --ext to choose how stdin is interpreted.

Output files are named after the input unless -o is given. With a single
format, -o names the file and its extension selects the format.`,
		Example: `  tagcloud render speech.txt
  tagcloud render speech.txt -f svg,png --scale 2
  tagcloud render notes.md -o cloud.png --color "#c0392b" --background ivory
  cat tags.lst | tagcloud render - --ext .lst -o tags.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.configPath, args)
			if err != nil {
				return err
			}
			if err := applyOutputFormat(&opts, output, cmd.Flags().Changed("format")); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base path (default: <input>.<format>)")
	flags.addReadFlags(cmd.Flags())
	flags.addLayoutFlags(cmd.Flags())
	flags.addRenderFlags(cmd.Flags())

	return cmd
}

// applyOutputFormat derives the format from the output extension when no
// format was requested explicitly.
func applyOutputFormat(opts *pipeline.Options, output string, formatSet bool) error {
	if output == "" || formatSet {
		return nil
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	format, err := sink.FormatFromPath(output, sink.DefaultEncoders())
	if err != nil {
		return err
	}
	opts.Formats = []string{format}
	return nil
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	sp := newSpinner(ctx, os.Stderr, "Rendering tag cloud...")
	sp.Start()
	result, err := runner.Execute(ctx, opts)
	sp.Stop()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, opts.Input)
	if err != nil {
		return err
	}
	prog.done("render complete", "files", len(paths))

	printSuccess("Rendered tag cloud")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes artifacts in the order of formats and returns the
// paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(output, input, format, len(formats))
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath names the file for one format. A single format writes to output
// verbatim; several formats share output (minus any known extension) as base.
func outputPath(output, input, format string, count int) string {
	if output != "" && count == 1 && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath strips a known format extension from output, or derives a base
// from the input file. Inline input without -o falls back to "tagcloud".
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := sink.FormatFromPath(output, sink.DefaultEncoders()); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
