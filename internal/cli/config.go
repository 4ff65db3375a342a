package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// =============================================================================
// Config Files
// =============================================================================

// loadConfig decodes a TOML or YAML options file into opts. The extension
// picks the decoder. Unknown keys are rejected so typos do not pass silently.
func loadConfig(path string, opts *pipeline.Options) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), opts)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(opts); err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml, or .yml)", ext)
	}
	return nil
}

// =============================================================================
// Option Flags
// =============================================================================

// optionFlags binds command-line flags to pipeline options. List-valued
// options are kept as raw strings and merged in [optionFlags.resolve].
type optionFlags struct {
	opts      pipeline.Options
	text      string
	formats   string
	stopWords string

	bound map[string]bool
}

func newOptionFlags() *optionFlags {
	return &optionFlags{bound: make(map[string]bool)}
}

// unboundFlags are merged by hand instead of being replayed onto opts.
var unboundFlags = map[string]bool{"text": true, "stop-words": true, "format": true}

// track records the option flags registered on fs, so resolve only replays
// flags that map onto opts.
func (f *optionFlags) track(fs *pflag.FlagSet) {
	fs.VisitAll(func(fl *pflag.Flag) {
		if !unboundFlags[fl.Name] {
			f.bound[fl.Name] = true
		}
	})
}

// addReadFlags registers word source and filtering flags.
func (f *optionFlags) addReadFlags(fs *pflag.FlagSet) {
	o := &f.opts
	fs.StringVar(&o.Extension, "ext", "", "source type for stdin and --text input (.txt, .lst, .json)")
	fs.IntVar(&o.MinLength, "min-length", 0, "drop words shorter than this many letters (default 3)")
	fs.BoolVar(&o.KeepStopWords, "keep-stop-words", false, "do not drop common English stop words")
	fs.BoolVar(&o.KeepCase, "keep-case", false, "count words case-sensitively")
	fs.IntVar(&o.MaxWords, "max-words", 0, "maximum number of words in the cloud (default 150)")
	f.track(fs)
	fs.StringVar(&f.text, "text", "", "inline text instead of an input file")
	fs.StringVar(&f.stopWords, "stop-words", "", "comma-separated extra stop words")
}

// addLayoutFlags registers spiral, compaction, and styling flags.
func (f *optionFlags) addLayoutFlags(fs *pflag.FlagSet) {
	o := &f.opts
	fs.Float64Var(&o.AngleStep, "angle-step", 0, "spiral angle increment in radians (default 0.1)")
	fs.Float64Var(&o.RadiusStep, "radius-step", 0, "spiral radius growth per radian (default 0.5)")
	fs.Float64Var(&o.CompactionStep, "compaction-step", 0, "distance moved per compaction step (default 0.5)")
	fs.BoolVar(&o.NoCompaction, "no-compaction", false, "skip pulling words toward the center")
	fs.Float64Var(&o.GridCell, "grid-cell", 0, "spatial index cell size, 8 to 4096; 0 scans placed words linearly")
	fs.Float64Var(&o.MinFontSize, "min-font-size", 0, "font size of the least frequent word in points (default 12)")
	fs.Float64Var(&o.MaxFontSize, "max-font-size", 0, "font size of the most frequent word in points (default 64)")
	fs.StringVar(&o.WordColor, "color", "", "word color, a CSS name or #rrggbb (default midnightblue)")
	fs.StringVar(&o.Background, "background", "", "background color (default white)")
	fs.Float64Var(&o.MinWeight, "min-weight", 0, "color weight of the least frequent word in [0, 1] (default 0.35)")
	fs.StringVar(&o.FontWeight, "font-weight", "", "typeface weight: normal or bold (default bold)")
	fs.IntVar(&o.Padding, "padding", 0, "pixels of padding around each word (default 2)")
	fs.BoolVar(&o.Refresh, "refresh", false, "ignore cached results")
	f.track(fs)
}

// addRenderFlags registers output flags.
func (f *optionFlags) addRenderFlags(fs *pflag.FlagSet) {
	o := &f.opts
	fs.Float64Var(&o.Margin, "margin", 0, "canvas margin in pixels (default 16)")
	fs.Float64Var(&o.Scale, "scale", 0, "raster scale factor (default 1)")
	fs.BoolVar(&o.Boxes, "boxes", false, "outline word bounding boxes")
	fs.BoolVar(&o.EmbedFont, "embed-font", false, "embed the typeface in SVG output")
	f.track(fs)
	fs.StringVarP(&f.formats, "format", "f", "", "comma-separated output formats: "+strings.Join(pipeline.ValidFormats(), ", "))
}

// resolve merges the config file, the command line, and the input argument
// into one set of options. Flags set on the command line win over the file.
func (f *optionFlags) resolve(cmd *cobra.Command, configPath string, args []string) (pipeline.Options, error) {
	fs := cmd.Flags()
	if configPath != "" {
		changed := make(map[string]string)
		fs.Visit(func(fl *pflag.Flag) {
			if f.bound[fl.Name] {
				changed[fl.Name] = fl.Value.String()
			}
		})

		var fileOpts pipeline.Options
		if err := loadConfig(configPath, &fileOpts); err != nil {
			return pipeline.Options{}, err
		}
		f.opts = fileOpts
		for name, value := range changed {
			if err := fs.Set(name, value); err != nil {
				return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "--%s", name)
			}
		}
	}

	opts := f.opts
	opts.StopWords = append(append([]string(nil), opts.StopWords...), parseList(f.stopWords)...)
	if formats := parseList(f.formats); len(formats) > 0 {
		opts.Formats = formats
	}

	switch {
	case f.text != "":
		opts.Text = f.text
	case len(args) > 0 && args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		opts.Text = string(data)
	case len(args) > 0:
		if err := errors.ValidateInputPath(args[0]); err != nil {
			return pipeline.Options{}, err
		}
		opts.Input = args[0]
	}
	if opts.Text == "" && opts.Input == "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "no input: pass a file, '-' for stdin, or --text")
	}
	return opts, nil
}
