// Package pipeline provides the tag cloud pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: Extract words from a document, normalize them, and count them
//  2. Layout: Size, color, and place every word with the circular layouter
//  3. Render: Generate output in the requested formats (SVG, PNG, JSON, ...)
//
// Layout and render results are cached; reading is cheap and always runs.
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "speech.txt",
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	freqs, err := runner.ReadWords(ctx, opts)
//	c, err := runner.BuildCloud(ctx, freqs, opts)
//	artifacts, err := runner.Render(ctx, c, opts)
package pipeline

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/layout"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
	"github.com/matzehuels/tagcloud/pkg/style"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultMaxWords caps the number of words in a cloud.
	DefaultMaxWords = 150

	// DefaultExtension is the source used for inline text.
	DefaultExtension = ".txt"

	// DefaultFontWeight is the typeface words are drawn in.
	DefaultFontWeight = "bold"

	// DefaultScale is the raster scale factor.
	DefaultScale = 1.0
)

// Limits keep a single request's layout and raster cost bounded.
const (
	MaxWordsLimit     = 1000
	MinSpiralStep     = 1e-3
	MaxAngleStep      = math.Pi
	MaxRadiusStep     = 100
	MinCompactionStep = 1e-2
	MinGridCell       = 8
	MaxGridCell       = 4096
	MaxFontSizeLimit  = 256
	MaxPadding        = 64
	MaxMargin         = 1024
	MaxScale          = 8
)

// Font weights accepted by Options.FontWeight.
const (
	FontWeightNormal = "normal"
	FontWeightBold   = "bold"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the tag cloud pipeline.
// The struct decodes from JSON (server requests), TOML, and YAML (config
// files). Zero values are replaced by defaults in [Options.SetDefaults].
type Options struct {
	// Read options
	Input         string   `json:"input,omitempty" toml:"input" yaml:"input"`
	Text          string   `json:"text,omitempty" toml:"-" yaml:"-"`
	Extension     string   `json:"extension,omitempty" toml:"extension" yaml:"extension"`
	MinLength     int      `json:"min_length,omitempty" toml:"min_length" yaml:"min_length"`
	StopWords     []string `json:"stop_words,omitempty" toml:"stop_words" yaml:"stop_words"`
	KeepStopWords bool     `json:"keep_stop_words,omitempty" toml:"keep_stop_words" yaml:"keep_stop_words"`
	KeepCase      bool     `json:"keep_case,omitempty" toml:"keep_case" yaml:"keep_case"`
	MaxWords      int      `json:"max_words,omitempty" toml:"max_words" yaml:"max_words"`

	// Layout options
	AngleStep      float64 `json:"angle_step,omitempty" toml:"angle_step" yaml:"angle_step"`
	RadiusStep     float64 `json:"radius_step,omitempty" toml:"radius_step" yaml:"radius_step"`
	CompactionStep float64 `json:"compaction_step,omitempty" toml:"compaction_step" yaml:"compaction_step"`
	NoCompaction   bool    `json:"no_compaction,omitempty" toml:"no_compaction" yaml:"no_compaction"`
	GridCell       float64 `json:"grid_cell,omitempty" toml:"grid_cell" yaml:"grid_cell"`

	// Style options
	MinFontSize float64 `json:"min_font_size,omitempty" toml:"min_font_size" yaml:"min_font_size"`
	MaxFontSize float64 `json:"max_font_size,omitempty" toml:"max_font_size" yaml:"max_font_size"`
	WordColor   string  `json:"word_color,omitempty" toml:"word_color" yaml:"word_color"`
	Background  string  `json:"background,omitempty" toml:"background" yaml:"background"`
	MinWeight   float64 `json:"min_weight,omitempty" toml:"min_weight" yaml:"min_weight"`
	FontWeight  string  `json:"font_weight,omitempty" toml:"font_weight" yaml:"font_weight"`
	Padding     int     `json:"padding,omitempty" toml:"padding" yaml:"padding"`

	// Render options
	Formats   []string `json:"formats,omitempty" toml:"formats" yaml:"formats"`
	Margin    float64  `json:"margin,omitempty" toml:"margin" yaml:"margin"`
	Scale     float64  `json:"scale,omitempty" toml:"scale" yaml:"scale"`
	Boxes     bool     `json:"boxes,omitempty" toml:"boxes" yaml:"boxes"`
	EmbedFont bool     `json:"embed_font,omitempty" toml:"embed_font" yaml:"embed_font"`

	// Refresh skips cache lookups; results are still written back.
	Refresh bool `json:"refresh,omitempty" toml:"-" yaml:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Frequencies are the counted words fed to the layout, most frequent first.
	Frequencies []words.Frequency

	// Cloud is the laid out cloud in layout coordinates.
	Cloud *cloud.Cloud

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RawWords    int
	UniqueWords int
	Placed      int
	SpiralSteps int
	ReadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the cloud came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidFormats returns the output formats the pipeline can produce.
func ValidFormats() []string {
	return sink.Formats(sink.DefaultEncoders())
}

// ValidateFormat checks that a format is valid. Aliases such as "jpg" are
// accepted.
func ValidateFormat(format string) error {
	valid := ValidFormats()
	if !slices.Contains(valid, sink.NormalizeFormat(format)) {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	var errs error
	for _, f := range formats {
		errs = multierr.Append(errs, ValidateFormat(f))
	}
	return errs
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero-valued fields with their defaults and normalizes
// format names. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
	if o.MinLength == 0 {
		o.MinLength = words.DefaultMinLength
	}
	if o.MaxWords == 0 {
		o.MaxWords = DefaultMaxWords
	}

	if o.AngleStep == 0 {
		o.AngleStep = cloud.DefaultAngleStep
	}
	if o.RadiusStep == 0 {
		o.RadiusStep = cloud.DefaultRadiusStep
	}
	if o.CompactionStep == 0 && !o.NoCompaction {
		o.CompactionStep = layout.DefaultCompactionStep
	}

	if o.MinFontSize == 0 {
		o.MinFontSize = style.DefaultMinFontSize
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = max(style.DefaultMaxFontSize, o.MinFontSize)
	}
	if o.WordColor == "" {
		o.WordColor = style.DefaultWordColor
	}
	if o.Background == "" {
		o.Background = style.DefaultBackground
	}
	if o.MinWeight == 0 {
		o.MinWeight = style.DefaultMinWeight
	}
	if o.FontWeight == "" {
		o.FontWeight = DefaultFontWeight
	}
	if o.Padding == 0 {
		o.Padding = fonts.DefaultPadding
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{sink.FormatSVG}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		if f = sink.NormalizeFormat(f); !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Margin == 0 {
		o.Margin = sink.DefaultMargin
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate reports every invalid field at once. The returned error carries
// [errors.ErrCodeInvalidConfig] and lists each problem, separated by "; ".
func (o *Options) Validate() error {
	var errs error
	add := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			add("%s must be a positive number, got %v", name, v)
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			add("%s must not be negative, got %v", name, v)
		}
	}
	within := func(name string, v, lo, hi float64) {
		if !(v >= lo && v <= hi) {
			add("%s must be within [%v, %v], got %v", name, lo, hi, v)
		}
	}

	if o.MinLength < 0 {
		add("min_length must not be negative, got %d", o.MinLength)
	}
	if o.MaxWords < 0 || o.MaxWords > MaxWordsLimit {
		add("max_words must be within [0, %d], got %d", MaxWordsLimit, o.MaxWords)
	}

	within("angle_step", o.AngleStep, MinSpiralStep, MaxAngleStep)
	within("radius_step", o.RadiusStep, MinSpiralStep, MaxRadiusStep)
	if !o.NoCompaction {
		if !(o.CompactionStep >= MinCompactionStep) || math.IsInf(o.CompactionStep, 0) {
			add("compaction_step must be at least %v, got %v", MinCompactionStep, o.CompactionStep)
		}
	}
	if o.GridCell != 0 {
		within("grid_cell", o.GridCell, MinGridCell, MaxGridCell)
	}

	positive("min_font_size", o.MinFontSize)
	positive("max_font_size", o.MaxFontSize)
	if o.MaxFontSize > MaxFontSizeLimit {
		add("max_font_size must be at most %d, got %v", MaxFontSizeLimit, o.MaxFontSize)
	}
	if o.MaxFontSize < o.MinFontSize {
		add("max_font_size %v is below min_font_size %v", o.MaxFontSize, o.MinFontSize)
	}
	if _, err := style.ParseColor(o.WordColor); err != nil {
		add("word_color: %v", errors.UserMessage(err))
	}
	if _, err := style.ParseColor(o.Background); err != nil {
		add("background: %v", errors.UserMessage(err))
	}
	if o.MinWeight < 0 || o.MinWeight > 1 {
		add("min_weight must be within [0, 1], got %v", o.MinWeight)
	}
	if o.FontWeight != FontWeightNormal && o.FontWeight != FontWeightBold {
		add("font_weight must be %q or %q, got %q", FontWeightNormal, FontWeightBold, o.FontWeight)
	}
	if o.Padding < 0 || o.Padding > MaxPadding {
		add("padding must be within [0, %d], got %d", MaxPadding, o.Padding)
	}

	errs = multierr.Append(errs, ValidateFormats(o.Formats))
	nonNegative("margin", o.Margin)
	if o.Margin > MaxMargin {
		add("margin must be at most %d, got %v", MaxMargin, o.Margin)
	}
	positive("scale", o.Scale)
	if o.Scale > MaxScale {
		add("scale must be at most %d, got %v", MaxScale, o.Scale)
	}

	if errs == nil {
		return nil
	}
	msgs := make([]string, 0, len(multierr.Errors(errs)))
	for _, e := range multierr.Errors(errs) {
		msgs = append(msgs, e.Error())
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid options: %s", strings.Join(msgs, "; "))
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// Weight returns the typeface selected by FontWeight.
func (o *Options) Weight() fonts.Weight {
	if o.FontWeight == FontWeightNormal {
		return fonts.Regular
	}
	return fonts.Bold
}

// Preprocessor returns the word filter described by the read options.
func (o *Options) Preprocessor() words.Preprocessor {
	stop := make(map[string]struct{})
	if !o.KeepStopWords {
		stop = words.DefaultStopWords()
	}
	for w := range words.StopWordSet(o.StopWords...) {
		stop[w] = struct{}{}
	}
	return words.Preprocessor{MinLength: o.MinLength, StopWords: stop, KeepCase: o.KeepCase}
}

// CloudOptions converts the layout and style options. Colors must already
// be valid; see [Options.Validate].
func (o *Options) CloudOptions(m cloud.Measurer) cloud.Options {
	wordColor, _ := style.ParseColor(o.WordColor)
	bg, _ := style.ParseColor(o.Background)
	compaction := o.CompactionStep
	if o.NoCompaction {
		compaction = 0
	}
	return cloud.Options{
		AngleStep:      o.AngleStep,
		RadiusStep:     o.RadiusStep,
		CompactionStep: compaction,
		GridCell:       o.GridCell,
		MinFontSize:    o.MinFontSize,
		MaxFontSize:    o.MaxFontSize,
		WordColor:      wordColor,
		Background:     bg,
		MinWeight:      o.MinWeight,
		Measure:        m,
	}
}

// CloudKeyOpts returns cache key options for layout computation.
func (o *Options) CloudKeyOpts() cache.CloudKeyOpts {
	compaction := o.CompactionStep
	if o.NoCompaction {
		compaction = 0
	}
	return cache.CloudKeyOpts{
		AngleStep:      o.AngleStep,
		RadiusStep:     o.RadiusStep,
		CompactionStep: compaction,
		MinFontSize:    o.MinFontSize,
		MaxFontSize:    o.MaxFontSize,
		MinWeight:      o.MinWeight,
		WordColor:      o.WordColor,
		Background:     o.Background,
		FontWeight:     o.FontWeight,
		Padding:        o.Padding,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Margin:    o.Margin,
		Scale:     o.Scale,
		Boxes:     o.Boxes,
		EmbedFont: o.EmbedFont,
	}
}
