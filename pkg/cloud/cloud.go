package cloud

import (
	"context"
	"image/color"
	"math"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/layout"
	"github.com/matzehuels/tagcloud/pkg/style"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// Default spiral parameters. Layout units are pixels at 72 DPI, so one
// revolution of the default spiral widens the search by about three pixels.
const (
	DefaultAngleStep  = 0.1
	DefaultRadiusStep = 0.5
)

// Measurer sizes words for layout. [fonts.Measurer] is the standard
// implementation.
type Measurer interface {
	// Measure returns the box word occupies at size points.
	Measure(word string, size float64) (layout.Size, error)

	// Ascent returns the offset from the top of a measured box to the
	// text baseline.
	Ascent(size float64) (float64, error)
}

// Tag is one placed word.
type Tag struct {
	Word     string
	Count    int
	FontSize float64
	Color    color.RGBA
	Rect     layout.Rect

	// Baseline is the y offset of the text baseline from Rect's top edge.
	Baseline float64
}

// Cloud is a laid out set of tags.
type Cloud struct {
	Tags       []Tag
	Bounds     layout.Box
	Background color.RGBA
	Weight     fonts.Weight

	// SpiralSteps is how many spiral candidates the layout visited.
	SpiralSteps int
}

// Options configures [Build].
type Options struct {
	AngleStep      float64
	RadiusStep     float64
	CompactionStep float64 // 0 disables compaction
	GridCell       float64 // 0 scans placed words linearly

	MinFontSize float64
	MaxFontSize float64
	WordColor   color.RGBA
	Background  color.RGBA
	MinWeight   float64

	Measure Measurer
}

// DefaultOptions returns options with the default spiral and style settings.
func DefaultOptions(m Measurer) Options {
	return Options{
		AngleStep:      DefaultAngleStep,
		RadiusStep:     DefaultRadiusStep,
		CompactionStep: layout.DefaultCompactionStep,
		MinFontSize:    style.DefaultMinFontSize,
		MaxFontSize:    style.DefaultMaxFontSize,
		WordColor:      style.MustParseColor(style.DefaultWordColor),
		Background:     style.MustParseColor(style.DefaultBackground),
		MinWeight:      style.DefaultMinWeight,
		Measure:        m,
	}
}

func (o Options) layoutOptions() []layout.Option {
	var opts []layout.Option
	if o.CompactionStep > 0 {
		opts = append(opts, layout.WithCompactionStep(o.CompactionStep))
	} else {
		opts = append(opts, layout.WithoutCompaction())
	}
	if o.GridCell > 0 {
		opts = append(opts, layout.WithGridIndex(o.GridCell))
	}
	return opts
}

func (o Options) validate() error {
	switch {
	case o.Measure == nil:
		return errors.New(errors.ErrCodeInvalidConfig, "no word measurer configured")
	case !(o.MinFontSize > 0) || math.IsInf(o.MinFontSize, 0):
		return errors.New(errors.ErrCodeInvalidConfig, "min font size must be positive, got %v", o.MinFontSize)
	case !(o.MaxFontSize >= o.MinFontSize) || math.IsInf(o.MaxFontSize, 0):
		return errors.New(errors.ErrCodeInvalidConfig, "max font size %v is below min font size %v", o.MaxFontSize, o.MinFontSize)
	case o.MinWeight < 0 || o.MinWeight > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "min color weight must be within [0, 1], got %v", o.MinWeight)
	}
	return nil
}

// Build lays out freqs in the given order. Callers pass frequencies sorted
// by descending count, as returned by [words.Count]. Build returns an
// ErrCodeNoWords error when freqs is empty.
func Build(ctx context.Context, freqs []words.Frequency, opts Options) (*Cloud, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(freqs) == 0 {
		return nil, errors.New(errors.ErrCodeNoWords, "no words to lay out")
	}

	l, err := layout.New(layout.Point{}, opts.AngleStep, opts.RadiusStep, opts.layoutOptions()...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "configure layout")
	}

	counts := make([]int, len(freqs))
	for i, f := range freqs {
		counts[i] = f.Count
	}
	span := style.SpanOf(counts)
	sizer := style.FontSizer{Min: opts.MinFontSize, Max: opts.MaxFontSize}
	picker := style.ColorPicker{Base: opts.WordColor, Background: opts.Background, MinWeight: opts.MinWeight}

	c := &Cloud{
		Tags:       make([]Tag, 0, len(freqs)),
		Background: opts.Background,
	}
	if fm, ok := opts.Measure.(interface{ Weight() fonts.Weight }); ok {
		c.Weight = fm.Weight()
	}

	for _, f := range freqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		size := roundFontSize(sizer.Size(f.Count, span))
		box, err := opts.Measure.Measure(f.Word, size)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "measure %q", f.Word)
		}
		ascent, err := opts.Measure.Ascent(size)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "measure %q", f.Word)
		}
		r, err := l.PlaceNextContext(ctx, box)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSize, err, "place %q", f.Word)
		}
		c.Tags = append(c.Tags, Tag{
			Word:     f.Word,
			Count:    f.Count,
			FontSize: size,
			Color:    picker.Pick(f.Count, span),
			Rect:     r,
			Baseline: ascent,
		})
	}

	c.Bounds, _ = l.Bounds()
	c.SpiralSteps = l.SpiralSteps()
	return c, nil
}

// roundFontSize snaps to half points so measurement faces can be reused.
func roundFontSize(s float64) float64 {
	return math.Round(s*2) / 2
}

// Translate returns a copy of c moved so that its bounding box starts at
// (margin, margin).
func (c *Cloud) Translate(margin float64) *Cloud {
	d := layout.Pt(margin-c.Bounds.MinX, margin-c.Bounds.MinY)
	out := *c
	out.Tags = make([]Tag, len(c.Tags))
	for i, t := range c.Tags {
		t.Rect = t.Rect.Translate(d)
		out.Tags[i] = t
	}
	out.Bounds = layout.Box{
		MinX: c.Bounds.MinX + d.X,
		MinY: c.Bounds.MinY + d.Y,
		MaxX: c.Bounds.MaxX + d.X,
		MaxY: c.Bounds.MaxY + d.Y,
	}
	return &out
}

// Canvas returns the image size needed to draw c with margin on every side.
func (c *Cloud) Canvas(margin float64) layout.Size {
	return layout.Size{
		Width:  int(math.Ceil(c.Bounds.Width() + 2*margin)),
		Height: int(math.Ceil(c.Bounds.Height() + 2*margin)),
	}
}

// Words returns the words of c in placement order.
func (c *Cloud) Words() []string {
	out := make([]string, len(c.Tags))
	for i, t := range c.Tags {
		out[i] = t.Word
	}
	return out
}
