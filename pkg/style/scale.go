package style

import "image/color"

// Default font size bounds in points.
const (
	DefaultMinFontSize = 12.0
	DefaultMaxFontSize = 64.0

	// DefaultMinWeight is the color weight of the rarest word.
	DefaultMinWeight = 0.35
)

// Span is the range of counts present in a cloud.
type Span struct {
	Min, Max int
}

// SpanOf returns the smallest and largest of counts. An empty input yields
// the zero Span.
func SpanOf(counts []int) Span {
	if len(counts) == 0 {
		return Span{}
	}
	s := Span{Min: counts[0], Max: counts[0]}
	for _, c := range counts[1:] {
		s.Min = min(s.Min, c)
		s.Max = max(s.Max, c)
	}
	return s
}

// Weight maps count to [0, 1] within the span. When every word has the
// same count, all words weigh 1.
func (s Span) Weight(count int) float64 {
	if s.Max <= s.Min {
		return 1
	}
	w := float64(count-s.Min) / float64(s.Max-s.Min)
	return max(0, min(1, w))
}

// FontSizer scales font sizes linearly with word frequency.
type FontSizer struct {
	Min, Max float64
}

// Size returns the font size for a word occurring count times.
func (f FontSizer) Size(count int, span Span) float64 {
	return f.Min + (f.Max-f.Min)*span.Weight(count)
}

// ColorPicker fades less frequent words toward the background.
type ColorPicker struct {
	Base       color.RGBA
	Background color.RGBA

	// MinWeight is how much of Base the rarest word keeps, in [0, 1].
	MinWeight float64
}

// Pick returns the fill color for a word occurring count times.
func (p ColorPicker) Pick(count int, span Span) color.RGBA {
	w := p.MinWeight + (1-p.MinWeight)*span.Weight(count)
	return Blend(p.Background, p.Base, w)
}
