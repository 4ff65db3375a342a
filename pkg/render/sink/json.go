package sink

import (
	"encoding/json"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/style"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	margin float64
	indent bool
}

// WithJSONMargin sets the margin the coordinates are offset by.
func WithJSONMargin(m float64) JSONOption { return func(r *jsonRenderer) { r.margin = m } }

// WithJSONIndent pretty-prints the document.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Margin     float64    `json:"margin"`
	Background string     `json:"background"`
	Font       jsonFont   `json:"font"`
	Words      []jsonWord `json:"words"`
}

type jsonFont struct {
	Family string `json:"family"`
	Weight string `json:"weight"`
}

type jsonWord struct {
	Word     string  `json:"word"`
	Count    int     `json:"count"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Baseline float64 `json:"baseline"`
}

// RenderJSON writes the cloud as a layout document in image coordinates:
// every word's top-left corner, size, font size, and fill color.
func RenderJSON(c *cloud.Cloud, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	placed := c.Translate(r.margin)
	canvas := c.Canvas(r.margin)
	out := jsonOutput{
		Width:      canvas.Width,
		Height:     canvas.Height,
		Margin:     r.margin,
		Background: style.Hex(placed.Background),
		Font:       jsonFont{Family: fonts.FontFamily, Weight: placed.Weight.String()},
		Words:      make([]jsonWord, 0, len(placed.Tags)),
	}
	for _, t := range placed.Tags {
		out.Words = append(out.Words, jsonWord{
			Word:     t.Word,
			Count:    t.Count,
			FontSize: t.FontSize,
			Color:    style.Hex(t.Color),
			X:        t.Rect.Left(),
			Y:        t.Rect.Top(),
			Width:    t.Rect.Size.Width,
			Height:   t.Rect.Size.Height,
			Baseline: t.Baseline,
		})
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
