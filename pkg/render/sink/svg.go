package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/style"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	margin     float64
	fontFamily string
	embedFont  bool
	showBoxes  bool
}

// WithMargin sets the space left around the cloud.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithFontFamily overrides the CSS font-family of every word.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithEmbeddedFont inlines the layout font as a data URL so the SVG renders
// identically without the font installed.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithBoxes outlines each word's layout rectangle.
func WithBoxes() SVGOption { return func(r *svgRenderer) { r.showBoxes = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{margin: DefaultMargin, fontFamily: fonts.FallbackFontFamily}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func RenderSVG(c *cloud.Cloud, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	placed := c.Translate(r.margin)
	canvas := c.Canvas(r.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		canvas.Width, canvas.Height, canvas.Width, canvas.Height)

	if r.embedFont {
		renderFontFace(&buf, placed.Weight)
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", style.Hex(placed.Background))

	if r.showBoxes {
		buf.WriteString(`  <g class="boxes" fill="none" stroke="#d0d0d0" stroke-width="0.5">` + "\n")
		for _, t := range placed.Tags {
			fmt.Fprintf(&buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
				t.Rect.Left(), t.Rect.Top(), t.Rect.Width(), t.Rect.Height())
		}
		buf.WriteString("  </g>\n")
	}

	fmt.Fprintf(&buf, `  <g class="words" font-family="%s" font-weight="%s" text-anchor="middle">`+"\n",
		escapeAttr(r.fontFamily), placed.Weight)
	for _, t := range placed.Tags {
		renderWord(&buf, t)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderWord(buf *bytes.Buffer, t cloud.Tag) {
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" fill="%s" data-count="%d">`,
		t.Rect.Center.X, t.Rect.Top()+t.Baseline, t.FontSize, style.Hex(t.Color), t.Count)
	xml.EscapeText(buf, []byte(t.Word))
	buf.WriteString("</text>\n")
}

func renderFontFace(buf *bytes.Buffer, w fonts.Weight) {
	fmt.Fprintf(buf, "  <style>@font-face { font-family: '%s'; font-weight: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }</style>\n",
		fonts.FontFamily, w, fonts.TTFBase64(w))
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
