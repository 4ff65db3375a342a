// Package fonts provides the typefaces used to measure and draw words.
//
// The Go fonts shipped with golang.org/x/image are compiled into the binary,
// so measurement is identical on every machine and the raster renderer
// draws with exactly the metrics the layout was computed from. SVG output
// can embed the same font as a base64 data URL.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Weight selects a typeface.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// String returns the CSS font-weight keyword.
func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "normal"
}

// FontFamily is the CSS font-family name for the embedded fonts.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for SVG viewers without the embedded font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// DPI is the resolution faces are created at. At 72 DPI one point is one
// pixel, so font sizes and layout units coincide.
const DPI = 72

type parsed struct {
	once sync.Once
	font *opentype.Font
	err  error
}

var (
	regular parsed
	bold    parsed
)

// TTF returns the raw TrueType data for w.
func TTF(w Weight) []byte {
	if w == Bold {
		return gobold.TTF
	}
	return goregular.TTF
}

// Font returns the parsed font for w. Parsing happens once per weight.
func Font(w Weight) (*opentype.Font, error) {
	p := &regular
	if w == Bold {
		p = &bold
	}
	p.once.Do(func() {
		p.font, p.err = opentype.Parse(TTF(w))
		if p.err != nil {
			p.err = fmt.Errorf("parse %s font: %w", w, p.err)
		}
	})
	return p.font, p.err
}

// NewFace returns a face for w at size points. Faces are not safe for
// concurrent use; callers that share one must serialize access.
func NewFace(w Weight, size float64) (font.Face, error) {
	f, err := Font(w)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face at %.1fpt: %w", size, err)
	}
	return face, nil
}

// Cache for base64-encoded fonts (computed once on first access).
var (
	ttfBase64     [2]string
	ttfBase64Once [2]sync.Once
)

// TTFBase64 returns the TrueType data for w as a base64 string.
// The result is cached after first computation.
func TTFBase64(w Weight) string {
	i := 0
	if w == Bold {
		i = 1
	}
	ttfBase64Once[i].Do(func() {
		ttfBase64[i] = base64.StdEncoding.EncodeToString(TTF(w))
	})
	return ttfBase64[i]
}
