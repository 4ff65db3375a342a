package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Default colors for words and background.
const (
	DefaultWordColor  = "midnightblue"
	DefaultBackground = "white"
)

// ParseColor parses an SVG color name ("steelblue") or a hex color
// ("#38f", "#3388ff"). Names are matched case insensitively.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "unknown color: %q", s)
}

// MustParseColor is like ParseColor but panics on error. It is intended for
// package-level defaults.
func MustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (color.RGBA, error) {
	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color: %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color: %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex formats c as #rrggbb, ignoring alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes from toward to by t in [0, 1]. t is clamped.
func Blend(from, to color.RGBA, t float64) color.RGBA {
	t = max(0, min(1, t))
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.RGBA{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B), A: mix(from.A, to.A)}
}
