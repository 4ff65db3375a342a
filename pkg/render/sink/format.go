package sink

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Format names.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// DefaultMargin is the space, in pixels, left around the cloud.
const DefaultMargin = 16.0

var aliases = map[string]string{
	"jpg": FormatJPEG,
	"tif": FormatTIFF,
}

// NormalizeFormat lower-cases f and resolves aliases ("jpg" → "jpeg").
func NormalizeFormat(f string) string {
	f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
	if canonical, ok := aliases[f]; ok {
		return canonical
	}
	return f
}

// Formats returns every format the given encoders can produce, plus SVG and
// JSON, sorted.
func Formats(enc Encoders) []string {
	out := []string{FormatSVG, FormatJSON}
	for f := range enc {
		out = append(out, f)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// FormatFromPath returns the format named by path's extension. The format
// must be SVG, JSON, or have an encoder in enc.
func FormatFromPath(path string, enc Encoders) (string, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "output path %q has no extension (supported: %s)", path, strings.Join(Formats(enc), ", "))
	}
	f := NormalizeFormat(ext)
	if !slices.Contains(Formats(enc), f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format: %q (supported: %s)", ext, strings.Join(Formats(enc), ", "))
	}
	return f, nil
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch NormalizeFormat(format) {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatGIF:
		return "image/gif"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
