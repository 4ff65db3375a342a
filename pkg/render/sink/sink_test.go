package sink

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"testing"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/layout"
)

func testCloud() *cloud.Cloud {
	return &cloud.Cloud{
		Tags: []cloud.Tag{
			{
				Word: "gopher", Count: 5, FontSize: 40,
				Color:    color.RGBA{0x19, 0x19, 0x70, 0xff},
				Rect:     layout.RectAt(layout.Pt(0, 0), layout.Size{Width: 120, Height: 44}),
				Baseline: 34,
			},
			{
				Word: "a<b&c", Count: 1, FontSize: 12,
				Color:    color.RGBA{0x80, 0x80, 0x80, 0xff},
				Rect:     layout.RectAt(layout.Pt(0, 30), layout.Size{Width: 40, Height: 16}),
				Baseline: 12,
			},
		},
		Bounds:     layout.Box{MinX: -60, MinY: -22, MaxX: 60, MaxY: 38},
		Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
		Weight:     fonts.Bold,
	}
}

// =============================================================================
// Formats
// =============================================================================

func TestFormatFromPath(t *testing.T) {
	enc := DefaultEncoders()
	tests := []struct {
		path string
		want string
	}{
		{"cloud.svg", FormatSVG},
		{"cloud.json", FormatJSON},
		{"out/cloud.PNG", FormatPNG},
		{"cloud.jpg", FormatJPEG},
		{"cloud.jpeg", FormatJPEG},
		{"cloud.gif", FormatGIF},
		{"cloud.bmp", FormatBMP},
		{"cloud.tif", FormatTIFF},
		{"cloud.tiff", FormatTIFF},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path, enc)
			if err != nil {
				t.Fatalf("FormatFromPath(%q) error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestFormatFromPathErrors(t *testing.T) {
	for _, path := range []string{"cloud", "cloud.wmf", "cloud.pdf"} {
		t.Run(path, func(t *testing.T) {
			_, err := FormatFromPath(path, DefaultEncoders())
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("FormatFromPath(%q) error = %v, want code %s", path, err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestFormatsWithoutEncoders(t *testing.T) {
	got := Formats(nil)
	if len(got) != 2 || got[0] != FormatJSON || got[1] != FormatSVG {
		t.Errorf("Formats(nil) = %v, want [json svg]", got)
	}
	if _, err := FormatFromPath("cloud.png", nil); err == nil {
		t.Error("FormatFromPath(png) without encoders should fail")
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"svg":  "image/svg+xml",
		"JPG":  "image/jpeg",
		"tif":  "image/tiff",
		"json": "application/json",
		"xyz":  "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %s, want %s", format, got, want)
		}
	}
}

// =============================================================================
// SVG
// =============================================================================

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testCloud(), WithMargin(10)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 140 80" width="140" height="80">`) {
		t.Errorf("unexpected svg header: %s", strings.SplitN(svg, "\n", 2)[0])
	}
	if !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("missing background fill")
	}
	if !strings.Contains(svg, `font-weight="bold"`) {
		t.Error("missing font weight")
	}
	// gopher: center (0,0) moves to (70,32); top -22 -> 10; baseline 10+34.
	if !strings.Contains(svg, `<text x="70.00" y="44.00" font-size="40.0" fill="#191970" data-count="5">gopher</text>`) {
		t.Errorf("gopher text not rendered as expected:\n%s", svg)
	}
	if !strings.Contains(svg, ">a&lt;b&amp;c</text>") {
		t.Error("word text not escaped")
	}
	if strings.Contains(svg, `class="boxes"`) {
		t.Error("boxes rendered without WithBoxes")
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("font embedded without WithEmbeddedFont")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testCloud(), WithBoxes(), WithEmbeddedFont(), WithFontFamily("Fira Sans")))

	if strings.Count(svg, "<rect x=") != 2 {
		t.Errorf("want 2 box outlines, got %d", strings.Count(svg, "<rect x="))
	}
	if !strings.Contains(svg, "base64,"+fonts.TTFBase64(fonts.Bold)) {
		t.Error("embedded font missing")
	}
	if !strings.Contains(svg, `font-family="Fira Sans"`) {
		t.Error("font family override missing")
	}
}

// =============================================================================
// Raster
// =============================================================================

func TestRenderRaster(t *testing.T) {
	for _, format := range []string{FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF} {
		t.Run(format, func(t *testing.T) {
			data, err := RenderRaster(testCloud(), format, WithRasterMargin(10))
			if err != nil {
				t.Fatalf("RenderRaster() error: %v", err)
			}
			cfg, decoded, err := image.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("DecodeConfig() error: %v", err)
			}
			if decoded != format {
				t.Errorf("decoded format = %s, want %s", decoded, format)
			}
			if cfg.Width != 140 || cfg.Height != 80 {
				t.Errorf("size = %dx%d, want 140x80", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestRenderRasterScale(t *testing.T) {
	data, err := RenderRaster(testCloud(), "PNG", WithRasterMargin(10), WithScale(2), WithRasterBoxes())
	if err != nil {
		t.Fatalf("RenderRaster() error: %v", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 280 || cfg.Height != 160 {
		t.Errorf("size = %dx%d, want 280x160", cfg.Width, cfg.Height)
	}
}

func TestRenderRasterDrawsWords(t *testing.T) {
	data, err := RenderRaster(testCloud(), FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	inked := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, g, bl, _ := img.At(x, y).RGBA(); r != 0xffff || g != 0xffff || bl != 0xffff {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("rendered image is blank")
	}
}

func TestRenderRasterErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		opts   []RasterOption
		code   errors.Code
	}{
		{"unknown format", "wmf", nil, errors.ErrCodeInvalidFormat},
		{"svg is not raster", FormatSVG, nil, errors.ErrCodeInvalidFormat},
		{"empty encoders", FormatPNG, []RasterOption{WithEncoders(Encoders{})}, errors.ErrCodeInvalidFormat},
		{"zero scale", FormatPNG, []RasterOption{WithScale(0)}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderRaster(testCloud(), tt.format, tt.opts...)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("RenderRaster() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

// =============================================================================
// JSON
// =============================================================================

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testCloud(), WithJSONMargin(10))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 140 {
		t.Errorf("Width = %v, want 140", out.Width)
	}
	if out.Height != 80 {
		t.Errorf("Height = %v, want 80", out.Height)
	}
	if out.Background != "#ffffff" {
		t.Errorf("Background = %s, want #ffffff", out.Background)
	}
	if out.Font.Weight != "bold" {
		t.Errorf("Font.Weight = %s, want bold", out.Font.Weight)
	}
	if len(out.Words) != 2 {
		t.Fatalf("Words count = %d, want 2", len(out.Words))
	}
	w := out.Words[0]
	if w.Word != "gopher" || w.X != 10 || w.Y != 10 || w.Width != 120 || w.Color != "#191970" {
		t.Errorf("Words[0] = %+v", w)
	}
}

func TestRenderJSONIndent(t *testing.T) {
	data, err := RenderJSON(testCloud(), WithJSONIndent())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("\n  \"width\"")) {
		t.Errorf("expected indented output, got %s", data)
	}
}
