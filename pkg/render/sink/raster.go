package sink

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
)

// Encoder writes an image in one raster format.
type Encoder func(w io.Writer, img image.Image) error

// Encoders maps format names to encoders.
type Encoders map[string]Encoder

// DefaultEncoders returns a fresh map of the built-in raster encoders.
func DefaultEncoders() Encoders {
	return Encoders{
		FormatPNG: png.Encode,
		FormatJPEG: func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
		},
		FormatGIF: func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		},
		FormatBMP: bmp.Encode,
		FormatTIFF: func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		},
	}
}

// RasterOption configures raster rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	margin    float64
	scale     float64
	showBoxes bool
	encoders  Encoders
}

// WithRasterMargin sets the space left around the cloud.
func WithRasterMargin(m float64) RasterOption { return func(r *rasterRenderer) { r.margin = m } }

// WithScale sets the raster scale factor (default 1.0). A scale of 2
// doubles the pixel dimensions and the font sizes.
func WithScale(s float64) RasterOption { return func(r *rasterRenderer) { r.scale = s } }

// WithRasterBoxes outlines each word's layout rectangle.
func WithRasterBoxes() RasterOption { return func(r *rasterRenderer) { r.showBoxes = true } }

// WithEncoders replaces the encoder map.
func WithEncoders(enc Encoders) RasterOption { return func(r *rasterRenderer) { r.encoders = enc } }

// RenderRaster draws c and encodes it in format.
func RenderRaster(c *cloud.Cloud, format string, opts ...RasterOption) ([]byte, error) {
	r := rasterRenderer{margin: DefaultMargin, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.encoders == nil {
		r.encoders = DefaultEncoders()
	}
	if !(r.scale > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster scale must be positive, got %v", r.scale)
	}

	format = NormalizeFormat(format)
	enc, ok := r.encoders[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no raster encoder for format %q", format)
	}

	img, err := r.draw(c)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := enc(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}

func (r *rasterRenderer) draw(c *cloud.Cloud) (image.Image, error) {
	placed := c.Translate(r.margin)
	canvas := c.Canvas(r.margin)
	s := r.scale

	dc := gg.NewContext(int(float64(canvas.Width)*s+0.5), int(float64(canvas.Height)*s+0.5))
	dc.SetColor(placed.Background)
	dc.Clear()

	if r.showBoxes {
		dc.SetRGB255(0xd0, 0xd0, 0xd0)
		dc.SetLineWidth(0.5 * s)
		for _, t := range placed.Tags {
			dc.DrawRectangle(t.Rect.Left()*s, t.Rect.Top()*s, t.Rect.Width()*s, t.Rect.Height()*s)
			dc.Stroke()
		}
	}

	faces := make(map[float64]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, t := range placed.Tags {
		size := t.FontSize * s
		face, ok := faces[size]
		if !ok {
			var err error
			if face, err = fonts.NewFace(placed.Weight, size); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
			}
			faces[size] = face
		}
		dc.SetFontFace(face)
		dc.SetColor(t.Color)
		dc.DrawStringAnchored(t.Word, t.Rect.Center.X*s, (t.Rect.Top()+t.Baseline)*s, 0.5, 0)
	}
	return dc.Image(), nil
}
