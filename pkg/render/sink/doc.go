// Package sink writes laid out clouds to output formats.
//
// Three families of output are supported:
//
//   - SVG via [RenderSVG], with text that stays selectable and scalable
//   - raster images via [RenderRaster], drawn with fogleman/gg using the
//     same embedded fonts the layout was measured with
//   - a JSON layout document via [RenderJSON], for clients that draw the
//     cloud themselves
//
// Raster encoders are looked up in an [Encoders] map passed by the caller;
// [DefaultEncoders] returns a fresh map covering PNG, JPEG, GIF, BMP, and
// TIFF. [FormatFromPath] maps an output file name to a format name.
package sink
