// Package render groups the output stages of a tag cloud.
//
// Rendering itself lives in the [sink] subpackage: vector output as SVG,
// raster output drawn with gg and encoded as PNG, JPEG, or GIF, and a JSON
// document listing every placed word. All sinks take a [cloud.Cloud] and
// share its image coordinate system, so a word sits at the same spot in
// every format.
//
//	svg := sink.RenderSVG(c, sink.WithMargin(16))
//	png, err := sink.RenderRaster(c, "png", sink.WithScale(2))
//	doc, err := sink.RenderJSON(c, sink.WithJSONIndent())
//
// [sink]: github.com/matzehuels/tagcloud/pkg/render/sink
// [cloud.Cloud]: github.com/matzehuels/tagcloud/pkg/cloud#Cloud
package render
