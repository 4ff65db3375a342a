// Package cloud assembles a tag cloud from ranked word frequencies.
//
// [Build] sizes and colors every word with the style package, measures it
// with a [Measurer], and feeds the resulting boxes to a circular layouter in
// descending frequency order, so the most frequent words sit closest to the
// center:
//
//	freqs := words.Count(raw)
//	c, err := cloud.Build(ctx, freqs, cloud.DefaultOptions(fonts.NewMeasurer(fonts.Bold, 2)))
//
// The resulting [Cloud] is in layout coordinates, centered on the origin.
// Renderers call [Cloud.Translate] to move it into image space.
package cloud
