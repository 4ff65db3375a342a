// Package style decides how each word of a cloud looks: its font size and
// its color, both derived from how often the word occurs relative to the
// rest of the cloud.
//
// Frequencies are first reduced to a [Span] (the smallest and largest count
// in the cloud). A [FontSizer] then interpolates linearly between its
// minimum and maximum font size, and a [ColorPicker] fades rarer words
// toward the background color:
//
//	span := style.SpanOf(counts)
//	size := style.FontSizer{Min: 12, Max: 64}.Size(count, span)
//	fill := picker.Pick(count, span)
//
// Colors are parsed with [ParseColor], which accepts SVG color names as
// well as #rgb and #rrggbb hex notation.
package style
