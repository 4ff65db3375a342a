// Package pkg provides the core libraries for tagcloud.
//
// # Overview
//
// tagcloud turns a text document into a tag cloud: the most frequent words
// are sized by frequency and packed around a center point along an
// Archimedean spiral, the largest word first. The pkg directory is organized
// into three areas:
//
//  1. Domain logic: [words], [style], [fonts], [layout], [cloud]
//  2. Output: [render/sink]
//  3. Orchestration and infrastructure: [pipeline], [cache],
//     [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Text document (.txt, .md, .lst, .json)
//	         ↓
//	    [words] package (extract, normalize, count)
//	         ↓
//	    [style] + [fonts] packages (font size, color, measured box)
//	         ↓
//	    [layout] package (spiral placement + compaction)
//	         ↓
//	    [cloud] package (placed tags on a canvas)
//	         ↓
//	    [render/sink] package (SVG/PNG/JPEG/GIF/JSON output)
//
// # Quick Start
//
// Place rectangles directly with the layouter:
//
//	l, err := layout.New(layout.Pt(0, 0), 0.1, 0.5)
//	if err != nil {
//	    return err
//	}
//	r, err := l.PlaceNext(layout.Size{Width: 120, Height: 40})
//
// Or run the whole pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "speech.txt",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// [words]: github.com/matzehuels/tagcloud/pkg/words
// [style]: github.com/matzehuels/tagcloud/pkg/style
// [fonts]: github.com/matzehuels/tagcloud/pkg/fonts
// [layout]: github.com/matzehuels/tagcloud/pkg/layout
// [cloud]: github.com/matzehuels/tagcloud/pkg/cloud
// [render/sink]: github.com/matzehuels/tagcloud/pkg/render/sink
// [pipeline]: github.com/matzehuels/tagcloud/pkg/pipeline
// [cache]: github.com/matzehuels/tagcloud/pkg/cache
// [observability]: github.com/matzehuels/tagcloud/pkg/observability
// [errors]: github.com/matzehuels/tagcloud/pkg/errors
// [buildinfo]: github.com/matzehuels/tagcloud/pkg/buildinfo
package pkg
