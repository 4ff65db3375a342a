// Package layout implements the circular cloud layouter: it places
// axis-aligned rectangles one at a time so that none of them overlap and the
// union of all rectangles stays compact and roughly circular around a fixed
// origin.
//
// # Overview
//
// A [Layouter] owns three pieces of state:
//
//   - the origin, fixed at construction
//   - the placed set, in insertion order
//   - a [Spiral] cursor that survives between placements
//
// Each call to [Layouter.PlaceNext] validates the requested [Size], then:
//
//  1. The first rectangle is centered exactly on the origin.
//  2. Every later rectangle advances the spiral until a candidate center yields a
//     rectangle that intersects nothing already placed.
//  3. Compaction pulls that provisional rectangle toward the origin in fixed
//     steps, keeping the last position that is still free.
//
// # Tuning
//
// The spiral's angle and radius steps trade quality for speed: smaller steps
// visit more candidates and give a tighter cloud. Both must be strictly
// positive; a zero step makes the spiral degenerate and [New] rejects it with
// [ErrConfiguration].
//
//	l, err := layout.New(layout.Point{}, 0.1, 0.05)
//	if err != nil {
//	    return err
//	}
//	r, err := l.PlaceNext(layout.Size{Width: 40, Height: 12})
//
// # Overlap Testing
//
// Overlap is positive-area intersection; rectangles sharing an edge do not
// overlap. By default placed rectangles are scanned linearly, which is fine
// for clouds of a few hundred words. [WithGridIndex] swaps in a uniform grid
// for larger inputs without changing any placement.
//
// # Concurrency
//
// A Layouter is not safe for concurrent use. Callers that share one must
// serialize calls to PlaceNext themselves.
package layout
