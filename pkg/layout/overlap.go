package layout

import "math"

// Intersects reports whether candidate overlaps any rectangle in placed.
// Edge-adjacent rectangles do not count as overlapping.
func Intersects(candidate Rect, placed []Rect) bool {
	for _, r := range placed {
		if candidate.Overlaps(r) {
			return true
		}
	}
	return false
}

// Index answers overlap queries against the placed set. Implementations must
// agree with [Intersects] for every query.
type Index interface {
	Insert(r Rect)
	Intersects(candidate Rect) bool
	Len() int
}

// scanIndex checks every placed rectangle on each query.
type scanIndex struct {
	rects []Rect
}

func newScanIndex() *scanIndex { return &scanIndex{} }

func (s *scanIndex) Insert(r Rect)                  { s.rects = append(s.rects, r) }
func (s *scanIndex) Intersects(candidate Rect) bool { return Intersects(candidate, s.rects) }
func (s *scanIndex) Len() int                       { return len(s.rects) }

// cell addresses one square of a gridIndex.
type cell struct{ x, y int }

// gridIndex buckets rectangles into square cells. A rectangle is stored in
// every cell its closed bounds touch, so any two overlapping rectangles share
// at least one cell.
type gridIndex struct {
	size  float64
	cells map[cell][]int
	rects []Rect
}

func newGridIndex(cellSize float64) *gridIndex {
	return &gridIndex{size: cellSize, cells: make(map[cell][]int)}
}

func (g *gridIndex) Insert(r Rect) {
	id := len(g.rects)
	g.rects = append(g.rects, r)
	g.each(r, func(c cell) bool {
		g.cells[c] = append(g.cells[c], id)
		return true
	})
}

func (g *gridIndex) Intersects(candidate Rect) bool {
	hit := false
	g.each(candidate, func(c cell) bool {
		for _, id := range g.cells[c] {
			if candidate.Overlaps(g.rects[id]) {
				hit = true
				return false
			}
		}
		return true
	})
	return hit
}

func (g *gridIndex) Len() int { return len(g.rects) }

// each calls fn for every cell covered by r until fn returns false.
func (g *gridIndex) each(r Rect, fn func(cell) bool) {
	x0, x1 := g.coord(r.Left()), g.coord(r.Right())
	y0, y1 := g.coord(r.Top()), g.coord(r.Bottom())
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			if !fn(cell{x, y}) {
				return
			}
		}
	}
}

func (g *gridIndex) coord(v float64) int {
	return int(math.Floor(v / g.size))
}
