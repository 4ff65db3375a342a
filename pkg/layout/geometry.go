package layout

import "math"

// Point is a position in layout space. The Y axis points down, matching
// image coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Mul scales p by s.
func (p Point) Mul(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

// Length returns the Euclidean norm of p.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

// Size is the requested extent of a rectangle. Both dimensions must be
// positive for a placement to succeed.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Rect is an axis-aligned rectangle described by its center and size.
// A placed Rect never changes.
type Rect struct {
	Center Point `json:"center"`
	Size   Size  `json:"size"`
}

// RectAt returns the rectangle of size s centered on c.
func RectAt(c Point, s Size) Rect { return Rect{Center: c, Size: s} }

// Left returns the minimum X of the rectangle.
func (r Rect) Left() float64 { return r.Center.X - float64(r.Size.Width)/2 }

// Right returns the maximum X of the rectangle.
func (r Rect) Right() float64 { return r.Center.X + float64(r.Size.Width)/2 }

// Top returns the minimum Y of the rectangle.
func (r Rect) Top() float64 { return r.Center.Y - float64(r.Size.Height)/2 }

// Bottom returns the maximum Y of the rectangle.
func (r Rect) Bottom() float64 { return r.Center.Y + float64(r.Size.Height)/2 }

// Width returns the horizontal extent as a float.
func (r Rect) Width() float64 { return float64(r.Size.Width) }

// Height returns the vertical extent as a float.
func (r Rect) Height() float64 { return float64(r.Size.Height) }

// Overlaps reports whether r and o share a region of positive area.
// Rectangles that only touch along an edge or a corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect { return Rect{Center: r.Center.Add(d), Size: r.Size} }

// Box is a bounding box in min/max form. Bounding boxes of a cloud are not
// generally integral in size, so Box is kept separate from Rect.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoxOf returns the bounding box of r.
func BoxOf(r Rect) Box {
	return Box{MinX: r.Left(), MinY: r.Top(), MaxX: r.Right(), MaxY: r.Bottom()}
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	return Box{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Width returns the horizontal span of b.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical span of b.
func (b Box) Height() float64 { return b.MaxY - b.MinY }
