package layout

import (
	"math/rand/v2"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	base := RectAt(Point{}, Size{Width: 10, Height: 10})

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"contained", RectAt(Point{X: 1, Y: 1}, Size{Width: 2, Height: 2}), true},
		{"partial", RectAt(Point{X: 8, Y: 8}, Size{Width: 10, Height: 10}), true},
		{"touching right edge", RectAt(Point{X: 10, Y: 0}, Size{Width: 10, Height: 10}), false},
		{"touching bottom edge", RectAt(Point{X: 0, Y: 10}, Size{Width: 10, Height: 10}), false},
		{"touching corner", RectAt(Point{X: 10, Y: 10}, Size{Width: 10, Height: 10}), false},
		{"disjoint", RectAt(Point{X: 30, Y: 0}, Size{Width: 10, Height: 10}), false},
		{"overlap in x only", RectAt(Point{X: 2, Y: 20}, Size{Width: 10, Height: 10}), false},
		{"odd width sharing an edge", RectAt(Point{X: 5.5, Y: 0}, Size{Width: 1, Height: 3}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("symmetric Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersects(t *testing.T) {
	placed := []Rect{
		RectAt(Point{}, Size{Width: 4, Height: 4}),
		RectAt(Point{X: 10}, Size{Width: 4, Height: 4}),
	}

	if Intersects(RectAt(Point{X: 5}, Size{Width: 2, Height: 2}), placed) {
		t.Error("gap candidate should not intersect")
	}
	if !Intersects(RectAt(Point{X: 9}, Size{Width: 2, Height: 2}), placed) {
		t.Error("candidate inside second rect should intersect")
	}
	if Intersects(RectAt(Point{}, Size{Width: 1, Height: 1}), nil) {
		t.Error("empty placed set should never intersect")
	}
}

func TestGridIndexAgreesWithScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	randRect := func() Rect {
		return RectAt(
			Point{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100},
			Size{Width: 1 + rng.IntN(30), Height: 1 + rng.IntN(30)},
		)
	}

	for _, cellSize := range []float64{1, 7.5, 64} {
		scan := newScanIndex()
		grid := newGridIndex(cellSize)
		for i := 0; i < 120; i++ {
			r := randRect()
			scan.Insert(r)
			grid.Insert(r)
		}
		if grid.Len() != scan.Len() {
			t.Fatalf("grid Len() = %d, want %d", grid.Len(), scan.Len())
		}
		for i := 0; i < 2000; i++ {
			q := randRect()
			if got, want := grid.Intersects(q), scan.Intersects(q); got != want {
				t.Fatalf("cell %v: grid.Intersects(%v) = %v, scan = %v", cellSize, q, got, want)
			}
		}
	}
}
