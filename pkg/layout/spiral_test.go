package layout

import (
	"errors"
	"math"
	"testing"
)

func TestSpiralStartsAtOrigin(t *testing.T) {
	origin := Point{X: 3, Y: -4}
	s, err := NewSpiral(origin, 0.1, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Next(); got != origin {
		t.Errorf("first point = %v, want %v", got, origin)
	}
	if s.Steps() != 1 {
		t.Errorf("Steps() = %d, want 1", s.Steps())
	}
}

func TestSpiralRadiusGrowsWithAngle(t *testing.T) {
	s, err := NewSpiral(Point{}, 0.25, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		wantAngle := float64(i) * 0.25
		if s.Angle() != wantAngle {
			t.Fatalf("step %d: Angle() = %v, want %v", i, s.Angle(), wantAngle)
		}
		p := s.Next()
		if got, want := p.Length(), 0.5*wantAngle; math.Abs(got-want) > 1e-9 {
			t.Fatalf("step %d: distance = %v, want %v", i, got, want)
		}
	}
}

func TestSpiralResetReproducesSequence(t *testing.T) {
	s, err := NewSpiral(Point{X: 1, Y: 1}, 0.3, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	first := make([]Point, 50)
	for i := range first {
		first[i] = s.Next()
	}

	s.Reset()
	if s.Steps() != 0 || s.Radius() != 0 {
		t.Fatalf("after Reset: Steps() = %d, Radius() = %v", s.Steps(), s.Radius())
	}

	other, _ := NewSpiral(Point{X: 1, Y: 1}, 0.3, 0.1)
	for i, want := range first {
		if got := s.Next(); got != want {
			t.Fatalf("reset spiral point %d = %v, want %v", i, got, want)
		}
		if got := other.Next(); got != want {
			t.Fatalf("fresh spiral point %d = %v, want %v", i, got, want)
		}
	}
}

func TestNewSpiralRejectsDegenerateSteps(t *testing.T) {
	tests := []struct {
		name         string
		angle, radii float64
	}{
		{"zero angle", 0, 1},
		{"zero radius", 1, 0},
		{"negative angle", -0.5, 1},
		{"NaN radius", 1, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSpiral(Point{}, tt.angle, tt.radii); !errors.Is(err, ErrConfiguration) {
				t.Errorf("NewSpiral() error = %v, want ErrConfiguration", err)
			}
		})
	}
}
