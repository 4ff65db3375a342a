package layout

import "math"

// Spiral generates candidate centers along an Archimedean spiral around an
// origin. The radius grows linearly with the angle, so candidates move away
// from the origin in roughly non-decreasing distance.
//
// The sequence is infinite and deterministic: a new Spiral, or one that was
// Reset, yields exactly the same points.
type Spiral struct {
	origin     Point
	angleStep  float64
	radiusStep float64

	angle float64
	steps int
}

// NewSpiral creates a spiral around origin that advances angleStep radians per
// step and grows radiusStep units of radius per radian.
func NewSpiral(origin Point, angleStep, radiusStep float64) (*Spiral, error) {
	if err := checkStep("angle step", angleStep); err != nil {
		return nil, err
	}
	if err := checkStep("radius step", radiusStep); err != nil {
		return nil, err
	}
	return &Spiral{origin: origin, angleStep: angleStep, radiusStep: radiusStep}, nil
}

// Next returns the current candidate and advances the cursor. The first
// candidate is the origin itself.
func (s *Spiral) Next() Point {
	r := s.Radius()
	p := Point{
		X: s.origin.X + r*math.Cos(s.angle),
		Y: s.origin.Y + r*math.Sin(s.angle),
	}
	s.steps++
	// Recomputed from the step count, never accumulated.
	s.angle = float64(s.steps) * s.angleStep
	return p
}

// Reset moves the cursor back to the origin.
func (s *Spiral) Reset() {
	s.angle = 0
	s.steps = 0
}

// Angle returns the angle of the next candidate, in radians.
func (s *Spiral) Angle() float64 { return s.angle }

// Radius returns the distance of the next candidate from the origin.
func (s *Spiral) Radius() float64 { return s.radiusStep * s.angle }

// Steps returns how many candidates have been produced since construction or
// the last Reset.
func (s *Spiral) Steps() int { return s.steps }
