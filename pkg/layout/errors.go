package layout

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfiguration is returned by [New] and [NewSpiral] when the spiral
	// parameters cannot guarantee progress. No layouter is created.
	ErrConfiguration = errors.New("invalid layout configuration")

	// ErrInvalidSize is returned by [Layouter.PlaceNext] for a size that is not
	// positive in both dimensions. The layouter is left unchanged.
	ErrInvalidSize = errors.New("invalid rectangle size")
)

// checkStep rejects non-positive, NaN, and infinite step values.
func checkStep(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a positive finite number, got %v", ErrConfiguration, name, v)
	}
	return nil
}

func checkSize(s Size) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %dx%d (width and height must be positive)", ErrInvalidSize, s.Width, s.Height)
	}
	return nil
}
