package fonts

import (
	"sync"

	"golang.org/x/image/font"

	"github.com/matzehuels/tagcloud/pkg/layout"
)

// DefaultPadding is the space, in pixels, added around every measured word.
const DefaultPadding = 2

// Measurer computes the bounding size of words. Faces are created lazily
// and kept per font size. A Measurer is safe for concurrent use.
type Measurer struct {
	weight  Weight
	padding int

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewMeasurer returns a Measurer for w that pads each side of a word by
// padding pixels.
func NewMeasurer(w Weight, padding int) *Measurer {
	return &Measurer{
		weight:  w,
		padding: max(0, padding),
		faces:   make(map[float64]font.Face),
	}
}

// Weight returns the typeface the Measurer uses.
func (m *Measurer) Weight() Weight { return m.weight }

// Measure returns the size of word at size points: its advance width by
// the face's ascent plus descent, rounded up, padded on every side.
func (m *Measurer) Measure(word string, size float64) (layout.Size, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(size)
	if err != nil {
		return layout.Size{}, err
	}
	adv := font.MeasureString(face, word)
	met := face.Metrics()
	return layout.Size{
		Width:  max(1, adv.Ceil()+2*m.padding),
		Height: max(1, (met.Ascent+met.Descent).Ceil()+2*m.padding),
	}, nil
}

// Ascent returns the distance from the top of a measured box to the text
// baseline at size points, padding included.
func (m *Measurer) Ascent(size float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(size)
	if err != nil {
		return 0, err
	}
	return float64(face.Metrics().Ascent)/64 + float64(m.padding), nil
}

func (m *Measurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := NewFace(m.weight, size)
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

// Close releases every cached face.
func (m *Measurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, f := range m.faces {
		f.Close()
		delete(m.faces, size)
	}
	return nil
}
