package fonts

import (
	"encoding/base64"
	"sync"
	"testing"
)

func TestFontParsesOnce(t *testing.T) {
	for _, w := range []Weight{Regular, Bold} {
		a, err := Font(w)
		if err != nil {
			t.Fatalf("Font(%s) error: %v", w, err)
		}
		b, _ := Font(w)
		if a != b {
			t.Errorf("Font(%s) returned different fonts on repeated calls", w)
		}
	}
}

func TestTTFBase64(t *testing.T) {
	got := TTFBase64(Bold)
	data, err := base64.StdEncoding.DecodeString(got)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data) != len(TTF(Bold)) {
		t.Errorf("decoded %d bytes, want %d", len(data), len(TTF(Bold)))
	}
	if TTFBase64(Regular) == got {
		t.Error("regular and bold encodings should differ")
	}
}

func TestWeightString(t *testing.T) {
	if Regular.String() != "normal" || Bold.String() != "bold" {
		t.Errorf("Weight.String() = %s/%s, want normal/bold", Regular, Bold)
	}
}

func TestMeasure(t *testing.T) {
	m := NewMeasurer(Regular, 0)
	defer m.Close()

	small, err := m.Measure("cloud", 12)
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if !small.Valid() {
		t.Fatalf("Measure() = %v, want positive size", small)
	}

	large, _ := m.Measure("cloud", 48)
	if large.Width <= small.Width || large.Height <= small.Height {
		t.Errorf("Measure(48pt) = %v, want larger than Measure(12pt) = %v", large, small)
	}

	longer, _ := m.Measure("clouds and more clouds", 12)
	if longer.Width <= small.Width {
		t.Errorf("longer word width %d, want > %d", longer.Width, small.Width)
	}
	if longer.Height != small.Height {
		t.Errorf("height depends on text: %d vs %d", longer.Height, small.Height)
	}
}

func TestMeasurePadding(t *testing.T) {
	bare := NewMeasurer(Regular, 0)
	padded := NewMeasurer(Regular, 3)

	a, _ := bare.Measure("word", 20)
	b, _ := padded.Measure("word", 20)
	if b.Width != a.Width+6 || b.Height != a.Height+6 {
		t.Errorf("padded = %v, want %v grown by 6", b, a)
	}

	asc0, _ := bare.Ascent(20)
	asc3, _ := padded.Ascent(20)
	if asc3-asc0 != 3 {
		t.Errorf("Ascent() padding = %v, want 3", asc3-asc0)
	}
}

func TestMeasureEmptyWord(t *testing.T) {
	m := NewMeasurer(Bold, 0)
	s, err := m.Measure("", 16)
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if s.Width < 1 {
		t.Errorf("Width = %d, want at least 1", s.Width)
	}
}

func TestMeasureConcurrent(t *testing.T) {
	m := NewMeasurer(Regular, DefaultPadding)
	want, _ := m.Measure("gopher", 24)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.Measure("gopher", 24)
			if err != nil || got != want {
				t.Errorf("Measure() = %v, %v; want %v", got, err, want)
			}
		}()
	}
	wg.Wait()
}
