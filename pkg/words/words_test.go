package words

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// =============================================================================
// Sources
// =============================================================================

func TestTextSource(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"simple", "the quick brown fox", []string{"the", "quick", "brown", "fox"}},
		{"punctuation", "Hello, world! (again)", []string{"Hello", "world", "again"}},
		{"apostrophes and hyphens", "don't over-think it", []string{"don't", "over-think", "it"}},
		{"multiline", "one\ntwo\n\nthree", []string{"one", "two", "three"}},
		{"unicode", "café naïve Ünïcode", []string{"café", "naïve", "Ünïcode"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TextSource{}.Read(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Read() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineSource(t *testing.T) {
	got, err := LineSource{}.Read(strings.NewReader("  alpha \n\nbeta gamma\n\t\n"))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	want := []string{"alpha", "beta gamma"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONSource(t *testing.T) {
	got, err := JSONSource{}.Read(strings.NewReader(`["go", "rust", "go"]`))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if diff := cmp.Diff([]string{"go", "rust", "go"}, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}

	if _, err := (JSONSource{}).Read(strings.NewReader(`{"not": "an array"}`)); err == nil {
		t.Error("Read() expected error for object input")
	}
}

// =============================================================================
// Registry
// =============================================================================

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(DefaultSources()...)

	tests := []struct {
		ext  string
		want string
		ok   bool
	}{
		{".txt", "text", true},
		{".TXT", "text", true},
		{".md", "text", true},
		{".lst", "lines", true},
		{".json", "json", true},
		{".pdf", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			src, ok := reg.Lookup(tt.ext)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.ext, ok, tt.ok)
			}
			if ok && src.Name() != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.ext, src.Name(), tt.want)
			}
		})
	}
}

func TestRegistryExtensions(t *testing.T) {
	reg := NewRegistry(LineSource{}, JSONSource{})
	want := []string{".json", ".lst", ".words"}
	if diff := cmp.Diff(want, reg.Extensions()); diff != "" {
		t.Errorf("Extensions() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryLaterSourceWins(t *testing.T) {
	reg := NewRegistry(TextSource{}, stubSource{name: "override", exts: []string{".txt"}})
	src, _ := reg.Lookup(".txt")
	if src.Name() != "override" {
		t.Errorf("Lookup(.txt) = %s, want override", src.Name())
	}
}

func TestRegistryReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "speech.txt")
	if err := os.WriteFile(path, []byte("we choose to go to the moon"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := NewRegistry(DefaultSources()...)
	got, err := reg.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(got) != 7 {
		t.Errorf("ReadFile() returned %d words, want 7", len(got))
	}
}

func TestRegistryReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(DefaultSources()...)

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", filepath.Join(dir, "missing.txt"), errors.ErrCodeFileNotFound},
		{"unsupported extension", filepath.Join(dir, "doc.pdf"), errors.ErrCodeUnsupported},
		{"no extension", filepath.Join(dir, "README"), errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.ReadFile(tt.path)
			if err == nil {
				t.Fatal("ReadFile() expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestRegistryReadWrapsDecodeErrors(t *testing.T) {
	reg := NewRegistry(DefaultSources()...)
	_, err := reg.Read(".json", strings.NewReader("not json"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Read() error = %v, want code %s", err, errors.ErrCodeInvalidInput)
	}
}

type stubSource struct {
	name string
	exts []string
}

func (s stubSource) Name() string         { return s.name }
func (s stubSource) Extensions() []string { return s.exts }
func (s stubSource) Read(r io.Reader) ([]string, error) {
	return nil, nil
}

// =============================================================================
// Preprocessing
// =============================================================================

func TestPreprocessor(t *testing.T) {
	tests := []struct {
		name string
		p    Preprocessor
		in   []string
		want []string
	}{
		{
			name: "zero value keeps everything but blanks",
			p:    Preprocessor{KeepCase: true},
			in:   []string{"A", "", "--", "b"},
			want: []string{"A", "b"},
		},
		{
			name: "folds case",
			p:    Preprocessor{},
			in:   []string{"Go", "GO", "go"},
			want: []string{"go", "go", "go"},
		},
		{
			name: "trims surrounding punctuation",
			p:    Preprocessor{},
			in:   []string{"'quoted'", "-dash-", "mid-word", "end."},
			want: []string{"quoted", "dash", "mid-word", "end"},
		},
		{
			name: "min length counts runes",
			p:    Preprocessor{MinLength: 3},
			in:   []string{"ab", "abc", "été", "é"},
			want: []string{"abc", "été"},
		},
		{
			name: "stop words after folding",
			p:    Preprocessor{StopWords: StopWordSet("The", "and")},
			in:   []string{"THE", "cat", "And", "dog"},
			want: []string{"cat", "dog"},
		},
		{
			name: "normalizes to NFC",
			p:    Preprocessor{},
			in:   []string{"café"},
			want: []string{"café"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Process(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Process() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultPreprocessor(t *testing.T) {
	in := []string{"The", "Go", "gopher", "and", "the", "Gopher", "is", "happy"}
	got := DefaultPreprocessor().Process(in)
	want := []string{"gopher", "gopher", "happy"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultStopWordsFresh(t *testing.T) {
	a := DefaultStopWords()
	delete(a, "the")
	if _, ok := DefaultStopWords()["the"]; !ok {
		t.Error("DefaultStopWords() shares state between calls")
	}
}

// =============================================================================
// Counting
// =============================================================================

func TestCount(t *testing.T) {
	got := Count([]string{"b", "a", "c", "a", "b", "a"})
	want := []Frequency{{"a", 3}, {"b", 2}, {"c", 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Count() mismatch (-want +got):\n%s", diff)
	}
}

func TestCountTiesAlphabetical(t *testing.T) {
	got := Count([]string{"zeta", "alpha", "mu", "alpha", "zeta", "mu"})
	want := []Frequency{{"alpha", 2}, {"mu", 2}, {"zeta", 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Count() mismatch (-want +got):\n%s", diff)
	}
}

func TestCountEmpty(t *testing.T) {
	if got := Count(nil); len(got) != 0 {
		t.Errorf("Count(nil) = %v, want empty", got)
	}
}

func TestTop(t *testing.T) {
	freqs := []Frequency{{"a", 3}, {"b", 2}, {"c", 1}}
	tests := []struct {
		n    int
		want int
	}{
		{0, 3},
		{-1, 3},
		{1, 1},
		{2, 2},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		if got := Top(freqs, tt.n); len(got) != tt.want {
			t.Errorf("Top(%d) len = %d, want %d", tt.n, len(got), tt.want)
		}
	}
}

func TestTotal(t *testing.T) {
	if got := Total([]Frequency{{"a", 3}, {"b", 2}}); got != 5 {
		t.Errorf("Total() = %d, want 5", got)
	}
}
