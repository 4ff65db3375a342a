package words

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Source reads raw, unnormalized words from a document.
type Source interface {
	// Name identifies the source in logs, e.g. "text".
	Name() string

	// Extensions lists the lower-case file extensions, with the leading dot,
	// this source accepts.
	Extensions() []string

	// Read extracts words from r in document order.
	Read(r io.Reader) ([]string, error)
}

// DefaultSources returns a fresh list of the built-in sources.
func DefaultSources() []Source {
	return []Source{TextSource{}, LineSource{}, JSONSource{}}
}

// Registry resolves sources by file extension.
type Registry struct {
	byExt map[string]Source
}

// NewRegistry builds a registry from sources. When two sources claim the
// same extension, the later one wins.
func NewRegistry(sources ...Source) *Registry {
	r := &Registry{byExt: make(map[string]Source)}
	for _, s := range sources {
		for _, ext := range s.Extensions() {
			r.byExt[strings.ToLower(ext)] = s
		}
	}
	return r
}

// Lookup returns the source registered for ext (".txt"). Matching is case
// insensitive.
func (r *Registry) Lookup(ext string) (Source, bool) {
	s, ok := r.byExt[strings.ToLower(ext)]
	return s, ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Read extracts words from r with the source registered for ext.
func (r *Registry) Read(ext string, rd io.Reader) ([]string, error) {
	src, ok := r.Lookup(ext)
	if !ok {
		return nil, r.unsupported(ext)
	}
	out, err := src.Read(rd)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s words", src.Name())
	}
	return out, nil
}

// ReadFile opens path and reads it with the source matching its extension.
func (r *Registry) ReadFile(path string) ([]string, error) {
	ext := filepath.Ext(path)
	if _, ok := r.Lookup(ext); !ok {
		return nil, r.unsupported(ext)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return r.Read(ext, f)
}

func (r *Registry) unsupported(ext string) error {
	supported := strings.Join(r.Extensions(), ", ")
	if ext == "" {
		return errors.New(errors.ErrCodeUnsupported, "missing extension (supported: %s)", supported)
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported extension: %q (supported: %s)", ext, supported)
}
