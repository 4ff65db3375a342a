package words

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// maxLine bounds a single scanned line.
const maxLine = 1 << 20

// TextSource reads running prose. Words are maximal runs of letters, digits,
// apostrophes, and hyphens.
type TextSource struct{}

func (TextSource) Name() string         { return "text" }
func (TextSource) Extensions() []string { return []string{".txt", ".md", ".text"} }

func (TextSource) Read(r io.Reader) ([]string, error) {
	var out []string
	err := scanLines(r, func(line string) {
		out = append(out, strings.FieldsFunc(line, isSeparator)...)
	})
	return out, err
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’' && r != '-'
}

// LineSource reads one word per line. Surrounding whitespace is trimmed and
// blank lines are skipped; everything else on the line is kept verbatim.
type LineSource struct{}

func (LineSource) Name() string         { return "lines" }
func (LineSource) Extensions() []string { return []string{".lst", ".words"} }

func (LineSource) Read(r io.Reader) ([]string, error) {
	var out []string
	err := scanLines(r, func(line string) {
		if w := strings.TrimSpace(line); w != "" {
			out = append(out, w)
		}
	})
	return out, err
}

// JSONSource reads a JSON array of strings.
type JSONSource struct{}

func (JSONSource) Name() string         { return "json" }
func (JSONSource) Extensions() []string { return []string{".json"} }

func (JSONSource) Read(r io.Reader) ([]string, error) {
	var out []string
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	return out, nil
}

func scanLines(r io.Reader, fn func(string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		fn(sc.Text())
	}
	return sc.Err()
}
