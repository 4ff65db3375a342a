package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

const speech = `We choose to go to the moon in this decade and do the other things,
not because they are easy, but because they are hard, because that goal will
serve to organize and measure the best of our energies and skills, because
that challenge is one that we are willing to accept, one we are unwilling to
postpone, and one which we intend to win. The moon, the moon, the moon.`

func TestParseList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
		{" svg , ,png ", []string{"svg", "png"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseList(tt.input)); diff != "" {
			t.Errorf("parseList(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		count  int
		want   string
	}{
		{"derived from input", "", "docs/speech.txt", "svg", 1, "docs/speech.svg"},
		{"inline input", "", "", "png", 1, "tagcloud.png"},
		{"single output kept verbatim", "out/cloud.jpg", "speech.txt", "jpeg", 1, "out/cloud.jpg"},
		{"known extension stripped for several formats", "cloud.svg", "speech.txt", "png", 2, "cloud.png"},
		{"unknown extension kept as base", "cloud.v2", "speech.txt", "svg", 2, "cloud.v2.svg"},
		{"no extension is a base", "cloud", "speech.txt", "svg", 1, "cloud.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.count); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		formatSet bool
		want      []string
		code      errors.Code
	}{
		{"no output", "", false, nil, ""},
		{"from extension", "cloud.png", false, []string{"png"}, ""},
		{"alias", "cloud.JPG", false, []string{"jpeg"}, ""},
		{"explicit format wins", "cloud.png", true, nil, ""},
		{"unknown extension", "cloud.pdf", false, nil, errors.ErrCodeInvalidFormat},
		{"missing extension", "cloud", false, nil, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts pipeline.Options
			err := applyOutputFormat(&opts, tt.output, tt.formatSet)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("applyOutputFormat() error = %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyOutputFormat() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, opts.Formats); diff != "" {
				t.Errorf("Formats mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// =============================================================================
// Commands
// =============================================================================

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "speech.txt", speech)

	if _, err := execute(t, "--no-cache", "render", input, "-f", "svg,png,jpg"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	for _, name := range []string{"speech.svg", "speech.png", "speech.jpeg"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing output %s: %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("output %s is empty", name)
		}
	}
	svg, _ := os.ReadFile(filepath.Join(dir, "speech.svg"))
	if !bytes.Contains(svg, []byte(">moon<")) {
		t.Error("SVG does not contain the most frequent word")
	}
}

func TestRenderCommandOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "speech.txt", speech)
	output := filepath.Join(dir, "out.gif")

	if _, err := execute(t, "--no-cache", "render", input, "-o", output, "--max-words", "5"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("GIF8")) {
		t.Error("output is not a GIF")
	}
}

func TestRenderCommandUsesFileCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	input := writeFile(t, dir, "speech.txt", speech)
	output := filepath.Join(dir, "cloud.svg")

	for i := 0; i < 2; i++ {
		if _, err := execute(t, "render", input, "-o", output); err != nil {
			t.Fatalf("render #%d error: %v", i+1, err)
		}
	}
	dir, _ = cacheDir()
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Errorf("cache directory %s is empty (err %v)", dir, err)
	}
}

func TestRenderCommandConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "speech.txt", speech)
	config := writeFile(t, dir, "cloud.yaml", "formats: [json]\nmax_words: 3\nkeep_stop_words: true\nmin_length: 2\n")

	if _, err := execute(t, "--no-cache", "--config", config, "render", input); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "speech.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc struct {
		Words []struct {
			Word string `json:"word"`
		} `json:"words"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if len(doc.Words) != 3 {
		t.Fatalf("got %d words, want 3", len(doc.Words))
	}
	if doc.Words[0].Word != "the" {
		t.Errorf("first word = %q, want the (stop words kept)", doc.Words[0].Word)
	}
}

func TestRenderCommandStdin(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "tags.svg")

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--no-cache", "render", "-", "--ext", ".lst", "-o", output})
	root.SetIn(strings.NewReader("machine learning\nmachine learning\ncloud native\n"))
	root.SetOut(&bytes.Buffer{})
	if err := root.ExecuteContext(t.Context()); err != nil {
		t.Fatalf("render error: %v", err)
	}
	svg, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(">machine learning<")) {
		t.Error("line entries were not kept whole")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "speech.txt", speech)
	empty := writeFile(t, dir, "empty.txt", "the and of")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"render", filepath.Join(dir, "missing.txt")}, errors.ErrCodeFileNotFound},
		{"unsupported input", []string{"render", writeFile(t, dir, "doc.pdf", "%PDF")}, errors.ErrCodeUnsupported},
		{"no words", []string{"render", empty}, errors.ErrCodeNoWords},
		{"bad color", []string{"render", input, "--color", "blurple"}, errors.ErrCodeInvalidConfig},
		{"bad format", []string{"render", input, "-f", "pdf"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"--no-cache"}, tt.args...)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeFile(t, t.TempDir(), "speech.txt", speech)

	out, err := execute(t, "--no-cache", "layout", input, "--max-words", "4", "--margin", "0")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	var doc struct {
		Width  int     `json:"width"`
		Margin float64 `json:"margin"`
		Words  []struct {
			Word string  `json:"word"`
			X    float64 `json:"x"`
			Y    float64 `json:"y"`
		} `json:"words"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("layout output is not JSON: %v\n%s", err, out)
	}
	if len(doc.Words) != 4 {
		t.Errorf("got %d words, want 4", len(doc.Words))
	}
	if doc.Margin != 0 {
		t.Errorf("margin = %v, want 0", doc.Margin)
	}
	for _, w := range doc.Words {
		if w.X < 0 || w.Y < 0 {
			t.Errorf("word %q at (%v, %v) is outside the canvas", w.Word, w.X, w.Y)
		}
	}
}

func TestWordsCommand(t *testing.T) {
	input := writeFile(t, t.TempDir(), "speech.txt", speech)

	out, err := execute(t, "--no-cache", "words", input, "-n", "3")
	if err != nil {
		t.Fatalf("words error: %v", err)
	}
	if !strings.Contains(out, "moon") {
		t.Errorf("words output missing top word:\n%s", out)
	}
	if strings.Contains(out, "decade") {
		t.Errorf("words output not limited to 3 rows:\n%s", out)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	want := []string{"cache", "completion", "layout", "render", "serve", "words"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}
}
