package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// SourceInline is the source name reported for Options.Text.
const SourceInline = "inline"

// ReadWords reads the input named by opts, normalizes the words, and returns
// the top opts.MaxWords frequencies, most frequent first. Options.Text takes
// precedence over Options.Input.
func (r *Runner) ReadWords(ctx context.Context, opts Options) ([]words.Frequency, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	freqs, _, err := r.readWords(ctx, opts)
	return freqs, err
}

// readWords expects validated options. It also returns the raw word count.
func (r *Runner) readWords(ctx context.Context, opts Options) ([]words.Frequency, int, error) {
	source := sourceName(opts)
	r.hooks.Pipeline.OnReadStart(ctx, source)
	start := time.Now()

	freqs, raw, err := r.read(ctx, opts)
	r.hooks.Pipeline.OnReadComplete(ctx, source, raw, time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}
	return freqs, raw, nil
}

func (r *Runner) read(ctx context.Context, opts Options) ([]words.Frequency, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var raw []string
	var err error
	switch {
	case opts.Text != "":
		raw, err = r.Sources.Read(opts.Extension, strings.NewReader(opts.Text))
	case opts.Input != "":
		raw, err = r.Sources.ReadFile(opts.Input)
	default:
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "no input: set a file or inline text")
	}
	if err != nil {
		return nil, 0, err
	}

	kept := opts.Preprocessor().Process(raw)
	r.Logger.Debug("preprocessed words", "source", sourceName(opts), "raw", len(raw), "kept", len(kept))

	freqs := words.Top(words.Count(kept), opts.MaxWords)
	if len(freqs) == 0 {
		return nil, len(raw), errors.New(errors.ErrCodeNoWords, "no words left after filtering %d raw words", len(raw))
	}
	return freqs, len(raw), nil
}

func sourceName(opts Options) string {
	if opts.Text != "" {
		return SourceInline
	}
	return opts.Input
}
