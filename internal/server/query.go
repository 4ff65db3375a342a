package server

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// applyQuery sets the options named in q. Parameter names match the JSON
// field names of [pipeline.Options]; "format" is accepted as an alias for
// "formats". Every malformed or unknown parameter is reported.
func applyQuery(q url.Values, opts *pipeline.Options) error {
	var errs error
	seen := make(map[string]bool, len(q))

	str := func(name string, dst *string) {
		seen[name] = true
		if v, ok := lastValue(q, name); ok {
			*dst = v
		}
	}
	list := func(name string, dst *[]string) {
		seen[name] = true
		var out []string
		for _, v := range q[name] {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		if len(out) > 0 {
			*dst = out
		}
	}
	integer := func(name string, dst *int) {
		seen[name] = true
		if v, ok := lastValue(q, name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %q is not an integer", name, v))
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		seen[name] = true
		if v, ok := lastValue(q, name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %q is not a number", name, v))
				return
			}
			*dst = f
		}
	}
	boolean := func(name string, dst *bool) {
		seen[name] = true
		if v, ok := lastValue(q, name); ok {
			if v == "" {
				*dst = true
				return
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %q is not a boolean", name, v))
				return
			}
			*dst = b
		}
	}

	str("extension", &opts.Extension)
	integer("min_length", &opts.MinLength)
	list("stop_words", &opts.StopWords)
	boolean("keep_stop_words", &opts.KeepStopWords)
	boolean("keep_case", &opts.KeepCase)
	integer("max_words", &opts.MaxWords)

	float("angle_step", &opts.AngleStep)
	float("radius_step", &opts.RadiusStep)
	float("compaction_step", &opts.CompactionStep)
	boolean("no_compaction", &opts.NoCompaction)
	float("grid_cell", &opts.GridCell)

	float("min_font_size", &opts.MinFontSize)
	float("max_font_size", &opts.MaxFontSize)
	str("word_color", &opts.WordColor)
	str("background", &opts.Background)
	float("min_weight", &opts.MinWeight)
	str("font_weight", &opts.FontWeight)
	integer("padding", &opts.Padding)

	list("formats", &opts.Formats)
	list("format", &opts.Formats)
	float("margin", &opts.Margin)
	float("scale", &opts.Scale)
	boolean("boxes", &opts.Boxes)
	boolean("embed_font", &opts.EmbedFont)
	boolean("refresh", &opts.Refresh)

	var unknown []string
	for name := range q {
		if !seen[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = multierr.Append(errs, fmt.Errorf("unknown parameter %q", name))
	}

	if errs == nil {
		return nil
	}
	msgs := make([]string, 0, len(multierr.Errors(errs)))
	for _, e := range multierr.Errors(errs) {
		msgs = append(msgs, e.Error())
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid query: %s", strings.Join(msgs, "; "))
}

func lastValue(q url.Values, name string) (string, bool) {
	vs, ok := q[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[len(vs)-1]), true
}
