package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
)

const keyTypeArtifact = "artifact"

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is true only when every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *cloud.Cloud, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize cloud for cache key")
	}
	cloudHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(cloudHash, opts.ArtifactKeyOpts(format))
		if data, hit := r.cacheGet(ctx, keyTypeArtifact, key, opts.Refresh); hit {
			artifacts[format] = data
		} else {
			missing = append(missing, format)
		}
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := r.render(ctx, c, missing, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(cloudHash, opts.ArtifactKeyOpts(format))
		r.cacheSet(ctx, keyTypeArtifact, key, data, cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c *cloud.Cloud, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, c *cloud.Cloud, formats []string, opts Options) (out map[string][]byte, err error) {
	r.hooks.Pipeline.OnRenderStart(ctx, formats)
	start := time.Now()
	defer func() {
		r.hooks.Pipeline.OnRenderComplete(ctx, formats, time.Since(start), err)
	}()

	out = make(map[string][]byte, len(formats))
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := RenderFormat(c, format, opts, r.Encoders)
		if err != nil {
			return nil, err
		}
		out[format] = data
	}
	return out, nil
}

// RenderFormat renders c in a single format without caching.
func RenderFormat(c *cloud.Cloud, format string, opts Options, enc sink.Encoders) ([]byte, error) {
	switch format = sink.NormalizeFormat(format); format {
	case sink.FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithMargin(opts.Margin)}
		if opts.Boxes {
			svgOpts = append(svgOpts, sink.WithBoxes())
		}
		if opts.EmbedFont {
			svgOpts = append(svgOpts, sink.WithEmbeddedFont())
		}
		return sink.RenderSVG(c, svgOpts...), nil
	case sink.FormatJSON:
		return sink.RenderJSON(c, sink.WithJSONMargin(opts.Margin), sink.WithJSONIndent())
	default:
		rasterOpts := []sink.RasterOption{
			sink.WithRasterMargin(opts.Margin),
			sink.WithScale(opts.Scale),
			sink.WithEncoders(enc),
		}
		if opts.Boxes {
			rasterOpts = append(rasterOpts, sink.WithRasterBoxes())
		}
		return sink.RenderRaster(c, format, rasterOpts...)
	}
}
