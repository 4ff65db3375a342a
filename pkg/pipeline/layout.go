package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/words"
)

const keyTypeCloud = "cloud"

// BuildCloudWithCacheInfo lays out freqs with caching and returns cache hit
// info. The cache key covers the frequencies and every option that changes
// placement or color.
func (r *Runner) BuildCloudWithCacheInfo(ctx context.Context, freqs []words.Frequency, opts Options) (*cloud.Cloud, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	wordsHash, err := cache.HashJSON(freqs)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash word frequencies")
	}
	key := r.Keyer.CloudKey(wordsHash, opts.CloudKeyOpts())

	if data, hit := r.cacheGet(ctx, keyTypeCloud, key, opts.Refresh); hit {
		var c cloud.Cloud
		if err := json.Unmarshal(data, &c); err == nil {
			return &c, true, nil
		}
		r.Logger.Warn("discarding unreadable cached cloud", "key", key)
	}

	c, err := r.layout(ctx, freqs, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(c); err == nil {
		r.cacheSet(ctx, keyTypeCloud, key, data, cache.TTLCloud)
	}
	return c, false, nil
}

// BuildCloud is a convenience wrapper that calls BuildCloudWithCacheInfo and
// discards the cache hit info.
func (r *Runner) BuildCloud(ctx context.Context, freqs []words.Frequency, opts Options) (*cloud.Cloud, error) {
	c, _, err := r.BuildCloudWithCacheInfo(ctx, freqs, opts)
	return c, err
}

func (r *Runner) layout(ctx context.Context, freqs []words.Frequency, opts Options) (c *cloud.Cloud, err error) {
	r.hooks.Pipeline.OnLayoutStart(ctx, len(freqs))
	start := time.Now()
	defer func() {
		placed, steps := 0, 0
		if c != nil {
			placed, steps = len(c.Tags), c.SpiralSteps
		}
		r.hooks.Pipeline.OnLayoutComplete(ctx, placed, steps, time.Since(start), err)
	}()

	m := fonts.NewMeasurer(opts.Weight(), opts.Padding)
	defer m.Close()

	c, err = cloud.Build(ctx, freqs, opts.CloudOptions(m))
	return c, stageError(err, "layout")
}
