// Package cache stores computed clouds and rendered artifacts between runs.
//
// Laying out a large word list and rasterizing it are the expensive stages of
// the pipeline; both are pure functions of their inputs, so results are keyed
// by a content hash of those inputs and reused.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from stage inputs. Keys for the same inputs are
// stable across processes and backends:
//
//	k := cache.NewKeyer("")
//	key := k.CloudKey(wordsHash, cache.CloudKeyOpts{AngleStep: 0.1, RadiusStep: 0.05})
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value. hit is false when the key is absent or
	// expired; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs for each cached stage.
const (
	TTLCloud    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// CloudKey identifies a laid-out cloud from the hash of its word
	// frequencies and the options that influence placement.
	CloudKey(wordsHash string, opts CloudKeyOpts) string

	// ArtifactKey identifies a rendered artifact from the hash of the cloud
	// and the render options.
	ArtifactKey(cloudHash string, opts ArtifactKeyOpts) string
}

// CloudKeyOpts are the options that change where words are placed or how
// they are colored.
type CloudKeyOpts struct {
	AngleStep      float64 `json:"angle_step"`
	RadiusStep     float64 `json:"radius_step"`
	CompactionStep float64 `json:"compaction_step"`
	MinFontSize    float64 `json:"min_font_size"`
	MaxFontSize    float64 `json:"max_font_size"`
	MinWeight      float64 `json:"min_weight"`
	WordColor      string  `json:"word_color"`
	Background     string  `json:"background"`
	FontWeight     string  `json:"font_weight"`
	Padding        int     `json:"padding"`
}

// ArtifactKeyOpts are the options that change the rendered bytes of a cloud.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Margin    float64 `json:"margin"`
	Scale     float64 `json:"scale"`
	Boxes     bool    `json:"boxes"`
	EmbedFont bool    `json:"embed_font"`
}

// DefaultKeyer builds keys of the form "kind:sha256(inputs)" behind an
// optional prefix.
type DefaultKeyer struct {
	prefix string
}

// NewKeyer returns a keyer that prepends prefix to every key. A non-empty
// prefix isolates tenants sharing one backend, e.g. "tagcloud:".
func NewKeyer(prefix string) *DefaultKeyer {
	return &DefaultKeyer{prefix: prefix}
}

// CloudKey implements Keyer.
func (k *DefaultKeyer) CloudKey(wordsHash string, opts CloudKeyOpts) string {
	return k.prefix + hashKey("cloud", wordsHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(cloudHash string, opts ArtifactKeyOpts) string {
	return k.prefix + hashKey("artifact", cloudHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
