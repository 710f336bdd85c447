// Package cache provides byte-level caching for computed layouts and
// rendered artifacts.
//
// Layout runs are pure functions of the visible graph and the layout
// configuration, and renders are pure functions of a laid-out graph and
// the output format. Both are therefore cacheable by content hash: the
// [Keyer] derives stable keys from those inputs, and a [Cache] stores the
// serialized results. The HTTP server uses this to skip recomputation for
// repeated layout and export requests.
//
// Two implementations are provided: [FileCache] for persistent on-disk
// caching and [NullCache] for disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL support.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the inputs, beyond the graph itself, that change a
// layout result. Every tunable layout constant must appear here: two
// configurations sharing a cache must never share a key, or one serves
// positions computed under the other's settings.
type LayoutKeyOpts struct {
	Mode         string  `json:"mode"`
	HSpacing     float64 `json:"h_spacing"`
	VSpacing     float64 `json:"v_spacing"`
	LinkDistance float64 `json:"link_distance"`
	Charge       float64 `json:"charge"`
	Iterations   int     `json:"iterations"`
	RadialStep   float64 `json:"radial_step"`
}

// RenderKeyOpts are the inputs, beyond the laid-out graph, that change a
// rendered artifact.
type RenderKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the two cacheable stages.
type Keyer interface {
	// LayoutKey generates a key for a layout result. graphHash is the
	// content hash of the visible node/edge arrays before layout.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// RenderKey generates a key for a rendered artifact. layoutHash is
	// the content hash of the laid-out node/edge arrays.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a layout result.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey("render", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
