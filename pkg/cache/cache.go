// Package cache provides caching for the day-view layout pipeline.
//
// The pipeline caches at three levels:
//
//   - Feed bodies: raw ICS documents fetched over HTTP
//   - Layouts: computed day-view geometry for a set of events
//   - Artifacts: rendered outputs (SVG, PNG, JSON)
//
// Backends implement the [Cache] interface. [FileCache] stores entries on
// disk for CLI usage, [RedisCache] serves shared deployments, and
// [NullCache] disables caching entirely.
//
// The [Keyer] interface centralizes key construction so that all backends
// and callers agree on how cache keys are derived from inputs.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per pipeline stage. Feeds change more often than computed
// layouts, and artifacts are cheap to keep around.
const (
	TTLFeed     = 1 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface all cache backends implement.
// Values are opaque byte slices; callers handle serialization.
// A ttl of 0 means the entry never expires.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; expired entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures the layout parameters that affect cache keys.
// Two layouts with the same events but different grid settings must not
// share a cache entry.
type LayoutKeyOpts struct {
	StepMinutes int `json:"step_minutes"`
	Timeslots   int `json:"timeslots"`
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// ArtifactKeyOpts captures the render parameters that affect cache keys.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Keyer generates cache keys for the different pipeline stages.
type Keyer interface {
	// FeedKey generates a key for a fetched ICS feed body.
	// The namespace distinguishes sources that share a URL space.
	FeedKey(namespace, url string) string

	// EventsKey generates a key for the expanded event set of one day.
	// The feedHash is the content hash of the source feed.
	EventsKey(feedHash, date string) string

	// LayoutKey generates a key for computed layout geometry.
	// The eventsHash is the content hash of the event set.
	LayoutKey(eventsHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// The layoutHash is the content hash of the layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation.
// Keys embed a stage prefix and a SHA-256 hash of the inputs, so keys stay
// filesystem-safe and collision-resistant regardless of input length.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FeedKey generates a key for a fetched ICS feed body.
// Feed keys keep the namespace readable for cache inspection.
func (k *DefaultKeyer) FeedKey(namespace, url string) string {
	return "feed:" + namespace + ":" + Hash([]byte(url))
}

// EventsKey generates a key for the expanded event set of one day.
func (k *DefaultKeyer) EventsKey(feedHash, date string) string {
	return hashKey("events", feedHash, date)
}

// LayoutKey generates a key for computed layout geometry.
func (k *DefaultKeyer) LayoutKey(eventsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", eventsHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
