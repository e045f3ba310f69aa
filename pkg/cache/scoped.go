package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when the HTTP server hosts layouts for several users or
// calendar accounts that must not share cache entries.
//
// Example usage:
//
//	// User-specific keys for private calendar feeds
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for public feeds
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FeedKey generates a prefixed key for ICS feed caching.
func (k *ScopedKeyer) FeedKey(namespace, url string) string {
	return k.prefix + k.inner.FeedKey(namespace, url)
}

// EventsKey generates a prefixed key for expanded event sets.
func (k *ScopedKeyer) EventsKey(feedHash, date string) string {
	return k.prefix + k.inner.EventsKey(feedHash, date)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(eventsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(eventsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
