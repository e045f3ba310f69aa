// Package httputil provides HTTP utilities for calendar feed clients.
//
// # Overview
//
// This package provides infrastructure used by the ICS feed fetcher:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/daygrid/)
// with configurable TTL. Calendar feeds change rarely compared to how
// often a day view is re-rendered, so caching dramatically speeds up
// repeated runs and avoids hammering calendar providers.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	var body []byte
//	ok, _ := cache.Get("ics:"+url, &body) // Check cache
//	if !ok {
//	    body = fetchFeed(url)
//	    cache.Set("ics:"+url, body) // Store for later
//	}
//
// Cache keys should be namespaced by source to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures
// (network errors, 5xx responses). Wrap transient errors in
// [RetryableError] so the helper knows to try again:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchOnce(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/daygrid/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `daygrid cache clear` or by deleting the
// cache directory.
package httputil
