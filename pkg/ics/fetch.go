package ics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/httputil"
)

const (
	httpTimeout = 10 * time.Second

	// maxFeedBytes bounds feed downloads. Calendar feeds beyond this size
	// indicate a misconfigured URL rather than a real calendar.
	maxFeedBytes = 10 << 20
)

// Client fetches ICS feeds over HTTP with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http  *http.Client
	cache *httputil.Cache
}

// NewClient creates a feed client with the given response cache.
// Pass nil to disable caching.
func NewClient(cache *httputil.Cache) *Client {
	return &Client{
		http:  &http.Client{Timeout: httpTimeout},
		cache: cache,
	}
}

// Fetch retrieves the raw ICS body from url.
//
// webcal:// URLs are rewritten to https:// before fetching. Transient
// failures (network errors, 5xx responses) are retried with exponential
// backoff. If refresh is false and a cached body exists, the cache is
// served without a network round trip.
func (c *Client) Fetch(ctx context.Context, url string, refresh bool) ([]byte, error) {
	url = NormalizeURL(url)
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	key := "ics:" + url
	if !refresh && c.cache != nil {
		var body []byte
		if ok, _ := c.cache.Get(key, &body); ok {
			return body, nil
		}
	}

	var body []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		var ferr error
		body, ferr = c.fetchOnce(ctx, url)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(key, body)
	}
	return body, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "feed request failed")}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFileNotFound, "feed not found: %s", url)
	case resp.StatusCode >= 500:
		return nil, &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "feed returned status %d", resp.StatusCode),
		}
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "feed read failed")}
	}
	if len(body) > maxFeedBytes {
		return nil, errors.New(errors.ErrCodeInvalidCalendar, "feed exceeds %d bytes", maxFeedBytes)
	}
	return body, nil
}

// NormalizeURL converts webcal:// subscription URLs to their https://
// equivalent. Other URLs pass through unchanged.
func NormalizeURL(url string) string {
	s := strings.TrimSpace(url)
	if rest, ok := strings.CutPrefix(s, "webcal://"); ok {
		return fmt.Sprintf("https://%s", rest)
	}
	return s
}
