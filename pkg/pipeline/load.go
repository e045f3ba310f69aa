package pipeline

import (
	"context"
	"os"
	"strings"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/ics"
)

// loadBody reads the raw ICS payload from the configured source, either
// a feed URL or a local file path.
func (r *Runner) loadBody(ctx context.Context, opts Options) ([]byte, error) {
	if isFeedURL(opts.Source) {
		if r.Feeds == nil {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "no feed client configured for URL source")
		}
		return r.Feeds.Fetch(ctx, opts.Source, opts.Refresh)
	}

	if err := errors.ValidatePath(opts.Source); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(opts.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "calendar file not found: %s", opts.Source)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read calendar file")
	}
	return body, nil
}

// expandBody parses the ICS payload and expands recurrences for the
// configured day.
func expandBody(body []byte, opts Options) ([]event.Event, error) {
	raw, err := ics.Parse(body)
	if err != nil {
		return nil, err
	}
	return ics.Expand(raw, ics.ExpandConfig{
		Day:            opts.Day(),
		Location:       opts.Location(),
		MaxOccurrences: opts.MaxOccurrences,
	})
}

func isFeedURL(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "webcal://")
}
