// Package pipeline provides the core day-view pipeline for daygrid.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Fetch an ICS feed (or accept inline events) and expand
//     recurrences into concrete instances for one day
//  2. Layout: Position the instances in the day column (overlap
//     clustering, width growth, offsets)
//  3. Render: Generate output in various formats (SVG, PNG, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "https://example.com/work.ics",
//	    Date:    "2024-03-15",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	events, err := runner.Load(ctx, opts)
//
//	// Layout with existing events
//	styled, err := runner.ComputeLayout(ctx, events, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, styled, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/travelboss/daygrid/pkg/cache"
	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/timegrid"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultStartMinute is the start of the visible window (midnight).
	DefaultStartMinute = 0

	// DefaultEndMinute is the end of the visible window (midnight next day).
	DefaultEndMinute = 24 * 60

	// DefaultWidth is the default output width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default output height in pixels.
	DefaultHeight = 1200.0

	// DefaultMaxOccurrences caps recurrence expansion per event.
	DefaultMaxOccurrences = 1000
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the day-view pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source         string        `json:"source,omitempty"`      // Feed URL (https/webcal) or local .ics path
	SourceName     string        `json:"source_name,omitempty"` // Label used in cache keys and output metadata
	Date           string        `json:"date"`                  // Day to render (YYYY-MM-DD)
	Timezone       string        `json:"timezone,omitempty"`    // IANA display timezone (default: local)
	Events         []event.Event `json:"events,omitempty"`      // Inline events, bypasses Source
	MaxOccurrences int           `json:"max_occurrences,omitempty"`
	Refresh        bool          `json:"refresh,omitempty"`

	// Layout options
	StartMinute int `json:"start_minute,omitempty"` // Window start, minutes from midnight
	EndMinute   int `json:"end_minute,omitempty"`   // Window end, minutes from midnight
	StepMinutes int `json:"step_minutes,omitempty"`
	Timeslots   int `json:"timeslots,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Events are the expanded instances for the day.
	Events []event.Event

	// EventsHash is the content hash of the expanded events.
	EventsHash string

	// Styled contains the positioned events in render order.
	Styled []layout.Styled[event.Event]

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EventCount int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether expanded events came from cache
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if err := errors.ValidateDate(o.Date); err != nil {
		return err
	}
	if o.Source == "" && len(o.Events) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "source or events is required")
	}
	if o.Timezone != "" {
		if _, err := time.LoadLocation(o.Timezone); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid timezone %q", o.Timezone)
		}
	}

	// Load defaults
	if o.MaxOccurrences == 0 {
		o.MaxOccurrences = DefaultMaxOccurrences
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.EndMinute == 0 {
		o.EndMinute = DefaultEndMinute
	}
	if o.StepMinutes == 0 {
		o.StepMinutes = timegrid.DefaultStepMinutes
	}
	if o.Timeslots == 0 {
		o.Timeslots = timegrid.DefaultTimeslots
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Window bounds are fully validated when the grid is constructed.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.StartMinute < 0 || o.EndMinute > 24*60 {
		return errors.New(errors.ErrCodeInvalidRange,
			"window [%d, %d] must lie within one day", o.StartMinute, o.EndMinute)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Location returns the display timezone.
func (o *Options) Location() *time.Location {
	if o.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Day returns the rendered day at midnight in the display timezone.
// ValidateForLoad must have accepted the date first.
func (o *Options) Day() time.Time {
	t, _ := time.ParseInLocation("2006-01-02", o.Date, o.Location())
	return t
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		StepMinutes: o.StepMinutes,
		Timeslots:   o.Timeslots,
		StartMinute: o.StartMinute,
		EndMinute:   o.EndMinute,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  int(o.Width),
		Height: int(o.Height),
	}
}
