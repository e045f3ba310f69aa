package pipeline

import (
	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/render/day"
)

// renderFormats generates output artifacts in the requested formats.
func renderFormats(styled []layout.Styled[event.Event], opts Options) (map[string][]byte, error) {
	grid, err := buildGrid(opts)
	if err != nil {
		return nil, err
	}

	svgOpts := []day.SVGOption{day.WithSize(opts.Width, opts.Height)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, day.WithTitle(opts.Title))
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = day.RenderSVG(styled, grid, svgOpts...)
		case FormatPNG:
			data, err = day.RenderPNG(styled, grid, day.WithPNGSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = day.RenderJSON(styled, grid,
				day.WithJSONDate(opts.Date),
				day.WithJSONSource(opts.SourceName),
			)
		case FormatDOT:
			data = []byte(day.ToDOT(styled, day.DOTOptions{Detailed: true}))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
