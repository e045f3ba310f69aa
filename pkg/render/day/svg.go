package day

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/timegrid"
)

const (
	defaultWidth       = 800.0
	defaultHeight      = 1200.0
	defaultGutterWidth = 60.0
	titleHeight        = 36.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width  float64
	height float64
	gutter float64
	title  string
}

// WithSize sets the overall SVG dimensions in pixels.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width = width; r.height = height }
}

// WithGutterWidth sets the width of the hour-label gutter.
func WithGutterWidth(w float64) SVGOption {
	return func(r *svgRenderer) { r.gutter = w }
}

// WithTitle adds a heading above the column.
func WithTitle(title string) SVGOption {
	return func(r *svgRenderer) { r.title = title }
}

// RenderSVG draws positioned events as a single day column. The grid
// supplies the visible window for hour labels; percentage styles are
// resolved against the column area right of the time gutter.
func RenderSVG(items []layout.Styled[event.Event], grid *timegrid.Grid, opts ...SVGOption) []byte {
	r := svgRenderer{width: defaultWidth, height: defaultHeight, gutter: defaultGutterWidth}
	for _, opt := range opts {
		opt(&r)
	}

	top := 0.0
	if r.title != "" {
		top = titleHeight
	}
	colX := r.gutter
	colWidth := r.width - r.gutter
	colHeight := r.height - top

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	buf.WriteString(`  <style>
    .grid-line { stroke: #e0e0e0; stroke-width: 1; }
    .hour-label { font: 11px sans-serif; fill: #666; }
    .event { fill: #3174ad; fill-opacity: 0.85; stroke: #265985; rx: 3; }
    .event-title { font: 12px sans-serif; fill: #fff; }
    .title { font: bold 16px sans-serif; fill: #222; }
  </style>
`)

	if r.title != "" {
		fmt.Fprintf(&buf, "  <text class=\"title\" x=\"%.1f\" y=\"%.1f\">%s</text>\n",
			colX, titleHeight-12, html.EscapeString(r.title))
	}

	renderGutter(&buf, grid, colX, top, r.width, colHeight)

	for _, it := range items {
		renderEvent(&buf, it, colX, top, colWidth, colHeight)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderGutter draws one line and label per hour of the visible window.
func renderGutter(buf *bytes.Buffer, grid *timegrid.Grid, colX, top, width, colHeight float64) {
	start := grid.WindowStart()
	end := grid.WindowEnd()
	total := end.Sub(start)
	if total <= 0 {
		return
	}

	first := start.Truncate(time.Hour)
	if first.Before(start) {
		first = first.Add(time.Hour)
	}
	for t := first; !t.After(end); t = t.Add(time.Hour) {
		y := top + colHeight*float64(t.Sub(start))/float64(total)
		fmt.Fprintf(buf, "  <line class=\"grid-line\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
			colX, y, width, y)
		fmt.Fprintf(buf, "  <text class=\"hour-label\" x=\"%.1f\" y=\"%.1f\" text-anchor=\"end\">%s</text>\n",
			colX-6, y+4, t.Format("15:04"))
	}
}

func renderEvent(buf *bytes.Buffer, it layout.Styled[event.Event], colX, top, colWidth, colHeight float64) {
	x := colX + resolve(it.Style.XOffset, colWidth)
	w := resolve(it.Style.Width, colWidth)
	y := top + it.Style.Top/100*colHeight
	h := it.Style.Height / 100 * colHeight

	fmt.Fprintf(buf, "  <rect class=\"event\" id=\"event-%s\" x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\"/>\n",
		html.EscapeString(it.Event.ID), x, y, w, h)

	if it.Event.Title != "" && h >= 14 {
		fmt.Fprintf(buf, "  <text class=\"event-title\" x=\"%.1f\" y=\"%.1f\">%s</text>\n",
			x+4, y+13, html.EscapeString(it.Event.Title))
	}
}

// resolve converts a styled dimension into pixels. Percent values scale
// against the column width; pixel and unitless values pass through.
func resolve(d layout.Dimension, colWidth float64) float64 {
	if d.Unit == layout.UnitPercent {
		return d.Value / 100 * colWidth
	}
	return d.Value
}
