package day

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/render"
)

// DOTOptions configures overlap diagram generation.
type DOTOptions struct {
	// Detailed includes times and resolved styles in node labels.
	// When false, only the event title is shown.
	Detailed bool
}

// ToDOT converts positioned events to Graphviz DOT format. Each event is
// a box; an edge connects two events when their time ranges overlap, so
// the connected components of the diagram are the overlap clusters. The
// resulting DOT string can be rendered with [RenderDOTSVG] or
// [RenderDOTPNG].
//
// Grouped events (markers) are drawn with dashed outlines since they do
// not participate in overlap clustering.
func ToDOT(items []layout.Styled[event.Event], opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph overlaps {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	for _, it := range items {
		label := fmtLabel(it, opts.Detailed)
		attrs := fmtAttrs(it, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", it.Event.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if overlaps(items[i].Event, items[j].Event) {
				fmt.Fprintf(&buf, "  %q -- %q;\n", items[i].Event.ID, items[j].Event.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func overlaps(a, b event.Event) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func fmtLabel(it layout.Styled[event.Event], detailed bool) string {
	title := it.Event.Title
	if title == "" {
		title = it.Event.ID
	}
	if !detailed {
		return title
	}

	parts := []string{
		fmt.Sprintf("%s - %s", it.Event.Start.Format("15:04"), it.Event.End.Format("15:04")),
		fmt.Sprintf("top: %.1f height: %.1f", it.Style.Top, it.Style.Height),
		fmt.Sprintf("width: %.1f%s offset: %.1f%s",
			it.Style.Width.Value, it.Style.Width.Unit,
			it.Style.XOffset.Value, it.Style.XOffset.Unit),
	}
	return title + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(it layout.Styled[event.Event], label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if it.Event.Type != "" {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderDOTSVG renders a DOT diagram to SVG using Graphviz.
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderDOTPNG renders a DOT diagram as PNG via SVG conversion.
// This is a convenience wrapper around [RenderDOTSVG] and [render.ToPNG].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderDOTPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderDOTSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
