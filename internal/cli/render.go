package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/pipeline"
	"github.com/travelboss/daygrid/pkg/render/day"
)

// renderCommand creates the render command for producing visual output
// from a computed layout document.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		title      string
		width      float64
		height     float64
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a computed day layout to SVG or PNG",
		Long: `Render a computed day layout to SVG or PNG.

The render command takes a layout.json file (produced by 'layout') and
renders it visually. The layout document contains all positioning
information, so this step is purely about drawing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			for _, f := range formats {
				if f != pipeline.FormatSVG && f != pipeline.FormatPNG {
					return errors.New(errors.ErrCodeInvalidFormat,
						"invalid format: %q (must be svg or png)", f)
				}
			}
			if width != 0 {
				opts.Width = width
			}
			if height != 0 {
				opts.Height = height
			}
			return c.runRender(cmd.Context(), args[0], formats, output, title, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	cmd.Flags().StringVar(&title, "title", "", "title drawn above the day column")
	cmd.Flags().Float64Var(&width, "width", 0, "output width in pixels")
	cmd.Flags().Float64Var(&height, "height", 0, "output height in pixels")

	return cmd
}

// runRender loads the layout document and draws it in each requested format.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, output, title string, opts pipeline.Options) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	doc, err := day.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	svgOpts := []day.SVGOption{day.WithSize(opts.Width, opts.Height)}
	switch {
	case title != "":
		svgOpts = append(svgOpts, day.WithTitle(title))
	case doc.Date != "":
		svgOpts = append(svgOpts, day.WithTitle(doc.Date))
	}

	prog := newProgress(c.Logger)
	for _, format := range formats {
		var out []byte
		switch format {
		case pipeline.FormatSVG:
			out = day.RenderSVG(doc.Items, doc.Grid, svgOpts...)
		case pipeline.FormatPNG:
			out, err = day.RenderPNG(doc.Items, doc.Grid, day.WithPNGSVGOptions(svgOpts...))
			if err != nil {
				return fmt.Errorf("render png: %w", err)
			}
		}

		path := renderOutputPath(input, output, format, len(formats) > 1)
		if err := writeFileAtomic(path, out); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printSuccess("Rendered %s", format)
		printFile(path)
	}
	prog.done(fmt.Sprintf("Rendered %d events", len(doc.Items)))

	return ctx.Err()
}

// renderOutputPath derives the output file name for one format.
func renderOutputPath(input, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := layoutBasePath(input)
	if output != "" {
		base = output
	}
	return base + "." + format
}

// writeFileAtomic writes data via a temp file and rename so a failed run
// never leaves a truncated output behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
