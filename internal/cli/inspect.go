package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/pipeline"
	"github.com/travelboss/daygrid/pkg/render/day"
)

// inspectCommand creates the inspect command for visualizing the overlap
// structure of a day as a graph.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		noCache  bool
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "inspect [calendar.ics|url]",
		Short: "Visualize the overlap structure of a day as a graph",
		Long: `Visualize the overlap structure of a day as a graph.

Each event becomes a node; edges connect events whose times overlap (and
would therefore share a cluster in the layout). Grouped events are drawn
dashed. Useful for understanding why events got the widths and offsets
they did.

Formats: dot (Graphviz source, default), svg, png.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Source = args[0]
			}
			if format != "dot" && format != "svg" && format != "png" {
				return errors.New(errors.ErrCodeInvalidFormat,
					"invalid format: %q (must be dot, svg, or png)", format)
			}
			return c.runInspect(cmd.Context(), opts, format, output, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Date, "date", "d", time.Now().Format("2006-01-02"), "day to inspect (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Timezone, "timezone", opts.Timezone, "IANA display timezone (default: local)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout for dot if empty)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include positions and style values in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runInspect computes the layout and emits the overlap graph.
func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, format, output string, detailed, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	events, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}
	styled, err := runner.ComputeLayout(ctx, events, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	dot := day.ToDOT(styled, day.DOTOptions{Detailed: detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		if data, err = day.RenderDOTSVG(dot); err != nil {
			return fmt.Errorf("render dot svg: %w", err)
		}
	case "png":
		if data, err = day.RenderDOTPNG(dot, 2.0); err != nil {
			return fmt.Errorf("render dot png: %w", err)
		}
	}

	if output == "" && format == "dot" {
		fmt.Print(string(data))
		return nil
	}
	if output == "" {
		output = opts.Date + ".overlaps." + format
	}
	if err := writeFileAtomic(output, data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Inspected %d events", len(styled))
	printFile(output)
	return nil
}
