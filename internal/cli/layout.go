package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/pipeline"
)

// layoutCommand creates the layout command for computing day layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		startClock string
		endClock   string
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "layout [calendar.ics|url]",
		Short: "Compute the positioned layout for one calendar day",
		Long: `Compute the positioned layout for one calendar day.

The layout command reads an ICS calendar (local file, https:// or webcal://
feed), expands recurring events for the requested day, and computes absolute
positions (top, height, width, x-offset) for every event, resolving overlaps
into side-by-side columns. The output is a layout.json document that can be
rendered to SVG/PNG using the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Source = args[0]
			}
			var err error
			if opts.StartMinute, err = parseClock(startClock, opts.StartMinute); err != nil {
				return err
			}
			if opts.EndMinute, err = parseClock(endClock, opts.EndMinute); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <date>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-fetch the feed, bypassing cached responses")

	// Day selection flags
	cmd.Flags().StringVarP(&opts.Date, "date", "d", time.Now().Format("2006-01-02"), "day to lay out (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Timezone, "timezone", opts.Timezone, "IANA display timezone (default: local)")

	// Grid flags
	cmd.Flags().StringVar(&startClock, "start", "", "window start as HH:MM (default 00:00)")
	cmd.Flags().StringVar(&endClock, "end", "", "window end as HH:MM (default 24:00)")
	cmd.Flags().IntVar(&opts.StepMinutes, "step", opts.StepMinutes, "slot granularity in minutes")
	cmd.Flags().IntVar(&opts.Timeslots, "timeslots", opts.Timeslots, "slots per visual row")

	return cmd
}

// runLayout executes the load and layout stages and writes the layout document.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %s...", opts.Date))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = opts.Date + ".layout.json"
	}

	if err := writeFileAtomic(outputPath, result.Artifacts[pipeline.FormatJSON]); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.EventCount, len(result.Styled), result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", "daygrid render "+outputPath)

	return nil
}

// parseClock converts an "HH:MM" flag value to minutes from midnight.
// An empty value keeps the fallback.
func parseClock(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid time %q (expected HH:MM)", s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 24 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid time %q (expected HH:MM)", s)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid time %q (expected HH:MM)", s)
	}
	return hours*60 + minutes, nil
}

// layoutBasePath strips the .layout.json suffix (or any extension) from a
// layout file path for deriving sibling output names.
func layoutBasePath(input string) string {
	base := strings.TrimSuffix(input, ".layout.json")
	if base == input {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	return base
}
