package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/ics"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/pipeline"
)

// showCommand creates the show command for printing a layout as a table.
func (c *CLI) showCommand() *cobra.Command {
	var noCache bool
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "show [calendar.ics|url]",
		Short: "Print the computed day layout as a table",
		Long: `Print the computed day layout as a table.

Without --date, the command lists the days the calendar covers and opens an
interactive picker when there is more than one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Source = args[0]
			}
			return c.runShow(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Date, "date", "d", "", "day to show (YYYY-MM-DD); prompts if the calendar spans several days")
	cmd.Flags().StringVar(&opts.Timezone, "timezone", opts.Timezone, "IANA display timezone (default: local)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-fetch the feed, bypassing cached responses")

	return cmd
}

// runShow resolves the day (interactively if needed), computes the layout,
// and prints it.
func (c *CLI) runShow(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if opts.Date == "" {
		date, err := c.pickDate(ctx, opts, runner)
		if err != nil {
			return err
		}
		if date == "" {
			return nil // picker dismissed
		}
		opts.Date = date
	}

	opts.Logger = c.Logger
	events, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}
	styled, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, events, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	fmt.Println(StyleTitle.Render("Day layout " + opts.Date))
	fmt.Println(renderLayoutTable(styled))
	printStats(len(events), len(styled), cacheHit)
	return nil
}

// renderLayoutTable formats positioned events as a bordered table.
func renderLayoutTable(styled []layout.Styled[event.Event]) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(styled))
	for _, it := range styled {
		span := it.Event.Start.Format("15:04") + "–" + it.Event.End.Format("15:04")
		if it.Event.AllDay {
			span = "all day"
		}
		rows = append(rows, []string{
			span,
			it.Event.Title,
			fmt.Sprintf("%.1f%%", it.Style.Top),
			fmt.Sprintf("%.1f%%", it.Style.Height),
			fmtDimension(it.Style.Width),
			fmtDimension(it.Style.XOffset),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Time", "Event", "Top", "Height", "Width", "X-Offset").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleValue
			}
			return StyleDim
		}).
		Render()
}

// fmtDimension formats a style dimension with its unit.
func fmtDimension(d layout.Dimension) string {
	switch d.Unit {
	case layout.UnitPercent:
		return fmt.Sprintf("%.1f%%", d.Value)
	case layout.UnitPixel:
		return fmt.Sprintf("%.0fpx", d.Value)
	default:
		return fmt.Sprintf("%.1f", d.Value)
	}
}

// pickDate determines which day to show. Single-day calendars resolve
// immediately; multi-day calendars open the interactive picker.
func (c *CLI) pickDate(ctx context.Context, opts pipeline.Options, runner *pipeline.Runner) (string, error) {
	body, err := c.readSource(ctx, opts, runner)
	if err != nil {
		return "", err
	}
	raw, err := ics.Parse(body)
	if err != nil {
		return "", err
	}

	days := candidateDays(raw)
	if len(days) == 0 {
		return "", errors.New(errors.ErrCodeInvalidCalendar, "calendar contains no events")
	}
	if len(days) == 1 {
		return days[0].Date, nil
	}

	model := newDayListModel(days)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("day picker: %w", err)
	}
	if m, ok := final.(dayListModel); ok && m.Selected != "" {
		return m.Selected, nil
	}
	return "", nil
}

// readSource fetches the raw calendar body for day discovery.
func (c *CLI) readSource(ctx context.Context, opts pipeline.Options, runner *pipeline.Runner) ([]byte, error) {
	if opts.Source == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "source is required")
	}
	if feeds := runner.Feeds; feeds != nil && isFeedSource(opts.Source) {
		return feeds.Fetch(ctx, opts.Source, opts.Refresh)
	}
	body, err := os.ReadFile(opts.Source)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read calendar %s", opts.Source)
	}
	return body, nil
}

func isFeedSource(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "webcal://")
}

// dayOption is one selectable day with its event count.
type dayOption struct {
	Date   string
	Events int
}

// candidateDays lists the distinct days covered by the calendar, sorted
// ascending. Recurring events count toward the day of their first start.
func candidateDays(raw []ics.RawEvent) []dayOption {
	counts := map[string]int{}
	for _, ev := range raw {
		counts[ev.Start.Format("2006-01-02")]++
	}

	days := make([]dayOption, 0, len(counts))
	for date, n := range counts {
		days = append(days, dayOption{Date: date, Events: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
