package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// dayListModel - Interactive day selection
// =============================================================================

// dayListModel is the bubbletea model for picking which day of a
// multi-day calendar to lay out.
type dayListModel struct {
	Days     []dayOption
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// newDayListModel creates a day list model positioned on the first day.
func newDayListModel(days []dayOption) dayListModel {
	return dayListModel{
		Days:   days,
		Height: 15,
	}
}

func (m dayListModel) Init() tea.Cmd {
	return nil
}

func (m dayListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Days)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Days[m.Cursor].Date
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m dayListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Day"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Days) {
		end = len(m.Days)
	}

	for i := m.Offset; i < end; i++ {
		d := m.Days[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%s  %s  %s",
			cursor,
			d.Date,
			weekday(d.Date),
			listDimStyle.Render(fmt.Sprintf("%d events", d.Events)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Days))))

	return b.String()
}

// weekday returns the short weekday name for a YYYY-MM-DD date.
func weekday(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}
