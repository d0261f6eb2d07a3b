package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task

	// OverCap marks tasks on a day whose scheduled hours exceed the
	// daily duration cap.
	OverCap bool
}

// FilterValue returns the string used for fuzzy filtering. The list's
// built-in filtering is disabled in favor of the search engine, but
// bubbles/list requires the method regardless.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// ItemDelegate renders one task per line.
type ItemDelegate struct {
	// DateFormat is the display preference from settings
	// (model.DateFormatISO and friends).
	DateFormat string

	// TimeUnit controls how durations are shown.
	TimeUnit string

	// DueReminders toggles the overdue marker on open tasks.
	DueReminders bool
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	task := ti.Task

	prefix := "○"
	if task.Completed {
		prefix = "✓"
	}

	title := task.Title
	if task.Completed {
		title = theme.DoneStyle.Render(title)
	}

	due := d.formatDue(task)
	dueRendered := theme.DueStyle.Render(due)
	if d.DueReminders && task.Overdue() {
		dueRendered = theme.OverdueStyle.Render(due + " !")
	}

	duration := theme.HelpStyle.Render(d.formatDuration(task.DurationHours))
	if ti.OverCap {
		duration = theme.OverdueStyle.Render(d.formatDuration(task.DurationHours) + " over cap")
	}

	line := fmt.Sprintf("%s %s  %s  %s  %s",
		prefix,
		title,
		theme.TagStyle.Render(task.Tag),
		dueRendered,
		duration,
	)

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, lipgloss.NewStyle().PaddingLeft(2).Render(line))
}

// formatDue renders the due date according to the date format setting.
func (d ItemDelegate) formatDue(task model.Task) string {
	due := task.Due()
	if due.IsZero() {
		return task.DueDate
	}

	layout := model.DateLayout
	switch d.DateFormat {
	case model.DateFormatEU:
		layout = "02/01/2006"
	case model.DateFormatUS:
		layout = "01/02/2006"
	}
	return due.Format(layout)
}

// formatDuration renders the estimated effort in the configured unit.
func (d ItemDelegate) formatDuration(hours float64) string {
	if d.TimeUnit == model.TimeUnitMinutes {
		return fmt.Sprintf("%dm", int(time.Duration(hours*float64(time.Hour)).Minutes()))
	}
	return fmt.Sprintf("%.4gh", hours)
}
