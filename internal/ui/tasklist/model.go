package tasklist

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmoreno/studyplanner/internal/keys"
	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/planner"
	"github.com/tmoreno/studyplanner/internal/search"
	"github.com/tmoreno/studyplanner/internal/theme"
)

// TasksReloadedMsg is sent when the visible task list has been rebuilt.
type TasksReloadedMsg struct {
	Tasks []model.Task
}

// AddRequestedMsg asks the app to open the create form.
type AddRequestedMsg struct{}

// EditRequestedMsg asks the app to open the edit form for a task.
type EditRequestedMsg struct {
	Task model.Task
}

// completionCycle is the filter order cycled by the filter key.
var completionCycle = []string{
	search.CompletionAll,
	search.CompletionOpen,
	search.CompletionDone,
}

// Model is the main task list view component.
type Model struct {
	list        list.Model
	planner     *planner.Planner
	keys        *keys.KeyMap
	sortIndex   int
	filterIndex int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model.
func New(p *planner.Planner, k *keys.KeyMap, width, height int) Model {
	settings := p.Settings()
	delegate := ItemDelegate{
		DateFormat:   settings.DateFormat,
		TimeUnit:     settings.TimeUnit,
		DueReminders: settings.DueReminders,
	}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search title, tag, description (regex ok)..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		planner:     p,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload rebuilds the visible collection from the current state.
func (m Model) Reload() tea.Cmd {
	p := m.planner
	return func() tea.Msg {
		return TasksReloadedMsg{Tasks: p.Visible()}
	}
}

// RefreshSettings re-applies display preferences to the item delegate.
func (m *Model) RefreshSettings() {
	settings := m.planner.Settings()
	m.list.SetDelegate(ItemDelegate{
		DateFormat:   settings.DateFormat,
		TimeUnit:     settings.TimeUnit,
		DueReminders: settings.DueReminders,
	})
}

// SortLabel describes the active sort key for the header.
func (m Model) SortLabel() string {
	return fmt.Sprintf("sort: %s", search.SortKeys[m.sortIndex])
}

// FilterLabel describes the active completion filter for the header.
func (m Model) FilterLabel() string {
	return fmt.Sprintf("show: %s", completionCycle[m.filterIndex])
}

// Searching reports whether the search input currently has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Selected returns the task under the cursor.
func (m Model) Selected() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksReloadedMsg:
		overCap := m.planner.OverCapDays()
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = TaskItem{
				Task:    task,
				OverCap: !task.Completed && overCap[task.DueDate],
			}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.planner.SetQuery(m.searchInput.Value())
		return m, m.Reload()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.planner.SetQuery("")
		return m, m.Reload()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Add):
		return m, func() tea.Msg { return AddRequestedMsg{} }

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return EditRequestedMsg{Task: task} }

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.Selected()
		if !ok {
			return m, nil
		}
		p := m.planner
		return m, func() tea.Msg {
			_ = p.ToggleComplete(context.Background(), task.ID)
			return TasksReloadedMsg{Tasks: p.Visible()}
		}

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.Selected()
		if !ok {
			return m, nil
		}
		p := m.planner
		return m, func() tea.Msg {
			_ = p.DeleteTask(context.Background(), task.ID)
			return TasksReloadedMsg{Tasks: p.Visible()}
		}

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(search.SortKeys)
		m.planner.SetSortKey(search.SortKeys[m.sortIndex])
		return m, m.Reload()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filterIndex = (m.filterIndex + 1) % len(completionCycle)
		f := m.planner.Filters()
		f.Completion = completionCycle[m.filterIndex]
		m.planner.SetFilters(f)
		return m, m.Reload()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	f := m.planner.Filters()
	if m.planner.Query() != "" || f.Completion != search.CompletionAll || f.Tag != "" {
		return style.Render("No matching tasks.\nTry adjusting the search or filters.")
	}

	return style.Render("No tasks yet.\n\nPress 'a' to add your first task.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
