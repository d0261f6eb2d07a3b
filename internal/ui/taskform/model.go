package taskform

import (
	"errors"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/planner"
	"github.com/tmoreno/studyplanner/internal/theme"
	"github.com/tmoreno/studyplanner/internal/validate"
)

// SubmittedMsg is dispatched when the form completes. EditID is empty
// for a create.
type SubmittedMsg struct {
	EditID string
	Input  planner.TaskInput
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	dueDate     string
	duration    string
	tag         string
	description string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	editID string
	width  int
	height int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editID = ""
	*m.fb = formBindings{duration: "1"}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editID = task.ID
	*m.fb = formBindings{
		title:       task.Title,
		dueDate:     task.DueDate,
		duration:    formatHours(task.DurationHours),
		tag:         task.Tag,
		description: task.Description,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editID != "" {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&m.fb.title).
				Validate(fieldValidator("title")),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.dueDate).
				Validate(fieldValidator("dueDate")),
			huh.NewInput().
				Title("Duration (hours)").
				Placeholder("e.g. 2.5").
				Value(&m.fb.duration).
				Validate(fieldValidator("duration")),
			huh.NewInput().
				Title("Tag").
				Placeholder("e.g. Math-Homework").
				Value(&m.fb.tag).
				Validate(fieldValidator("tag")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description).
				Validate(fieldValidator("description")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	in := planner.TaskInput{
		Title:       m.fb.title,
		DueDate:     m.fb.dueDate,
		Duration:    m.fb.duration,
		Tag:         m.fb.tag,
		Description: m.fb.description,
	}
	editID := m.editID
	return func() tea.Msg { return SubmittedMsg{EditID: editID, Input: in} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// fieldValidator adapts the pure field validators to huh's Validate.
func fieldValidator(field string) func(string) error {
	return func(s string) error {
		if res := validate.Field(field, s); !res.Valid {
			return errors.New(res.Message)
		}
		return nil
	}
}

// formatHours mirrors the accepted input syntax: plain decimal, no
// unit suffix.
func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
