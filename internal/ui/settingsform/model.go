package settingsform

import (
	"errors"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/theme"
	"github.com/tmoreno/studyplanner/internal/validate"
)

// SubmittedMsg carries the new settings when the form completes.
type SubmittedMsg struct {
	Settings model.Settings
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	timeUnit      string
	dateFormat    string
	dueReminders  bool
	goalAlerts    bool
	durationCap   string
	caseSensitive bool
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new settings form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form with the current settings.
func (m *Model) Start(settings model.Settings) tea.Cmd {
	*m.fb = formBindings{
		timeUnit:      settings.TimeUnit,
		dateFormat:    settings.DateFormat,
		dueReminders:  settings.DueReminders,
		goalAlerts:    settings.GoalAlerts,
		durationCap:   strconv.FormatFloat(settings.DurationCap, 'f', -1, 64),
		caseSensitive: settings.CaseSensitiveSearch,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
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

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Settings") + "\n" + m.form.View()

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
			huh.NewSelect[string]().
				Title("Time Unit").
				Options(
					huh.NewOption("Hours", model.TimeUnitHours),
					huh.NewOption("Minutes", model.TimeUnitMinutes),
				).
				Value(&m.fb.timeUnit),
			huh.NewSelect[string]().
				Title("Date Format").
				Options(
					huh.NewOption("2026-01-31", model.DateFormatISO),
					huh.NewOption("31/01/2026", model.DateFormatEU),
					huh.NewOption("01/31/2026", model.DateFormatUS),
				).
				Value(&m.fb.dateFormat),
			huh.NewConfirm().
				Title("Due Reminders").
				Value(&m.fb.dueReminders),
			huh.NewConfirm().
				Title("Goal Alerts").
				Value(&m.fb.goalAlerts),
			huh.NewInput().
				Title("Daily Duration Cap (hours)").
				Placeholder("e.g. 8").
				Value(&m.fb.durationCap).
				Validate(func(s string) error {
					if res := validate.Duration(s); !res.Valid {
						return errors.New(res.Message)
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Case-Sensitive Search").
				Value(&m.fb.caseSensitive),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	capHours, _ := strconv.ParseFloat(m.fb.durationCap, 64)
	settings := model.Settings{
		TimeUnit:            m.fb.timeUnit,
		DateFormat:          m.fb.dateFormat,
		DueReminders:        m.fb.dueReminders,
		GoalAlerts:          m.fb.goalAlerts,
		DurationCap:         capHours,
		CaseSensitiveSearch: m.fb.caseSensitive,
	}
	return func() tea.Msg { return SubmittedMsg{Settings: settings} }
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
