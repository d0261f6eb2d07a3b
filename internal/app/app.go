package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmoreno/studyplanner/internal/keys"
	"github.com/tmoreno/studyplanner/internal/planner"
	"github.com/tmoreno/studyplanner/internal/theme"
	"github.com/tmoreno/studyplanner/internal/ui"
	"github.com/tmoreno/studyplanner/internal/ui/command"
	helpview "github.com/tmoreno/studyplanner/internal/ui/help"
	"github.com/tmoreno/studyplanner/internal/ui/settingsform"
	"github.com/tmoreno/studyplanner/internal/ui/taskform"
	"github.com/tmoreno/studyplanner/internal/ui/tasklist"
)

// noticeDismissAfter is how long transient messages stay visible.
// Dismissal is a best-effort UI affordance, not a correctness path.
const noticeDismissAfter = 4 * time.Second

// NoticeMsg carries a state-container notice into the Bubble Tea
// loop. The main package bridges container subscriptions to these
// messages via Program.Send.
type NoticeMsg struct {
	Notice planner.Notice
}

// noticeExpiredMsg dismisses a displayed notice after its timeout.
type noticeExpiredMsg struct {
	seq int
}

// taskSavedMsg reports the outcome of a form submission.
type taskSavedMsg struct {
	err error
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewForm
	ViewSettings
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and dispatch into the planner's actions.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	planner     *planner.Planner
	keys        *keys.KeyMap

	taskList     tasklist.Model
	taskForm     taskform.Model
	settingsView settingsform.Model
	helpView     helpview.Model
	commandView  command.Model

	notice    planner.Notice
	noticeSeq int
	ready     bool
}

// New creates the root application model around a planner.
func New(p *planner.Planner) Model {
	k := keys.DefaultKeyMap()
	return Model{
		currentView:  ViewList,
		planner:      p,
		keys:         k,
		taskList:     tasklist.New(p, k, 80, 24),
		taskForm:     taskform.New(80, 24),
		settingsView: settingsform.New(80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
	}
}

// Init loads the initial task list.
func (m Model) Init() tea.Cmd {
	return m.taskList.Init()
}

// Update routes messages to the active view and handles global keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		content := m.layout.ContentHeight()
		m.taskList.SetSize(msg.Width, content)
		m.taskForm.SetSize(msg.Width, content)
		m.settingsView.SetSize(msg.Width, content)
		m.helpView.SetSize(msg.Width, content)
		m.commandView.SetSize(msg.Width, content)
		m.ready = true
		return m, nil

	case NoticeMsg:
		m.notice = msg.Notice
		if m.notice.Text == "" {
			return m, nil
		}
		m.noticeSeq++
		seq := m.noticeSeq
		return m, tea.Tick(noticeDismissAfter, func(time.Time) tea.Msg {
			return noticeExpiredMsg{seq: seq}
		})

	case noticeExpiredMsg:
		// A newer notice may have replaced the one this tick belongs to.
		if msg.seq == m.noticeSeq {
			m.notice = planner.Notice{}
			m.planner.ClearNotice()
		}
		return m, nil

	case tasklist.AddRequestedMsg:
		m.currentView = ViewForm
		return m, m.taskForm.StartCreate()

	case tasklist.EditRequestedMsg:
		m.currentView = ViewForm
		m.planner.SetEditing(msg.Task.ID)
		return m, m.taskForm.StartEdit(msg.Task)

	case taskform.SubmittedMsg:
		m.currentView = ViewList
		return m, m.saveTask(msg)

	case taskform.CancelMsg:
		m.currentView = ViewList
		m.planner.SetEditing("")
		return m, m.taskList.Reload()

	case taskSavedMsg:
		m.planner.SetEditing("")
		if msg.err != nil {
			// Validation failures normally stop at the form; anything
			// reaching here is surfaced and the list stays current.
			m.notice = planner.Notice{Kind: planner.NoticeError, Text: msg.err.Error()}
		}
		return m, m.taskList.Reload()

	case settingsform.SubmittedMsg:
		m.currentView = ViewList
		m.planner.UpdateSettings(context.Background(), msg.Settings)
		m.taskList.RefreshSettings()
		return m, m.taskList.Reload()

	case settingsform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case command.Msg:
		m.currentView = ViewList
		return m, m.runCommand(string(msg))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToView(msg)
}

// handleKey processes global keys, then delegates to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewList:
		if !m.taskList.Searching() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.currentView = ViewHelp
				return m, nil
			case key.Matches(msg, m.keys.Settings):
				m.currentView = ViewSettings
				return m, m.settingsView.Start(m.planner.Settings())
			case key.Matches(msg, m.keys.Command):
				m.currentView = ViewCommand
				return m, m.commandView.Focus()
			}
		}

	case ViewHelp:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Help) {
			m.currentView = ViewList
			return m, nil
		}

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = ViewList
			return m, nil
		}
	}

	return m.routeToView(msg)
}

// routeToView forwards a message to the currently active view model.
func (m Model) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}
	return m, cmd
}

// saveTask dispatches a form submission to the add or update action.
func (m Model) saveTask(msg taskform.SubmittedMsg) tea.Cmd {
	p := m.planner
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if msg.EditID == "" {
			_, err = p.AddTask(ctx, msg.Input)
		} else {
			_, err = p.UpdateTask(ctx, msg.EditID, msg.Input)
		}
		return taskSavedMsg{err: err}
	}
}

// runCommand executes a command palette line.
func (m Model) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	args := fields[1:]
	p := m.planner

	switch name {
	case "export":
		path := fmt.Sprintf("studyplanner-export-%s.json", time.Now().Format("2006-01-02"))
		if len(args) > 0 {
			path = args[0]
		}
		return func() tea.Msg {
			data, err := p.Export()
			if err == nil {
				err = os.WriteFile(path, data, 0o644)
			}
			if err != nil {
				return NoticeMsg{Notice: planner.Notice{
					Kind: planner.NoticeError,
					Text: fmt.Sprintf("export failed: %v", err),
				}}
			}
			return NoticeMsg{Notice: planner.Notice{
				Kind: planner.NoticeSuccess,
				Text: fmt.Sprintf("exported to %s", path),
			}}
		}

	case "import":
		if len(args) == 0 {
			return noticeCmd(planner.NoticeError, "usage: import <path>")
		}
		path := args[0]
		reload := m.taskList.Reload()
		return func() tea.Msg {
			data, err := os.ReadFile(path)
			if err != nil {
				return NoticeMsg{Notice: planner.Notice{
					Kind: planner.NoticeError,
					Text: fmt.Sprintf("import failed: %v", err),
				}}
			}
			// Outcome notices come from the planner via the container.
			_, _ = p.Import(context.Background(), data)
			return reload()
		}

	case "reset":
		p.Reset()
		return m.taskList.Reload()

	case "help":
		return noticeCmd(planner.NoticeSuccess, "commands: export [path], import <path>, reset")

	default:
		return noticeCmd(planner.NoticeError, fmt.Sprintf("unknown command %q", name))
	}
}

func noticeCmd(kind, text string) tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg{Notice: planner.Notice{Kind: kind, Text: text}}
	}
}

// View renders the full frame: header, active view, status bar.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	status := m.taskList.SortLabel() + "  " + m.taskList.FilterLabel()
	if q := m.planner.Query(); q != "" {
		status = fmt.Sprintf("search: %q  %s", q, status)
	}
	header := m.layout.RenderHeader("Study Planner", status)

	var content string
	switch m.currentView {
	case ViewForm:
		content = m.taskForm.View()
	case ViewSettings:
		content = m.settingsView.View()
	case ViewHelp:
		content = m.helpView.View()
	case ViewCommand:
		content = m.commandView.View()
	default:
		content = m.taskList.View()
	}

	statusBar := m.layout.RenderStatusBar(
		"a add · enter done · / search · tab sort · f filter · : cmd · ? help · q quit",
		m.renderNotice(),
	)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderNotice renders the transient message, if any.
func (m Model) renderNotice() string {
	if m.notice.Text == "" {
		return ""
	}
	if m.notice.Kind == planner.NoticeError {
		return theme.ErrorNoticeStyle.Render(m.notice.Text)
	}
	return theme.SuccessNoticeStyle.Render(m.notice.Text)
}
