// Package planner holds the application's named actions. Every task
// and settings mutation flows through a Planner, which is the only
// writer to the state container and the storage adapter.
package planner

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/search"
	"github.com/tmoreno/studyplanner/internal/state"
	"github.com/tmoreno/studyplanner/internal/store"
	"github.com/tmoreno/studyplanner/internal/validate"
)

// Slice names declared on the container, in notification order.
const (
	SliceTasks    = "tasks"
	SliceSettings = "settings"
	SliceQuery    = "query"
	SliceSortKey  = "sortKey"
	SliceFilters  = "filters"
	SliceSection  = "section"
	SliceEditing  = "editingID"
	SliceNotice   = "notice"
)

// Notice kinds.
const (
	NoticeError   = "error"
	NoticeSuccess = "success"
)

// Notice is a transient user-facing message.
type Notice struct {
	Kind string
	Text string
}

// ValidationError reports a user-correctable field failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TaskInput carries raw form values for add/update. Everything is a
// string because validation operates on what the user typed.
type TaskInput struct {
	Title       string
	DueDate     string
	Duration    string
	Tag         string
	Description string
}

// Planner owns the state container and the storage adapter.
type Planner struct {
	container *state.Container
	adapter   *store.Adapter
	logger    *log.Logger
}

// New loads the persisted collection and settings and builds the
// container around them. The loaded snapshot becomes the container's
// default state, so Reset returns to it.
func New(ctx context.Context, adapter *store.Adapter, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.Default()
	}

	tasks, source := adapter.LoadTasks(ctx)
	settings := adapter.LoadSettings(ctx)
	logger.Info("loaded task collection", "tasks", len(tasks), "source", source)

	container := state.New(
		state.Slice{Name: SliceTasks, Default: tasks},
		state.Slice{Name: SliceSettings, Default: settings},
		state.Slice{Name: SliceQuery, Default: ""},
		state.Slice{Name: SliceSortKey, Default: search.SortDueDate},
		state.Slice{Name: SliceFilters, Default: search.Filters{Completion: search.CompletionAll}},
		state.Slice{Name: SliceSection, Default: "tasks"},
		state.Slice{Name: SliceEditing, Default: ""},
		state.Slice{Name: SliceNotice, Default: Notice{}},
	)

	return &Planner{container: container, adapter: adapter, logger: logger}
}

// Container exposes the state container for subscriptions.
func (p *Planner) Container() *state.Container {
	return p.container
}

// Tasks returns the current task collection.
func (p *Planner) Tasks() []model.Task {
	tasks, _ := p.container.Get(SliceTasks).([]model.Task)
	return tasks
}

// Settings returns the current settings.
func (p *Planner) Settings() model.Settings {
	settings, ok := p.container.Get(SliceSettings).(model.Settings)
	if !ok {
		return model.DefaultSettings()
	}
	return settings
}

// Query returns the current search query.
func (p *Planner) Query() string {
	q, _ := p.container.Get(SliceQuery).(string)
	return q
}

// SortKey returns the current sort key.
func (p *Planner) SortKey() string {
	k, _ := p.container.Get(SliceSortKey).(string)
	return k
}

// Filters returns the active filters.
func (p *Planner) Filters() search.Filters {
	f, _ := p.container.Get(SliceFilters).(search.Filters)
	return f
}

// Visible derives the rendered task list: filters, then search, then
// sort, all pure reads of the current state.
func (p *Planner) Visible() []model.Task {
	settings := p.Settings()
	matcher := search.Compile(p.Query(), settings.CaseSensitiveSearch)
	return search.Visible(p.Tasks(), matcher, p.Filters(), p.SortKey())
}

// OverCapDays reports the due dates whose open tasks add up to more
// hours than the configured daily cap. Empty when goal alerts are off
// or the cap is unset.
func (p *Planner) OverCapDays() map[string]bool {
	settings := p.Settings()
	if !settings.GoalAlerts || settings.DurationCap <= 0 {
		return map[string]bool{}
	}

	over := make(map[string]bool)
	for day, hours := range search.DayHours(p.Tasks()) {
		if hours > settings.DurationCap {
			over[day] = true
		}
	}
	return over
}

// validateInput runs every field of a TaskInput through the pure
// validators and reports the first failure.
func validateInput(in TaskInput) error {
	checks := []struct {
		field string
		res   validate.Result
	}{
		{"title", validate.Title(in.Title)},
		{"dueDate", validate.Date(in.DueDate)},
		{"duration", validate.Duration(in.Duration)},
		{"tag", validate.Tag(in.Tag)},
		{"description", validate.Description(in.Description)},
	}
	for _, c := range checks {
		if !c.res.Valid {
			return &ValidationError{Field: c.field, Message: c.res.Message}
		}
	}
	return nil
}
