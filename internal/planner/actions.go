package planner

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/search"
	"github.com/tmoreno/studyplanner/internal/store"
)

// AddTask validates the input, assigns a fresh id and timestamps, and
// appends the task to the collection.
func (p *Planner) AddTask(ctx context.Context, in TaskInput) (model.Task, error) {
	if err := validateInput(in); err != nil {
		return model.Task{}, err
	}

	duration, _ := strconv.ParseFloat(in.Duration, 64)
	now := time.Now().UTC()
	task := model.Task{
		ID:            uuid.New().String(),
		Title:         in.Title,
		DueDate:       in.DueDate,
		DurationHours: duration,
		Tag:           in.Tag,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tasks := append(append([]model.Task{}, p.Tasks()...), task)
	p.saveTasks(ctx, tasks)
	p.setNotice(NoticeSuccess, fmt.Sprintf("added %q", task.Title))
	return task, nil
}

// UpdateTask validates the input and rewrites the identified task,
// refreshing its UpdatedAt timestamp.
func (p *Planner) UpdateTask(ctx context.Context, id string, in TaskInput) (model.Task, error) {
	if err := validateInput(in); err != nil {
		return model.Task{}, err
	}

	tasks := append([]model.Task{}, p.Tasks()...)
	for i, t := range tasks {
		if t.ID != id {
			continue
		}
		duration, _ := strconv.ParseFloat(in.Duration, 64)
		t.Title = in.Title
		t.DueDate = in.DueDate
		t.DurationHours = duration
		t.Tag = in.Tag
		t.Description = in.Description
		t.UpdatedAt = time.Now().UTC()
		tasks[i] = t

		p.saveTasks(ctx, tasks)
		p.setNotice(NoticeSuccess, fmt.Sprintf("updated %q", t.Title))
		return t, nil
	}
	return model.Task{}, fmt.Errorf("task %s not found", id)
}

// DeleteTask removes a task from the collection.
func (p *Planner) DeleteTask(ctx context.Context, id string) error {
	tasks := p.Tasks()
	out := make([]model.Task, 0, len(tasks))
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return fmt.Errorf("task %s not found", id)
	}

	p.saveTasks(ctx, out)
	p.setNotice(NoticeSuccess, "task deleted")
	return nil
}

// ToggleComplete flips a task's completed flag.
func (p *Planner) ToggleComplete(ctx context.Context, id string) error {
	tasks := append([]model.Task{}, p.Tasks()...)
	for i, t := range tasks {
		if t.ID != id {
			continue
		}
		t.Completed = !t.Completed
		t.UpdatedAt = time.Now().UTC()
		tasks[i] = t
		p.saveTasks(ctx, tasks)
		return nil
	}
	return fmt.Errorf("task %s not found", id)
}

// SetQuery updates the current search query.
func (p *Planner) SetQuery(query string) {
	_ = p.container.Set(map[string]any{SliceQuery: query})
}

// SetSortKey updates the active sort key.
func (p *Planner) SetSortKey(key string) {
	_ = p.container.Set(map[string]any{SliceSortKey: key})
}

// SetFilters updates the active filters.
func (p *Planner) SetFilters(f search.Filters) {
	_ = p.container.Set(map[string]any{SliceFilters: f})
}

// SetSection records the active UI section.
func (p *Planner) SetSection(section string) {
	_ = p.container.Set(map[string]any{SliceSection: section})
}

// SetEditing records which task id is being edited, empty for none.
func (p *Planner) SetEditing(id string) {
	_ = p.container.Set(map[string]any{SliceEditing: id})
}

// UpdateSettings persists new settings and publishes them.
func (p *Planner) UpdateSettings(ctx context.Context, settings model.Settings) {
	degraded := p.adapter.SaveSettings(ctx, settings)
	_ = p.container.Set(map[string]any{SliceSettings: settings})
	if degraded {
		p.setNotice(NoticeError, "settings saved to session storage only")
	}
}

// Export renders the current tasks and settings as a backup envelope.
func (p *Planner) Export() ([]byte, error) {
	return store.Export(p.Tasks(), p.Settings())
}

// Import replaces the collection with the accepted tasks from a
// backup envelope (last write wins) and applies bundled settings when
// present. Malformed entries are skipped and reported via the notice,
// never failing the batch.
func (p *Planner) Import(ctx context.Context, data []byte) (store.ImportResult, error) {
	result, err := store.Import(data, p.logger)
	if err != nil {
		p.setNotice(NoticeError, "import failed: not a valid backup file")
		return store.ImportResult{}, err
	}

	tasks := result.Tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	p.saveTasks(ctx, tasks)

	if result.Settings != nil {
		p.UpdateSettings(ctx, *result.Settings)
	}

	if result.Dropped > 0 {
		p.setNotice(NoticeError,
			fmt.Sprintf("imported %d tasks, skipped %d malformed entries", len(result.Tasks), result.Dropped))
	} else {
		p.setNotice(NoticeSuccess, fmt.Sprintf("imported %d tasks", len(result.Tasks)))
	}
	return result, nil
}

// Reset restores the container to the state loaded at startup.
func (p *Planner) Reset() {
	p.container.Reset()
}

// ClearNotice dismisses the transient message.
func (p *Planner) ClearNotice() {
	_ = p.container.Set(map[string]any{SliceNotice: Notice{}})
}

// saveTasks publishes the new collection and persists it, degrading
// to the session store with a notice rather than surfacing an error.
func (p *Planner) saveTasks(ctx context.Context, tasks []model.Task) {
	_ = p.container.Set(map[string]any{SliceTasks: tasks})
	if p.adapter.SaveTasks(ctx, tasks) {
		p.setNotice(NoticeError, "changes saved to session storage only")
	}
}

func (p *Planner) setNotice(kind, text string) {
	_ = p.container.Set(map[string]any{SliceNotice: Notice{Kind: kind, Text: text}})
}
