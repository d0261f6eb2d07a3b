package search

import (
	"sort"
	"strings"

	"github.com/tmoreno/studyplanner/internal/model"
)

// Sort keys cycled by the task list view.
const (
	SortDueDate   = "due_date"
	SortDuration  = "duration"
	SortTitle     = "title"
	SortCreatedAt = "created_at"
	SortUpdatedAt = "updated_at"
)

// SortKeys is the cycle order presented in the UI.
var SortKeys = []string{SortDueDate, SortDuration, SortTitle, SortCreatedAt, SortUpdatedAt}

// Completion filter values.
const (
	CompletionAll  = "all"
	CompletionOpen = "open"
	CompletionDone = "done"
)

// Filters narrows the visible task collection.
type Filters struct {
	Completion string // CompletionAll, CompletionOpen, CompletionDone
	Tag        string // exact tag, empty for all
}

// Apply returns the tasks passing the filter, preserving input order.
func (f Filters) Apply(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		switch f.Completion {
		case CompletionOpen:
			if t.Completed {
				continue
			}
		case CompletionDone:
			if !t.Completed {
				continue
			}
		}
		if f.Tag != "" && t.Tag != f.Tag {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Sort returns a sorted copy of tasks. Unknown keys sort by due date.
func Sort(tasks []model.Task, key string) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	less := func(a, b model.Task) bool { return a.Due().Before(b.Due()) }
	switch key {
	case SortDuration:
		less = func(a, b model.Task) bool { return a.DurationHours < b.DurationHours }
	case SortTitle:
		less = func(a, b model.Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortCreatedAt:
		less = func(a, b model.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortUpdatedAt:
		less = func(a, b model.Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// DayHours sums the estimated hours of open tasks per due date. Done
// tasks no longer count toward a day's workload.
func DayHours(tasks []model.Task) map[string]float64 {
	hours := make(map[string]float64)
	for _, t := range tasks {
		if t.Completed || t.DueDate == "" {
			continue
		}
		hours[t.DueDate] += t.DurationHours
	}
	return hours
}

// Visible is the full render-time derivation: filter, then search,
// then sort. With a non-empty query the search ranking wins and the
// sort key is ignored, matching how results are presented.
func Visible(tasks []model.Task, m Matcher, f Filters, sortKey string) []model.Task {
	filtered := f.Apply(tasks)

	if !m.Empty() {
		results := Run(m, filtered)
		out := make([]model.Task, len(results))
		for i, r := range results {
			out[i] = r.Task
		}
		return out
	}

	return Sort(filtered, sortKey)
}
