package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tmoreno/studyplanner/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Algebra homework", Tag: "Math"},
		{ID: "2", Title: "Algebra", Tag: "Math"},
		{ID: "3", Title: "Read chapter on algebra", Tag: "Reading"},
		{ID: "4", Title: "Lab report", Tag: "Chemistry", Description: "includes algebra appendix"},
		{ID: "5", Title: "Essay draft", Tag: "English"},
	}
}

func TestEmptyQueryReturnsFullCollection(t *testing.T) {
	tasks := sampleTasks()
	results := Run(Compile("", false), tasks)

	require.Len(t, results, len(tasks))
	for i, r := range results {
		require.Equal(t, tasks[i].ID, r.Task.ID, "order must be preserved")
		require.Equal(t, RankNone, r.Rank, "empty query results are unranked")
	}
}

func TestRankingOrder(t *testing.T) {
	results := Run(Compile("algebra", false), sampleTasks())

	require.Len(t, results, 4)
	// exact title > prefix > substring > description match
	require.Equal(t, "2", results[0].Task.ID)
	require.Equal(t, "1", results[1].Task.ID)
	require.Equal(t, "3", results[2].Task.ID)
	require.Equal(t, "4", results[3].Task.ID)

	require.Equal(t, []string{FieldTitle}, results[1].Fields)
	require.Equal(t, []string{FieldDescription}, results[3].Fields)
}

func TestTagMatch(t *testing.T) {
	results := Run(Compile("Chemistry", false), sampleTasks())

	require.Len(t, results, 1)
	require.Equal(t, "4", results[0].Task.ID)
	require.Equal(t, []string{FieldTag}, results[0].Fields)
	require.Equal(t, RankOther, results[0].Rank)
}

func TestCaseSensitivity(t *testing.T) {
	require.Empty(t, Run(Compile("ALGEBRA homework", true), sampleTasks()))
	require.NotEmpty(t, Run(Compile("ALGEBRA homework", false), sampleTasks()))
}

func TestRegexQuery(t *testing.T) {
	results := Run(Compile("^alg.bra$", false), sampleTasks())

	require.NotEmpty(t, results)
	require.Equal(t, "2", results[0].Task.ID)
	require.Equal(t, RankExact, results[0].Rank)
}

func TestMalformedRegexFallsBackToLiteral(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "Fix equation a(b"},
		{ID: "2", Title: "Other"},
	}

	var results []Result
	require.NotPanics(t, func() {
		results = Run(Compile("a(b", false), tasks)
	})
	require.Len(t, results, 1)
	require.Equal(t, "1", results[0].Task.ID)
}

func TestFiltersApply(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Tag: "Math", Completed: true},
		{ID: "2", Tag: "Math"},
		{ID: "3", Tag: "English"},
	}

	open := Filters{Completion: CompletionOpen}.Apply(tasks)
	require.Len(t, open, 2)

	done := Filters{Completion: CompletionDone}.Apply(tasks)
	require.Len(t, done, 1)
	require.Equal(t, "1", done[0].ID)

	math := Filters{Completion: CompletionAll, Tag: "Math"}.Apply(tasks)
	require.Len(t, math, 2)
}

func TestSortByDueDateAndDuration(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", DueDate: "2026-09-03", DurationHours: 1},
		{ID: "2", DueDate: "2026-09-01", DurationHours: 3},
		{ID: "3", DueDate: "2026-09-02", DurationHours: 2},
	}

	byDue := Sort(tasks, SortDueDate)
	require.Equal(t, []string{"2", "3", "1"}, ids(byDue))

	byDuration := Sort(tasks, SortDuration)
	require.Equal(t, []string{"1", "3", "2"}, ids(byDuration))

	// Sort must not mutate its input.
	require.Equal(t, "1", tasks[0].ID)
}

func TestDayHoursSumsOpenTasksPerDay(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", DueDate: "2026-09-07", DurationHours: 2.5},
		{ID: "2", DueDate: "2026-09-07", DurationHours: 3},
		{ID: "3", DueDate: "2026-09-07", DurationHours: 4, Completed: true},
		{ID: "4", DueDate: "2026-09-08", DurationHours: 1},
		{ID: "5", DurationHours: 2},
	}

	hours := DayHours(tasks)
	require.Equal(t, 5.5, hours["2026-09-07"], "done tasks do not count")
	require.Equal(t, 1.0, hours["2026-09-08"])
	require.Len(t, hours, 2, "tasks without a due date are skipped")
}

func TestVisibleCombinesFilterSearchSort(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		{ID: "1", Title: "Algebra", Tag: "Math", DueDate: "2026-09-05", CreatedAt: now},
		{ID: "2", Title: "Algebra drills", Tag: "Math", DueDate: "2026-09-01", Completed: true},
		{ID: "3", Title: "Essay", Tag: "English", DueDate: "2026-09-02"},
	}

	visible := Visible(tasks, Compile("algebra", false), Filters{Completion: CompletionOpen}, SortDueDate)
	require.Equal(t, []string{"1"}, ids(visible))

	all := Visible(tasks, Compile("", false), Filters{Completion: CompletionAll}, SortDueDate)
	require.Equal(t, []string{"2", "3", "1"}, ids(all))
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
