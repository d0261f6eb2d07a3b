package model

import "time"

// DateLayout is the canonical calendar-date layout used for due dates.
const DateLayout = "2006-01-02"

// Task is a single academic to-do item with a due date and an
// estimated duration.
type Task struct {
	// ID is the unique identifier for this task, generated on creation.
	ID string `json:"id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title"`

	// DueDate is the calendar date the task is due, in YYYY-MM-DD form.
	DueDate string `json:"dueDate"`

	// DurationHours is the estimated effort in hours. Never negative.
	DurationHours float64 `json:"duration"`

	// Tag is the category label (e.g. "Math", "Math-Homework").
	Tag string `json:"tag"`

	// Description is optional free-form detail text.
	Description string `json:"description,omitempty"`

	// Completed marks the task as done.
	Completed bool `json:"completed"`

	// CreatedAt is set once when the task is added.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Due parses the task's due date. Returns the zero time if the stored
// value is not a valid calendar date.
func (t Task) Due() time.Time {
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}
	}
	return d
}

// Overdue reports whether the task's due date has passed and the task
// is still open.
func (t Task) Overdue() bool {
	due := t.Due()
	if due.IsZero() || t.Completed {
		return false
	}
	today, _ := time.Parse(DateLayout, time.Now().Format(DateLayout))
	return due.Before(today)
}
