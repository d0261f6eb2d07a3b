package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskDue(t *testing.T) {
	task := Task{DueDate: "2026-09-15"}
	require.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), task.Due())

	require.True(t, Task{DueDate: "not-a-date"}.Due().IsZero())
	require.True(t, Task{}.Due().IsZero())
}

func TestTaskOverdue(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format(DateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(DateLayout)

	require.True(t, Task{DueDate: yesterday}.Overdue())
	require.False(t, Task{DueDate: yesterday, Completed: true}.Overdue())
	require.False(t, Task{DueDate: tomorrow}.Overdue())
	require.False(t, Task{DueDate: "garbage"}.Overdue())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	require.Equal(t, TimeUnitHours, s.TimeUnit)
	require.Equal(t, DateFormatISO, s.DateFormat)
	require.True(t, s.DueReminders)
	require.Equal(t, 8.0, s.DurationCap)
	require.False(t, s.CaseSensitiveSearch)
}

func TestSettingsPartialDecodeKeepsDefaults(t *testing.T) {
	// Absent keys must keep their default values when a stored partial
	// object is decoded over DefaultSettings.
	s := DefaultSettings()
	require.NoError(t, json.Unmarshal([]byte(`{"timeUnit":"minutes"}`), &s))

	require.Equal(t, TimeUnitMinutes, s.TimeUnit)
	require.True(t, s.DueReminders)
	require.Equal(t, 8.0, s.DurationCap)
}

func TestNewEnvelope(t *testing.T) {
	tasks := []Task{{ID: "a", Title: "Read chapter 4"}}
	env := NewEnvelope(tasks, DefaultSettings())

	require.Equal(t, ExportVersion, env.Version)
	require.WithinDuration(t, time.Now(), env.ExportedAt, time.Minute)
	require.Len(t, env.Tasks, 1)
}
