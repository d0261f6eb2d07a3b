package store_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/store"
)

func TestExportImportRoundTrip(t *testing.T) {
	settings := model.DefaultSettings()
	settings.DurationCap = 5

	data, err := store.Export(sampleTasks(), settings)
	require.NoError(t, err)

	// Envelope shape.
	var env map[string]any
	require.NoError(t, json.Unmarshal(data, &env))
	require.Equal(t, "1.0", env["version"])
	require.NotEmpty(t, env["exportedAt"])

	result, err := store.Import(data, nil)
	require.NoError(t, err)
	require.Equal(t, 0, result.Dropped)
	require.Len(t, result.Tasks, 2)
	require.NotNil(t, result.Settings)
	require.Equal(t, 5.0, result.Settings.DurationCap)
}

func TestImportDropsMalformedTasksIndividually(t *testing.T) {
	payload := `{
		"version": "1.0",
		"exportedAt": "2026-08-30T12:00:00Z",
		"tasks": [
			{"id": "ok1", "title": "Valid one", "dueDate": "2026-09-01", "duration": 1, "tag": "Math"},
			{"id": "", "title": "Missing id", "dueDate": "2026-09-01", "duration": 1},
			{"id": "bad-date", "title": "Bad date", "dueDate": "2026-13-01", "duration": 1},
			{"id": "bad-duration", "title": "Negative", "dueDate": "2026-09-01", "duration": -2},
			{"id": "bad-type", "title": 42, "dueDate": "2026-09-01", "duration": 1},
			{"id": "ok2", "title": "Valid two", "dueDate": "2026-09-02", "duration": 0.5, "tag": "English"}
		]
	}`

	result, err := store.Import([]byte(payload), nil)
	require.NoError(t, err)

	require.Len(t, result.Tasks, 2)
	require.Equal(t, 4, result.Dropped)
	require.Equal(t, "ok1", result.Tasks[0].ID)
	require.Equal(t, "ok2", result.Tasks[1].ID)
}

func TestImportDropsDuplicateIDs(t *testing.T) {
	payload := `{
		"version": "1.0",
		"tasks": [
			{"id": "dup", "title": "First", "dueDate": "2026-09-01", "duration": 1},
			{"id": "dup", "title": "Second", "dueDate": "2026-09-02", "duration": 1}
		]
	}`

	result, err := store.Import([]byte(payload), nil)
	require.NoError(t, err)
	require.Len(t, result.Tasks, 1)
	require.Equal(t, "First", result.Tasks[0].Title)
	require.Equal(t, 1, result.Dropped)
}

func TestImportRejectsStructurallyInvalidPayloads(t *testing.T) {
	cases := map[string]string{
		"not json":         `{broken`,
		"not an object":    `[1, 2, 3]`,
		"missing version":  `{"tasks": []}`,
		"wrong version":    `{"version": "9.9", "tasks": []}`,
		"tasks not a list": `{"version": "1.0", "tasks": {}}`,
	}

	for name, payload := range cases {
		_, err := store.Import([]byte(payload), nil)
		require.Error(t, err, "payload %q must be rejected outright", name)
	}
}

func TestImportWithoutSettingsLeavesThemNil(t *testing.T) {
	payload := `{"version": "1.0", "tasks": []}`

	result, err := store.Import([]byte(payload), nil)
	require.NoError(t, err)
	require.Nil(t, result.Settings)
	require.Empty(t, result.Tasks)
	require.Equal(t, 0, result.Dropped)
}
