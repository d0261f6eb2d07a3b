package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmoreno/studyplanner/internal/model"
	"github.com/tmoreno/studyplanner/internal/store"
	"github.com/tmoreno/studyplanner/tests/testutil"
)

// brokenKV fails every operation, standing in for an unavailable or
// full primary store.
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store unavailable")
}
func (brokenKV) Set(context.Context, string, string) error { return errors.New("store unavailable") }
func (brokenKV) Delete(context.Context, string) error      { return errors.New("store unavailable") }

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "t1", Title: "Algebra problem set", DueDate: "2026-09-07", DurationHours: 2.5, Tag: "Math"},
		{ID: "t2", Title: "Lab report", DueDate: "2026-09-04", DurationHours: 3, Tag: "Chemistry", Completed: true},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := store.NewAdapter(testutil.NewTestKV(t), store.NewMemoryKV(), false, nil)

	tasks := sampleTasks()
	require.False(t, a.SaveTasks(ctx, tasks))

	loaded, source := a.LoadTasks(ctx)
	require.Equal(t, store.SourcePrimary, source)
	require.Equal(t, tasks, loaded)
}

func TestLoadFallsBackToSession(t *testing.T) {
	ctx := context.Background()
	session := store.NewMemoryKV()
	a := store.NewAdapter(brokenKV{}, session, false, nil)

	// Save degrades into the session store.
	require.True(t, a.SaveTasks(ctx, sampleTasks()))

	loaded, source := a.LoadTasks(ctx)
	require.Equal(t, store.SourceSession, source)
	require.Len(t, loaded, 2)
}

func TestLoadFallsBackToSeedThenEmpty(t *testing.T) {
	ctx := context.Background()

	seeded := store.NewAdapter(store.NewMemoryKV(), store.NewMemoryKV(), true, nil)
	tasks, source := seeded.LoadTasks(ctx)
	require.Equal(t, store.SourceSeed, source)
	require.NotEmpty(t, tasks)

	unseeded := store.NewAdapter(store.NewMemoryKV(), store.NewMemoryKV(), false, nil)
	tasks, source = unseeded.LoadTasks(ctx)
	require.Equal(t, store.SourceEmpty, source)
	require.Empty(t, tasks)
}

func TestLoadSkipsCorruptPrimary(t *testing.T) {
	ctx := context.Background()
	primary := store.NewMemoryKV()
	require.NoError(t, primary.Set(ctx, store.TasksKey, "{not json"))

	session := store.NewMemoryKV()
	a := store.NewAdapter(primary, session, false, nil)
	require.NoError(t, session.Set(ctx, store.TasksKey, `[{"id":"x","title":"From session"}]`))

	loaded, source := a.LoadTasks(ctx)
	require.Equal(t, store.SourceSession, source)
	require.Equal(t, "From session", loaded[0].Title)
}

func TestSettingsRoundTripAndDefaults(t *testing.T) {
	ctx := context.Background()
	a := store.NewAdapter(testutil.NewTestKV(t), store.NewMemoryKV(), false, nil)

	// Nothing stored yet: defaults.
	require.Equal(t, model.DefaultSettings(), a.LoadSettings(ctx))

	settings := model.DefaultSettings()
	settings.CaseSensitiveSearch = true
	settings.DurationCap = 6
	require.False(t, a.SaveSettings(ctx, settings))
	require.Equal(t, settings, a.LoadSettings(ctx))
}

func TestPartialSettingsMergeOverDefaults(t *testing.T) {
	ctx := context.Background()
	primary := store.NewMemoryKV()
	require.NoError(t, primary.Set(ctx, store.SettingsKey, `{"durationCap": 4}`))

	a := store.NewAdapter(primary, store.NewMemoryKV(), false, nil)
	settings := a.LoadSettings(ctx)

	require.Equal(t, 4.0, settings.DurationCap)
	require.Equal(t, model.TimeUnitHours, settings.TimeUnit, "missing keys keep defaults")
	require.True(t, settings.DueReminders, "missing keys keep defaults")
}

func TestLoadSettingsSkipsCorruptPrimary(t *testing.T) {
	ctx := context.Background()
	primary := store.NewMemoryKV()
	require.NoError(t, primary.Set(ctx, store.SettingsKey, "{not json"))

	session := store.NewMemoryKV()
	require.NoError(t, session.Set(ctx, store.SettingsKey, `{"durationCap": 4}`))

	a := store.NewAdapter(primary, session, false, nil)
	settings := a.LoadSettings(ctx)

	require.Equal(t, 4.0, settings.DurationCap)
	require.Equal(t, model.TimeUnitHours, settings.TimeUnit, "missing keys keep defaults")
}

func TestLoadSettingsFallsBackToSession(t *testing.T) {
	ctx := context.Background()
	session := store.NewMemoryKV()
	require.NoError(t, session.Set(ctx, store.SettingsKey, `{"timeUnit":"minutes"}`))

	a := store.NewAdapter(brokenKV{}, session, false, nil)
	require.Equal(t, model.TimeUnitMinutes, a.LoadSettings(ctx).TimeUnit)

	// Neither store readable: defaults stand.
	empty := store.NewAdapter(brokenKV{}, store.NewMemoryKV(), false, nil)
	require.Equal(t, model.DefaultSettings(), empty.LoadSettings(ctx))
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestKV(t)

	_, ok, err := kv.Get(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	require.NoError(t, kv.Set(ctx, "k", "v2"))

	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", v)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, ok, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}
