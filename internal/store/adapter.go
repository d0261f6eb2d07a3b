package store

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/tmoreno/studyplanner/internal/model"
)

//go:embed seed.json
var seedJSON []byte

// TaskSource identifies where a loaded task collection came from.
type TaskSource string

const (
	SourcePrimary TaskSource = "primary"
	SourceSession TaskSource = "session"
	SourceSeed    TaskSource = "seed"
	SourceEmpty   TaskSource = "empty"
)

// Adapter reads and writes the task collection and settings through a
// primary persistent store with a session-scoped fallback. Loads never
// return an error to the caller; saves degrade to the session store
// and report a non-fatal flag instead of failing.
type Adapter struct {
	primary KV
	session KV
	seed    bool
	logger  *log.Logger
}

// NewAdapter wires the primary and session stores together. seed
// controls whether the bundled sample tasks are used when neither
// store has a collection yet.
func NewAdapter(primary, session KV, seed bool, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{primary: primary, session: session, seed: seed, logger: logger}
}

// LoadTasks returns the stored task collection, falling back from the
// primary store to the session store, then the seed dataset, then an
// empty collection, in that strict order.
func (a *Adapter) LoadTasks(ctx context.Context) ([]model.Task, TaskSource) {
	if tasks, ok := a.loadFrom(ctx, a.primary, TasksKey); ok {
		return tasks, SourcePrimary
	}
	if tasks, ok := a.loadFrom(ctx, a.session, TasksKey); ok {
		return tasks, SourceSession
	}
	if a.seed {
		var tasks []model.Task
		if err := json.Unmarshal(seedJSON, &tasks); err == nil {
			return tasks, SourceSeed
		}
	}
	return []model.Task{}, SourceEmpty
}

// loadFrom reads and decodes the task collection from one store.
// Absence, read errors, and parse failures all report not-ok so the
// caller moves on to the next fallback.
func (a *Adapter) loadFrom(ctx context.Context, kv KV, key string) ([]model.Task, bool) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		a.logger.Warn("task load failed", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		a.logger.Warn("stored tasks are not valid JSON", "key", key, "err", err)
		return nil, false
	}
	return tasks, true
}

// SaveTasks writes the collection to the primary store. On failure it
// writes the session store instead and returns true to flag the
// degradation; the caller surfaces that as a transient notice, never
// as a crash.
func (a *Adapter) SaveTasks(ctx context.Context, tasks []model.Task) (degraded bool) {
	raw, err := json.Marshal(tasks)
	if err != nil {
		// A task collection is always marshalable; treat this as a
		// degradation rather than a reason to lose the session copy.
		a.logger.Error("marshaling tasks", "err", err)
		return true
	}

	if err := a.primary.Set(ctx, TasksKey, string(raw)); err != nil {
		a.logger.Warn("primary store write failed, using session store", "err", err)
		if err := a.session.Set(ctx, TasksKey, string(raw)); err != nil {
			a.logger.Error("session store write failed", "err", err)
		}
		return true
	}
	return false
}

// LoadSettings returns stored settings merged over defaults, falling
// back from the primary store to the session store. Absence or parse
// failure in one store moves on to the next; with neither readable the
// defaults stand.
func (a *Adapter) LoadSettings(ctx context.Context) model.Settings {
	if settings, ok := a.loadSettingsFrom(ctx, a.primary); ok {
		return settings
	}
	if settings, ok := a.loadSettingsFrom(ctx, a.session); ok {
		return settings
	}
	return model.DefaultSettings()
}

// loadSettingsFrom reads and decodes settings from one store,
// unmarshaling into the defaults so a partial object keeps them.
func (a *Adapter) loadSettingsFrom(ctx context.Context, kv KV) (model.Settings, bool) {
	raw, ok, err := kv.Get(ctx, SettingsKey)
	if err != nil {
		a.logger.Warn("settings load failed", "err", err)
		return model.Settings{}, false
	}
	if !ok {
		return model.Settings{}, false
	}
	settings := model.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		a.logger.Warn("stored settings are not valid JSON", "err", err)
		return model.Settings{}, false
	}
	return settings, true
}

// SaveSettings writes settings to the primary store with the same
// degradation behavior as SaveTasks.
func (a *Adapter) SaveSettings(ctx context.Context, settings model.Settings) (degraded bool) {
	raw, err := json.Marshal(settings)
	if err != nil {
		a.logger.Error("marshaling settings", "err", err)
		return true
	}

	if err := a.primary.Set(ctx, SettingsKey, string(raw)); err != nil {
		a.logger.Warn("primary store write failed, using session store", "err", err)
		if err := a.session.Set(ctx, SettingsKey, string(raw)); err != nil {
			a.logger.Error("session store write failed", "err", err)
		}
		return true
	}
	return false
}
