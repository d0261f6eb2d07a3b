// Package store persists the task collection and settings as JSON
// blobs in a key-value store, with a session-scoped in-memory
// fallback when the primary store is unavailable.
package store

import "context"

// Logical keys for the two persisted blobs.
const (
	TasksKey    = "planner.tasks"
	SettingsKey = "planner.settings"
)

// KV is a minimal key-value store over JSON blobs.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
