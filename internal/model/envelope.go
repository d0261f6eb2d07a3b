package model

import "time"

// ExportVersion is the schema version written into export envelopes.
const ExportVersion = "1.0"

// Envelope is the versioned wrapper used for JSON backups.
type Envelope struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Tasks      []Task    `json:"tasks"`
	Settings   Settings  `json:"settings"`
}

// NewEnvelope wraps the given tasks and settings in a current-version
// envelope stamped with the present time.
func NewEnvelope(tasks []Task, settings Settings) Envelope {
	return Envelope{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Tasks:      tasks,
		Settings:   settings,
	}
}
