package model

import "time"

// SavedLayout is a named snapshot the user chose to keep. It is stored
// outside the undo history and loading one is itself an undoable change.
type SavedLayout struct {
	ID        string    `json:"id"`        // Unique identifier, assigned on save
	Name      string    `json:"name"`      // User-facing name, never empty once persisted
	State     Layout    `json:"state"`     // The layout as it was when saved
	CreatedAt time.Time `json:"createdAt"` // Save time; listings are ordered by it
}

// Template is a named starting point from the catalog.
type Template struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	State       Layout `json:"state" yaml:"state"`
}
