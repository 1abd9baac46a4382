// Package library manages the user's saved layouts on top of a
// storage.DataStore.
package library

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"css-layout-builder/internal/idgen"
	"css-layout-builder/internal/model"
	"css-layout-builder/internal/storage"
)

// ErrEmptyName is returned when a layout would be saved or renamed to a
// blank name.
var ErrEmptyName = errors.New("layout name cannot be empty")

// Manager provides save, list, rename and delete over a DataStore.
type Manager struct {
	store  storage.DataStore
	logger *slog.Logger
	ids    idgen.Generator
	now    func() time.Time
}

// Option customises a Manager.
type Option func(*Manager)

// WithIDs sets the generator used for new saved-layout ids.
func WithIDs(gen idgen.Generator) Option { return func(m *Manager) { m.ids = gen } }

// WithClock sets the time source for CreatedAt.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// NewManager creates a Manager. A nil logger discards output.
func NewManager(store storage.DataStore, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Manager{
		store:  store,
		logger: logger,
		ids:    idgen.Default,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying DataStore.
func (m *Manager) Store() storage.DataStore { return m.store }

// Save records state under name and returns the new entry. The name is
// trimmed; a blank name is rejected with ErrEmptyName and nothing is stored.
func (m *Manager) Save(name string, state model.Layout) (*model.SavedLayout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save invalid layout: %w", err)
	}

	saved := &model.SavedLayout{
		ID:        m.ids(),
		Name:      name,
		State:     state.Clone(),
		CreatedAt: m.now().UTC(),
	}
	if err := m.store.SaveLayout(saved); err != nil {
		m.logger.Error("Error saving layout", "name", name, "error", err)
		return nil, fmt.Errorf("saving layout failed: %w", err)
	}
	m.logger.Info("Saved layout", "layoutID", saved.ID, "name", name, "layoutType", state.LayoutType)
	return saved, nil
}

// List returns every saved layout, oldest first.
func (m *Manager) List() ([]*model.SavedLayout, error) {
	all, err := m.store.ReadAll()
	if err != nil {
		m.logger.Error("Error listing saved layouts", "error", err)
		return nil, err
	}
	return all, nil
}

// Get returns one saved layout. A missing id yields an error wrapping
// storage.ErrNotFound.
func (m *Manager) Get(id string) (*model.SavedLayout, error) {
	return m.store.LoadLayout(id)
}

// Rename changes the name of a saved layout and keeps everything else.
func (m *Manager) Rename(id, name string) (*model.SavedLayout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	saved, err := m.store.LoadLayout(id)
	if err != nil {
		m.logger.Warn("Cannot rename layout", "layoutID", id, "error", err)
		return nil, err
	}
	if saved.Name == name {
		return saved, nil
	}

	old := saved.Name
	saved.Name = name
	if err := m.store.SaveLayout(saved); err != nil {
		m.logger.Error("Error saving renamed layout", "layoutID", id, "error", err)
		return nil, fmt.Errorf("renaming layout failed: %w", err)
	}
	m.logger.Info("Renamed layout", "layoutID", id, "old", old, "new", name)
	return saved, nil
}

// Delete removes a saved layout. Deleting an unknown id reports
// storage.ErrNotFound.
func (m *Manager) Delete(id string) error {
	if _, err := m.store.LoadLayout(id); err != nil {
		m.logger.Warn("Saved layout not found, cannot delete.", "layoutID", id)
		return err
	}
	if err := m.store.DeleteLayout(id); err != nil {
		m.logger.Error("Error deleting layout", "layoutID", id, "error", err)
		return err
	}
	m.logger.Info("Deleted layout", "layoutID", id)
	return nil
}
