package storage

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"css-layout-builder/internal/model"
)

// ErrNotFound is returned when no saved layout has the requested id.
var ErrNotFound = errors.New("saved layout not found")

// DataStore persists saved layouts. Implementations keep each layout under
// its ID; the collection as a whole belongs to one named store.
type DataStore interface {
	// SaveLayout inserts or replaces one saved layout.
	SaveLayout(saved *model.SavedLayout) error

	// LoadLayout returns the layout stored under id, or an error wrapping
	// ErrNotFound.
	LoadLayout(id string) (*model.SavedLayout, error)

	GetAllLayoutIDs() ([]string, error)

	// DeleteLayout removes a layout. Deleting a missing id is not an error.
	DeleteLayout(id string) error

	// ReadAll returns every saved layout, oldest first.
	ReadAll() ([]*model.SavedLayout, error)

	// SaveAll replaces the whole collection with layouts.
	SaveAll(layouts []model.SavedLayout) error

	// GetBasePath returns where the store keeps its data.
	GetBasePath() string
}

// checkID rejects ids that are empty or could escape a storage directory.
func checkID(id string) error {
	if id == "" {
		return fmt.Errorf("layout ID cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid layout ID %q", id)
	}
	return nil
}

func checkSaved(saved *model.SavedLayout) error {
	if saved == nil {
		return fmt.Errorf("saved layout cannot be nil")
	}
	if err := checkID(saved.ID); err != nil {
		return err
	}
	if strings.TrimSpace(saved.Name) == "" {
		return fmt.Errorf("saved layout %s: name cannot be empty", saved.ID)
	}
	return nil
}

// sortByCreated orders layouts oldest first, breaking ties by id.
func sortByCreated(layouts []*model.SavedLayout) {
	slices.SortStableFunc(layouts, func(a, b *model.SavedLayout) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
