package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"css-layout-builder/internal/model"
	"css-layout-builder/pkg/fsutils"
)

// JSONStore implements DataStore with one indented JSON file per layout.
type JSONStore struct {
	// BasePath is the directory holding the *.json files.
	BasePath string
	logger   *slog.Logger
}

// NewJSONStore creates the base directory if needed. A nil logger discards
// output.
func NewJSONStore(basePath string, logger *slog.Logger) (*JSONStore, error) {
	if err := fsutils.CreateDir(basePath); err != nil {
		return nil, fmt.Errorf("failed to create storage directory '%s': %w", basePath, err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &JSONStore{BasePath: basePath, logger: logger}, nil
}

func (js *JSONStore) GetBasePath() string {
	return js.BasePath
}

func (js *JSONStore) path(id string) string {
	return filepath.Join(js.BasePath, id+".json")
}

func (js *JSONStore) SaveLayout(saved *model.SavedLayout) error {
	if err := checkSaved(saved); err != nil {
		return err
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout %s: %w", saved.ID, err)
	}

	filePath := js.path(saved.ID)
	if err := fsutils.WriteToFile(filePath, data); err != nil {
		return fmt.Errorf("failed to write layout file %s: %w", filePath, err)
	}
	js.logger.Debug("Saved layout", "layoutID", saved.ID, "path", filePath)
	return nil
}

func (js *JSONStore) LoadLayout(id string) (*model.SavedLayout, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	filePath := js.path(id)

	data, err := fsutils.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("layout %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read layout file %s: %w", filePath, err)
	}

	var saved model.SavedLayout
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layout data from %s: %w", filePath, err)
	}
	return &saved, nil
}

// GetAllLayoutIDs lists the ids of the *.json files under BasePath.
func (js *JSONStore) GetAllLayoutIDs() ([]string, error) {
	names, err := fsutils.ScanDir(js.BasePath, ".json")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read storage directory %s: %w", js.BasePath, err)
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

func (js *JSONStore) DeleteLayout(id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	filePath := js.path(id)

	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete layout file %s: %w", filePath, err)
	}
	js.logger.Debug("Deleted layout", "layoutID", id)
	return nil
}

// ReadAll loads every layout file, oldest first. Files that fail to parse
// are logged and skipped.
func (js *JSONStore) ReadAll() ([]*model.SavedLayout, error) {
	ids, err := js.GetAllLayoutIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to get layout IDs: %w", err)
	}

	layouts := make([]*model.SavedLayout, 0, len(ids))
	for _, id := range ids {
		saved, err := js.LoadLayout(id)
		if err != nil {
			js.logger.Warn("Skipping unreadable layout", "layoutID", id, "error", err)
			continue
		}
		layouts = append(layouts, saved)
	}
	sortByCreated(layouts)
	return layouts, nil
}

// SaveAll writes every layout and then removes files for ids not in the
// new collection.
func (js *JSONStore) SaveAll(layouts []model.SavedLayout) error {
	keep := make(map[string]bool, len(layouts))
	for i := range layouts {
		if err := js.SaveLayout(&layouts[i]); err != nil {
			return err
		}
		keep[layouts[i].ID] = true
	}

	ids, err := js.GetAllLayoutIDs()
	if err != nil {
		return fmt.Errorf("failed to get layout IDs: %w", err)
	}
	for _, id := range ids {
		if keep[id] {
			continue
		}
		if err := js.DeleteLayout(id); err != nil {
			return err
		}
	}
	return nil
}
