package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"css-layout-builder/internal/model"
	"css-layout-builder/pkg/fsutils"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS saved_layouts (
	store      TEXT NOT NULL,
	id         TEXT NOT NULL,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	state      TEXT NOT NULL,
	PRIMARY KEY (store, id)
);
CREATE INDEX IF NOT EXISTS idx_saved_layouts_created ON saved_layouts(store, created_at);`

// SQLiteStore implements DataStore on a single SQLite table. Several named
// stores can share one database file; each only sees its own rows.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	store  string
	logger *slog.Logger
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// scopes the returned store to storeName. Use ":memory:" for a throwaway
// database.
func OpenSQLiteStore(path, storeName string, logger *slog.Logger) (*SQLiteStore, error) {
	if storeName == "" {
		return nil, fmt.Errorf("store name cannot be empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if path != ":memory:" {
		if err := fsutils.CreateDir(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if path == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	for _, p := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Debug("Opened SQLite store", "path", path, "store", storeName)
	return &SQLiteStore{db: db, path: path, store: storeName, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetBasePath() string {
	return s.path
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) upsert(ex execer, saved *model.SavedLayout) error {
	if err := checkSaved(saved); err != nil {
		return err
	}
	state, err := json.Marshal(saved.State)
	if err != nil {
		return fmt.Errorf("failed to marshal layout %s: %w", saved.ID, err)
	}
	_, err = ex.Exec(`INSERT INTO saved_layouts (store, id, name, created_at, state)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(store, id) DO UPDATE SET name = excluded.name, created_at = excluded.created_at, state = excluded.state`,
		s.store, saved.ID, saved.Name, saved.CreatedAt.UTC().Format(time.RFC3339Nano), string(state))
	if err != nil {
		return fmt.Errorf("failed to save layout %s: %w", saved.ID, err)
	}
	return nil
}

func (s *SQLiteStore) SaveLayout(saved *model.SavedLayout) error {
	if err := s.upsert(s.db, saved); err != nil {
		return err
	}
	s.logger.Debug("Saved layout", "layoutID", saved.ID, "store", s.store)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLayout(row rowScanner) (*model.SavedLayout, error) {
	var (
		saved   model.SavedLayout
		created string
		state   string
	)
	if err := row.Scan(&saved.ID, &saved.Name, &created, &state); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("layout %s: bad created_at %q: %w", saved.ID, created, err)
	}
	saved.CreatedAt = t
	if err := json.Unmarshal([]byte(state), &saved.State); err != nil {
		return nil, fmt.Errorf("layout %s: failed to unmarshal state: %w", saved.ID, err)
	}
	return &saved, nil
}

func (s *SQLiteStore) LoadLayout(id string) (*model.SavedLayout, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`SELECT id, name, created_at, state FROM saved_layouts WHERE store = ? AND id = ?`, s.store, id)
	saved, err := scanLayout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("layout %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *SQLiteStore) GetAllLayoutIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM saved_layouts WHERE store = ? ORDER BY created_at, id`, s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to list layout IDs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) DeleteLayout(id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM saved_layouts WHERE store = ? AND id = ?`, s.store, id); err != nil {
		return fmt.Errorf("failed to delete layout %s: %w", id, err)
	}
	s.logger.Debug("Deleted layout", "layoutID", id, "store", s.store)
	return nil
}

// ReadAll returns the store's layouts oldest first. Rows that fail to decode
// are logged and skipped.
func (s *SQLiteStore) ReadAll() ([]*model.SavedLayout, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at, state FROM saved_layouts WHERE store = ?`, s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to read layouts: %w", err)
	}
	defer rows.Close()

	layouts := []*model.SavedLayout{}
	for rows.Next() {
		saved, err := scanLayout(rows)
		if err != nil {
			s.logger.Warn("Skipping unreadable layout", "store", s.store, "error", err)
			continue
		}
		layouts = append(layouts, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortByCreated(layouts)
	return layouts, nil
}

// SaveAll replaces the store's rows in one transaction.
func (s *SQLiteStore) SaveAll(layouts []model.SavedLayout) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM saved_layouts WHERE store = ?`, s.store); err != nil {
		return fmt.Errorf("failed to clear store %s: %w", s.store, err)
	}
	for i := range layouts {
		if err := s.upsert(tx, &layouts[i]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("Replaced saved layouts", "store", s.store, "count", len(layouts))
	return nil
}
