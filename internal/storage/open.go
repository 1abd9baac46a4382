package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// SQLiteFile is the database file name used under the data directory.
const SQLiteFile = "layouts.db"

// Open returns the DataStore for backend rooted at dataDir. The returned
// close function releases any resources and is never nil.
func Open(backend, dataDir, storeName string, logger *slog.Logger) (DataStore, func() error, error) {
	noop := func() error { return nil }
	switch backend {
	case BackendJSON:
		s, err := NewJSONStore(filepath.Join(dataDir, storeName), logger)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case BackendSQLite:
		s, err := OpenSQLiteStore(filepath.Join(dataDir, SQLiteFile), storeName, logger)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", backend)
	}
}
