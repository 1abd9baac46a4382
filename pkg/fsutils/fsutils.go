package fsutils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CreateDir creates a directory and any missing parents.
func CreateDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteToFile writes content to path, replacing any existing file. The data
// goes to a temporary file in the same directory first and is renamed into
// place, so readers never see a partial write. The parent directory must
// exist.
func WriteToFile(path string, content []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %q: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %q: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %q into place: %w", path, err)
	}
	return nil
}

// ReadFile reads the content of a file.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ScanDir lists the regular files directly under path whose names end in
// ext. Directories and hidden files are skipped.
func ScanDir(path, ext string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9_.-]+`)
var collapseUnderscoreRegex = regexp.MustCompile(`_+`)

// SanitizeFilename lowercases name and replaces runs of anything other than
// letters, digits, '.', '-' and '_' with a single underscore. Leading and
// trailing underscores are trimmed; a non-empty name that sanitizes to
// nothing becomes "_".
func SanitizeFilename(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	sanitized := nonAlphanumericRegex.ReplaceAllString(lower, "_")
	collapsed := collapseUnderscoreRegex.ReplaceAllString(sanitized, "_")
	trimmed := strings.Trim(collapsed, "_")

	if trimmed == "" && name != "" {
		return "_"
	}
	return trimmed
}
