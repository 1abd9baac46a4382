package fsutils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCreateDir(t *testing.T) {
	tempDir := t.TempDir()

	nested := filepath.Join(tempDir, "parent", "child")
	if err := CreateDir(nested); err != nil {
		t.Fatalf("CreateDir(%q) returned error: %v", nested, err)
	}
	if info, err := os.Stat(nested); err != nil || !info.IsDir() {
		t.Fatalf("directory %q was not created", nested)
	}

	// Existing directory is not an error.
	if err := CreateDir(nested); err != nil {
		t.Fatalf("CreateDir on existing dir returned error: %v", err)
	}
}

func TestWriteToFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "out.css")

	if err := WriteToFile(path, []byte("initial")); err != nil {
		t.Fatalf("WriteToFile returned error: %v", err)
	}
	if err := WriteToFile(path, []byte("overwritten")); err != nil {
		t.Fatalf("WriteToFile overwrite returned error: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "overwritten" {
		t.Errorf("content = %q, want %q", got, "overwritten")
	}

	entries, _ := os.ReadDir(tempDir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}

	missing := filepath.Join(tempDir, "no_such_dir", "file.txt")
	if err := WriteToFile(missing, []byte("x")); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestScanDir(t *testing.T) {
	tempDir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt", ".hidden.json"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(tempDir, "dir.json"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ScanDir(tempDir, ".json")
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if want := []string{"a.json", "b.json"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ScanDir = %v, want %v", got, want)
	}
}

func TestFileExists(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "exists.txt")
	if err := os.WriteFile(filePath, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(filePath) {
		t.Errorf("FileExists(%q) = false, want true", filePath)
	}
	if FileExists(filepath.Join(tempDir, "missing.txt")) {
		t.Error("FileExists on missing file returned true")
	}
	if FileExists(tempDir) {
		t.Error("FileExists on a directory returned true")
	}
	if FileExists("") {
		t.Error(`FileExists("") returned true`)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Spaces", "My Hero Layout", "my_hero_layout"},
		{"Special Chars", "Layout!@#$%^&*()", "layout"},
		{"Already Valid", "valid_name-123", "valid_name-123"},
		{"Leading/Trailing Spaces", "  sidebar grid  ", "sidebar_grid"},
		{"Consecutive Special Chars", "a!!b@#c", "a_b_c"},
		{"Empty String", "", ""},
		{"Only Special Chars", "!@#$", "_"},
		{"Unicode", "你好世界", "_"},
		{"With Periods", "file.name.ext", "file.name.ext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
