package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"css-layout-builder/internal/model"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}

	row, err := c.Get("1")
	if err != nil {
		t.Fatal(err)
	}
	if row.Name != "Basic Flexbox Row" || row.State.LayoutType != model.LayoutFlexbox {
		t.Errorf("template 1 = %q/%s", row.Name, row.State.LayoutType)
	}
	if len(row.State.FlexItems) != 3 || row.State.FlexItems[0].FlexGrow != 1 {
		t.Errorf("template 1 flex items = %+v", row.State.FlexItems)
	}
	if row.State.FlexboxProps.JustifyContent != model.JustifySpaceBetween {
		t.Errorf("template 1 justify-content = %q", row.State.FlexboxProps.JustifyContent)
	}
	if len(row.State.GridItems) != 0 {
		t.Errorf("template 1 should have no grid items, got %d", len(row.State.GridItems))
	}

	grid, err := c.Get("2")
	if err != nil {
		t.Fatal(err)
	}
	if len(grid.State.GridItems) != 9 {
		t.Fatalf("template 2 grid items = %d, want 9", len(grid.State.GridItems))
	}
	last := grid.State.GridItems[8]
	if last.GridColumnStart != "3" || last.GridRowEnd != "4" || last.JustifySelf != model.GridStretch {
		t.Errorf("template 2 last item = %+v", last)
	}
	if grid.State.GridProps.GridTemplateRows != "repeat(3, 100px)" {
		t.Errorf("template 2 rows = %q", grid.State.GridProps.GridTemplateRows)
	}
}

func TestListOrderAndCopies(t *testing.T) {
	c := Builtin()
	list := c.List()
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	if strings.Join(ids, ",") != "1,2,sidebar-grid" {
		t.Errorf("List order = %v", ids)
	}

	list[0].State.FlexItems[0].FlexGrow = 42
	again, _ := c.Get("1")
	if again.State.FlexItems[0].FlexGrow != 1 {
		t.Error("modifying a listed template changed the catalog")
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Builtin().Get("nope"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("Get(nope) error = %v", err)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "- id: a\n  name: A\n  colour: red\n"},
		{"missing id", "- name: A\n"},
		{"duplicate id", `
- id: a
  name: A
  state: {layoutType: flexbox, flexboxProps: {display: flex, flexDirection: row, justifyContent: center, alignItems: center, flexWrap: wrap, gap: 1px}, gridProps: {display: grid, justifyItems: start, alignItems: start}, flexItems: [{id: x, alignSelf: auto}]}
- id: a
  name: B
  state: {layoutType: flexbox, flexboxProps: {display: flex, flexDirection: row, justifyContent: center, alignItems: center, flexWrap: wrap, gap: 1px}, gridProps: {display: grid, justifyItems: start, alignItems: start}, flexItems: [{id: x, alignSelf: auto}]}
`},
		{"invalid enum", `
- id: a
  name: A
  state: {layoutType: flexbox, flexboxProps: {display: block, flexDirection: row, justifyContent: center, alignItems: center, flexWrap: wrap, gap: 1px}, gridProps: {display: grid, justifyItems: start, alignItems: start}, flexItems: [{id: x, alignSelf: auto}]}
`},
		{"no active items", `
- id: a
  name: A
  state: {layoutType: grid, flexboxProps: {display: flex, flexDirection: row, justifyContent: center, alignItems: center, flexWrap: wrap, gap: 1px}, gridProps: {display: grid, justifyItems: start, alignItems: start}, flexItems: [{id: x, alignSelf: auto}]}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	content := `
- id: centered
  name: Centered
  description: One centred item
  state:
    layoutType: flexbox
    flexboxProps: {display: flex, flexDirection: column, justifyContent: center, alignItems: center, flexWrap: nowrap, gap: 0px}
    gridProps: {display: grid, gridTemplateColumns: 1fr, gridTemplateRows: 1fr, rowGap: 0px, columnGap: 0px, justifyItems: center, alignItems: center}
    flexItems:
      - {id: only, flexGrow: 0, flexShrink: 1, flexBasis: auto, alignSelf: auto, order: 0}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	tpl, err := c.Get("centered")
	if err != nil {
		t.Fatal(err)
	}
	if tpl.State.FlexboxProps.FlexDirection != model.DirectionColumn {
		t.Errorf("FlexDirection = %q", tpl.State.FlexboxProps.FlexDirection)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadEmpty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load(empty) failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d", c.Len())
	}
}

func TestOpen(t *testing.T) {
	c, err := Open("")
	if err != nil || c.Len() != Builtin().Len() {
		t.Errorf("Open(\"\") = %v, %v; want built-in catalog", c, err)
	}
	if _, err := Open(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing catalog file")
	}
}
