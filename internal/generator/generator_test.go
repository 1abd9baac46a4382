package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"css-layout-builder/internal/model"
)

const flexItemBase = `.flex-item {
  padding: 1rem;
  background-color: rgba(52, 152, 219, 0.2);
  border: 2px dashed rgba(52, 152, 219, 0.7);
  border-radius: 0.25rem;
  display: flex;
  align-items: center;
  justify-content: center;
}

`

const gridItemBase = `.grid-item {
  padding: 1rem;
  background-color: rgba(46, 204, 113, 0.2);
  border: 2px dashed rgba(46, 204, 113, 0.7);
  border-radius: 0.25rem;
  display: flex;
  align-items: center;
  justify-content: center;
}

`

func TestGenerateMarkup(t *testing.T) {
	tests := []struct {
		name string
		t    model.LayoutType
		flex []model.FlexItem
		grid []model.GridItem
		want string
	}{
		{
			name: "flexbox two items",
			t:    model.LayoutFlexbox,
			flex: []model.FlexItem{model.NewFlexItem("a"), model.NewFlexItem("b")},
			grid: []model.GridItem{model.NewGridItem("g")},
			want: "<div class=\"container\">\n  <div class=\"flex-item\">Item 1</div>\n  <div class=\"flex-item\">Item 2</div>\n</div>",
		},
		{
			name: "grid uses grid items",
			t:    model.LayoutGrid,
			flex: []model.FlexItem{model.NewFlexItem("a"), model.NewFlexItem("b")},
			grid: []model.GridItem{model.NewGridItem("g")},
			want: "<div class=\"grid-container\">\n  <div class=\"grid-item\">Item 1</div>\n</div>",
		},
		{
			name: "empty sequence",
			t:    model.LayoutFlexbox,
			want: "<div class=\"container\">\n</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateMarkup(tt.t, tt.flex, tt.grid); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestGenerateStylesheet_FlexDefaults(t *testing.T) {
	got := GenerateStylesheet(model.LayoutFlexbox, model.DefaultFlexboxProperties(), model.DefaultGridProperties(),
		[]model.FlexItem{model.NewFlexItem("a")}, nil)

	want := `.container {
  display: flex;
  flex-direction: row;
  justify-content: flex-start;
  align-items: stretch;
  flex-wrap: nowrap;
  gap: 0px;
}

` + flexItemBase + `.flex-item:nth-child(1) {
  flex-grow: 0;
  flex-shrink: 1;
  flex-basis: auto;
}

`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateStylesheet_FlexOptionalDeclarations(t *testing.T) {
	it := model.NewFlexItem("a")
	it.FlexGrow = 2
	it.AlignSelf = model.AlignSelfCenter
	it.Order = -1

	got := GenerateStylesheet(model.LayoutFlexbox, model.DefaultFlexboxProperties(), model.DefaultGridProperties(),
		[]model.FlexItem{model.NewFlexItem("first"), it}, nil)

	want := `.flex-item:nth-child(2) {
  flex-grow: 2;
  flex-shrink: 1;
  flex-basis: auto;
  align-self: center;
  order: -1;
}

`
	if !strings.HasSuffix(got, want) {
		t.Errorf("missing second item rule, got:\n%s", got)
	}
}

func TestGenerateStylesheet_GridDefaults(t *testing.T) {
	got := GenerateStylesheet(model.LayoutGrid, model.DefaultFlexboxProperties(), model.DefaultGridProperties(),
		nil, []model.GridItem{model.NewGridItem("g1"), model.NewGridItem("g2")})

	want := `.grid-container {
  display: grid;
  grid-template-columns: repeat(3, 1fr);
  grid-template-rows: repeat(2, 100px);
  row-gap: 10px;
  column-gap: 10px;
  justify-items: stretch;
  align-items: stretch;
}

` + gridItemBase
	if got != want {
		t.Errorf("default grid items should produce no per-item rules, got:\n%s", got)
	}
}

func TestGenerateStylesheet_GridItemPlacement(t *testing.T) {
	it := model.NewGridItem("g2")
	it.GridColumnStart = "1"
	it.GridColumnEnd = "3"
	it.AlignSelf = model.GridCenter

	got := GenerateStylesheet(model.LayoutGrid, model.DefaultFlexboxProperties(), model.DefaultGridProperties(),
		nil, []model.GridItem{model.NewGridItem("g1"), it})

	want := gridItemBase + `.grid-item:nth-child(2) {
  grid-column-start: 1;
  grid-column-end: 3;
  align-self: center;
}

`
	if !strings.HasSuffix(got, want) {
		t.Errorf("got:\n%s", got)
	}
	if strings.Contains(got, "nth-child(1)") {
		t.Error("default first item should not get a rule")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	l := model.DefaultLayout(func() string { return "x" })
	if Generate(l) != Generate(l) {
		t.Error("Generate returned different output for the same layout")
	}
}

func TestCombined(t *testing.T) {
	c := Code{HTML: "<div></div>", CSS: ".a {}"}
	want := "<!-- HTML -->\n<div></div>\n\n/* CSS */\n.a {}"
	if got := c.Combined(); got != want {
		t.Errorf("Combined = %q, want %q", got, want)
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	code := Code{HTML: "<div class=\"grid-container\">\n</div>", CSS: ".grid-container {}\n"}

	paths, err := WriteFiles(dir, model.LayoutGrid, code)
	if err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "layout-grid-html.html" || filepath.Base(paths[1]) != "layout-grid-styles.css" {
		t.Errorf("unexpected file names %v", paths)
	}

	for i, want := range []string{code.HTML, code.CSS} {
		got, err := os.ReadFile(paths[i])
		if err != nil {
			t.Fatalf("reading %s: %v", paths[i], err)
		}
		if string(got) != want {
			t.Errorf("%s content = %q, want %q", paths[i], got, want)
		}
	}
}
