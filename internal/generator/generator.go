// Package generator turns a layout into the HTML markup and CSS stylesheet
// shown in the code panel and written by the export surface. Output is a
// pure function of its input and is byte-stable.
package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"css-layout-builder/internal/model"
	"css-layout-builder/pkg/fsutils"
)

// Code is one generated markup/stylesheet pair.
type Code struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}

// Combined joins both parts into the single text offered by "copy both".
func (c Code) Combined() string {
	return "<!-- HTML -->\n" + c.HTML + "\n\n/* CSS */\n" + c.CSS
}

// Class names used in both markup and stylesheet.
const (
	flexContainerClass = "container"
	flexItemClass      = "flex-item"
	gridContainerClass = "grid-container"
	gridItemClass      = "grid-item"
)

// itemTint is the RGB triple of the dashed placeholder styling.
var itemTint = map[model.LayoutType]string{
	model.LayoutFlexbox: "52, 152, 219",
	model.LayoutGrid:    "46, 204, 113",
}

func classNames(t model.LayoutType) (container, item string) {
	if t == model.LayoutGrid {
		return gridContainerClass, gridItemClass
	}
	return flexContainerClass, flexItemClass
}

// Generate produces markup and stylesheet for the live sub-model of l.
func Generate(l model.Layout) Code {
	return Code{
		HTML: GenerateMarkup(l.LayoutType, l.FlexItems, l.GridItems),
		CSS:  GenerateStylesheet(l.LayoutType, l.FlexboxProps, l.GridProps, l.FlexItems, l.GridItems),
	}
}

// GenerateMarkup emits one container div with one numbered child div per
// item of the active sequence. Items are numbered from 1 in sequence order.
// The result has no trailing newline.
func GenerateMarkup(t model.LayoutType, flexItems []model.FlexItem, gridItems []model.GridItem) string {
	container, item := classNames(t)
	n := len(flexItems)
	if t == model.LayoutGrid {
		n = len(gridItems)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"%s\">\n", container)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "  <div class=\"%s\">Item %d</div>\n", item, i)
	}
	b.WriteString("</div>")
	return b.String()
}

// GenerateStylesheet emits the container rule, the shared item rule and the
// per-item :nth-child rules for the active layout type. Every rule block is
// followed by a blank line.
func GenerateStylesheet(t model.LayoutType, fp model.FlexboxProperties, gp model.GridProperties, flexItems []model.FlexItem, gridItems []model.GridItem) string {
	var b strings.Builder
	if t == model.LayoutGrid {
		writeGridContainer(&b, gp)
		writeItemBase(&b, gridItemClass, itemTint[model.LayoutGrid])
		for i, it := range gridItems {
			writeGridItem(&b, i+1, it)
		}
		return b.String()
	}

	writeFlexContainer(&b, fp)
	writeItemBase(&b, flexItemClass, itemTint[model.LayoutFlexbox])
	for i, it := range flexItems {
		writeFlexItem(&b, i+1, it)
	}
	return b.String()
}

// --- rule writers ---

func decl(b *strings.Builder, prop, value string) {
	fmt.Fprintf(b, "  %s: %s;\n", prop, value)
}

func openRule(b *strings.Builder, selector string) {
	b.WriteString(selector + " {\n")
}

func closeRule(b *strings.Builder) {
	b.WriteString("}\n\n")
}

func writeFlexContainer(b *strings.Builder, p model.FlexboxProperties) {
	openRule(b, "."+flexContainerClass)
	decl(b, "display", string(p.Display))
	decl(b, "flex-direction", string(p.FlexDirection))
	decl(b, "justify-content", string(p.JustifyContent))
	decl(b, "align-items", string(p.AlignItems))
	decl(b, "flex-wrap", string(p.FlexWrap))
	decl(b, "gap", p.Gap)
	closeRule(b)
}

func writeGridContainer(b *strings.Builder, p model.GridProperties) {
	openRule(b, "."+gridContainerClass)
	decl(b, "display", string(p.Display))
	decl(b, "grid-template-columns", p.GridTemplateColumns)
	decl(b, "grid-template-rows", p.GridTemplateRows)
	decl(b, "row-gap", p.RowGap)
	decl(b, "column-gap", p.ColumnGap)
	decl(b, "justify-items", string(p.JustifyItems))
	decl(b, "align-items", string(p.AlignItems))
	closeRule(b)
}

func writeItemBase(b *strings.Builder, class, rgb string) {
	openRule(b, "."+class)
	decl(b, "padding", "1rem")
	decl(b, "background-color", "rgba("+rgb+", 0.2)")
	decl(b, "border", "2px dashed rgba("+rgb+", 0.7)")
	decl(b, "border-radius", "0.25rem")
	decl(b, "display", "flex")
	decl(b, "align-items", "center")
	decl(b, "justify-content", "center")
	closeRule(b)
}

// writeFlexItem always emits grow, shrink and basis. align-self and order
// only appear when they differ from auto and 0.
func writeFlexItem(b *strings.Builder, n int, it model.FlexItem) {
	openRule(b, fmt.Sprintf(".%s:nth-child(%d)", flexItemClass, n))
	decl(b, "flex-grow", fmt.Sprint(it.FlexGrow))
	decl(b, "flex-shrink", fmt.Sprint(it.FlexShrink))
	decl(b, "flex-basis", it.FlexBasis)
	if it.AlignSelf != model.AlignSelfAuto {
		decl(b, "align-self", string(it.AlignSelf))
	}
	if it.Order != 0 {
		decl(b, "order", fmt.Sprint(it.Order))
	}
	closeRule(b)
}

// writeGridItem emits nothing for an item left entirely at its defaults.
func writeGridItem(b *strings.Builder, n int, it model.GridItem) {
	var decls [][2]string
	for _, d := range [][2]string{
		{"grid-column-start", it.GridColumnStart},
		{"grid-column-end", it.GridColumnEnd},
		{"grid-row-start", it.GridRowStart},
		{"grid-row-end", it.GridRowEnd},
	} {
		if d[1] != model.AutoValue {
			decls = append(decls, d)
		}
	}
	if it.JustifySelf != model.GridStart {
		decls = append(decls, [2]string{"justify-self", string(it.JustifySelf)})
	}
	if it.AlignSelf != model.GridStart {
		decls = append(decls, [2]string{"align-self", string(it.AlignSelf)})
	}
	if len(decls) == 0 {
		return
	}

	openRule(b, fmt.Sprintf(".%s:nth-child(%d)", gridItemClass, n))
	for _, d := range decls {
		decl(b, d[0], d[1])
	}
	closeRule(b)
}

// --- files ---

// FileNames returns the markup and stylesheet file names used for download.
func FileNames(t model.LayoutType) (html, css string) {
	return fmt.Sprintf("layout-%s-html.html", t), fmt.Sprintf("layout-%s-styles.css", t)
}

// WriteFiles writes both parts of code into dir, creating it if needed, and
// returns the written paths (markup first).
func WriteFiles(dir string, t model.LayoutType, code Code) ([]string, error) {
	if err := fsutils.CreateDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	htmlName, cssName := FileNames(t)
	files := []struct {
		name    string
		content string
	}{
		{htmlName, code.HTML},
		{cssName, code.CSS},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		p := filepath.Join(dir, f.name)
		if err := fsutils.WriteToFile(p, []byte(f.content)); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
