package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"css-layout-builder/internal/catalog"
	"css-layout-builder/internal/editor"
	"css-layout-builder/internal/export"
	"css-layout-builder/internal/idgen"
	"css-layout-builder/internal/library"
	"css-layout-builder/internal/model"
	"css-layout-builder/internal/storage"
	"css-layout-builder/internal/tui/state"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type harness struct {
	m       Model
	session *editor.Session
	clip    *fakeClipboard
	lib     *library.Manager
	export  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, err := storage.NewJSONStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewJSONStore() error = %v", err)
	}
	h := &harness{
		session: editor.NewSession(nil, idgen.Sequence("t")),
		clip:    &fakeClipboard{},
		lib:     library.NewManager(store, nil, library.WithIDs(idgen.Sequence("saved"))),
		export:  t.TempDir(),
	}
	h.m = New(Deps{
		Session:   h.session,
		Catalog:   catalog.Builtin(),
		Library:   h.lib,
		Exporter:  export.New(h.clip, nil),
		ExportDir: h.export,
	})
	return h
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		next, _ := h.m.Update(keyMsg(k))
		h.m = next.(Model)
	}
}

func (h *harness) undoDepth() int {
	return len(h.session.History().Past)
}

func TestCycleEnumRecordsOneStep(t *testing.T) {
	h := newHarness(t)

	h.press("down", "right")
	if got := h.session.Present().FlexboxProps.FlexDirection; got != model.DirectionColumn {
		t.Fatalf("flex-direction = %s, want column", got)
	}
	h.press("left", "left")
	if got := h.session.Present().FlexboxProps.FlexDirection; got != model.DirectionColumnReverse {
		t.Fatalf("flex-direction = %s, want column-reverse", got)
	}
	if d := h.undoDepth(); d != 3 {
		t.Errorf("undo depth = %d, want 3", d)
	}
}

func TestTextEditDraftsThenCommits(t *testing.T) {
	h := newHarness(t)

	h.press("down", "down", "down", "down", "down") // gap
	h.press("enter")
	if h.m.ui.Mode != state.INSERT {
		t.Fatal("enter did not open the input")
	}
	h.press("backspace", "backspace", "backspace", "12px")

	if got := h.session.Present().FlexboxProps.Gap; got != "12px" {
		t.Errorf("drafted gap = %q, want 12px", got)
	}
	if d := h.undoDepth(); d != 0 {
		t.Errorf("undo depth while typing = %d, want 0", d)
	}

	h.press("enter")
	if got := h.session.Present().FlexboxProps.Gap; got != "12px" {
		t.Errorf("committed gap = %q, want 12px", got)
	}
	if d := h.undoDepth(); d != 1 {
		t.Errorf("undo depth after commit = %d, want 1", d)
	}

	h.press("u")
	if got := h.session.Present().FlexboxProps.Gap; got != "0px" {
		t.Errorf("gap after undo = %q, want 0px", got)
	}
}

func TestEscapeRestoresDraft(t *testing.T) {
	h := newHarness(t)

	h.press("down", "down", "down", "down", "down", "enter", "rem")
	h.press("esc")

	if got := h.session.Present().FlexboxProps.Gap; got != "0px" {
		t.Errorf("gap after cancel = %q, want 0px", got)
	}
	if h.session.CanUndo() || h.m.ui.Mode != state.CMD {
		t.Error("cancelled edit left history or insert mode behind")
	}
}

func TestInvalidNumberIsRejected(t *testing.T) {
	h := newHarness(t)

	h.press("tab", "enter", "backspace", "x", "enter")
	if got := h.session.Present().FlexItems[0].FlexGrow; got != 0 {
		t.Errorf("flex-grow = %d, want 0", got)
	}
	if !strings.HasPrefix(h.m.ui.Notice, "error:") {
		t.Errorf("notice = %q, want an error", h.m.ui.Notice)
	}
	if h.session.CanUndo() {
		t.Error("rejected value recorded an undo step")
	}
}

func TestItemsPane(t *testing.T) {
	h := newHarness(t)

	h.press("tab", "right")
	if got := h.session.Present().FlexItems[0].FlexGrow; got != 1 {
		t.Fatalf("flex-grow = %d, want 1", got)
	}

	h.press("a")
	if n := len(h.session.Present().FlexItems); n != 2 || h.m.ui.Item != 1 {
		t.Fatalf("after add: items = %d selected = %d", n, h.m.ui.Item)
	}

	h.press("[", "d")
	items := h.session.Present().FlexItems
	if len(items) != 3 || items[1].FlexGrow != 1 || items[1].ID == items[0].ID {
		t.Fatalf("after duplicate: %+v", items)
	}
	if h.m.ui.Item != 1 {
		t.Errorf("selected = %d, want the copy at 1", h.m.ui.Item)
	}

	h.press("x", "x", "x")
	if n := len(h.session.Present().FlexItems); n != 1 {
		t.Fatalf("items = %d, want 1", n)
	}
	if !strings.Contains(h.m.ui.Notice, "last item") {
		t.Errorf("notice = %q", h.m.ui.Notice)
	}
}

func TestLayoutTypeToggleAndHistory(t *testing.T) {
	h := newHarness(t)

	h.press("t")
	if h.session.Present().LayoutType != model.LayoutGrid {
		t.Fatal("t did not switch to grid")
	}
	h.press("u")
	if h.session.Present().LayoutType != model.LayoutFlexbox {
		t.Fatal("undo did not restore flexbox")
	}
	h.press("r")
	if h.session.Present().LayoutType != model.LayoutGrid {
		t.Fatal("redo did not reapply grid")
	}
	h.press("r")
	if h.m.ui.Notice != "nothing to redo" {
		t.Errorf("notice = %q", h.m.ui.Notice)
	}
}

func TestFieldCursorFollowsLayoutType(t *testing.T) {
	h := newHarness(t)

	h.press("t")
	for range 10 {
		h.press("down")
	}
	if h.m.ui.Field != len(gridContainerFields)-1 {
		t.Fatalf("cursor = %d, want %d", h.m.ui.Field, len(gridContainerFields)-1)
	}
	h.press("t")
	if h.m.ui.Field != len(flexContainerFields)-1 {
		t.Errorf("cursor after switching back = %d, want %d", h.m.ui.Field, len(flexContainerFields)-1)
	}
	_ = h.m.View()
}

func TestCopyFollowsCodeView(t *testing.T) {
	h := newHarness(t)
	code := h.session.Code()

	h.press("c")
	if h.clip.text != code.CSS {
		t.Errorf("copied %q, want the stylesheet", h.clip.text)
	}
	h.press("v", "c")
	if h.clip.text != code.HTML {
		t.Errorf("copied %q, want the markup", h.clip.text)
	}
	h.press("v", "c")
	if h.clip.text != code.Combined() {
		t.Errorf("diff view should copy both parts")
	}

	h.clip.err = export.ErrClipboardUnavailable
	h.press("c")
	if !strings.Contains(h.m.ui.Notice, "no clipboard") {
		t.Errorf("notice = %q", h.m.ui.Notice)
	}
}

func TestSaveAndExport(t *testing.T) {
	h := newHarness(t)

	h.press("s", "Hero", "enter")
	list, err := h.lib.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Name != "Hero" {
		t.Fatalf("saved = %+v", list)
	}

	h.press("s", "   ", "enter")
	if !strings.HasPrefix(h.m.ui.Notice, "error:") {
		t.Errorf("blank name notice = %q", h.m.ui.Notice)
	}

	h.press("e")
	for _, name := range []string{"layout-flexbox-html.html", "layout-flexbox-styles.css"} {
		if _, err := os.Stat(filepath.Join(h.export, name)); err != nil {
			t.Errorf("exported file %s: %v", name, err)
		}
	}
}

func TestTemplateKeyCyclesCatalog(t *testing.T) {
	h := newHarness(t)

	h.press("T")
	l := h.session.Present()
	if len(l.FlexItems) != 3 || l.FlexboxProps.JustifyContent != model.JustifySpaceBetween {
		t.Fatalf("first template not loaded: %+v", l.FlexboxProps)
	}
	h.press("T")
	if h.session.Present().LayoutType != model.LayoutGrid {
		t.Fatal("second template should be the grid one")
	}
}

func TestDiffLines(t *testing.T) {
	got := diffLines("a\nb\nc\n", "a\nB\nc\n")
	want := []diffLine{
		{dmp.DiffEqual, "a"},
		{dmp.DiffDelete, "b"},
		{dmp.DiffInsert, "B"},
		{dmp.DiffEqual, "c"},
	}
	if len(got) != len(want) {
		t.Fatalf("diffLines() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if out := renderDiff("same", "same"); out != "No changes\n" {
		t.Errorf("renderDiff(equal) = %q", out)
	}
}

func TestViewShowsFields(t *testing.T) {
	h := newHarness(t)
	out := h.m.View()
	for _, want := range []string{"flexbox container", "justify-content", "flex-basis", "undo: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
