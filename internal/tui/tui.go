// Package tui is a terminal front end for the layout editor.
package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"css-layout-builder/internal/catalog"
	"css-layout-builder/internal/editor"
	"css-layout-builder/internal/export"
	"css-layout-builder/internal/generator"
	"css-layout-builder/internal/library"
	"css-layout-builder/internal/model"
	"css-layout-builder/internal/tui/state"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	selStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "81"}).Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activePane  = paneStyle.BorderForeground(lipgloss.AdaptiveColor{Light: "25", Dark: "81"})
)

var previewModes = []model.PreviewMode{model.PreviewDesktop, model.PreviewMobile}

// Deps are the services the editor screen works with. Library may be nil,
// which disables saving.
type Deps struct {
	Session   *editor.Session
	Catalog   *catalog.Catalog
	Library   *library.Manager
	Exporter  *export.Exporter
	ExportDir string
	Logger    *slog.Logger
}

type inputTarget int

const (
	targetNone inputTarget = iota
	targetField
	targetSaveName
)

// Model is the bubbletea model of the editor screen.
type Model struct {
	deps  Deps
	ui    state.UIState
	keys  keyMap
	help  help.Model
	input textinput.Model

	target    inputTarget
	editing   field
	draftBase model.Layout
	nextTpl   int
	quitting  bool
}

// New builds the editor screen around deps.Session.
func New(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Exporter == nil {
		deps.Exporter = export.New(nil, deps.Logger)
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Builtin()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{
		deps:  deps,
		keys:  defaultKeys(),
		help:  help.New(),
		input: ti,
	}
}

// Run shows the editor until the user quits.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.ui.Mode == state.INSERT {
			return m.updateInsert(msg)
		}
		return m.updateCommand(msg)
	}
	return m, nil
}

func (m Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.deps.Session
	l := s.Present()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.ui = state.ToggleHelp(m.ui)
		m.help.ShowAll = m.ui.ShowHelp
	case key.Matches(msg, m.keys.NextPane):
		m.ui = state.NextPane(m.ui)
	case key.Matches(msg, m.keys.PrevPane):
		m.ui = state.PrevPane(m.ui)
	case key.Matches(msg, m.keys.Up):
		m.ui = state.MoveField(m.ui, -1, m.fieldCount(l))
	case key.Matches(msg, m.keys.Down):
		m.ui = state.MoveField(m.ui, 1, m.fieldCount(l))
	case key.Matches(msg, m.keys.PrevItem):
		m.ui = state.SelectItem(m.ui, -1, l.ActiveItemCount())
	case key.Matches(msg, m.keys.NextItem):
		m.ui = state.SelectItem(m.ui, 1, l.ActiveItemCount())
	case key.Matches(msg, m.keys.Left):
		m.step(l, -1)
	case key.Matches(msg, m.keys.Right):
		m.step(l, 1)
	case key.Matches(msg, m.keys.Edit):
		return m.startFieldEdit(l)
	case key.Matches(msg, m.keys.Type):
		next := state.Cycle(model.LayoutTypes, l.LayoutType, 1)
		m.report(s.SetLayoutType(next), "layout: "+string(next))
	case key.Matches(msg, m.keys.Add):
		m.addItem(l.LayoutType)
	case key.Matches(msg, m.keys.Remove):
		m.removeItem(l.LayoutType)
	case key.Matches(msg, m.keys.Duplicate):
		m.duplicateItem(l.LayoutType)
	case key.Matches(msg, m.keys.Undo):
		if !s.Undo() {
			m.ui = state.Notify(m.ui, "nothing to undo")
		}
	case key.Matches(msg, m.keys.Redo):
		if !s.Redo() {
			m.ui = state.Notify(m.ui, "nothing to redo")
		}
	case key.Matches(msg, m.keys.View):
		m.ui = state.CycleView(m.ui)
	case key.Matches(msg, m.keys.Preview):
		next := state.Cycle(previewModes, s.PreviewMode(), 1)
		m.report(s.SetPreviewMode(next), "preview: "+string(next))
	case key.Matches(msg, m.keys.Copy):
		m.copyCode()
	case key.Matches(msg, m.keys.Save):
		return m.startSave()
	case key.Matches(msg, m.keys.Export):
		paths, err := m.deps.Exporter.Download(m.deps.ExportDir, l.LayoutType, s.Code())
		m.report(err, "exported "+strings.Join(paths, ", "))
	case key.Matches(msg, m.keys.Template):
		m.loadNextTemplate()
	}

	m.clamp()
	return m, nil
}

func (m Model) updateInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.target == targetField {
			m.deps.Session.Draft(m.draftBase)
		}
		m.endInput()
		m.ui = state.Notify(m.ui, "cancelled")
		return m, nil
	case tea.KeyEnter:
		m.finishInput()
		m.clamp()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.target == targetField {
		m.draft()
	}
	return m, cmd
}

// --- helpers ---

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.deps.Logger.Warn("Editor action failed", "error", err)
		m.ui = state.Notify(m.ui, "error: "+err.Error())
		return
	}
	m.ui = state.Notify(m.ui, ok)
}

func (m Model) fieldCount(l model.Layout) int {
	if m.ui.Pane == state.PaneItems {
		return len(itemFields(l.LayoutType))
	}
	return len(containerFields(l.LayoutType))
}

// currentField returns the row under the cursor of the focused pane.
func (m Model) currentField(l model.Layout) (field, bool) {
	switch m.ui.Pane {
	case state.PaneContainer:
		fs := containerFields(l.LayoutType)
		return fs[m.ui.Field], true
	case state.PaneItems:
		fs := itemFields(l.LayoutType)
		return fs[m.ui.ItemField], true
	}
	return field{}, false
}

// step moves an enum to its neighbouring keyword or a number by one.
func (m *Model) step(l model.Layout, delta int) {
	f, ok := m.currentField(l)
	if !ok {
		return
	}
	cur := f.value(l, m.ui.Item)

	var raw string
	switch {
	case f.options != nil:
		raw = state.Cycle(f.options, cur, delta)
	case f.numeric:
		n, err := strconv.Atoi(cur)
		if err != nil {
			n = 0
		}
		raw = strconv.Itoa(n + delta)
	default:
		m.ui = state.Notify(m.ui, "press enter to edit "+f.label)
		return
	}

	e, err := f.parse(raw, m.ui.Item)
	if err == nil {
		err = e.commit(m.deps.Session)
	}
	m.report(err, f.label+": "+raw)
}

func (m Model) startFieldEdit(l model.Layout) (tea.Model, tea.Cmd) {
	f, ok := m.currentField(l)
	if !ok {
		return m, nil
	}
	m.target = targetField
	m.editing = f
	m.draftBase = l
	m.input.Placeholder = f.label
	m.input.SetValue(f.value(l, m.ui.Item))
	m.input.CursorEnd()
	m.ui = state.EnterInsert(m.ui)
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) startSave() (tea.Model, tea.Cmd) {
	if m.deps.Library == nil {
		m.ui = state.Notify(m.ui, "saving is not available")
		return m, nil
	}
	m.target = targetSaveName
	m.input.Placeholder = "layout name"
	m.input.SetValue("")
	m.ui = state.EnterInsert(m.ui)
	cmd := m.input.Focus()
	return m, cmd
}

// draft shows the value being typed without recording history. Values that
// do not parse leave the starting layout in place.
func (m *Model) draft() {
	s := m.deps.Session
	e, err := m.editing.parse(m.input.Value(), m.ui.Item)
	if err != nil {
		s.Draft(m.draftBase)
		return
	}
	next, err := e.preview(m.draftBase)
	if err != nil {
		s.Draft(m.draftBase)
		return
	}
	s.Draft(next)
}

func (m *Model) finishInput() {
	s := m.deps.Session
	value := m.input.Value()
	target := m.target
	m.endInput()

	switch target {
	case targetField:
		// Restore first so the commit is one step from the starting layout.
		s.Draft(m.draftBase)
		e, err := m.editing.parse(value, m.ui.Item)
		if err == nil {
			err = e.commit(s)
		}
		m.report(err, m.editing.label+": "+value)
	case targetSaveName:
		saved, err := m.deps.Library.Save(value, s.Present().Clone())
		if err != nil {
			m.report(err, "")
			return
		}
		m.report(nil, fmt.Sprintf("saved %q", saved.Name))
	}
}

func (m *Model) endInput() {
	m.input.Blur()
	m.input.SetValue("")
	m.target = targetNone
	m.ui = state.ExitInsert(m.ui)
}

func (m *Model) addItem(t model.LayoutType) {
	s := m.deps.Session
	if t == model.LayoutGrid {
		s.AddGridItem()
	} else {
		s.AddFlexItem()
	}
	n := s.Present().ActiveItemCount()
	m.ui = state.SelectItem(m.ui, n, n)
	m.ui = state.Notify(m.ui, fmt.Sprintf("added item %d", n))
}

func (m *Model) removeItem(t model.LayoutType) {
	s := m.deps.Session
	var removed bool
	var err error
	if t == model.LayoutGrid {
		removed, err = s.RemoveGridItem(m.ui.Item)
	} else {
		removed, err = s.RemoveFlexItem(m.ui.Item)
	}
	switch {
	case err != nil:
		m.report(err, "")
	case !removed:
		m.ui = state.Notify(m.ui, "the last item cannot be removed")
	default:
		m.ui = state.Notify(m.ui, fmt.Sprintf("removed item %d", m.ui.Item+1))
	}
}

func (m *Model) duplicateItem(t model.LayoutType) {
	s := m.deps.Session
	var err error
	if t == model.LayoutGrid {
		err = s.DuplicateGridItem(m.ui.Item)
	} else {
		err = s.DuplicateFlexItem(m.ui.Item)
	}
	if err == nil {
		m.ui = state.SelectItem(m.ui, 1, s.Present().ActiveItemCount())
	}
	m.report(err, fmt.Sprintf("duplicated into item %d", m.ui.Item+1))
}

func (m *Model) copyCode() {
	part := export.PartBoth
	switch m.ui.View {
	case state.ViewCSS:
		part = export.PartCSS
	case state.ViewHTML:
		part = export.PartHTML
	}
	err := m.deps.Exporter.Copy(m.deps.Session.Code(), part)
	if errors.Is(err, export.ErrClipboardUnavailable) {
		m.ui = state.Notify(m.ui, "no clipboard available; use e to export files")
		return
	}
	m.report(err, "copied "+string(part))
}

func (m *Model) loadNextTemplate() {
	list := m.deps.Catalog.List()
	if len(list) == 0 {
		m.ui = state.Notify(m.ui, "no templates")
		return
	}
	tpl := list[m.nextTpl%len(list)]
	m.nextTpl++
	m.report(m.deps.Session.LoadTemplate(tpl), "template: "+tpl.Name)
}

// clamp keeps cursors valid after the layout changed shape.
func (m *Model) clamp() {
	l := m.deps.Session.Present()
	m.ui = state.ClampItem(m.ui, l.ActiveItemCount())
	m.ui = state.ClampFields(m.ui, len(containerFields(l.LayoutType)), len(itemFields(l.LayoutType)))
}

// --- view ---

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.deps.Session
	l := s.Present()
	snap := s.History()

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.pane(state.PaneContainer, m.viewContainer(l)),
		m.pane(state.PaneItems, m.viewItems(l)),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, m.pane(state.PaneCode, m.viewCode()))

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("CSS Layout Builder  %s  preview: %s  undo: %d  redo: %d",
		l.LayoutType, s.PreviewMode(), len(snap.Past), len(snap.Future))))
	b.WriteString("\n" + body + "\n")
	if m.ui.Mode == state.INSERT {
		b.WriteString(m.input.View() + "\n")
	}
	if m.ui.Notice != "" {
		b.WriteString(noticeStyle.Render(m.ui.Notice) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) pane(p state.Pane, content string) string {
	if m.ui.Pane == p {
		return activePane.Render(content)
	}
	return paneStyle.Render(content)
}

func (m Model) fieldRows(b *strings.Builder, l model.Layout, fs []field, item, cursor int, focused bool) {
	for i, f := range fs {
		value := f.value(l, item)
		if f.options != nil {
			value = "‹ " + value + " ›"
		}
		line := fmt.Sprintf("  %-22s %s", f.label, value)
		if focused && i == cursor {
			line = selStyle.Render("> " + line[2:])
		}
		b.WriteString(line + "\n")
	}
}

func (m Model) viewContainer(l model.Layout) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(string(l.LayoutType)+" container") + "\n")
	m.fieldRows(&b, l, containerFields(l.LayoutType), 0, m.ui.Field, m.ui.Pane == state.PaneContainer)
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) viewItems(l model.Layout) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("items") + " ")
	for i := range l.ActiveItemCount() {
		tag := fmt.Sprintf(" %d ", i+1)
		if i == m.ui.Item {
			tag = selStyle.Render("[" + strconv.Itoa(i+1) + "]")
		}
		b.WriteString(tag)
	}
	b.WriteString("\n")
	if l.ActiveItemCount() > 0 {
		m.fieldRows(&b, l, itemFields(l.LayoutType), m.ui.Item, m.ui.ItemField, m.ui.Pane == state.PaneItems)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) viewCode() string {
	s := m.deps.Session
	code := s.Code()

	var text string
	switch m.ui.View {
	case state.ViewHTML:
		text = code.HTML
	case state.ViewDiff:
		prev, ok := s.Previous()
		if !ok {
			text = "No earlier state\n"
		} else {
			text = renderDiff(generator.Generate(prev).Combined(), code.Combined())
		}
	default:
		text = code.CSS
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	start := min(m.ui.ScrollV, max(len(lines)-1, 0))
	lines = lines[start:]
	if m.ui.Height > 12 && len(lines) > m.ui.Height-12 {
		lines = lines[:m.ui.Height-12]
	}
	return titleStyle.Render(m.ui.View.String()) + "\n" + strings.Join(lines, "\n")
}
