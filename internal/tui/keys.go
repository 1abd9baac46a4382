package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	PrevItem  key.Binding
	NextItem  key.Binding
	Edit      key.Binding
	Type      key.Binding
	Add       key.Binding
	Remove    key.Binding
	Duplicate key.Binding
	Undo      key.Binding
	Redo      key.Binding
	View      key.Binding
	Preview   key.Binding
	Copy      key.Binding
	Save      key.Binding
	Export    key.Binding
	Template  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous value")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next value")),
		NextPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pane")),
		PrevItem:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous item")),
		NextItem:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next item")),
		Edit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit value")),
		Type:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "flexbox/grid")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		Remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove item")),
		Duplicate: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duplicate item")),
		Undo:      key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("r", "ctrl+y"), key.WithHelp("r", "redo")),
		View:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "css/html/diff")),
		Preview:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "desktop/mobile")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy code")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save layout")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export files")),
		Template:  key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "next template")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Edit, k.Right, k.Undo, k.Redo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Edit},
		{k.NextPane, k.PrevPane, k.PrevItem, k.NextItem},
		{k.Type, k.Add, k.Remove, k.Duplicate, k.Template},
		{k.Undo, k.Redo, k.View, k.Preview},
		{k.Copy, k.Save, k.Export, k.Help, k.Quit},
	}
}
