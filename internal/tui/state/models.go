package state

// Pane is the focused area of the editor screen.
type Pane int

const (
	PaneContainer Pane = iota
	PaneItems
	PaneCode
)

var paneNames = [...]string{"container", "items", "code"}

func (p Pane) String() string { return paneNames[p] }

// CodeView selects what the code pane shows.
type CodeView int

const (
	ViewCSS CodeView = iota
	ViewHTML
	ViewDiff
)

var viewNames = [...]string{"css", "html", "diff"}

func (v CodeView) String() string { return viewNames[v] }

// EditorMode is CMD while keys are commands and INSERT while a text field
// has focus.
type EditorMode int

const (
	CMD EditorMode = iota
	INSERT
)

// UIState holds cursor and view state that is not part of the layout.
type UIState struct {
	Pane      Pane
	Field     int // cursor in the container pane
	Item      int // selected item in the items pane
	ItemField int // cursor within the selected item
	View      CodeView
	Mode      EditorMode

	Width   int
	Height  int
	ScrollV int

	ShowHelp bool
	Notice   string
}
