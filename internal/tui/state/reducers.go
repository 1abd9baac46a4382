package state

// NextPane moves focus to the following pane, wrapping around.
func NextPane(s UIState) UIState {
	s.Pane = (s.Pane + 1) % 3
	return s
}

// PrevPane moves focus to the preceding pane, wrapping around.
func PrevPane(s UIState) UIState {
	s.Pane = (s.Pane + 2) % 3
	return s
}

// MoveField moves the cursor of the focused pane by delta, clamped to
// [0, n). The code pane scrolls instead.
func MoveField(s UIState, delta, n int) UIState {
	switch s.Pane {
	case PaneContainer:
		s.Field = clamp(s.Field+delta, n)
	case PaneItems:
		s.ItemField = clamp(s.ItemField+delta, n)
	case PaneCode:
		s.ScrollV = max(s.ScrollV+delta, 0)
	}
	return s
}

// SelectItem moves the item selection by delta within count items.
func SelectItem(s UIState, delta, count int) UIState {
	s.Item = clamp(s.Item+delta, count)
	return s
}

// ClampItem keeps the selection valid after the item list changed size.
func ClampItem(s UIState, count int) UIState {
	s.Item = clamp(s.Item, count)
	return s
}

// ClampFields keeps both field cursors inside their field lists, which
// change length when the layout type switches.
func ClampFields(s UIState, containerFields, itemFields int) UIState {
	s.Field = clamp(s.Field, containerFields)
	s.ItemField = clamp(s.ItemField, itemFields)
	return s
}

// CycleView steps through css, html and diff.
func CycleView(s UIState) UIState {
	s.View = (s.View + 1) % 3
	s.ScrollV = 0
	s.Notice = "view: " + s.View.String()
	return s
}

func EnterInsert(s UIState) UIState {
	s.Mode = INSERT
	s.Notice = "[INSERT] enter to apply, esc to cancel"
	return s
}

func ExitInsert(s UIState) UIState {
	s.Mode = CMD
	s.Notice = ""
	return s
}

func ToggleHelp(s UIState) UIState {
	s.ShowHelp = !s.ShowHelp
	return s
}

// Resize records the terminal size.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	return s
}

// Notify replaces the status line message.
func Notify(s UIState, msg string) UIState {
	s.Notice = msg
	return s
}

// Cycle returns the value delta steps away from cur in values, wrapping in
// both directions. An unknown cur counts as the first value.
func Cycle[T comparable](values []T, cur T, delta int) T {
	if len(values) == 0 {
		return cur
	}
	idx := 0
	for i, v := range values {
		if v == cur {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+delta)%n+n)%n]
}

func clamp(v, n int) int {
	if n <= 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
