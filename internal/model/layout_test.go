package model

import (
	"strconv"
	"testing"
)

func counter() func() string {
	n := 0
	return func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
}

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout(counter())

	if l.LayoutType != LayoutFlexbox {
		t.Errorf("LayoutType = %q, want %q", l.LayoutType, LayoutFlexbox)
	}
	if len(l.FlexItems) != 1 || len(l.GridItems) != 1 {
		t.Fatalf("expected one item in each sequence, got %d flex and %d grid", len(l.FlexItems), len(l.GridItems))
	}
	if l.FlexItems[0].ID == l.GridItems[0].ID {
		t.Errorf("flex and grid items share id %q", l.FlexItems[0].ID)
	}
	if l.FlexboxProps.Gap != "0px" {
		t.Errorf("Gap = %q, want 0px", l.FlexboxProps.Gap)
	}
	if l.GridProps.GridTemplateColumns != "repeat(3, 1fr)" {
		t.Errorf("GridTemplateColumns = %q", l.GridProps.GridTemplateColumns)
	}
	if err := l.Validate(); err != nil {
		t.Errorf("default layout does not validate: %v", err)
	}
}

func TestNewItems(t *testing.T) {
	f := NewFlexItem("a")
	if f.FlexGrow != 0 || f.FlexShrink != 1 || f.FlexBasis != "auto" || f.AlignSelf != AlignSelfAuto || f.Order != 0 {
		t.Errorf("unexpected flex item defaults: %+v", f)
	}
	g := NewGridItem("b")
	if g.GridColumnStart != "auto" || g.GridRowEnd != "auto" || g.JustifySelf != GridStart || g.AlignSelf != GridStart {
		t.Errorf("unexpected grid item defaults: %+v", g)
	}
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	l := DefaultLayout(counter())
	c := l.Clone()
	c.FlexItems[0].FlexGrow = 5
	c.GridItems[0].GridRowStart = "2"

	if l.FlexItems[0].FlexGrow != 0 {
		t.Error("mutating clone changed original flex items")
	}
	if l.GridItems[0].GridRowStart != "auto" {
		t.Error("mutating clone changed original grid items")
	}

	empty := Layout{}.Clone()
	if empty.FlexItems == nil || empty.GridItems == nil {
		t.Error("Clone should return non-nil slices")
	}
}

func TestActiveItemCount(t *testing.T) {
	l := DefaultLayout(counter())
	l.FlexItems = append(l.FlexItems, NewFlexItem("x"))
	if got := l.ActiveItemCount(); got != 2 {
		t.Errorf("flexbox ActiveItemCount = %d, want 2", got)
	}
	l.LayoutType = LayoutGrid
	if got := l.ActiveItemCount(); got != 1 {
		t.Errorf("grid ActiveItemCount = %d, want 1", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Layout)
	}{
		{"unknown layout type", func(l *Layout) { l.LayoutType = "table" }},
		{"bad flex direction", func(l *Layout) { l.FlexboxProps.FlexDirection = "diagonal" }},
		{"bad grid justify-items", func(l *Layout) { l.GridProps.JustifyItems = "flex-start" }},
		{"negative grow", func(l *Layout) { l.FlexItems[0].FlexGrow = -1 }},
		{"negative shrink", func(l *Layout) { l.FlexItems[0].FlexShrink = -2 }},
		{"bad align-self", func(l *Layout) { l.FlexItems[0].AlignSelf = "start" }},
		{"missing grid id", func(l *Layout) { l.GridItems[0].ID = "" }},
		{"duplicate flex id", func(l *Layout) {
			l.FlexItems = append(l.FlexItems, NewFlexItem(l.FlexItems[0].ID))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout(counter()).Clone()
			tt.mutate(&l)
			if err := l.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateIgnoresCSSValues(t *testing.T) {
	l := DefaultLayout(counter())
	l.FlexboxProps.Gap = "not a length"
	l.GridProps.GridTemplateColumns = "???"
	l.FlexItems[0].FlexBasis = ""
	if err := l.Validate(); err != nil {
		t.Errorf("free-form CSS strings should pass validation, got %v", err)
	}
}

func TestPreviewModeValid(t *testing.T) {
	if !PreviewDesktop.Valid() || !PreviewMobile.Valid() {
		t.Error("known preview modes should be valid")
	}
	if PreviewMode("tablet").Valid() {
		t.Error("tablet should not be a valid preview mode")
	}
}
