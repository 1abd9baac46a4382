package model

import (
	"fmt"
	"slices"
)

// LayoutType selects which sub-model (flexbox or grid) is live for preview and generation.
type LayoutType string

const (
	LayoutFlexbox LayoutType = "flexbox"
	LayoutGrid    LayoutType = "grid"
)

// LayoutTypes lists the layout types in display order.
var LayoutTypes = []LayoutType{LayoutFlexbox, LayoutGrid}

func (t LayoutType) Valid() bool { return slices.Contains(LayoutTypes, t) }

// FlexboxProperties are the container-level flexbox declarations.
type FlexboxProperties struct {
	Display        FlexDisplay    `json:"display" yaml:"display"`
	FlexDirection  FlexDirection  `json:"flexDirection" yaml:"flexDirection"`
	JustifyContent JustifyContent `json:"justifyContent" yaml:"justifyContent"`
	AlignItems     FlexAlignItems `json:"alignItems" yaml:"alignItems"`
	FlexWrap       FlexWrap       `json:"flexWrap" yaml:"flexWrap"`
	Gap            string         `json:"gap" yaml:"gap"` // CSS length, written verbatim
}

// GridProperties are the container-level grid declarations.
type GridProperties struct {
	Display             GridDisplay `json:"display" yaml:"display"`
	GridTemplateColumns string      `json:"gridTemplateColumns" yaml:"gridTemplateColumns"` // free-form track sizing
	GridTemplateRows    string      `json:"gridTemplateRows" yaml:"gridTemplateRows"`
	RowGap              string      `json:"rowGap" yaml:"rowGap"`
	ColumnGap           string      `json:"columnGap" yaml:"columnGap"`
	JustifyItems        GridAlign   `json:"justifyItems" yaml:"justifyItems"`
	AlignItems          GridAlign   `json:"alignItems" yaml:"alignItems"`
}

// FlexItem is one child of the flex container. Its position in Layout.FlexItems
// is its DOM order; ID is an opaque token that never changes once assigned.
type FlexItem struct {
	ID         string        `json:"id" yaml:"id"`
	FlexGrow   int           `json:"flexGrow" yaml:"flexGrow"`
	FlexShrink int           `json:"flexShrink" yaml:"flexShrink"`
	FlexBasis  string        `json:"flexBasis" yaml:"flexBasis"` // CSS length or "auto"
	AlignSelf  FlexAlignSelf `json:"alignSelf" yaml:"alignSelf"`
	Order      int           `json:"order" yaml:"order"`
}

// GridItem is one child of the grid container.
type GridItem struct {
	ID              string    `json:"id" yaml:"id"`
	GridColumnStart string    `json:"gridColumnStart" yaml:"gridColumnStart"` // grid line or "auto"
	GridColumnEnd   string    `json:"gridColumnEnd" yaml:"gridColumnEnd"`
	GridRowStart    string    `json:"gridRowStart" yaml:"gridRowStart"`
	GridRowEnd      string    `json:"gridRowEnd" yaml:"gridRowEnd"`
	JustifySelf     GridAlign `json:"justifySelf" yaml:"justifySelf"`
	AlignSelf       GridAlign `json:"alignSelf" yaml:"alignSelf"`
}

// Layout is one complete snapshot of the editable layout description.
// Both sub-models are always retained; LayoutType picks the live one.
type Layout struct {
	LayoutType   LayoutType        `json:"layoutType" yaml:"layoutType"`
	FlexboxProps FlexboxProperties `json:"flexboxProps" yaml:"flexboxProps"`
	GridProps    GridProperties    `json:"gridProps" yaml:"gridProps"`
	FlexItems    []FlexItem        `json:"flexItems" yaml:"flexItems"`
	GridItems    []GridItem        `json:"gridItems" yaml:"gridItems"`
}

// Clone returns a copy that shares no slices with l.
func (l Layout) Clone() Layout {
	out := l
	out.FlexItems = slices.Clone(l.FlexItems)
	out.GridItems = slices.Clone(l.GridItems)
	if out.FlexItems == nil {
		out.FlexItems = []FlexItem{}
	}
	if out.GridItems == nil {
		out.GridItems = []GridItem{}
	}
	return out
}

// ActiveItemCount returns the length of the sequence selected by LayoutType.
func (l Layout) ActiveItemCount() int {
	if l.LayoutType == LayoutGrid {
		return len(l.GridItems)
	}
	return len(l.FlexItems)
}

// Validate checks enum membership and id uniqueness. CSS lengths and track
// strings are written verbatim and are not inspected.
func (l Layout) Validate() error {
	if !l.LayoutType.Valid() {
		return fmt.Errorf("unknown layout type %q", l.LayoutType)
	}
	if err := l.FlexboxProps.Validate(); err != nil {
		return fmt.Errorf("flexbox properties: %w", err)
	}
	if err := l.GridProps.Validate(); err != nil {
		return fmt.Errorf("grid properties: %w", err)
	}

	seen := make(map[string]bool, len(l.FlexItems))
	for i, it := range l.FlexItems {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("flex item %d: %w", i+1, err)
		}
		if seen[it.ID] {
			return fmt.Errorf("flex item %d: duplicate id %q", i+1, it.ID)
		}
		seen[it.ID] = true
	}

	seen = make(map[string]bool, len(l.GridItems))
	for i, it := range l.GridItems {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("grid item %d: %w", i+1, err)
		}
		if seen[it.ID] {
			return fmt.Errorf("grid item %d: duplicate id %q", i+1, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

func (p FlexboxProperties) Validate() error {
	switch {
	case !p.Display.Valid():
		return fmt.Errorf("invalid display %q", p.Display)
	case !p.FlexDirection.Valid():
		return fmt.Errorf("invalid flex-direction %q", p.FlexDirection)
	case !p.JustifyContent.Valid():
		return fmt.Errorf("invalid justify-content %q", p.JustifyContent)
	case !p.AlignItems.Valid():
		return fmt.Errorf("invalid align-items %q", p.AlignItems)
	case !p.FlexWrap.Valid():
		return fmt.Errorf("invalid flex-wrap %q", p.FlexWrap)
	}
	return nil
}

func (p GridProperties) Validate() error {
	switch {
	case !p.Display.Valid():
		return fmt.Errorf("invalid display %q", p.Display)
	case !p.JustifyItems.Valid():
		return fmt.Errorf("invalid justify-items %q", p.JustifyItems)
	case !p.AlignItems.Valid():
		return fmt.Errorf("invalid align-items %q", p.AlignItems)
	}
	return nil
}

func (it FlexItem) Validate() error {
	switch {
	case it.ID == "":
		return fmt.Errorf("missing id")
	case it.FlexGrow < 0:
		return fmt.Errorf("flex-grow must not be negative, got %d", it.FlexGrow)
	case it.FlexShrink < 0:
		return fmt.Errorf("flex-shrink must not be negative, got %d", it.FlexShrink)
	case !it.AlignSelf.Valid():
		return fmt.Errorf("invalid align-self %q", it.AlignSelf)
	}
	return nil
}

func (it GridItem) Validate() error {
	switch {
	case it.ID == "":
		return fmt.Errorf("missing id")
	case !it.JustifySelf.Valid():
		return fmt.Errorf("invalid justify-self %q", it.JustifySelf)
	case !it.AlignSelf.Valid():
		return fmt.Errorf("invalid align-self %q", it.AlignSelf)
	}
	return nil
}
