package layout

import (
	"fmt"

	"css-layout-builder/internal/model"
)

// Patches describe partial updates. A nil field leaves the current value in
// place. The With methods return a modified copy so patches chain:
//
//	layout.FlexItemPatch{}.WithFlexGrow(2).WithOrder(1)

// FlexboxPatch is a partial FlexboxProperties.
type FlexboxPatch struct {
	Display        *model.FlexDisplay    `json:"display,omitempty"`
	FlexDirection  *model.FlexDirection  `json:"flexDirection,omitempty"`
	JustifyContent *model.JustifyContent `json:"justifyContent,omitempty"`
	AlignItems     *model.FlexAlignItems `json:"alignItems,omitempty"`
	FlexWrap       *model.FlexWrap       `json:"flexWrap,omitempty"`
	Gap            *string               `json:"gap,omitempty"`
}

func (p FlexboxPatch) WithDisplay(v model.FlexDisplay) FlexboxPatch {
	p.Display = &v
	return p
}

func (p FlexboxPatch) WithFlexDirection(v model.FlexDirection) FlexboxPatch {
	p.FlexDirection = &v
	return p
}

func (p FlexboxPatch) WithJustifyContent(v model.JustifyContent) FlexboxPatch {
	p.JustifyContent = &v
	return p
}

func (p FlexboxPatch) WithAlignItems(v model.FlexAlignItems) FlexboxPatch {
	p.AlignItems = &v
	return p
}

func (p FlexboxPatch) WithFlexWrap(v model.FlexWrap) FlexboxPatch {
	p.FlexWrap = &v
	return p
}

func (p FlexboxPatch) WithGap(v string) FlexboxPatch {
	p.Gap = &v
	return p
}

// Validate rejects keyword values outside their closed set.
func (p FlexboxPatch) Validate() error {
	switch {
	case p.Display != nil && !p.Display.Valid():
		return fmt.Errorf("invalid display %q", *p.Display)
	case p.FlexDirection != nil && !p.FlexDirection.Valid():
		return fmt.Errorf("invalid flex-direction %q", *p.FlexDirection)
	case p.JustifyContent != nil && !p.JustifyContent.Valid():
		return fmt.Errorf("invalid justify-content %q", *p.JustifyContent)
	case p.AlignItems != nil && !p.AlignItems.Valid():
		return fmt.Errorf("invalid align-items %q", *p.AlignItems)
	case p.FlexWrap != nil && !p.FlexWrap.Valid():
		return fmt.Errorf("invalid flex-wrap %q", *p.FlexWrap)
	}
	return nil
}

func (p FlexboxPatch) apply(dst model.FlexboxProperties) model.FlexboxProperties {
	if p.Display != nil {
		dst.Display = *p.Display
	}
	if p.FlexDirection != nil {
		dst.FlexDirection = *p.FlexDirection
	}
	if p.JustifyContent != nil {
		dst.JustifyContent = *p.JustifyContent
	}
	if p.AlignItems != nil {
		dst.AlignItems = *p.AlignItems
	}
	if p.FlexWrap != nil {
		dst.FlexWrap = *p.FlexWrap
	}
	if p.Gap != nil {
		dst.Gap = *p.Gap
	}
	return dst
}

// GridPatch is a partial GridProperties.
type GridPatch struct {
	Display             *model.GridDisplay `json:"display,omitempty"`
	GridTemplateColumns *string            `json:"gridTemplateColumns,omitempty"`
	GridTemplateRows    *string            `json:"gridTemplateRows,omitempty"`
	RowGap              *string            `json:"rowGap,omitempty"`
	ColumnGap           *string            `json:"columnGap,omitempty"`
	JustifyItems        *model.GridAlign   `json:"justifyItems,omitempty"`
	AlignItems          *model.GridAlign   `json:"alignItems,omitempty"`
}

func (p GridPatch) WithDisplay(v model.GridDisplay) GridPatch {
	p.Display = &v
	return p
}

func (p GridPatch) WithGridTemplateColumns(v string) GridPatch {
	p.GridTemplateColumns = &v
	return p
}

func (p GridPatch) WithGridTemplateRows(v string) GridPatch {
	p.GridTemplateRows = &v
	return p
}

func (p GridPatch) WithRowGap(v string) GridPatch {
	p.RowGap = &v
	return p
}

func (p GridPatch) WithColumnGap(v string) GridPatch {
	p.ColumnGap = &v
	return p
}

func (p GridPatch) WithJustifyItems(v model.GridAlign) GridPatch {
	p.JustifyItems = &v
	return p
}

func (p GridPatch) WithAlignItems(v model.GridAlign) GridPatch {
	p.AlignItems = &v
	return p
}

func (p GridPatch) Validate() error {
	switch {
	case p.Display != nil && !p.Display.Valid():
		return fmt.Errorf("invalid display %q", *p.Display)
	case p.JustifyItems != nil && !p.JustifyItems.Valid():
		return fmt.Errorf("invalid justify-items %q", *p.JustifyItems)
	case p.AlignItems != nil && !p.AlignItems.Valid():
		return fmt.Errorf("invalid align-items %q", *p.AlignItems)
	}
	return nil
}

func (p GridPatch) apply(dst model.GridProperties) model.GridProperties {
	if p.Display != nil {
		dst.Display = *p.Display
	}
	if p.GridTemplateColumns != nil {
		dst.GridTemplateColumns = *p.GridTemplateColumns
	}
	if p.GridTemplateRows != nil {
		dst.GridTemplateRows = *p.GridTemplateRows
	}
	if p.RowGap != nil {
		dst.RowGap = *p.RowGap
	}
	if p.ColumnGap != nil {
		dst.ColumnGap = *p.ColumnGap
	}
	if p.JustifyItems != nil {
		dst.JustifyItems = *p.JustifyItems
	}
	if p.AlignItems != nil {
		dst.AlignItems = *p.AlignItems
	}
	return dst
}

// FlexItemPatch is a partial FlexItem. The id is not patchable.
type FlexItemPatch struct {
	FlexGrow   *int                 `json:"flexGrow,omitempty"`
	FlexShrink *int                 `json:"flexShrink,omitempty"`
	FlexBasis  *string              `json:"flexBasis,omitempty"`
	AlignSelf  *model.FlexAlignSelf `json:"alignSelf,omitempty"`
	Order      *int                 `json:"order,omitempty"`
}

func (p FlexItemPatch) WithFlexGrow(v int) FlexItemPatch {
	p.FlexGrow = &v
	return p
}

func (p FlexItemPatch) WithFlexShrink(v int) FlexItemPatch {
	p.FlexShrink = &v
	return p
}

func (p FlexItemPatch) WithFlexBasis(v string) FlexItemPatch {
	p.FlexBasis = &v
	return p
}

func (p FlexItemPatch) WithAlignSelf(v model.FlexAlignSelf) FlexItemPatch {
	p.AlignSelf = &v
	return p
}

func (p FlexItemPatch) WithOrder(v int) FlexItemPatch {
	p.Order = &v
	return p
}

func (p FlexItemPatch) Validate() error {
	switch {
	case p.AlignSelf != nil && !p.AlignSelf.Valid():
		return fmt.Errorf("invalid align-self %q", *p.AlignSelf)
	case p.FlexGrow != nil && *p.FlexGrow < 0:
		return fmt.Errorf("flex-grow must not be negative, got %d", *p.FlexGrow)
	case p.FlexShrink != nil && *p.FlexShrink < 0:
		return fmt.Errorf("flex-shrink must not be negative, got %d", *p.FlexShrink)
	}
	return nil
}

func (p FlexItemPatch) apply(dst model.FlexItem) model.FlexItem {
	if p.FlexGrow != nil {
		dst.FlexGrow = *p.FlexGrow
	}
	if p.FlexShrink != nil {
		dst.FlexShrink = *p.FlexShrink
	}
	if p.FlexBasis != nil {
		dst.FlexBasis = *p.FlexBasis
	}
	if p.AlignSelf != nil {
		dst.AlignSelf = *p.AlignSelf
	}
	if p.Order != nil {
		dst.Order = *p.Order
	}
	return dst
}

// GridItemPatch is a partial GridItem. The id is not patchable.
type GridItemPatch struct {
	GridColumnStart *string          `json:"gridColumnStart,omitempty"`
	GridColumnEnd   *string          `json:"gridColumnEnd,omitempty"`
	GridRowStart    *string          `json:"gridRowStart,omitempty"`
	GridRowEnd      *string          `json:"gridRowEnd,omitempty"`
	JustifySelf     *model.GridAlign `json:"justifySelf,omitempty"`
	AlignSelf       *model.GridAlign `json:"alignSelf,omitempty"`
}

func (p GridItemPatch) WithGridColumnStart(v string) GridItemPatch {
	p.GridColumnStart = &v
	return p
}

func (p GridItemPatch) WithGridColumnEnd(v string) GridItemPatch {
	p.GridColumnEnd = &v
	return p
}

func (p GridItemPatch) WithGridRowStart(v string) GridItemPatch {
	p.GridRowStart = &v
	return p
}

func (p GridItemPatch) WithGridRowEnd(v string) GridItemPatch {
	p.GridRowEnd = &v
	return p
}

func (p GridItemPatch) WithJustifySelf(v model.GridAlign) GridItemPatch {
	p.JustifySelf = &v
	return p
}

func (p GridItemPatch) WithAlignSelf(v model.GridAlign) GridItemPatch {
	p.AlignSelf = &v
	return p
}

func (p GridItemPatch) Validate() error {
	switch {
	case p.JustifySelf != nil && !p.JustifySelf.Valid():
		return fmt.Errorf("invalid justify-self %q", *p.JustifySelf)
	case p.AlignSelf != nil && !p.AlignSelf.Valid():
		return fmt.Errorf("invalid align-self %q", *p.AlignSelf)
	}
	return nil
}

func (p GridItemPatch) apply(dst model.GridItem) model.GridItem {
	if p.GridColumnStart != nil {
		dst.GridColumnStart = *p.GridColumnStart
	}
	if p.GridColumnEnd != nil {
		dst.GridColumnEnd = *p.GridColumnEnd
	}
	if p.GridRowStart != nil {
		dst.GridRowStart = *p.GridRowStart
	}
	if p.GridRowEnd != nil {
		dst.GridRowEnd = *p.GridRowEnd
	}
	if p.JustifySelf != nil {
		dst.JustifySelf = *p.JustifySelf
	}
	if p.AlignSelf != nil {
		dst.AlignSelf = *p.AlignSelf
	}
	return dst
}
