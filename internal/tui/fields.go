package tui

import (
	"fmt"
	"strconv"
	"strings"

	"css-layout-builder/internal/editor"
	"css-layout-builder/internal/layout"
	"css-layout-builder/internal/model"
)

// edit is one pending change. preview applies it to a layout without
// touching history; commit records it on the session.
type edit struct {
	preview func(model.Layout) (model.Layout, error)
	commit  func(*editor.Session) error
}

// field is one editable property row. item is the selected item index and
// is ignored by container fields.
type field struct {
	label   string
	value   func(l model.Layout, item int) string
	options []string // closed keyword set; nil for free text
	numeric bool
	parse   func(raw string, item int) (edit, error)
}

func names[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func atoi(label, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", label)
	}
	return n, nil
}

func flexboxEdit(p layout.FlexboxPatch) (edit, error) {
	if err := p.Validate(); err != nil {
		return edit{}, err
	}
	return edit{
		preview: func(l model.Layout) (model.Layout, error) { return layout.UpdateFlexboxProps(l, p), nil },
		commit:  func(s *editor.Session) error { return s.UpdateFlexboxProps(p) },
	}, nil
}

func gridEdit(p layout.GridPatch) (edit, error) {
	if err := p.Validate(); err != nil {
		return edit{}, err
	}
	return edit{
		preview: func(l model.Layout) (model.Layout, error) { return layout.UpdateGridProps(l, p), nil },
		commit:  func(s *editor.Session) error { return s.UpdateGridProps(p) },
	}, nil
}

func flexItemEdit(i int, p layout.FlexItemPatch) (edit, error) {
	if err := p.Validate(); err != nil {
		return edit{}, err
	}
	return edit{
		preview: func(l model.Layout) (model.Layout, error) { return layout.UpdateFlexItem(l, i, p) },
		commit:  func(s *editor.Session) error { return s.UpdateFlexItem(i, p) },
	}, nil
}

func gridItemEdit(i int, p layout.GridItemPatch) (edit, error) {
	if err := p.Validate(); err != nil {
		return edit{}, err
	}
	return edit{
		preview: func(l model.Layout) (model.Layout, error) { return layout.UpdateGridItem(l, i, p) },
		commit:  func(s *editor.Session) error { return s.UpdateGridItem(i, p) },
	}, nil
}

var flexContainerFields = []field{
	{
		label:   "display",
		value:   func(l model.Layout, _ int) string { return string(l.FlexboxProps.Display) },
		options: names(model.FlexDisplays),
		parse: func(raw string, _ int) (edit, error) {
			return flexboxEdit(layout.FlexboxPatch{}.WithDisplay(model.FlexDisplay(raw)))
		},
	},
	{
		label:   "flex-direction",
		value:   func(l model.Layout, _ int) string { return string(l.FlexboxProps.FlexDirection) },
		options: names(model.FlexDirections),
		parse: func(raw string, _ int) (edit, error) {
			return flexboxEdit(layout.FlexboxPatch{}.WithFlexDirection(model.FlexDirection(raw)))
		},
	},
	{
		label:   "justify-content",
		value:   func(l model.Layout, _ int) string { return string(l.FlexboxProps.JustifyContent) },
		options: names(model.JustifyContents),
		parse: func(raw string, _ int) (edit, error) {
			return flexboxEdit(layout.FlexboxPatch{}.WithJustifyContent(model.JustifyContent(raw)))
		},
	},
	{
		label:   "align-items",
		value:   func(l model.Layout, _ int) string { return string(l.FlexboxProps.AlignItems) },
		options: names(model.FlexAlignItemsValues),
		parse: func(raw string, _ int) (edit, error) {
			return flexboxEdit(layout.FlexboxPatch{}.WithAlignItems(model.FlexAlignItems(raw)))
		},
	},
	{
		label:   "flex-wrap",
		value:   func(l model.Layout, _ int) string { return string(l.FlexboxProps.FlexWrap) },
		options: names(model.FlexWraps),
		parse: func(raw string, _ int) (edit, error) {
			return flexboxEdit(layout.FlexboxPatch{}.WithFlexWrap(model.FlexWrap(raw)))
		},
	},
	{
		label: "gap",
		value: func(l model.Layout, _ int) string { return l.FlexboxProps.Gap },
		parse: func(raw string, _ int) (edit, error) {
			return flexboxEdit(layout.FlexboxPatch{}.WithGap(raw))
		},
	},
}

var gridContainerFields = []field{
	{
		label:   "display",
		value:   func(l model.Layout, _ int) string { return string(l.GridProps.Display) },
		options: names(model.GridDisplays),
		parse: func(raw string, _ int) (edit, error) {
			return gridEdit(layout.GridPatch{}.WithDisplay(model.GridDisplay(raw)))
		},
	},
	{
		label: "grid-template-columns",
		value: func(l model.Layout, _ int) string { return l.GridProps.GridTemplateColumns },
		parse: func(raw string, _ int) (edit, error) {
			return gridEdit(layout.GridPatch{}.WithGridTemplateColumns(raw))
		},
	},
	{
		label: "grid-template-rows",
		value: func(l model.Layout, _ int) string { return l.GridProps.GridTemplateRows },
		parse: func(raw string, _ int) (edit, error) {
			return gridEdit(layout.GridPatch{}.WithGridTemplateRows(raw))
		},
	},
	{
		label: "row-gap",
		value: func(l model.Layout, _ int) string { return l.GridProps.RowGap },
		parse: func(raw string, _ int) (edit, error) {
			return gridEdit(layout.GridPatch{}.WithRowGap(raw))
		},
	},
	{
		label: "column-gap",
		value: func(l model.Layout, _ int) string { return l.GridProps.ColumnGap },
		parse: func(raw string, _ int) (edit, error) {
			return gridEdit(layout.GridPatch{}.WithColumnGap(raw))
		},
	},
	{
		label:   "justify-items",
		value:   func(l model.Layout, _ int) string { return string(l.GridProps.JustifyItems) },
		options: names(model.GridAligns),
		parse: func(raw string, _ int) (edit, error) {
			return gridEdit(layout.GridPatch{}.WithJustifyItems(model.GridAlign(raw)))
		},
	},
	{
		label:   "align-items",
		value:   func(l model.Layout, _ int) string { return string(l.GridProps.AlignItems) },
		options: names(model.GridAligns),
		parse: func(raw string, _ int) (edit, error) {
			return gridEdit(layout.GridPatch{}.WithAlignItems(model.GridAlign(raw)))
		},
	},
}

var flexItemFields = []field{
	{
		label:   "flex-grow",
		value:   func(l model.Layout, i int) string { return strconv.Itoa(l.FlexItems[i].FlexGrow) },
		numeric: true,
		parse: func(raw string, i int) (edit, error) {
			n, err := atoi("flex-grow", raw)
			if err != nil {
				return edit{}, err
			}
			return flexItemEdit(i, layout.FlexItemPatch{}.WithFlexGrow(n))
		},
	},
	{
		label:   "flex-shrink",
		value:   func(l model.Layout, i int) string { return strconv.Itoa(l.FlexItems[i].FlexShrink) },
		numeric: true,
		parse: func(raw string, i int) (edit, error) {
			n, err := atoi("flex-shrink", raw)
			if err != nil {
				return edit{}, err
			}
			return flexItemEdit(i, layout.FlexItemPatch{}.WithFlexShrink(n))
		},
	},
	{
		label: "flex-basis",
		value: func(l model.Layout, i int) string { return l.FlexItems[i].FlexBasis },
		parse: func(raw string, i int) (edit, error) {
			return flexItemEdit(i, layout.FlexItemPatch{}.WithFlexBasis(raw))
		},
	},
	{
		label:   "align-self",
		value:   func(l model.Layout, i int) string { return string(l.FlexItems[i].AlignSelf) },
		options: names(model.FlexAlignSelves),
		parse: func(raw string, i int) (edit, error) {
			return flexItemEdit(i, layout.FlexItemPatch{}.WithAlignSelf(model.FlexAlignSelf(raw)))
		},
	},
	{
		label:   "order",
		value:   func(l model.Layout, i int) string { return strconv.Itoa(l.FlexItems[i].Order) },
		numeric: true,
		parse: func(raw string, i int) (edit, error) {
			n, err := atoi("order", raw)
			if err != nil {
				return edit{}, err
			}
			return flexItemEdit(i, layout.FlexItemPatch{}.WithOrder(n))
		},
	},
}

var gridItemFields = []field{
	{
		label: "grid-column-start",
		value: func(l model.Layout, i int) string { return l.GridItems[i].GridColumnStart },
		parse: func(raw string, i int) (edit, error) {
			return gridItemEdit(i, layout.GridItemPatch{}.WithGridColumnStart(raw))
		},
	},
	{
		label: "grid-column-end",
		value: func(l model.Layout, i int) string { return l.GridItems[i].GridColumnEnd },
		parse: func(raw string, i int) (edit, error) {
			return gridItemEdit(i, layout.GridItemPatch{}.WithGridColumnEnd(raw))
		},
	},
	{
		label: "grid-row-start",
		value: func(l model.Layout, i int) string { return l.GridItems[i].GridRowStart },
		parse: func(raw string, i int) (edit, error) {
			return gridItemEdit(i, layout.GridItemPatch{}.WithGridRowStart(raw))
		},
	},
	{
		label: "grid-row-end",
		value: func(l model.Layout, i int) string { return l.GridItems[i].GridRowEnd },
		parse: func(raw string, i int) (edit, error) {
			return gridItemEdit(i, layout.GridItemPatch{}.WithGridRowEnd(raw))
		},
	},
	{
		label:   "justify-self",
		value:   func(l model.Layout, i int) string { return string(l.GridItems[i].JustifySelf) },
		options: names(model.GridAligns),
		parse: func(raw string, i int) (edit, error) {
			return gridItemEdit(i, layout.GridItemPatch{}.WithJustifySelf(model.GridAlign(raw)))
		},
	},
	{
		label:   "align-self",
		value:   func(l model.Layout, i int) string { return string(l.GridItems[i].AlignSelf) },
		options: names(model.GridAligns),
		parse: func(raw string, i int) (edit, error) {
			return gridItemEdit(i, layout.GridItemPatch{}.WithAlignSelf(model.GridAlign(raw)))
		},
	},
}

// containerFields and itemFields return the rows for the live layout type.
func containerFields(t model.LayoutType) []field {
	if t == model.LayoutGrid {
		return gridContainerFields
	}
	return flexContainerFields
}

func itemFields(t model.LayoutType) []field {
	if t == model.LayoutGrid {
		return gridItemFields
	}
	return flexItemFields
}
