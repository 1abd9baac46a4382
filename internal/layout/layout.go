// Package layout holds the pure state transitions of the editor. Every
// function takes a model.Layout by value and returns a new one; the input
// and any slice it references are never written. Slices a function does not
// touch are shared with the result.
package layout

import (
	"errors"
	"fmt"

	"css-layout-builder/internal/model"
)

// ErrIndexOutOfRange is returned when an item index does not address an
// element of the sequence it names.
var ErrIndexOutOfRange = errors.New("item index out of range")

func checkIndex(kind string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%s item %d of %d: %w", kind, i, n, ErrIndexOutOfRange)
	}
	return nil
}

// SetLayoutType switches the live sub-model. Both sub-models are retained.
func SetLayoutType(l model.Layout, t model.LayoutType) model.Layout {
	l.LayoutType = t
	return l
}

func UpdateFlexboxProps(l model.Layout, p FlexboxPatch) model.Layout {
	l.FlexboxProps = p.apply(l.FlexboxProps)
	return l
}

func UpdateGridProps(l model.Layout, p GridPatch) model.Layout {
	l.GridProps = p.apply(l.GridProps)
	return l
}

// UpdateFlexItem merges p into the flex item at index i.
func UpdateFlexItem(l model.Layout, i int, p FlexItemPatch) (model.Layout, error) {
	if err := checkIndex("flex", i, len(l.FlexItems)); err != nil {
		return l, err
	}
	items := make([]model.FlexItem, len(l.FlexItems))
	copy(items, l.FlexItems)
	items[i] = p.apply(items[i])
	l.FlexItems = items
	return l, nil
}

// UpdateGridItem merges p into the grid item at index i.
func UpdateGridItem(l model.Layout, i int, p GridItemPatch) (model.Layout, error) {
	if err := checkIndex("grid", i, len(l.GridItems)); err != nil {
		return l, err
	}
	items := make([]model.GridItem, len(l.GridItems))
	copy(items, l.GridItems)
	items[i] = p.apply(items[i])
	l.GridItems = items
	return l, nil
}

// AddFlexItem appends a default flex item carrying id.
func AddFlexItem(l model.Layout, id string) model.Layout {
	items := make([]model.FlexItem, len(l.FlexItems), len(l.FlexItems)+1)
	copy(items, l.FlexItems)
	l.FlexItems = append(items, model.NewFlexItem(id))
	return l
}

// AddGridItem appends a default grid item carrying id.
func AddGridItem(l model.Layout, id string) model.Layout {
	items := make([]model.GridItem, len(l.GridItems), len(l.GridItems)+1)
	copy(items, l.GridItems)
	l.GridItems = append(items, model.NewGridItem(id))
	return l
}

// RemoveFlexItem drops the flex item at index i. The last remaining item is
// never removed; in that case l is returned as is and removed is false.
func RemoveFlexItem(l model.Layout, i int) (model.Layout, bool, error) {
	if err := checkIndex("flex", i, len(l.FlexItems)); err != nil {
		return l, false, err
	}
	if len(l.FlexItems) <= 1 {
		return l, false, nil
	}
	items := make([]model.FlexItem, 0, len(l.FlexItems)-1)
	items = append(items, l.FlexItems[:i]...)
	l.FlexItems = append(items, l.FlexItems[i+1:]...)
	return l, true, nil
}

// RemoveGridItem drops the grid item at index i, with the same last-item
// rule as RemoveFlexItem.
func RemoveGridItem(l model.Layout, i int) (model.Layout, bool, error) {
	if err := checkIndex("grid", i, len(l.GridItems)); err != nil {
		return l, false, err
	}
	if len(l.GridItems) <= 1 {
		return l, false, nil
	}
	items := make([]model.GridItem, 0, len(l.GridItems)-1)
	items = append(items, l.GridItems[:i]...)
	l.GridItems = append(items, l.GridItems[i+1:]...)
	return l, true, nil
}

// DuplicateFlexItem inserts a copy of item i directly after it. The copy
// gets id; every other field is carried over.
func DuplicateFlexItem(l model.Layout, i int, id string) (model.Layout, error) {
	if err := checkIndex("flex", i, len(l.FlexItems)); err != nil {
		return l, err
	}
	dup := l.FlexItems[i]
	dup.ID = id
	items := make([]model.FlexItem, 0, len(l.FlexItems)+1)
	items = append(items, l.FlexItems[:i+1]...)
	items = append(items, dup)
	l.FlexItems = append(items, l.FlexItems[i+1:]...)
	return l, nil
}

// DuplicateGridItem inserts a copy of grid item i directly after it.
func DuplicateGridItem(l model.Layout, i int, id string) (model.Layout, error) {
	if err := checkIndex("grid", i, len(l.GridItems)); err != nil {
		return l, err
	}
	dup := l.GridItems[i]
	dup.ID = id
	items := make([]model.GridItem, 0, len(l.GridItems)+1)
	items = append(items, l.GridItems[:i+1]...)
	items = append(items, dup)
	l.GridItems = append(items, l.GridItems[i+1:]...)
	return l, nil
}

// Normalize gives an empty item sequence one default item so that a layout
// loaded from a template or a stored record can be switched to either type.
// A layout with both sequences populated is returned unchanged.
func Normalize(l model.Layout, newID func() string) model.Layout {
	if len(l.FlexItems) == 0 {
		l.FlexItems = []model.FlexItem{model.NewFlexItem(newID())}
	}
	if len(l.GridItems) == 0 {
		l.GridItems = []model.GridItem{model.NewGridItem(newID())}
	}
	return l
}
