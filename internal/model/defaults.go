package model

// Values an item field holds when it adds nothing to the generated stylesheet.
const (
	AutoValue = "auto"
)

// DefaultFlexboxProperties returns the container settings of a fresh session.
func DefaultFlexboxProperties() FlexboxProperties {
	return FlexboxProperties{
		Display:        DisplayFlex,
		FlexDirection:  DirectionRow,
		JustifyContent: JustifyFlexStart,
		AlignItems:     AlignItemsStretch,
		FlexWrap:       WrapNowrap,
		Gap:            "0px",
	}
}

// DefaultGridProperties returns the grid container settings of a fresh session.
func DefaultGridProperties() GridProperties {
	return GridProperties{
		Display:             DisplayGrid,
		GridTemplateColumns: "repeat(3, 1fr)",
		GridTemplateRows:    "repeat(2, 100px)",
		RowGap:              "10px",
		ColumnGap:           "10px",
		JustifyItems:        GridStretch,
		AlignItems:          GridStretch,
	}
}

// NewFlexItem returns a flex item with the add-item defaults.
func NewFlexItem(id string) FlexItem {
	return FlexItem{
		ID:         id,
		FlexGrow:   0,
		FlexShrink: 1,
		FlexBasis:  AutoValue,
		AlignSelf:  AlignSelfAuto,
		Order:      0,
	}
}

// NewGridItem returns a grid item with every position on "auto" and both
// alignments on "start".
func NewGridItem(id string) GridItem {
	return GridItem{
		ID:              id,
		GridColumnStart: AutoValue,
		GridColumnEnd:   AutoValue,
		GridRowStart:    AutoValue,
		GridRowEnd:      AutoValue,
		JustifySelf:     GridStart,
		AlignSelf:       GridStart,
	}
}

// DefaultLayout is the session-start state: flexbox active, one item in each
// sequence. newID must return a fresh token on every call.
func DefaultLayout(newID func() string) Layout {
	return Layout{
		LayoutType:   LayoutFlexbox,
		FlexboxProps: DefaultFlexboxProperties(),
		GridProps:    DefaultGridProperties(),
		FlexItems:    []FlexItem{NewFlexItem(newID())},
		GridItems:    []GridItem{NewGridItem(newID())},
	}
}
