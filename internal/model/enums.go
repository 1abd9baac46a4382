package model

import "slices"

// Closed keyword sets for the enumerated CSS properties. Each list is in the
// order editors cycle through it.

type FlexDisplay string

const (
	DisplayFlex       FlexDisplay = "flex"
	DisplayInlineFlex FlexDisplay = "inline-flex"
)

var FlexDisplays = []FlexDisplay{DisplayFlex, DisplayInlineFlex}

func (v FlexDisplay) Valid() bool { return slices.Contains(FlexDisplays, v) }

type FlexDirection string

const (
	DirectionRow           FlexDirection = "row"
	DirectionColumn        FlexDirection = "column"
	DirectionRowReverse    FlexDirection = "row-reverse"
	DirectionColumnReverse FlexDirection = "column-reverse"
)

var FlexDirections = []FlexDirection{DirectionRow, DirectionColumn, DirectionRowReverse, DirectionColumnReverse}

func (v FlexDirection) Valid() bool { return slices.Contains(FlexDirections, v) }

type JustifyContent string

const (
	JustifyFlexStart    JustifyContent = "flex-start"
	JustifyFlexEnd      JustifyContent = "flex-end"
	JustifyCenter       JustifyContent = "center"
	JustifySpaceBetween JustifyContent = "space-between"
	JustifySpaceAround  JustifyContent = "space-around"
	JustifySpaceEvenly  JustifyContent = "space-evenly"
)

var JustifyContents = []JustifyContent{
	JustifyFlexStart, JustifyFlexEnd, JustifyCenter,
	JustifySpaceBetween, JustifySpaceAround, JustifySpaceEvenly,
}

func (v JustifyContent) Valid() bool { return slices.Contains(JustifyContents, v) }

// FlexAlignItems is align-items on a flex container.
type FlexAlignItems string

const (
	AlignItemsFlexStart FlexAlignItems = "flex-start"
	AlignItemsFlexEnd   FlexAlignItems = "flex-end"
	AlignItemsCenter    FlexAlignItems = "center"
	AlignItemsStretch   FlexAlignItems = "stretch"
	AlignItemsBaseline  FlexAlignItems = "baseline"
)

var FlexAlignItemsValues = []FlexAlignItems{
	AlignItemsFlexStart, AlignItemsFlexEnd, AlignItemsCenter, AlignItemsStretch, AlignItemsBaseline,
}

func (v FlexAlignItems) Valid() bool { return slices.Contains(FlexAlignItemsValues, v) }

type FlexWrap string

const (
	WrapNowrap      FlexWrap = "nowrap"
	WrapWrap        FlexWrap = "wrap"
	WrapWrapReverse FlexWrap = "wrap-reverse"
)

var FlexWraps = []FlexWrap{WrapNowrap, WrapWrap, WrapWrapReverse}

func (v FlexWrap) Valid() bool { return slices.Contains(FlexWraps, v) }

// FlexAlignSelf is align-self on a flex item; "auto" defers to the container.
type FlexAlignSelf string

const (
	AlignSelfAuto      FlexAlignSelf = "auto"
	AlignSelfFlexStart FlexAlignSelf = "flex-start"
	AlignSelfFlexEnd   FlexAlignSelf = "flex-end"
	AlignSelfCenter    FlexAlignSelf = "center"
	AlignSelfStretch   FlexAlignSelf = "stretch"
	AlignSelfBaseline  FlexAlignSelf = "baseline"
)

var FlexAlignSelves = []FlexAlignSelf{
	AlignSelfAuto, AlignSelfFlexStart, AlignSelfFlexEnd, AlignSelfCenter, AlignSelfStretch, AlignSelfBaseline,
}

func (v FlexAlignSelf) Valid() bool { return slices.Contains(FlexAlignSelves, v) }

type GridDisplay string

const (
	DisplayGrid       GridDisplay = "grid"
	DisplayInlineGrid GridDisplay = "inline-grid"
)

var GridDisplays = []GridDisplay{DisplayGrid, DisplayInlineGrid}

func (v GridDisplay) Valid() bool { return slices.Contains(GridDisplays, v) }

// GridAlign covers justify-items/align-items on the grid container and
// justify-self/align-self on grid items.
type GridAlign string

const (
	GridStart   GridAlign = "start"
	GridEnd     GridAlign = "end"
	GridCenter  GridAlign = "center"
	GridStretch GridAlign = "stretch"
)

var GridAligns = []GridAlign{GridStart, GridEnd, GridCenter, GridStretch}

func (v GridAlign) Valid() bool { return slices.Contains(GridAligns, v) }

// PreviewMode is the preview viewport. It is presentation state only and is
// never recorded in history.
type PreviewMode string

const (
	PreviewDesktop PreviewMode = "desktop"
	PreviewMobile  PreviewMode = "mobile"
)

func (v PreviewMode) Valid() bool { return v == PreviewDesktop || v == PreviewMobile }
