package layout

import (
	"errors"
	"reflect"
	"testing"

	"css-layout-builder/internal/idgen"
	"css-layout-builder/internal/model"
)

func newLayout() model.Layout {
	return model.DefaultLayout(idgen.Sequence("init-"))
}

func TestSetLayoutTypeKeepsBothModels(t *testing.T) {
	l := newLayout()
	g := SetLayoutType(l, model.LayoutGrid)

	if g.LayoutType != model.LayoutGrid {
		t.Fatalf("LayoutType = %q", g.LayoutType)
	}
	if l.LayoutType != model.LayoutFlexbox {
		t.Error("input layout was modified")
	}
	if !reflect.DeepEqual(g.FlexItems, l.FlexItems) || !reflect.DeepEqual(g.FlexboxProps, l.FlexboxProps) {
		t.Error("flexbox sub-model not retained after switching to grid")
	}
}

func TestUpdateFlexboxPropsMergesSetFields(t *testing.T) {
	l := newLayout()
	out := UpdateFlexboxProps(l, FlexboxPatch{}.WithGap("12px").WithFlexDirection(model.DirectionColumn))

	want := model.DefaultFlexboxProperties()
	want.Gap = "12px"
	want.FlexDirection = model.DirectionColumn
	if out.FlexboxProps != want {
		t.Errorf("FlexboxProps = %+v, want %+v", out.FlexboxProps, want)
	}
	if l.FlexboxProps != model.DefaultFlexboxProperties() {
		t.Error("input layout was modified")
	}
}

func TestUpdateGridProps(t *testing.T) {
	l := newLayout()
	out := UpdateGridProps(l, GridPatch{}.WithGridTemplateColumns("1fr 2fr").WithAlignItems(model.GridCenter))

	if out.GridProps.GridTemplateColumns != "1fr 2fr" || out.GridProps.AlignItems != model.GridCenter {
		t.Errorf("unexpected grid props %+v", out.GridProps)
	}
	if out.GridProps.RowGap != "10px" {
		t.Errorf("unset field changed: RowGap = %q", out.GridProps.RowGap)
	}
}

func TestUpdateFlexItemDoesNotAlias(t *testing.T) {
	l := AddFlexItem(newLayout(), "f2")
	out, err := UpdateFlexItem(l, 1, FlexItemPatch{}.WithFlexGrow(2))
	if err != nil {
		t.Fatalf("UpdateFlexItem: %v", err)
	}
	if out.FlexItems[1].FlexGrow != 2 {
		t.Errorf("FlexGrow = %d, want 2", out.FlexItems[1].FlexGrow)
	}
	if l.FlexItems[1].FlexGrow != 0 {
		t.Error("input sequence was written")
	}
	if &out.GridItems[0] != &l.GridItems[0] {
		t.Error("untouched grid sequence should be shared")
	}
}

func TestUpdateItemOutOfRange(t *testing.T) {
	l := newLayout()
	if _, err := UpdateFlexItem(l, 3, FlexItemPatch{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("UpdateFlexItem(3): err = %v", err)
	}
	if _, err := UpdateGridItem(l, -1, GridItemPatch{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("UpdateGridItem(-1): err = %v", err)
	}
	if _, err := DuplicateFlexItem(l, 1, "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DuplicateFlexItem(1): err = %v", err)
	}
	if _, _, err := RemoveGridItem(l, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveGridItem(5): err = %v", err)
	}
}

func TestAddItems(t *testing.T) {
	l := newLayout()
	out := AddFlexItem(l, "f2")
	out = AddGridItem(out, "g2")

	if len(l.FlexItems) != 1 || len(l.GridItems) != 1 {
		t.Error("input layout was modified")
	}
	if got := out.FlexItems[1]; got != model.NewFlexItem("f2") {
		t.Errorf("added flex item = %+v", got)
	}
	if got := out.GridItems[1]; got != model.NewGridItem("g2") {
		t.Errorf("added grid item = %+v", got)
	}
}

func TestRemoveLastItemIsNoOp(t *testing.T) {
	l := newLayout()
	out, removed, err := RemoveFlexItem(l, 0)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Error("removing the only flex item should report false")
	}
	if len(out.FlexItems) != 1 || out.FlexItems[0].ID != l.FlexItems[0].ID {
		t.Errorf("flex items changed: %+v", out.FlexItems)
	}

	if _, removed, _ := RemoveGridItem(l, 0); removed {
		t.Error("removing the only grid item should report false")
	}
}

func TestRemoveItem(t *testing.T) {
	l := AddFlexItem(AddFlexItem(newLayout(), "f2"), "f3")
	out, removed, err := RemoveFlexItem(l, 1)
	if err != nil || !removed {
		t.Fatalf("RemoveFlexItem: removed=%v err=%v", removed, err)
	}
	ids := []string{out.FlexItems[0].ID, out.FlexItems[1].ID}
	if !reflect.DeepEqual(ids, []string{"init-1", "f3"}) {
		t.Errorf("ids after remove = %v", ids)
	}
	if len(l.FlexItems) != 3 || l.FlexItems[1].ID != "f2" {
		t.Error("input sequence was written")
	}
}

func TestDuplicateInsertsAfterSource(t *testing.T) {
	l := AddFlexItem(newLayout(), "f2")
	l, _ = UpdateFlexItem(l, 0, FlexItemPatch{}.WithFlexGrow(3).WithOrder(2))

	out, err := DuplicateFlexItem(l, 0, "copy")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.FlexItems) != 3 {
		t.Fatalf("len = %d, want 3", len(out.FlexItems))
	}
	dup := out.FlexItems[1]
	if dup.ID != "copy" || dup.FlexGrow != 3 || dup.Order != 2 {
		t.Errorf("duplicate = %+v", dup)
	}
	if out.FlexItems[2].ID != "f2" {
		t.Errorf("item after duplicate = %q, want f2", out.FlexItems[2].ID)
	}
	if len(l.FlexItems) != 2 {
		t.Error("input sequence was written")
	}
}

func TestDuplicateGridItem(t *testing.T) {
	l := newLayout()
	l, _ = UpdateGridItem(l, 0, GridItemPatch{}.WithGridColumnStart("1").WithGridColumnEnd("3"))
	out, err := DuplicateGridItem(l, 0, "g-copy")
	if err != nil {
		t.Fatal(err)
	}
	want := out.GridItems[0]
	want.ID = "g-copy"
	if out.GridItems[1] != want {
		t.Errorf("duplicate = %+v, want %+v", out.GridItems[1], want)
	}
}

func TestNormalize(t *testing.T) {
	l := model.Layout{
		LayoutType:   model.LayoutFlexbox,
		FlexboxProps: model.DefaultFlexboxProperties(),
		GridProps:    model.DefaultGridProperties(),
		FlexItems:    []model.FlexItem{model.NewFlexItem("a")},
	}
	out := Normalize(l, idgen.Sequence("n-"))
	if len(out.GridItems) != 1 || out.GridItems[0].ID != "n-1" {
		t.Errorf("GridItems = %+v", out.GridItems)
	}
	if len(out.FlexItems) != 1 || out.FlexItems[0].ID != "a" {
		t.Errorf("populated sequence changed: %+v", out.FlexItems)
	}
}

func TestPatchValidate(t *testing.T) {
	if err := (FlexItemPatch{}.WithFlexGrow(-1)).Validate(); err == nil {
		t.Error("negative flex-grow should be rejected")
	}
	if err := (FlexboxPatch{}.WithFlexWrap("sometimes")).Validate(); err == nil {
		t.Error("unknown flex-wrap should be rejected")
	}
	if err := (GridItemPatch{}.WithJustifySelf("middle")).Validate(); err == nil {
		t.Error("unknown justify-self should be rejected")
	}
	if err := (GridPatch{}.WithRowGap("whatever")).Validate(); err != nil {
		t.Errorf("free-form gap should be accepted, got %v", err)
	}
}
