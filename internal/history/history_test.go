package history

import (
	"reflect"
	"testing"
)

func TestNewStore(t *testing.T) {
	s := New("a")
	if s.Present() != "a" {
		t.Fatalf("Present = %q, want a", s.Present())
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("new store should have nothing to undo or redo")
	}
}

func TestCommitUndoRedo(t *testing.T) {
	s := New("a")
	s.Commit("b")
	s.Commit("c")

	want := Snapshot[string]{Past: []string{"a", "b"}, Present: "c", Future: nil}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after commits: got %+v, want %+v", got, want)
	}

	if !s.Undo() {
		t.Fatal("Undo reported false with non-empty past")
	}
	want = Snapshot[string]{Past: []string{"a"}, Present: "b", Future: []string{"c"}}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after undo: got %+v, want %+v", got, want)
	}

	s.Undo()
	want = Snapshot[string]{Past: []string{}, Present: "a", Future: []string{"b", "c"}}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after second undo: got %+v, want %+v", got, want)
	}

	if !s.Redo() {
		t.Fatal("Redo reported false with non-empty future")
	}
	want = Snapshot[string]{Past: []string{"a"}, Present: "b", Future: []string{"c"}}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after redo: got %+v, want %+v", got, want)
	}
}

func TestUndoRedoNoOp(t *testing.T) {
	s := New(1)
	if s.Undo() {
		t.Error("Undo on empty past should report false")
	}
	if s.Redo() {
		t.Error("Redo on empty future should report false")
	}
	if s.Present() != 1 {
		t.Errorf("Present changed to %d", s.Present())
	}
}

func TestCommitClearsFuture(t *testing.T) {
	s := New(0)
	s.Commit(1)
	s.Commit(2)
	s.Undo()
	s.Undo()
	s.Commit(9)

	if s.CanRedo() {
		t.Error("commit after undo should discard the future")
	}
	want := Snapshot[int]{Past: []int{0}, Present: 9, Future: nil}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSetPresentRecordsNothing(t *testing.T) {
	s := New("a")
	s.Commit("b")
	s.Undo()
	s.SetPresent("z")

	if s.Present() != "z" {
		t.Fatalf("Present = %q, want z", s.Present())
	}
	if past, future := s.Len(); past != 0 || future != 1 {
		t.Errorf("Len = (%d, %d), want (0, 1)", past, future)
	}
}

func TestUndoThenRedoRestoresPresent(t *testing.T) {
	s := New("a")
	for _, v := range []string{"b", "c", "d"} {
		s.Commit(v)
	}
	for i := 0; i < 3; i++ {
		s.Undo()
	}
	for i := 0; i < 3; i++ {
		s.Redo()
	}
	if s.Present() != "d" {
		t.Errorf("Present = %q after full undo/redo, want d", s.Present())
	}
	if s.CanRedo() {
		t.Error("future should be empty")
	}
}

func TestWithLimit(t *testing.T) {
	s := New(0, WithLimit(2))
	for i := 1; i <= 5; i++ {
		s.Commit(i)
	}
	if got := s.Snapshot().Past; !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("Past = %v, want [3 4]", got)
	}
	s.Undo()
	s.Undo()
	if s.Undo() {
		t.Error("Undo past the limit should report false")
	}
	if s.Present() != 3 {
		t.Errorf("Present = %d, want 3", s.Present())
	}
}

func TestPrevious(t *testing.T) {
	s := New("a")
	if _, ok := s.Previous(); ok {
		t.Error("Previous on empty past should report false")
	}
	s.Commit("b")
	if prev, ok := s.Previous(); !ok || prev != "a" {
		t.Errorf("Previous = %q, %v", prev, ok)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := New("a")
	s.Commit("b")
	snap := s.Snapshot()
	snap.Past[0] = "mutated"
	if prev, _ := s.Previous(); prev != "a" {
		t.Error("modifying a snapshot changed the store")
	}
}
