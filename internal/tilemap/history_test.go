package tilemap_test

import (
	"testing"

	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

func TestFiniteStackEvictsOldest(t *testing.T) {
	s := tilemap.NewFiniteStack[int](3)
	for i := 1; i <= 4; i++ {
		s.Push(i)
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", s.Len())
	}

	// 1 was evicted, remaining pop order is 4, 3, 2
	for _, expected := range []int{4, 3, 2} {
		v, ok := s.Pop()
		if !ok {
			t.Fatalf("Pop() returned false, expected %d", expected)
		}
		if v != expected {
			t.Errorf("Pop() = %d, expected %d", v, expected)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Error("Pop() on empty stack should return false")
	}
}

func TestFiniteStackDefaults(t *testing.T) {
	s := tilemap.NewFiniteStack[string](0)
	if s.Cap() != tilemap.DefaultHistoryCapacity {
		t.Errorf("Cap() = %d, expected %d", s.Cap(), tilemap.DefaultHistoryCapacity)
	}

	if _, ok := s.Peek(); ok {
		t.Error("Peek() on empty stack should return false")
	}
	s.Push("a")
	if v, ok := s.Peek(); !ok || v != "a" {
		t.Errorf("Peek() = %q, %v, expected \"a\", true", v, ok)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, expected 0", s.Len())
	}
}

func TestHistoryUndoRedo(t *testing.T) {
	g := mustGrid(t, 2, 2, 1)
	h := tilemap.NewHistory(10)

	before := g.Clone()
	h.PushUndo(g)
	g.Set(0, 0, 0, 3)
	after := g.Clone()

	prev, ok := h.Undo(g)
	if !ok {
		t.Fatal("Undo() returned false with one snapshot")
	}
	if !prev.Equal(before) {
		t.Error("Undo() should return the state before the edit")
	}
	g = prev

	next, ok := h.Redo(g)
	if !ok {
		t.Fatal("Redo() returned false after Undo()")
	}
	if !next.Equal(after) {
		t.Error("Redo() should restore the state before Undo()")
	}
}

func TestHistoryEmptyIsNoChange(t *testing.T) {
	g := mustGrid(t, 2, 2, 1)
	h := tilemap.NewHistory(5)

	if got, ok := h.Undo(g); ok || got != nil {
		t.Errorf("Undo() on empty history = %v, %v, expected nil, false", got, ok)
	}
	if got, ok := h.Redo(g); ok || got != nil {
		t.Errorf("Redo() on empty history = %v, %v, expected nil, false", got, ok)
	}
	if h.UndoLen() != 0 || h.RedoLen() != 0 {
		t.Errorf("stacks changed on no-op: undo=%d redo=%d", h.UndoLen(), h.RedoLen())
	}
}

func TestHistoryBounded(t *testing.T) {
	const n = 4
	g := mustGrid(t, 1, 1, 1)
	h := tilemap.NewHistory(n)

	// Push n+1 snapshots holding values 0..n
	for i := 0; i <= n; i++ {
		g.Set(0, 0, 0, i)
		h.PushUndo(g)
	}
	if h.UndoLen() != n {
		t.Fatalf("UndoLen() = %d, expected %d", h.UndoLen(), n)
	}

	// The snapshot holding 0 was evicted, so undos yield n..1
	for expected := n; expected >= 1; expected-- {
		prev, ok := h.Undo(g)
		if !ok {
			t.Fatalf("Undo() returned false, expected snapshot %d", expected)
		}
		if v, _ := prev.Get(0, 0, 0); v != expected {
			t.Errorf("Undo() snapshot = %d, expected %d", v, expected)
		}
		g = prev
	}

	if _, ok := h.Undo(g); ok {
		t.Error("Undo() beyond available entries should be a no-op")
	}
	if h.RedoLen() != n {
		t.Errorf("RedoLen() = %d, expected %d", h.RedoLen(), n)
	}
}

func TestHistorySnapshotsAreCopies(t *testing.T) {
	g := mustGrid(t, 2, 1, 1)
	h := tilemap.NewHistory(3)

	h.PushUndo(g)
	g.Set(0, 0, 0, 1)

	prev, _ := h.Undo(g)
	if v, _ := prev.Get(0, 0, 0); v != tilemap.Empty {
		t.Errorf("snapshot mutated by later edit: got %d", v)
	}
}

func TestHistoryReset(t *testing.T) {
	g := mustGrid(t, 1, 1, 1)
	h := tilemap.NewHistory(3)
	h.PushUndo(g)
	h.PushUndo(g)
	h.Undo(g)

	if !h.CanUndo() || !h.CanRedo() {
		t.Fatal("expected both stacks to hold entries before Reset()")
	}

	h.Reset()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Reset() should empty both stacks")
	}
}

func TestPaintAndEraseScenario(t *testing.T) {
	g := mustGrid(t, 2, 2, 1)
	h := tilemap.NewHistory(tilemap.DefaultHistoryCapacity)
	c := tilemap.C(0, 0, 0)

	tilemap.Paint(g, h, c, 5)
	tilemap.Paint(g, h, c, 7)

	prev, ok := h.Undo(g)
	if !ok {
		t.Fatal("first Undo() failed")
	}
	g = prev
	if v := g.At(c); v != 5 {
		t.Errorf("after first undo cell = %d, expected 5", v)
	}

	prev, ok = h.Undo(g)
	if !ok {
		t.Fatal("second Undo() failed")
	}
	g = prev
	if v := g.At(c); v != tilemap.Empty {
		t.Errorf("after second undo cell = %d, expected Empty", v)
	}
}

func TestPaintSkipsUnchangedAndOutOfBounds(t *testing.T) {
	g := mustGrid(t, 2, 2, 1)
	h := tilemap.NewHistory(10)

	tests := []struct {
		name    string
		coord   tilemap.Coord
		tile    int
		changed bool
		undoLen int
	}{
		{"first paint", tilemap.C(1, 1, 0), 3, true, 1},
		{"same tile again", tilemap.C(1, 1, 0), 3, false, 1},
		{"out of bounds x", tilemap.C(2, 0, 0), 3, false, 1},
		{"out of bounds layer", tilemap.C(0, 0, 1), 3, false, 1},
		{"erase empty cell", tilemap.C(0, 0, 0), tilemap.Empty, false, 1},
		{"erase painted cell", tilemap.C(1, 1, 0), tilemap.Empty, true, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var changed bool
			if tc.tile == tilemap.Empty {
				changed = tilemap.Erase(g, h, tc.coord)
			} else {
				changed = tilemap.Paint(g, h, tc.coord, tc.tile)
			}
			if changed != tc.changed {
				t.Errorf("changed = %v, expected %v", changed, tc.changed)
			}
			if h.UndoLen() != tc.undoLen {
				t.Errorf("UndoLen() = %d, expected %d", h.UndoLen(), tc.undoLen)
			}
		})
	}
}
