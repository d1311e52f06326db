package tilemap

// DefaultHistoryCapacity is the number of snapshots kept per stack when no
// capacity is configured.
const DefaultHistoryCapacity = 100

// FiniteStack is a LIFO stack that drops its oldest entry once it holds
// more than its capacity.
type FiniteStack[T any] struct {
	items    []T
	capacity int
}

// NewFiniteStack creates a stack holding at most capacity entries.
// A non-positive capacity falls back to DefaultHistoryCapacity.
func NewFiniteStack[T any](capacity int) *FiniteStack[T] {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &FiniteStack[T]{
		items:    make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Push adds v on top, evicting the bottom entry when full.
func (s *FiniteStack[T]) Push(v T) {
	if len(s.items) >= s.capacity {
		copy(s.items, s.items[1:])
		s.items = s.items[:len(s.items)-1]
	}
	s.items = append(s.items, v)
}

// Pop removes and returns the top entry.
// Returns the zero value and false if the stack is empty.
func (s *FiniteStack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	v := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return v, true
}

// Peek returns the top entry without removing it.
func (s *FiniteStack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of entries.
func (s *FiniteStack[T]) Len() int {
	return len(s.items)
}

// Cap returns the maximum number of entries.
func (s *FiniteStack[T]) Cap() int {
	return s.capacity
}

// Clear removes all entries.
func (s *FiniteStack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// History holds bounded undo and redo stacks of grid snapshots.
type History struct {
	undo *FiniteStack[*Grid]
	redo *FiniteStack[*Grid]
}

// NewHistory creates an empty history with the given per-stack capacity.
func NewHistory(capacity int) *History {
	return &History{
		undo: NewFiniteStack[*Grid](capacity),
		redo: NewFiniteStack[*Grid](capacity),
	}
}

// PushUndo records a snapshot of g before it is mutated.
// The redo stack is left untouched.
func (h *History) PushUndo(g *Grid) {
	h.undo.Push(g.Clone())
}

// Undo swaps current for the most recent undo snapshot.
// current is moved onto the redo stack. Returns false and leaves both
// stacks unchanged when there is nothing to undo.
func (h *History) Undo(current *Grid) (*Grid, bool) {
	prev, ok := h.undo.Pop()
	if !ok {
		return nil, false
	}
	h.redo.Push(current.Clone())
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current *Grid) (*Grid, bool) {
	next, ok := h.redo.Pop()
	if !ok {
		return nil, false
	}
	h.undo.Push(current.Clone())
	return next, true
}

// Reset empties both stacks.
func (h *History) Reset() {
	h.undo.Clear()
	h.redo.Clear()
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool { return h.undo.Len() > 0 }

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool { return h.redo.Len() > 0 }

// UndoLen returns the number of undo snapshots.
func (h *History) UndoLen() int { return h.undo.Len() }

// RedoLen returns the number of redo snapshots.
func (h *History) RedoLen() int { return h.redo.Len() }

// Capacity returns the per-stack capacity.
func (h *History) Capacity() int { return h.undo.Cap() }
