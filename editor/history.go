package editor

import "fitplan/design"

// DefaultHistoryLimit bounds how many undo steps are kept.
const DefaultHistoryLimit = 50

// History holds the bounded undo and redo stacks of the editing session.
// Each entry is a full document snapshot; gestures commit exactly once, at
// END, so a hundred-event drag costs one entry.
type History struct {
	past   []*design.Design
	future []*design.Design
	limit  int
}

// NewHistory creates a history manager keeping at most limit snapshots.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record pushes the pre-edit document onto the undo stack and clears the redo
// stack. prev is stored as-is, so it must already be a clone.
func (h *History) Record(prev *design.Design) {
	h.past = append(h.past, prev)
	if len(h.past) > h.limit {
		h.past = h.past[1:]
	}
	h.future = h.future[:0]
}

// Undo swaps the current document for the most recent snapshot. ok=false on
// an empty undo stack, leaving everything untouched.
func (h *History) Undo(current *design.Design) (*design.Design, bool) {
	if len(h.past) == 0 {
		return current, false
	}
	restored := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return restored, true
}

// Redo is the symmetric inverse of Undo.
func (h *History) Redo(current *design.Design) (*design.Design, bool) {
	if len(h.future) == 0 {
		return current, false
	}
	restored := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return restored, true
}

// CanUndo reports whether an undo step exists. Hosts use it to disable the
// undo affordance.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo step exists.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depths returns the undo and redo stack lengths.
func (h *History) Depths() (past, future int) {
	return len(h.past), len(h.future)
}
