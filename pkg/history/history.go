// Package history implements bounded undo/redo over whole-circuit
// snapshots (spec.md §4.6). Snapshots are the circuit's JSON projection,
// compared by byte equality (SPEC_FULL.md §13.2) rather than a
// hand-rolled deep-equal over the component map.
package history

import (
	"bytes"
	"errors"

	"github.com/circuitlab/dcsim/internal/consts"
	"github.com/circuitlab/dcsim/pkg/circuit"
)

// ErrNothingToUndo is returned by Undo when fewer than two snapshots are
// on the undo stack (spec.md §4.6: "undo requires at least two entries").
var ErrNothingToUndo = errors.New("history: nothing to undo")

// ErrNothingToRedo is returned by Redo when the redo stack is empty.
var ErrNothingToRedo = errors.New("history: nothing to redo")

// History is a bounded ordered sequence of circuit snapshots, plus a redo
// stack. The invariant after Record is: the top of the undo stack equals
// the circuit passed to Record.
type History struct {
	capacity int
	undo     [][]byte
	redo     [][]byte
}

// New returns a History with the default capacity (200, spec.md §4.6).
func New() *History {
	return NewWithCapacity(consts.DefaultHistoryCapacity)
}

// NewWithCapacity returns a History bounded to capacity snapshots.
func NewWithCapacity(capacity int) *History {
	return &History{capacity: capacity}
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// Record pushes a snapshot of cir if it differs from the current top, and
// clears the redo stack.
func (h *History) Record(cir *circuit.Circuit) error {
	snap, err := cir.ToJSON()
	if err != nil {
		return err
	}

	if len(h.undo) > 0 && bytes.Equal(h.undo[len(h.undo)-1], snap) {
		return nil
	}

	h.undo = append(h.undo, snap)
	if h.capacity > 0 && len(h.undo) > h.capacity {
		h.undo = h.undo[len(h.undo)-h.capacity:]
	}
	h.redo = nil
	return nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.undo) >= 2 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo pops the current top into the redo stack and applies the new top
// to cir.
func (h *History) Undo(cir *circuit.Circuit) error {
	if !h.CanUndo() {
		return ErrNothingToUndo
	}
	cur := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur)

	prev := h.undo[len(h.undo)-1]
	return cir.ApplyJSON(prev)
}

// Redo pops the most recent redo entry, pushes it back onto the undo
// stack, and applies it to cir.
func (h *History) Redo(cir *circuit.Circuit) error {
	if !h.CanRedo() {
		return ErrNothingToRedo
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, next)

	return cir.ApplyJSON(next)
}

// Len returns the number of entries on the undo stack.
func (h *History) Len() int { return len(h.undo) }
