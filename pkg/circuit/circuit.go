// Package circuit owns the Circuit container: a set of components keyed
// by identifier, with insertion order preserved for deterministic
// iteration (SPEC_FULL.md §13.1), plus add/delete-near/find-near and the
// JSON persistence format (spec.md §6).
package circuit

import (
	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
)

// Circuit owns a set of components. Insertion order is preserved so that
// iteration-order-sensitive operations (source auxiliary-row assignment,
// FindNear/DeleteAt tie-breaking) are deterministic across runs.
type Circuit struct {
	byID  map[string]*component.Component
	order []string
}

// New returns an empty Circuit.
func New() *Circuit {
	return &Circuit{byID: make(map[string]*component.Component)}
}

// Add creates a new component of the given kind and appends it, returning
// its identifier.
func (c *Circuit) Add(kind component.Kind, a, b geometry.Point, props map[string]float64, meta map[string]string) string {
	comp := component.New(kind, a, b, props, meta)
	c.byID[comp.ID] = comp
	c.order = append(c.order, comp.ID)
	return comp.ID
}

// Put inserts an already-constructed component (used by deserialization
// and by history restore), preserving its identity.
func (c *Circuit) Put(comp *component.Component) {
	if _, exists := c.byID[comp.ID]; !exists {
		c.order = append(c.order, comp.ID)
	}
	c.byID[comp.ID] = comp
}

// Get returns the component with the given identifier, or nil.
func (c *Circuit) Get(id string) *component.Component {
	return c.byID[id]
}

// Delete removes a component by identifier. Reports whether it existed.
func (c *Circuit) Delete(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// DeleteAt removes the first component (in insertion order) whose A, B,
// or round-half-to-even midpoint exactly equals p, returning its
// identifier. Distinct from FindNear: no distance ranking, exact
// coincidence only, and a different midpoint rounding rule
// (SPEC_FULL.md §12).
func (c *Circuit) DeleteAt(p geometry.Point) (string, bool) {
	for _, id := range c.order {
		comp := c.byID[id]
		if comp.A == p || comp.B == p || comp.MidPoint() == p {
			c.Delete(id)
			return id, true
		}
	}
	return "", false
}

// FindNear returns the component whose A, B, or floor-divided midpoint is
// closest to p by Manhattan distance, provided that distance is ≤ 1
// (spec.md §6). Ties keep the first-encountered component in insertion
// order. Uses floor division rather than DeleteAt's round-half-to-even,
// matching the reference implementation's find_near.
func (c *Circuit) FindNear(p geometry.Point) *component.Component {
	var best *component.Component
	bestDist := 1 << 30

	for _, id := range c.order {
		comp := c.byID[id]
		for _, q := range []geometry.Point{comp.A, comp.B, comp.FloorMidPoint()} {
			d := q.ManhattanDistance(p)
			if d < bestDist {
				bestDist = d
				best = comp
			}
		}
	}

	if bestDist <= 1 {
		return best
	}
	return nil
}

// Components returns the circuit's components in insertion order. The
// returned slice aliases no internal state: callers may not assume it
// stays valid across further Add/Delete calls.
func (c *Circuit) Components() []*component.Component {
	out := make([]*component.Component, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of components.
func (c *Circuit) Len() int { return len(c.order) }

// Clone returns a deep copy of the circuit, including deep copies of
// every component.
func (c *Circuit) Clone() *Circuit {
	clone := New()
	for _, id := range c.order {
		clone.Put(c.byID[id].Clone())
	}
	return clone
}
