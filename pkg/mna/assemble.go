package mna

import (
	"sort"

	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
)

// System is the assembled MNA system for one solver pass: ground
// selection, node indexing, the socket order backing the auxiliary rows,
// and the underlying dense Matrix (spec.md §4.4).
type System struct {
	Ground    geometry.Point
	NodeIndex map[geometry.Point]int
	Sockets   []*component.Component
	Matrix    *Matrix
}

// Assemble builds the MNA system from an already-expanded solver
// component list (see component.Expand). comps must contain only
// two-terminal primitives (switch_spst surrogates and pass-through
// components) — never compound switches.
func Assemble(comps []*component.Component) *System {
	ground := selectGround(comps)

	nodeSet := make(map[geometry.Point]struct{})
	for _, c := range comps {
		nodeSet[c.A] = struct{}{}
		nodeSet[c.B] = struct{}{}
	}
	nodes := make(geometry.Points, 0, len(nodeSet))
	for p := range nodeSet {
		nodes = append(nodes, p)
	}
	sort.Sort(nodes)

	nodeIndex := make(map[geometry.Point]int, len(nodes))
	idx := 0
	for _, n := range nodes {
		if n == ground {
			continue
		}
		nodeIndex[n] = idx
		idx++
	}

	var sockets []*component.Component
	for _, c := range comps {
		if c.Kind == component.Socket {
			sockets = append(sockets, c)
		}
	}

	n := len(nodeIndex) + len(sockets)
	matrix := NewMatrix(n)

	sys := &System{Ground: ground, NodeIndex: nodeIndex, Sockets: sockets, Matrix: matrix}
	sys.stamp(comps)
	return sys
}

// selectGround implements spec.md §4.4's ground rule: the B endpoint of
// the first socket encountered, or the lexicographically minimum node if
// there is no socket, or (0,0) if the circuit is empty.
func selectGround(comps []*component.Component) geometry.Point {
	for _, c := range comps {
		if c.Kind == component.Socket {
			return c.B
		}
	}

	var min geometry.Point
	have := false
	for _, c := range comps {
		for _, p := range [2]geometry.Point{c.A, c.B} {
			if !have || p.Less(min) {
				min = p
				have = true
			}
		}
	}
	if !have {
		return geometry.Pt(0, 0)
	}
	return min
}

func (sys *System) index(p geometry.Point) (idx int, ok bool) {
	idx, ok = sys.NodeIndex[p]
	return
}

// stamp fills in the matrix per spec.md §4.4: conductance stamps for
// every finite-resistance non-source component, and voltage-source
// stamps for every socket in encounter order.
func (sys *System) stamp(comps []*component.Component) {
	for _, c := range comps {
		if c.Kind == component.Socket {
			continue
		}
		r := component.EffectiveResistance(c)
		if r.Open {
			continue
		}
		g := 1.0 / r.Ohms

		ia, hasA := sys.index(c.A)
		ib, hasB := sys.index(c.B)
		if hasA {
			sys.Matrix.AddElement(ia, ia, g)
		}
		if hasB {
			sys.Matrix.AddElement(ib, ib, g)
		}
		if hasA && hasB {
			sys.Matrix.AddElement(ia, ib, -g)
			sys.Matrix.AddElement(ib, ia, -g)
		}
	}

	base := len(sys.NodeIndex)
	for k, c := range sys.Sockets {
		row := base + k
		v := c.Prop("V", 5.0)

		ia, hasA := sys.index(c.A)
		ib, hasB := sys.index(c.B)
		if hasA {
			sys.Matrix.AddElement(ia, row, 1)
			sys.Matrix.AddElement(row, ia, 1)
		}
		if hasB {
			sys.Matrix.AddElement(ib, row, -1)
			sys.Matrix.AddElement(row, ib, -1)
		}
		sys.Matrix.AddRHS(row, v)
	}
}

// NodeVoltage returns the solved voltage at p, 0 for the ground node.
func (sys *System) NodeVoltage(solution []float64, p geometry.Point) float64 {
	if p == sys.Ground {
		return 0
	}
	idx, ok := sys.NodeIndex[p]
	if !ok || idx >= len(solution) {
		return 0
	}
	return solution[idx]
}

// SocketCurrent returns the auxiliary-row current for the k-th socket
// (in Sockets order): the current flowing through the source from its A
// terminal to its B terminal, which is negative when the source drives
// current out of A into the rest of the circuit.
func (sys *System) SocketCurrent(solution []float64, k int) float64 {
	row := len(sys.NodeIndex) + k
	if row >= len(solution) {
		return 0
	}
	return solution[row]
}
