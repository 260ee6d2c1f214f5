package component

import "github.com/circuitlab/dcsim/pkg/geometry"

// MainBranch is the synthetic branch label non-switch components pass
// through expansion with (spec.md §4.1).
const MainBranch = "main"

// Expansion is the result of running Expand over a circuit's component
// list: a parallel list of solver-ready (two-terminal) components, plus
// the surrogate → parent and surrogate → branch-label mappings needed to
// aggregate results back onto the original components (spec.md §4.5).
type Expansion struct {
	Solver []*Component
	Parent map[string]string // solver component ID -> original component ID
	Label  map[string]string // solver component ID -> branch label
}

// Expand rewrites every compound switch in comps into one or more
// switch_spst surrogates and passes everything else through unchanged
// (spec.md §4.1). The input slice and its components are never mutated;
// surrogates and any pass-through entries are fresh Components.
func Expand(comps []*Component) Expansion {
	ex := Expansion{
		Parent: make(map[string]string),
		Label:  make(map[string]string),
	}

	for _, c := range comps {
		switch c.Kind {
		case SwitchSPDT:
			ex.addAll(c, expandSPDT(c))
		case SwitchSP3T:
			ex.addAll(c, expandSP3T(c))
		case SwitchDPST:
			ex.addAll(c, expandDPST(c))
		case SwitchDPDT:
			ex.addAll(c, expandDPDT(c))
		case ButtonMomentary:
			ex.addAll(c, expandButton(c))
		default:
			ex.addAll(c, []labeledSurrogate{{comp: passThrough(c), label: MainBranch}})
		}
	}

	return ex
}

type labeledSurrogate struct {
	comp  *Component
	label string
}

func (ex *Expansion) addAll(parent *Component, surrogates []labeledSurrogate) {
	for _, s := range surrogates {
		ex.Solver = append(ex.Solver, s.comp)
		ex.Parent[s.comp.ID] = parent.ID
		ex.Label[s.comp.ID] = s.label
	}
}

// passThrough copies a non-switch component verbatim for the solver pass,
// so the solver never aliases the caller's circuit.
func passThrough(c *Component) *Component {
	return c.Clone()
}

// surrogate builds a switch_spst whose state/open-ness is fixed by the
// compound switch's selection logic. The surrogate gets a fresh random
// identity; the parent's ID is recorded in its Meta["parent"].
func surrogate(parent *Component, suffix string, a, b geometry.Point, closed bool) *Component {
	state := 0
	if closed {
		state = 1
	}
	s := New(SwitchSPST, a, b, map[string]float64{"state": float64(state)}, map[string]string{
		"parent":  parent.ID,
		"variant": suffix,
	})
	return s
}

// auxPoint reads an optional (x,y) override from props (e.g. c_x/c_y),
// falling back to an offset from a reference point. This mirrors how the
// reference implementation derives extra switch terminals that were never
// explicitly placed by the user.
func auxPoint(c *Component, xKey, yKey string, fallback geometry.Point, dy int) geometry.Point {
	x := fallback.X
	y := fallback.Y + dy
	if v, ok := c.Props[xKey]; ok {
		x = int(v)
	}
	if v, ok := c.Props[yKey]; ok {
		y = int(v)
	}
	return geometry.Pt(x, y)
}

func expandSPDT(c *Component) []labeledSurrogate {
	throw := c.PropInt("throw", 0)
	c2 := auxPoint(c, "c_x", "c_y", c.B, 2)

	if throw == 0 {
		return []labeledSurrogate{{comp: surrogate(c, "spdt->b", c.A, c.B, true), label: "t0"}}
	}
	return []labeledSurrogate{{comp: surrogate(c, "spdt->c2", c.A, c2, true), label: "t1"}}
}

func expandSP3T(c *Component) []labeledSurrogate {
	throw := c.PropInt("throw", 0)
	if throw < 0 {
		throw = 0
	}
	if throw > 2 {
		throw = 2
	}

	targets := [3]geometry.Point{
		c.B,
		auxPoint(c, "c_x", "c_y", c.B, 2),
		auxPoint(c, "d_x", "d_y", c.B, 4),
	}
	labels := [3]string{"t0", "t1", "t2"}

	return []labeledSurrogate{{
		comp:  surrogate(c, "sp3t->"+labels[throw], c.A, targets[throw], true),
		label: labels[throw],
	}}
}

func expandDPST(c *Component) []labeledSurrogate {
	state := c.PropInt("state", 1) == 1
	p2a := auxPoint(c, "c_x", "c_y", c.A, 2)
	p2b := auxPoint(c, "d_x", "d_y", c.B, 2)

	return []labeledSurrogate{
		{comp: surrogate(c, "dpst:p1", c.A, c.B, state), label: "p1"},
		{comp: surrogate(c, "dpst:p2", p2a, p2b, state), label: "p2"},
	}
}

func expandDPDT(c *Component) []labeledSurrogate {
	throw := c.PropInt("throw", 0)
	if throw < 0 {
		throw = 0
	}
	if throw > 1 {
		throw = 1
	}

	t1 := [2]geometry.Point{c.B, auxPoint(c, "c_x", "c_y", c.B, 2)}
	com2 := auxPoint(c, "d_x", "d_y", c.A, 4)
	t2 := [2]geometry.Point{
		auxPoint(c, "e_x", "e_y", geometry.Pt(com2.X+6, com2.Y), 0),
	}
	t2[1] = auxPoint(c, "f_x", "f_y", t2[0], 2)

	return []labeledSurrogate{
		{comp: surrogate(c, "dpdt:p1", c.A, t1[throw], true), label: "p1"},
		{comp: surrogate(c, "dpdt:p2", com2, t2[throw], true), label: "p2"},
	}
}

func expandButton(c *Component) []labeledSurrogate {
	pressed := c.PropInt("pressed", 0) == 1
	return []labeledSurrogate{{comp: surrogate(c, "momentary", c.A, c.B, pressed), label: "m"}}
}
