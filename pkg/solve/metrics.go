package solve

import (
	"github.com/circuitlab/dcsim/pkg/circuit"
	"github.com/circuitlab/dcsim/pkg/component"
)

// Metrics bundles the per-component values a caller might want to read
// off a Result: terminal voltages, current, power, and (if defined)
// effective resistance.
type Metrics struct {
	Va, Vb, Vab float64
	Iab         float64
	P           float64
	R           float64
	HasR        bool
}

// ComponentMetrics computes Metrics for comp against res. comp must
// belong to the circuit res was computed from.
func ComponentMetrics(res Result, comp *component.Component) Metrics {
	va := res.NodeV[comp.A]
	vb := res.NodeV[comp.B]
	iab := res.CompI[comp.ID]

	m := Metrics{
		Va:  va,
		Vb:  vb,
		Vab: va - vb,
		Iab: iab,
		P:   (va - vb) * iab,
	}

	r := component.EffectiveResistance(comp)
	if !r.Open {
		m.R = r.Ohms
		m.HasR = true
	}
	return m
}

// Field names ComponentMetrics/goal-seek measurements can select, per
// spec.md §4.7.
const (
	FieldIab = "Iab"
	FieldVab = "Vab"
	FieldVa  = "Va"
	FieldVb  = "Vb"
	FieldP   = "P"
	FieldR   = "R"
)

// Field reads the named metric off m. ok is false for an unrecognized
// field, or for R when the component has no defined resistance (an open
// branch).
func (m Metrics) Field(name string) (value float64, ok bool) {
	switch name {
	case FieldIab:
		return m.Iab, true
	case FieldVab:
		return m.Vab, true
	case FieldVa:
		return m.Va, true
	case FieldVb:
		return m.Vb, true
	case FieldP:
		return m.P, true
	case FieldR:
		return m.R, m.HasR
	default:
		return 0, false
	}
}

// BranchCurrent returns a specific labeled branch current for comp (used
// when a goal-seek measurement names a branch explicitly, spec.md §4.7).
func BranchCurrent(res Result, compID, branch string) (value float64, ok bool) {
	branches, exists := res.CompBranchI[compID]
	if !exists {
		return 0, false
	}
	v, ok := branches[branch]
	return v, ok
}

// Lookup is a convenience the CLI and goal-seek use to resolve a
// component identifier against a live circuit, reporting a miss as
// ok=false (with a nil component).
func Lookup(cir *circuit.Circuit, id string) (*component.Component, bool) {
	c := cir.Get(id)
	return c, c != nil
}
