// Package component defines the circuit's tagged component record: a
// closed enumeration of kinds, two endpoints, and a pair of property/
// metadata maps. Effective resistance, switch expansion, and meter math
// all dispatch on Kind via exhaustive switches rather than per-kind types,
// per spec.md §9 ("tagged variants over duck typing").
package component

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/circuitlab/dcsim/pkg/geometry"
)

// Kind is the closed set of component kinds spec.md §3 names.
type Kind string

const (
	Socket          Kind = "socket"
	Wire            Kind = "wire"
	Resistor        Kind = "resistor"
	Bulb            Kind = "bulb"
	Rheostat        Kind = "rheostat"
	SwitchSPST      Kind = "switch_spst"
	SwitchSPDT      Kind = "switch_spdt"
	SwitchSP3T      Kind = "switch_sp3t"
	SwitchDPST      Kind = "switch_dpst"
	SwitchDPDT      Kind = "switch_dpdt"
	ButtonMomentary Kind = "button_momentary"
	Ammeter         Kind = "ammeter"
	Voltmeter       Kind = "voltmeter"
	Galvanometer    Kind = "galvanometer"
)

// IsCompoundSwitch reports whether k must pass through switch expansion
// (spec.md §4.1) before the solver can use it.
func (k Kind) IsCompoundSwitch() bool {
	switch k {
	case SwitchSPDT, SwitchSP3T, SwitchDPST, SwitchDPDT:
		return true
	default:
		return false
	}
}

// IsMeter reports whether k is one of the metering element kinds (§4.3).
func (k Kind) IsMeter() bool {
	switch k {
	case Ammeter, Voltmeter, Galvanometer:
		return true
	default:
		return false
	}
}

// Component is the circuit's tagged record: identity and Kind are
// immutable after creation; A, B, Props, and Meta are mutable (e.g.
// rheostat clamping writes back into Props, spec.md §4.2).
type Component struct {
	ID    string
	Kind  Kind
	A, B  geometry.Point
	Props map[string]float64
	Meta  map[string]string
}

// NewID returns a new opaque component identifier: a random 32-character
// hex string, matching the reference implementation's uuid4().hex.
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// New constructs a Component with a fresh ID. props and meta may be nil;
// they are copied so the caller's maps are never aliased.
func New(kind Kind, a, b geometry.Point, props map[string]float64, meta map[string]string) *Component {
	c := &Component{
		ID:    NewID(),
		Kind:  kind,
		A:     a,
		B:     b,
		Props: make(map[string]float64, len(props)),
		Meta:  make(map[string]string, len(meta)),
	}
	for k, v := range props {
		c.Props[k] = v
	}
	for k, v := range meta {
		c.Meta[k] = v
	}
	return c
}

// Clone returns a deep copy of c, used by history snapshots and by switch
// expansion (which must never mutate the original compound switch).
func (c *Component) Clone() *Component {
	clone := &Component{
		ID:    c.ID,
		Kind:  c.Kind,
		A:     c.A,
		B:     c.B,
		Props: make(map[string]float64, len(c.Props)),
		Meta:  make(map[string]string, len(c.Meta)),
	}
	for k, v := range c.Props {
		clone.Props[k] = v
	}
	for k, v := range c.Meta {
		clone.Meta[k] = v
	}
	return clone
}

// Prop returns the named numeric property, or def if unset.
func (c *Component) Prop(name string, def float64) float64 {
	if v, ok := c.Props[name]; ok {
		return v
	}
	return def
}

// PropInt returns the named numeric property truncated to int, or def if
// unset. Used for enumerated properties like state/throw/pressed/range.
func (c *Component) PropInt(name string, def int) int {
	if v, ok := c.Props[name]; ok {
		return int(v)
	}
	return def
}

// SetProp sets a numeric property in place.
func (c *Component) SetProp(name string, value float64) {
	c.Props[name] = value
}

// DisplayName returns a short human-readable label, e.g. "resistor:3fa9".
func (c *Component) DisplayName() string {
	id := c.ID
	if len(id) > 4 {
		id = id[:4]
	}
	return fmt.Sprintf("%s:%s", c.Kind, id)
}

// Endpoints returns a 2-element slice of c's terminal coordinates, useful
// anywhere code needs to range over "both ends" generically.
func (c *Component) Endpoints() [2]geometry.Point {
	return [2]geometry.Point{c.A, c.B}
}

// MidPoint returns the round-half-to-even midpoint between A and B, used
// by DeleteAt's exact-coincidence hit test (spec.md §6).
func (c *Component) MidPoint() geometry.Point {
	return geometry.Midpoint(c.A, c.B)
}

// FloorMidPoint returns the floor-divided midpoint between A and B, used
// by FindNear's distance-ranked hit test (spec.md §6).
func (c *Component) FloorMidPoint() geometry.Point {
	return geometry.FloorMidpoint(c.A, c.B)
}
