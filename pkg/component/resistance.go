package component

import (
	"math"

	"github.com/circuitlab/dcsim/internal/consts"
)

// Resistance is the result of resolving a component's effective
// resistance for MNA stamping (spec.md §4.2): either a finite Ohms value,
// or Open (the component contributes no conductance and is omitted from
// the matrix).
type Resistance struct {
	Ohms float64
	Open bool
}

// Closed wraps a finite resistance.
func Closed(ohms float64) Resistance { return Resistance{Ohms: ohms} }

// OpenBranch is the sentinel "no conductance" result.
var OpenBranch = Resistance{Open: true}

// EffectiveResistance resolves c's resistance for the solver. Unknown
// kinds resolve to Open (spec.md §4.2). Rheostat resolution has the
// documented side effect of clamping and writing back R onto c.
func EffectiveResistance(c *Component) Resistance {
	switch c.Kind {
	case Wire:
		return Closed(consts.RNearShort)

	case Resistor:
		return Closed(math.Max(c.Prop("R", 100.0), consts.RMin))

	case Bulb:
		return Closed(BulbResistance(c.Prop("Vr", 6.0), c.Prop("Wr", 3.0)))

	case Rheostat:
		r := c.Prop("R", 100.0)
		rmin := c.Prop("Rmin", 0.0)
		rmax := c.Prop("Rmax", math.Max(r, 100.0))
		if rmax < rmin {
			rmin, rmax = rmax, rmin
		}
		r = math.Max(math.Min(r, rmax), rmin)
		c.SetProp("R", r)
		return Closed(math.Max(r, consts.RMin))

	case SwitchSPST:
		if c.PropInt("state", 1) == 1 {
			return Closed(consts.RNearShort)
		}
		return OpenBranch

	case ButtonMomentary:
		if c.PropInt("pressed", 0) == 1 {
			return Closed(consts.RNearShort)
		}
		return OpenBranch

	case Ammeter, Voltmeter, Galvanometer:
		return Closed(MeterResistance(c))

	default:
		return OpenBranch
	}
}

// BulbResistance derives a bulb's linear resistance from its rated
// voltage and wattage (spec.md §3): max(Vr²/Wr, 1e-6), with a degenerate
// guard returning consts.ROpenNominal for Wr ≤ 1e-12.
func BulbResistance(vr, wr float64) float64 {
	if wr <= 1e-12 {
		return consts.ROpenNominal
	}
	return math.Max((vr*vr)/wr, consts.RMin)
}

// MeterResistance resolves the effective resistance of an ammeter,
// voltmeter, or galvanometer per spec.md §4.3.
func MeterResistance(c *Component) float64 {
	fs, hasRanges := c.FullScale()

	switch c.Kind {
	case Ammeter:
		if !hasRanges {
			return math.Max(c.Prop("Rin", consts.DefaultAmmeterRin), consts.RNearShort)
		}
		burden := c.Prop("burden_V", consts.DefaultBurdenVoltage)
		return math.Max(burden/math.Max(math.Abs(fs), 1e-15), consts.RNearShort)

	case Voltmeter:
		if !hasRanges {
			return math.Max(c.Prop("Rin", consts.DefaultVoltmeterRin), consts.RNearShort)
		}
		ohmPerVolt := c.Prop("ohm_per_V", consts.DefaultOhmPerVolt)
		return math.Max(ohmPerVolt*math.Abs(fs), consts.RNearShort)

	case Galvanometer:
		rcoil := c.Prop("Rcoil", consts.DefaultGalvanometerRcoil)
		if !hasRanges {
			return math.Max(rcoil, consts.RNearShort)
		}
		ifs := c.Prop("Ifs", consts.DefaultGalvanometerIfs)
		if math.Abs(ifs) < 1e-15 {
			return math.Max(rcoil, consts.RNearShort)
		}
		ratio := math.Abs(fs) / math.Abs(ifs)
		if ratio <= 1.0 {
			return math.Max(rcoil, consts.RNearShort)
		}
		rs := math.Max(rcoil/(ratio-1.0), consts.RNearShort)
		return math.Max(1.0/(1.0/rcoil+1.0/rs), consts.RNearShort)

	default:
		return consts.ROpenNominal
	}
}

// NativeFullScale returns the value a meter's overload display check
// compares its reading against: the configured full-scale if ranges are
// set, else the galvanometer's Ifs, else "unset".
func NativeFullScale(c *Component) (value float64, ok bool) {
	if fs, hasRanges := c.FullScale(); hasRanges {
		return fs, true
	}
	if c.Kind == Galvanometer {
		return c.Prop("Ifs", consts.DefaultGalvanometerIfs), true
	}
	return 0, false
}

// IsOverloaded reports whether a measured value exceeds the meter's
// full-scale by more than consts.OverloadFactor (spec.md §4.3: "OL" is a
// display property computed post-solve, never a solve failure).
func IsOverloaded(c *Component, measured float64) bool {
	fs, ok := NativeFullScale(c)
	if !ok {
		return false
	}
	return math.Abs(measured) > consts.OverloadFactor*math.Abs(fs)
}
