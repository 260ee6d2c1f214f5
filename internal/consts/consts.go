// Package consts holds the numeric tunables shared across the solver,
// switch expansion, and goal-seek packages so they stay consistent without
// importing each other.
package consts

const (
	// RNearShort is the conductance-domain stand-in for an ideal short:
	// wires, closed switches, and closed momentary buttons resolve to this
	// resistance rather than exactly zero, so 1/R stays finite.
	RNearShort = 1e-9

	// ROpenNominal is returned by callers that need a finite resistance for
	// display purposes even when a component is logically open (e.g. a
	// meter with no configured ranges and no class default).
	ROpenNominal = 1e12

	// RMin is the floor applied to resistor/bulb effective resistance to
	// keep conductances bounded.
	RMin = 1e-6

	// PivotTolerance is the minimum absolute pivot magnitude the dense
	// solver accepts before declaring the system singular.
	PivotTolerance = 1e-12

	// QuietLoopThreshold is the source-current magnitude below which every
	// source is considered to be delivering no current (open loop).
	QuietLoopThreshold = 1e-6

	// DefaultIwarn is the source overcurrent threshold used when a socket
	// does not set its own Iwarn property.
	DefaultIwarn = 5.0

	// DefaultHistoryCapacity bounds the undo stack length.
	DefaultHistoryCapacity = 200

	// DefaultAmmeterRin, DefaultVoltmeterRin, DefaultGalvanometerRcoil are
	// the per-class resistance fallbacks used when a meter has no
	// configured ranges.
	DefaultAmmeterRin        = 0.05
	DefaultVoltmeterRin      = 1e6
	DefaultGalvanometerRcoil = 50.0
	DefaultGalvanometerIfs   = 50e-6
	DefaultBurdenVoltage     = 0.05
	DefaultOhmPerVolt        = 1e4

	// OverloadFactor is the multiplier on full-scale at which a meter
	// reading is flagged as overloaded (display-only, not a solve failure).
	OverloadFactor = 1.02

	// DefaultGoalSeekTolAbs, DefaultGoalSeekTolRel, DefaultGoalSeekMaxIter
	// are the goal-seek convergence defaults from spec.md §4.7.
	DefaultGoalSeekTolAbs  = 1e-9
	DefaultGoalSeekTolRel  = 1e-6
	DefaultGoalSeekMaxIter = 60

	// MaxBracketExpansions bounds the bracketing phase (spec.md §4.7 step 6).
	MaxBracketExpansions = 12

	// FormatFloor is the magnitude below which the scalar formatters render
	// "~0" rather than a misleadingly precise small number.
	FormatFloor = 1e-9

	// FormatCeiling is the magnitude at or above which the scalar formatters
	// render the overflow symbol "∞" rather than a large number.
	FormatCeiling = 1e15
)
