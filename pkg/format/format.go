// Package format renders scalar measurements for display: an SI-prefixed
// form and a scientific-notation form, both guarding against misleading
// output at the extremes (spec.md §6). Grounded on the teacher's
// pkg/util FormatValueFactor band-switch, narrowed to the four prefixes
// the specification names and extended with explicit floor/overflow
// markers instead of falling through to a fifth and sixth prefix.
package format

import (
	"fmt"
	"math"

	"github.com/circuitlab/dcsim/internal/consts"
)

// SI formats value in unit using the kilo/base/milli/micro bands. Values
// of magnitude below consts.FormatFloor render as "~0"; at or above
// consts.FormatCeiling (or truly infinite) render as "∞"; between the top
// of the kilo band and the ceiling render with a ">" marker rather than
// inventing a mega/giga prefix the rest of the system never uses.
func SI(value float64, unit string) string {
	if math.IsNaN(value) {
		return fmt.Sprintf("NaN %s", unit)
	}

	sign := ""
	if math.Signbit(value) {
		sign = "-"
	}
	av := math.Abs(value)

	switch {
	case av == 0:
		return fmt.Sprintf("0.000 %s", unit)
	case math.IsInf(value, 0) || av >= consts.FormatCeiling:
		return fmt.Sprintf("%s∞ %s", sign, unit)
	case av < consts.FormatFloor:
		return fmt.Sprintf("%s~0 %s", sign, unit)
	case av >= 1e6:
		return fmt.Sprintf("%s>%.3f k%s", sign, av/1e3, unit)
	case av >= 1e3:
		return fmt.Sprintf("%.3f k%s", value/1e3, unit)
	case av >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case av >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	default:
		return fmt.Sprintf("%.3f µ%s", value*1e6, unit)
	}
}

// Scientific formats value in unit as signed scientific notation, with
// the same floor/overflow guards as SI. Unlike SI it never needs a ">"
// pin: scientific notation represents any finite magnitude natively.
func Scientific(value float64, unit string) string {
	if math.IsNaN(value) {
		return fmt.Sprintf("NaN %s", unit)
	}

	sign := ""
	if math.Signbit(value) {
		sign = "-"
	}
	av := math.Abs(value)

	switch {
	case av == 0:
		return fmt.Sprintf("0.000e+00 %s", unit)
	case math.IsInf(value, 0) || av >= consts.FormatCeiling:
		return fmt.Sprintf("%s∞ %s", sign, unit)
	case av < consts.FormatFloor:
		return fmt.Sprintf("%s~0 %s", sign, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}
