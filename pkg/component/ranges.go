package component

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseRangeList parses a meter's range list from either a JSON array
// string ("[0.1, 1, 10]") or a comma/semicolon-separated list
// ("0.1,1,10"). Non-numeric tokens are silently dropped (spec.md §4.3).
func ParseRangeList(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") {
		var raw []json.Number
		if err := json.Unmarshal([]byte(s), &raw); err == nil {
			out := make([]float64, 0, len(raw))
			for _, n := range raw {
				if f, err := n.Float64(); err == nil {
					out = append(out, f)
				}
			}
			return out
		}
	}

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// metaKeyForRanges returns which Meta key holds a meter's configured
// ranges for its kind, supporting the legacy generic "ranges" key as a
// fallback for each class-specific key.
func metaKeyForRanges(kind Kind) (specific, generic string) {
	switch kind {
	case Ammeter:
		return "ranges_I", "ranges"
	case Voltmeter:
		return "ranges_V", "ranges"
	case Galvanometer:
		return "ranges_I", "ranges"
	default:
		return "", ""
	}
}

// Ranges returns c's configured measurement ranges, or nil if c is not a
// meter or has none configured.
func (c *Component) Ranges() []float64 {
	specific, generic := metaKeyForRanges(c.Kind)
	if specific == "" {
		return nil
	}
	if v, ok := c.Meta[specific]; ok {
		return ParseRangeList(v)
	}
	if v, ok := c.Meta[generic]; ok {
		return ParseRangeList(v)
	}
	return nil
}

// RangeIndex returns c's active range index, clamped into [0, len(ranges)).
// Returns 0 if ranges is empty.
func (c *Component) RangeIndex(ranges []float64) int {
	idx := c.PropInt("range", 0)
	if idx < 0 {
		idx = 0
	}
	if len(ranges) > 0 && idx >= len(ranges) {
		idx = len(ranges) - 1
	}
	return idx
}

// FullScale returns the meter's native full-scale value at its active
// range, and whether ranges were configured at all.
func (c *Component) FullScale() (value float64, ok bool) {
	ranges := c.Ranges()
	if len(ranges) == 0 {
		return 0, false
	}
	return ranges[c.RangeIndex(ranges)], true
}
