// Package geometry defines the integer grid coordinates used both to place
// components visually and to identify electrical nodes: two terminals at
// the same Point are the same node.
package geometry

import "fmt"

// Point is an integer grid coordinate. The zero value (0,0) is the
// fallback ground used when a circuit has no sockets and no components.
type Point struct {
	X, Y int
}

// Pt is a short constructor, mirroring the terseness of tuple literals in
// the reference implementation.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Less orders points lexicographically by (X, Y), used to pick a
// deterministic ground when no socket is present (spec.md §4.4).
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// ManhattanDistance returns the L¹ distance between p and q, used for
// hit-testing (spec.md §6, "find_near").
func (p Point) ManhattanDistance(q Point) int {
	return absInt(p.X-q.X) + absInt(p.Y-q.Y)
}

// Midpoint returns the round-half-to-even midpoint of p and q, matching
// the reference implementation's int(round(...)) (Python's round() ties to
// even). Used by DeleteAt's exact-coincidence hit test (spec.md §6).
func Midpoint(a, b Point) Point {
	return Point{X: divRoundEven(a.X+b.X, 2), Y: divRoundEven(a.Y+b.Y, 2)}
}

// FloorMidpoint returns the floor-divided midpoint of p and q, matching
// the reference implementation's find_near, which builds its midpoint
// candidate with "//" (floor division) rather than round(). Used by
// FindNear's hit-test, which is otherwise tolerant of off-by-one ranking
// and must not be confused with DeleteAt's exact, round()-based match.
func FloorMidpoint(a, b Point) Point {
	return Point{X: floorDiv(a.X+b.X, 2), Y: floorDiv(a.Y+b.Y, 2)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// divRoundEven divides num by den (den > 0) and rounds an exact .5
// remainder to the nearest even quotient, matching Python's round().
func divRoundEven(num, den int) int {
	q := num / den
	r := num % den
	if r < 0 {
		r += den
		q--
	}
	switch {
	case 2*r < den:
		return q
	case 2*r > den:
		return q + 1
	default:
		if q%2 == 0 {
			return q
		}
		return q + 1
	}
}

// floorDiv divides num by den (den > 0), flooring toward negative infinity
// as Python's "//" does, unlike Go's truncating "/".
func floorDiv(num, den int) int {
	q := num / den
	if num%den != 0 && (num < 0) != (den < 0) {
		q--
	}
	return q
}

// Points is a sortable slice of Point, used wherever node enumeration must
// be deterministic (spec.md §4.4: "node enumeration is sorted by
// coordinate").
type Points []Point

func (ps Points) Len() int      { return len(ps) }
func (ps Points) Swap(i, j int) { ps[i], ps[j] = ps[j], ps[i] }
func (ps Points) Less(i, j int) bool {
	return ps[i].Less(ps[j])
}
