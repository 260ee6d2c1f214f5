// Package mna assembles and solves the Modified Nodal Analysis linear
// system for a DC circuit (spec.md §4.4). Problem sizes are small (tens
// of nodes), so — per spec.md §1's explicit non-goal of sparse/iterative
// solvers — the system is a dense, array-backed matrix solved by Gaussian
// elimination with partial pivoting.
package mna

import (
	"math"

	"github.com/circuitlab/dcsim/internal/consts"
)

// Matrix is a dense N×N linear system Ax = b, built by accumulating
// stamps (AddElement/AddRHS) the way the teacher's sparse-backed
// CircuitMatrix accumulates stamps, then solved in place.
type Matrix struct {
	n    int
	a    [][]float64
	b    []float64
	x    []float64
	sing bool
}

// NewMatrix returns an N×N system with all entries zeroed.
func NewMatrix(n int) *Matrix {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	return &Matrix{n: n, a: rows, b: make([]float64, n)}
}

// Size returns N.
func (m *Matrix) Size() int { return m.n }

// AddElement accumulates value into A[i][j]. Indices outside [0,n) are
// silently ignored, matching how ground-node stamps (index -1) are
// omitted by callers rather than bounds-checked here.
func (m *Matrix) AddElement(i, j int, value float64) {
	if i < 0 || j < 0 || i >= m.n || j >= m.n {
		return
	}
	m.a[i][j] += value
}

// AddRHS accumulates value into b[i].
func (m *Matrix) AddRHS(i int, value float64) {
	if i < 0 || i >= m.n {
		return
	}
	m.b[i] += value
}

// Solve performs Gaussian elimination with partial pivoting on a working
// copy of A|b. Reports singular=true (and leaves Solution() as all
// zeros) if any pivot falls below consts.PivotTolerance.
func (m *Matrix) Solve() (singular bool) {
	if m.n == 0 {
		m.x = nil
		return false
	}

	n := m.n
	a := make([][]float64, n)
	for i := range a {
		a[i] = append([]float64(nil), m.a[i]...)
	}
	x := append([]float64(nil), m.b...)

	for col := 0; col < n; col++ {
		pivotRow := col
		best := math.Abs(a[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(a[r][col]); v > best {
				best = v
				pivotRow = r
			}
		}
		if best < consts.PivotTolerance {
			m.sing = true
			m.x = make([]float64, n)
			return true
		}
		if pivotRow != col {
			a[col], a[pivotRow] = a[pivotRow], a[col]
			x[col], x[pivotRow] = x[pivotRow], x[col]
		}

		inv := 1.0 / a[col][col]
		for c := col; c < n; c++ {
			a[col][c] *= inv
		}
		x[col] *= inv

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := a[r][col]
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			x[r] -= factor * x[col]
		}
	}

	m.sing = false
	m.x = x
	return false
}

// Solution returns the solved vector after Solve. Empty systems solve to
// an empty (not nil-panicking) slice.
func (m *Matrix) Solution() []float64 {
	if m.x == nil {
		return []float64{}
	}
	return m.x
}

// Singular reports whether the last Solve call detected a singular
// system.
func (m *Matrix) Singular() bool { return m.sing }
