// Package goalseek finds the value of a single scalar component property
// that drives a chosen measurement on the re-solved circuit to a target
// (spec.md §4.7). It wraps pkg/solve, running it repeatedly while
// mutating one property in place between solves.
package goalseek

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/circuitlab/dcsim/internal/consts"
	"github.com/circuitlab/dcsim/internal/logging"
	"github.com/circuitlab/dcsim/pkg/circuit"
	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
	"github.com/circuitlab/dcsim/pkg/solve"
)

// MeasureKind selects what a Measure reads off a SolveResult.
type MeasureKind string

const (
	MeasureNode MeasureKind = "node"
	MeasureComp MeasureKind = "comp"
)

// Measure describes the scalar quantity goal-seek drives to Target.
type Measure struct {
	Kind   MeasureKind
	Node   geometry.Point // used when Kind == MeasureNode
	CompID string         // used when Kind == MeasureComp
	Field  string         // one of solve.Field*, used when Kind == MeasureComp
	Branch string         // optional; selects a labeled branch when Field == FieldIab
	Abs    bool
}

// Method selects the root-finding strategy (spec.md §4.7).
type Method string

const (
	MethodAuto   Method = "auto"
	MethodBisect Method = "bisect"
	MethodSecant Method = "secant"
)

// Request is one goal-seek invocation's input.
type Request struct {
	VarCompID           string
	VarProp             string
	Target              float64
	Measure             Measure
	Lo, Hi              float64
	TolAbs, TolRel      float64
	MaxIter             int
	Method              Method
	RejectIfOvercurrent bool
}

// Sample is one (x, measured) point in a goal-seek trajectory.
type Sample struct {
	X        float64
	Measured float64
}

// Result is the outcome of a goal-seek run (spec.md §3).
type Result struct {
	OK         bool
	Value      float64
	Achieved   float64
	Target     float64
	Error      float64
	Iterations int
	Message    string
	History    []Sample
}

// Option configures a Run call.
type Option func(*config)

type config struct {
	log zerolog.Logger
}

// WithLogger attaches a logger for debug-level bracketing/convergence
// events. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.log = log }
}

// Run executes the goal-seek algorithm against a live circuit, mutating
// req.VarCompID's req.VarProp property in place between solves (spec.md
// §4.7's documented side effect). On success the property is left at the
// winning value; on failure it is restored to its pre-call value.
func Run(cir *circuit.Circuit, req Request, opts ...Option) Result {
	cfg := config{log: logging.Nop}
	for _, opt := range opts {
		opt(&cfg)
	}

	out := Result{Target: req.Target}

	comp, ok := solve.Lookup(cir, req.VarCompID)
	if !ok {
		out.Message = fmt.Sprintf("unknown variable component identifier: %s", req.VarCompID)
		return out
	}

	lo, hi := req.Lo, req.Hi
	if lo == hi {
		out.Message = "lo == hi"
		return out
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	prev := comp.Prop(req.VarProp, 0.0)
	method := req.Method
	if method == "" {
		method = MethodAuto
	}
	tolAbs := req.TolAbs
	if tolAbs <= 0 {
		tolAbs = consts.DefaultGoalSeekTolAbs
	}
	tolRel := req.TolRel
	if tolRel <= 0 {
		tolRel = consts.DefaultGoalSeekTolRel
	}
	maxIter := req.MaxIter
	if maxIter <= 0 {
		maxIter = consts.DefaultGoalSeekMaxIter
	}

	s := &seeker{
		cir:     cir,
		comp:    comp,
		req:     req,
		method:  method,
		tolAbs:  tolAbs,
		tolRel:  tolRel,
		maxIter: maxIter,
		cache:   make(map[float64]evalResult),
		log:     cfg.log,
	}

	return s.run(lo, hi, prev)
}

type evalResult struct {
	ok       bool
	err      float64
	measured float64
}

type seeker struct {
	cir     *circuit.Circuit
	comp    *component.Component
	req     Request
	method  Method
	tolAbs  float64
	tolRel  float64
	maxIter int
	cache   map[float64]evalResult
	log     zerolog.Logger
}

// eval solves the circuit with the variable property set to x, returning
// (error = measured - target, measured, ok). A failed evaluation —
// singular matrix, missing measurement, non-finite result, or overcurrent
// rejection — reports ok=false (spec.md §4.7 step 3).
func (s *seeker) eval(x float64) (errVal, measured float64, ok bool) {
	if cached, hit := s.cache[x]; hit {
		return cached.err, cached.measured, cached.ok
	}

	s.comp.SetProp(s.req.VarProp, x)
	res := solve.Solve(s.cir, solve.WithLogger(s.log))

	record := func(e, m float64, good bool) (float64, float64, bool) {
		s.cache[x] = evalResult{ok: good, err: e, measured: m}
		return e, m, good
	}

	if !res.OK {
		return record(0, 0, false)
	}
	if s.req.RejectIfOvercurrent {
		for _, flag := range res.CompFlags {
			if flag == solve.FlagSourceOvercurrent {
				return record(0, 0, false)
			}
		}
	}

	m, ok := s.measure(res)
	if !ok || math.IsNaN(m) || math.IsInf(m, 0) {
		return record(0, 0, false)
	}

	e := m - s.req.Target
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return record(0, 0, false)
	}
	return record(e, m, true)
}

func (s *seeker) measure(res solve.Result) (float64, bool) {
	meas := s.req.Measure
	switch meas.Kind {
	case MeasureNode:
		v, exists := res.NodeV[meas.Node]
		if !exists {
			return 0, false
		}
		if meas.Abs {
			v = math.Abs(v)
		}
		return v, true

	case MeasureComp:
		field := meas.Field
		if field == "" {
			field = solve.FieldIab
		}
		if meas.Branch != "" && field == solve.FieldIab {
			if v, ok := solve.BranchCurrent(res, meas.CompID, meas.Branch); ok {
				if meas.Abs {
					v = math.Abs(v)
				}
				return v, true
			}
		}
		target, ok := solve.Lookup(s.cir, meas.CompID)
		if !ok {
			return 0, false
		}
		metrics := solve.ComponentMetrics(res, target)
		v, ok := metrics.Field(field)
		if !ok {
			return 0, false
		}
		if meas.Abs {
			v = math.Abs(v)
		}
		return v, true

	default:
		return 0, false
	}
}

func (s *seeker) isDone(err, achieved float64) bool {
	tol := math.Max(s.tolAbs, s.tolRel*math.Max(1.0, math.Max(math.Abs(s.req.Target), math.Abs(achieved))))
	return math.Abs(err) <= tol
}

func (s *seeker) restore(prev float64) {
	s.comp.SetProp(s.req.VarProp, prev)
}

func (s *seeker) run(lo, hi, prev float64) Result {
	out := Result{Target: s.req.Target}

	eLo, mLo, okLo := s.eval(lo)
	eHi, mHi, okHi := s.eval(hi)

	if s.method == MethodAuto && (!okLo || !okHi) {
		mid0 := 0.5 * (lo + hi)
		eMid, mMid, okMid := s.eval(mid0)
		if okMid {
			if !okLo {
				lo, eLo, mLo, okLo = mid0, eMid, mMid, true
			} else if !okHi {
				hi, eHi, mHi, okHi = mid0, eMid, mMid, true
			}
		}
	}

	if !okLo || !okHi {
		s.restore(prev)
		out.Message = "evaluation failed at bounds"
		return out
	}

	out.History = append(out.History, Sample{X: lo, Measured: mLo}, Sample{X: hi, Measured: mHi})

	bracketed := eLo == 0 || eHi == 0 || (eLo < 0 && eHi > 0) || (eHi < 0 && eLo > 0)

	if s.method == MethodAuto && !bracketed {
		lo, hi, eLo, eHi, mLo, mHi, bracketed = s.bracket(lo, hi, eLo, eHi, mLo, mHi)
	}

	useBisect := (s.method == MethodAuto || s.method == MethodBisect) && bracketed

	a, b := lo, hi
	fa, fb := eLo, eHi
	x0, x1 := lo, hi
	y0, y1 := eLo, eHi
	m0, m1 := mLo, mHi
	bestX, bestM, bestErr := lo, mLo, eLo

	failReason := "iteration budget exhausted"

	for it := 0; it < s.maxIter; it++ {
		out.Iterations = it + 1

		if math.Abs(y0) < math.Abs(bestErr) {
			bestX, bestM, bestErr = x0, m0, y0
		}
		if math.Abs(y1) < math.Abs(bestErr) {
			bestX, bestM, bestErr = x1, m1, y1
		}

		if useBisect {
			mid := 0.5 * (a + b)
			fm, mm, okm := s.eval(mid)
			if !okm {
				failReason = "evaluation failed during bisection"
				break
			}
			out.History = append(out.History, Sample{X: mid, Measured: mm})
			if math.Abs(fm) < math.Abs(bestErr) {
				bestX, bestM, bestErr = mid, mm, fm
			}
			if s.isDone(fm, mm) {
				out.OK = true
				out.Value, out.Achieved, out.Error = mid, mm, fm
				out.Message = "ok"
				return out
			}
			switch {
			case fa == 0:
				a, fa = mid, fm
			case fb == 0:
				b, fb = mid, fm
			case (fa < 0 && fm > 0) || (fa > 0 && fm < 0):
				b, fb = mid, fm
			default:
				a, fa = mid, fm
			}
			continue
		}

		if y1-y0 == 0 {
			failReason = "secant slope is zero"
			break
		}
		x2 := x1 - y1*(x1-x0)/(y1-y0)
		if x2 < lo {
			x2 = lo
		}
		if x2 > hi {
			x2 = hi
		}
		if math.Abs(x2-x1) <= math.Max(1e-15, 1e-12*math.Max(1.0, math.Abs(x1))) {
			x2 = 0.5 * (x0 + x1)
		}
		y2, m2, ok2 := s.eval(x2)
		if !ok2 {
			failReason = "evaluation failed during secant"
			break
		}
		out.History = append(out.History, Sample{X: x2, Measured: m2})
		if math.Abs(y2) < math.Abs(bestErr) {
			bestX, bestM, bestErr = x2, m2, y2
		}
		if s.isDone(y2, m2) {
			out.OK = true
			out.Value, out.Achieved, out.Error = x2, m2, y2
			out.Message = "ok"
			return out
		}
		x0, y0, m0 = x1, y1, m1
		x1, y1, m1 = x2, y2, m2
	}

	s.restore(prev)
	out.OK = false
	out.Value, out.Achieved, out.Error = bestX, bestM, bestErr
	if s.method == MethodAuto && !bracketed {
		out.Message = "failed: not bracketed"
	} else {
		out.Message = failReason
	}
	return out
}

// bracket runs spec.md §4.7 step 6's expansion phase: up to
// consts.MaxBracketExpansions widenings, multiplicative for a positive
// resistance-like property, linear (doubled half-width) otherwise. The
// exact 2w linear factor follows the reference implementation
// (SPEC_FULL.md §12) so convergence on documented scenarios matches it.
func (s *seeker) bracket(lo, hi, eLo, eHi, mLo, mHi float64) (newLo, newHi, newELo, newEHi, newMLo, newMHi float64, bracketed bool) {
	lo0, hi0 := lo, hi
	eLo0, eHi0 := eLo, eHi
	mLo0, mHi0 := mLo, mHi
	lo2, hi2 := lo0, hi0

	isBracketed := func(e1, e2 float64) bool {
		return e1 == 0 || e2 == 0 || (e1 < 0 && e2 > 0) || (e2 < 0 && e1 > 0)
	}

	for i := 0; i < consts.MaxBracketExpansions; i++ {
		if isBracketed(eLo0, eHi0) {
			s.log.Debug().Int("expansions", i).Msg("goal-seek bracket found")
			return lo2, hi2, eLo0, eHi0, mLo0, mHi0, true
		}

		if lo2 > 0 && hi2 > 0 && strings.ToUpper(s.req.VarProp) == "R" {
			lo2 = math.Max(lo2/10.0, 1e-12)
			hi2 = hi2 * 10.0
		} else {
			c := 0.5 * (lo2 + hi2)
			w := hi2 - lo2
			if math.Abs(w) < 1e-15 {
				w = math.Max(math.Abs(c), 1.0)
			}
			lo2 = c - 2.0*w
			hi2 = c + 2.0*w
		}

		if eT, mT, ok := s.eval(lo2); ok {
			eLo0, mLo0 = eT, mT
		}
		if eT, mT, ok := s.eval(hi2); ok {
			eHi0, mHi0 = eT, mT
		}
	}

	if isBracketed(eLo0, eHi0) {
		return lo2, hi2, eLo0, eHi0, mLo0, mHi0, true
	}
	return lo0, hi0, eLo, eHi, mLo, mHi, false
}
