// Package solve runs the full DC solve pipeline (spec.md §2, §4.5):
// switch expansion, MNA assembly and linear solve, then per-component
// post-processing into a SolveResult.
package solve

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/circuitlab/dcsim/internal/consts"
	"github.com/circuitlab/dcsim/internal/logging"
	"github.com/circuitlab/dcsim/pkg/circuit"
	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
	"github.com/circuitlab/dcsim/pkg/mna"
)

// Flag is a per-component post-solve status (spec.md §3).
type Flag string

const (
	FlagOpen              Flag = "open"
	FlagOvercurrent       Flag = "overcurrent"
	FlagSourceOvercurrent Flag = "source_overcurrent"
)

// Result is the outcome of one solve pass (spec.md §3).
type Result struct {
	OK          bool
	Singular    bool
	NodeV       map[geometry.Point]float64
	CompI       map[string]float64
	CompBranchI map[string]map[string]float64
	CompFlags   map[string]Flag
	Warnings    []string
}

// Option configures a Solve call.
type Option func(*config)

type config struct {
	log zerolog.Logger
}

// WithLogger attaches a logger for debug-level solve events. Defaults to
// a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.log = log }
}

func newConfig(opts []Option) config {
	cfg := config{log: logging.Nop}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Solve runs the full pipeline on cir and returns the result. cir is read
// only — Solve never mutates the caller's circuit (rheostat clamping, if
// any, happens on the expanded copy).
func Solve(cir *circuit.Circuit, opts ...Option) Result {
	cfg := newConfig(opts)
	comps := cir.Components()

	expansion := component.Expand(comps)
	sys := mna.Assemble(expansion.Solver)
	cfg.log.Debug().Int("nodes", len(sys.NodeIndex)).Int("sockets", len(sys.Sockets)).
		Str("ground", sys.Ground.String()).Msg("assembled MNA system")

	singular := sys.Matrix.Solve()
	if singular {
		cfg.log.Debug().Msg("singular MNA matrix")
		return Result{
			OK:       false,
			Singular: true,
			Warnings: []string{"circuit matrix is singular: likely a complete open, a missing reference ground, or an ideal short/conflicting voltage source"},
		}
	}

	solution := sys.Matrix.Solution()
	return postProcess(comps, expansion, sys, solution, cfg)
}

func postProcess(comps []*component.Component, expansion component.Expansion, sys *mna.System, solution []float64, cfg config) Result {
	nodeV := make(map[geometry.Point]float64, len(sys.NodeIndex)+1)
	nodeV[sys.Ground] = 0
	for p := range sys.NodeIndex {
		nodeV[p] = sys.NodeVoltage(solution, p)
	}

	solverCompI := solverCurrents(expansion.Solver, sys, solution)

	compBranchI := make(map[string]map[string]float64)
	compFlags := make(map[string]Flag)
	for _, sc := range expansion.Solver {
		parent := expansion.Parent[sc.ID]
		label := expansion.Label[sc.ID]
		branches := compBranchI[parent]
		if branches == nil {
			branches = make(map[string]float64)
			compBranchI[parent] = branches
		}
		branches[label] = solverCompI[sc.ID]

		if sc.Kind != component.Socket && component.EffectiveResistance(sc).Open {
			compFlags[parent] = FlagOpen
		}
	}

	compI := aggregateCurrents(comps, solverCompI, compBranchI)

	var sockets []*component.Component
	for _, oc := range comps {
		if oc.Kind == component.Socket {
			sockets = append(sockets, oc)
		}
	}

	var warnings []string
	maxIwarn := 0.0
	anySourceOver := false
	for _, s := range sockets {
		iwarn := s.Prop("Iwarn", consts.DefaultIwarn)
		if iwarn > maxIwarn {
			maxIwarn = iwarn
		}
		i := compI[s.ID]
		if math.Abs(i) > iwarn {
			compFlags[s.ID] = FlagSourceOvercurrent
			anySourceOver = true
			warnings = append(warnings, fmt.Sprintf("source overcurrent: %s delivered |I|=%.3gA (limit %.3gA)", s.DisplayName(), math.Abs(i), iwarn))
		}
	}

	if anySourceOver {
		for _, oc := range comps {
			if oc.Kind == component.Socket {
				continue
			}
			if _, flagged := compFlags[oc.ID]; flagged {
				continue
			}
			if math.Abs(compI[oc.ID]) > maxIwarn {
				compFlags[oc.ID] = FlagOvercurrent
			}
		}
	}

	if len(sockets) > 0 {
		allQuiet := true
		for _, s := range sockets {
			if math.Abs(compI[s.ID]) >= consts.QuietLoopThreshold {
				allQuiet = false
				break
			}
		}
		if allQuiet {
			warnings = append(warnings, "likely open loop: all sources deliver negligible current")
		}
	}

	cfg.log.Debug().Int("warnings", len(warnings)).Int("flags", len(compFlags)).Msg("solve post-processing complete")

	return Result{
		OK:          true,
		NodeV:       nodeV,
		CompI:       compI,
		CompBranchI: compBranchI,
		CompFlags:   compFlags,
		Warnings:    warnings,
	}
}

func solverCurrents(solver []*component.Component, sys *mna.System, solution []float64) map[string]float64 {
	out := make(map[string]float64, len(solver))
	socketIdx := 0
	for _, c := range solver {
		if c.Kind == component.Socket {
			out[c.ID] = sys.SocketCurrent(solution, socketIdx)
			socketIdx++
			continue
		}
		r := component.EffectiveResistance(c)
		if r.Open {
			out[c.ID] = 0
			continue
		}
		va := sys.NodeVoltage(solution, c.A)
		vb := sys.NodeVoltage(solution, c.B)
		out[c.ID] = (va - vb) / r.Ohms
	}
	return out
}

// aggregateCurrents computes each original component's headline current
// by picking the "main" branch if present, else the alphabetically first
// label (spec.md §4.5 and §9's documented arbitrary-but-deterministic
// tie-break).
func aggregateCurrents(comps []*component.Component, solverCompI map[string]float64, compBranchI map[string]map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(comps))
	for _, oc := range comps {
		if oc.Kind == component.Socket {
			out[oc.ID] = solverCompI[oc.ID]
			continue
		}
		branches := compBranchI[oc.ID]
		if len(branches) == 0 {
			out[oc.ID] = solverCompI[oc.ID]
			continue
		}
		if v, ok := branches[component.MainBranch]; ok {
			out[oc.ID] = v
			continue
		}
		labels := make([]string, 0, len(branches))
		for l := range branches {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		out[oc.ID] = branches[labels[0]]
	}
	return out
}
