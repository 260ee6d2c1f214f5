package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/circuitlab/dcsim/pkg/circuit"
	"github.com/circuitlab/dcsim/pkg/format"
	"github.com/circuitlab/dcsim/pkg/geometry"
	"github.com/circuitlab/dcsim/pkg/goalseek"
)

var (
	gsVarComp      string
	gsVarProp      string
	gsTarget       float64
	gsLo, gsHi     float64
	gsMeasureKind  string
	gsMeasureNode  string
	gsMeasureComp  string
	gsField        string
	gsBranch       string
	gsAbs          bool
	gsTolAbs       float64
	gsTolRel       float64
	gsMaxIter      int
	gsMethod       string
	gsRejectOver   bool
)

var goalseekCmd = &cobra.Command{
	Use:   "goalseek <circuit.json>",
	Args:  cobra.ExactArgs(1),
	Short: "Search for a component property value that drives a measurement to a target",
	RunE:  runGoalseek,
}

func init() {
	f := goalseekCmd.Flags()
	f.StringVar(&gsVarComp, "var-comp", "", "identifier of the component whose property is varied (required)")
	f.StringVar(&gsVarProp, "var-prop", "", "name of the property to vary (required)")
	f.Float64Var(&gsTarget, "target", 0, "target value for the measurement")
	f.Float64Var(&gsLo, "lo", 0, "lower search bound (inclusive)")
	f.Float64Var(&gsHi, "hi", 0, "upper search bound (inclusive)")
	f.StringVar(&gsMeasureKind, "measure-kind", "comp", "measurement kind: node or comp")
	f.StringVar(&gsMeasureNode, "measure-node", "", "node coordinate \"x,y\" (measure-kind=node)")
	f.StringVar(&gsMeasureComp, "measure-comp", "", "identifier of the measured component (measure-kind=comp, defaults to var-comp)")
	f.StringVar(&gsField, "measure-field", "Iab", "measured field: Iab, Vab, Va, Vb, P, or R (measure-kind=comp)")
	f.StringVar(&gsBranch, "measure-branch", "", "labeled branch to read Iab from, for expanded switches")
	f.BoolVar(&gsAbs, "measure-abs", false, "take the absolute value of the measurement")
	f.Float64Var(&gsTolAbs, "tol-abs", 0, "absolute convergence tolerance (0 = default)")
	f.Float64Var(&gsTolRel, "tol-rel", 0, "relative convergence tolerance (0 = default)")
	f.IntVar(&gsMaxIter, "max-iter", 0, "maximum iterations (0 = default)")
	f.StringVar(&gsMethod, "method", "auto", "root-finding method: auto, bisect, or secant")
	f.BoolVar(&gsRejectOver, "reject-overcurrent", false, "reject evaluations where any source exceeds its overcurrent limit")

	_ = goalseekCmd.MarkFlagRequired("var-comp")
	_ = goalseekCmd.MarkFlagRequired("var-prop")
}

func runGoalseek(cmd *cobra.Command, args []string) error {
	log := newLogger()
	out := cmd.OutOrStdout()

	cir, err := circuit.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("load circuit: %w", err)
	}

	measure, err := buildMeasure()
	if err != nil {
		return err
	}

	req := goalseek.Request{
		VarCompID:           gsVarComp,
		VarProp:             gsVarProp,
		Target:              gsTarget,
		Measure:             measure,
		Lo:                  gsLo,
		Hi:                  gsHi,
		TolAbs:              gsTolAbs,
		TolRel:              gsTolRel,
		MaxIter:             gsMaxIter,
		Method:              goalseek.Method(gsMethod),
		RejectIfOvercurrent: gsRejectOver,
	}

	res := goalseek.Run(cir, req, goalseek.WithLogger(log))

	fmt.Fprintf(out, "iterations: %d\n", res.Iterations)
	fmt.Fprintf(out, "message: %s\n", res.Message)
	if res.OK {
		fmt.Fprintf(out, "OK: %s = %s (achieved %s, target %s, error %s)\n",
			gsVarProp, format.SI(res.Value, ""), format.SI(res.Achieved, ""),
			format.SI(res.Target, ""), format.Scientific(res.Error, ""))
		return nil
	}

	fmt.Fprintf(out, "FAIL: best %s = %s (achieved %s, error %s); property restored\n",
		gsVarProp, format.SI(res.Value, ""), format.SI(res.Achieved, ""), format.Scientific(res.Error, ""))
	return fmt.Errorf("goal-seek did not converge")
}

func buildMeasure() (goalseek.Measure, error) {
	m := goalseek.Measure{Abs: gsAbs, Field: gsField, Branch: gsBranch}

	switch gsMeasureKind {
	case "node":
		m.Kind = goalseek.MeasureNode
		p, err := parsePoint(gsMeasureNode)
		if err != nil {
			return m, fmt.Errorf("--measure-node: %w", err)
		}
		m.Node = p
	case "comp":
		m.Kind = goalseek.MeasureComp
		m.CompID = gsMeasureComp
		if m.CompID == "" {
			m.CompID = gsVarComp
		}
	default:
		return m, fmt.Errorf("--measure-kind must be \"node\" or \"comp\", got %q", gsMeasureKind)
	}

	return m, nil
}

func parsePoint(s string) (geometry.Point, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("expected \"x,y\", got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid y: %w", err)
	}
	return geometry.Pt(x, y), nil
}
