package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/circuitlab/dcsim/pkg/circuit"
	"github.com/circuitlab/dcsim/pkg/solve"
)

var validateCmd = &cobra.Command{
	Use:   "validate <circuit.json>",
	Args:  cobra.ExactArgs(1),
	Short: "Load and solve a circuit, reporting only pass/fail and warnings",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	out := cmd.OutOrStdout()

	cir, err := circuit.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("load circuit: %w", err)
	}

	fmt.Fprintf(out, "loaded %d component(s) from %s\n", cir.Len(), args[0])

	res := solve.Solve(cir, solve.WithLogger(log))
	if !res.OK {
		fmt.Fprintln(out, "FAIL: singular system")
		for _, w := range res.Warnings {
			fmt.Fprintln(out, "  "+w)
		}
		return fmt.Errorf("circuit is not solvable")
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(out, "warning: "+w)
	}
	fmt.Fprintln(out, "OK")
	return nil
}
