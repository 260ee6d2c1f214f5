package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/circuitlab/dcsim/pkg/circuit"
	"github.com/circuitlab/dcsim/pkg/format"
	"github.com/circuitlab/dcsim/pkg/geometry"
	"github.com/circuitlab/dcsim/pkg/solve"
)

var solveCmd = &cobra.Command{
	Use:   "solve <circuit.json>",
	Args:  cobra.ExactArgs(1),
	Short: "Solve a persisted circuit and print node voltages and component currents",
	RunE:  runSolve,
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cir, err := circuit.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("load circuit: %w", err)
	}

	res := solve.Solve(cir, solve.WithLogger(log))
	if !res.OK {
		fmt.Fprintln(cmd.OutOrStdout(), "solve failed: singular system")
		for _, w := range res.Warnings {
			fmt.Fprintln(cmd.OutOrStdout(), "  "+w)
		}
		return fmt.Errorf("circuit matrix is singular")
	}

	nodes := make(geometry.Points, 0, len(res.NodeV))
	for p := range res.NodeV {
		nodes = append(nodes, p)
	}
	sort.Sort(nodes)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "node voltages:")
	for _, p := range nodes {
		fmt.Fprintf(out, "  %s = %s\n", p.String(), format.SI(res.NodeV[p], "V"))
	}

	fmt.Fprintln(out, "component currents:")
	for _, c := range cir.Components() {
		line := fmt.Sprintf("  %s = %s", c.DisplayName(), format.SI(res.CompI[c.ID], "A"))
		if flag, flagged := res.CompFlags[c.ID]; flagged {
			line += fmt.Sprintf(" [%s]", flag)
		}
		fmt.Fprintln(out, line)
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(out, "warning: "+w)
	}

	return nil
}
