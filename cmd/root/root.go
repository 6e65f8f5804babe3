package root

import (
	"github.com/spf13/cobra"

	"github.com/operator-framework/polypack/cmd/dimacs"
	"github.com/operator-framework/polypack/cmd/encode"
	"github.com/operator-framework/polypack/cmd/options"
	"github.com/operator-framework/polypack/cmd/shapes"
	"github.com/operator-framework/polypack/cmd/solve"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polypack",
		Short: "Polypack packs polyominoes into grids with a SAT solver",
		Long: `Polypack encodes polyomino packing puzzles, such as fitting the twelve
pentominoes into a 10x6 box, as boolean satisfiability problems and
solves them with an in-process or external SAT solver.`,
		SilenceUsage: true,
	}
	options.AddVerbosityFlag(rootCmd.PersistentFlags())

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand())
	rootCmd.AddCommand(encode.NewEncodeCommand())
	rootCmd.AddCommand(shapes.NewShapesCommand())
	rootCmd.AddCommand(dimacs.NewDimacsCommand())

	return rootCmd
}
