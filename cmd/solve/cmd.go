package solve

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/operator-framework/polypack/cmd/options"
	"github.com/operator-framework/polypack/pkg/solver"
	"github.com/operator-framework/polypack/pkg/tiling"
)

type solveOptions struct {
	catalog       options.Catalog
	solver        options.Solver
	keepCNF       string
	noUniqueness  bool
	maxConcurrent int
}

func NewSolveCommand() *cobra.Command {
	o := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Packs the tiles of a catalog into a grid",
		Long: `Packs every tile of a catalog exactly once into a rectangular grid
by encoding the problem as a SAT formula and handing it to a solver.

Without a catalog the twelve pentominoes are packed into a 10x6 grid.
The in-process solvers handle a few pentominoes in seconds but do not
finish the full boards in reasonable time; use an external solver for
those:

  polypack solve --tiles L,V,P --grid 5x3
  polypack solve --solver exec --solver-path ./zchaff \
    --grid 10x6 --grid 12x5 --grid 15x4 --grid 20x3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	o.catalog.AddFlags(cmd.Flags())
	o.solver.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&o.keepCNF, "keep-cnf", "", "write the formula to this path and keep it")
	cmd.Flags().BoolVar(&o.noUniqueness, "no-uniqueness", false, "omit the clauses placing each tile at most once")
	cmd.Flags().IntVar(&o.maxConcurrent, "max-concurrent", 4, "number of grids solved at the same time")
	return cmd
}

func (o *solveOptions) run(cmd *cobra.Command) error {
	configs, err := o.catalog.Configs()
	if err != nil {
		return err
	}
	log := options.Logger(cmd)
	s, err := o.solver.New(log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.solver.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.solver.Timeout)
		defer cancel()
	}

	preamble := options.Preamble(options.Args(), time.Now())
	solutions := make([]*tiling.Solution, len(configs))
	eg, ctx := errgroup.WithContext(ctx)
	if o.maxConcurrent > 0 {
		eg.SetLimit(o.maxConcurrent)
	}
	for i, cfg := range configs {
		i, cfg := i, cfg
		eg.Go(func() error {
			grid := options.GridName(cfg)
			opts := []tiling.Option{
				tiling.WithLogger(log.WithValues("grid", grid)),
				tiling.WithPreamble(preamble...),
			}
			if o.noUniqueness {
				opts = append(opts, tiling.WithoutPlacementUniqueness())
			}
			if path := options.KeepPath(o.keepCNF, cfg, len(configs) > 1); path != "" {
				opts = append(opts, tiling.KeepFormula(path))
			}
			sol, err := tiling.Solve(ctx, cfg, s, opts...)
			if err != nil {
				return fmt.Errorf("grid %s: %w", grid, err)
			}
			solutions[i] = sol
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, sol := range solutions {
		if len(configs) > 1 {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", options.GridName(configs[i]))
		}
		printSolution(cmd.OutOrStdout(), sol)
	}
	return nil
}

func printSolution(w io.Writer, sol *tiling.Solution) {
	if sol.Status != solver.Satisfiable {
		fmt.Fprintln(w, "no solution (unsatisfiable)")
		return
	}
	fmt.Fprint(w, sol.Grid.String())
}
