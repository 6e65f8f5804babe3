package dimacs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/operator-framework/polypack/cmd/options"
	"github.com/operator-framework/polypack/pkg/sat"
	"github.com/operator-framework/polypack/pkg/solver"
)

func NewDimacsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dimacs",
		Short: "Works with sat problems given in dimacs format",
	}
	cmd.AddCommand(newSolveCommand())
	return cmd
}

func newSolveCommand() *cobra.Command {
	o := &options.Solver{}
	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a sat problem given in dimacs format",
		Long: `Solves a sat problem given in dimacs format. For instance:
c
c this is a comment
c header: p cnf <number of variable> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 and not 2)
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.New(options.Logger(cmd))
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if o.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, o.Timeout)
				defer cancel()
			}
			return solve(ctx, cmd.OutOrStdout(), s, args[0])
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

func solve(ctx context.Context, out io.Writer, s solver.Solver, path string) error {
	// validate before handing the file over, solver programs tend to
	// report malformed input poorly
	dimacsFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	problem, err := sat.ParseDIMACS(dimacsFile)
	dimacsFile.Close()
	if err != nil {
		return fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}

	res, err := s.Solve(ctx, path)
	if err != nil {
		return err
	}
	if res.Status != solver.Satisfiable {
		fmt.Fprintln(out, "no solution found: problem is unsatisfiable")
		return nil
	}

	fmt.Fprintln(out, "solution found:")
	values := make(map[sat.Var]bool, len(res.Assignment))
	for _, m := range res.Assignment {
		values[m.Var()] = m.IsPos()
	}
	for v := 1; v <= problem.Vars(); v++ {
		fmt.Fprintf(out, "%d = %t\n", v, values[sat.Var(v)])
	}
	return nil
}
