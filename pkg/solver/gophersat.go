package solver

import (
	"context"
	"fmt"
	"os"

	gsolver "github.com/crillab/gophersat/solver"
	"github.com/go-logr/logr"

	"github.com/operator-framework/polypack/pkg/sat"
)

// Gophersat solves formulas in-process with
// github.com/crillab/gophersat. gophersat cannot be interrupted: when
// ctx is done Solve returns immediately, but the search keeps running
// in the background until it terminates.
type Gophersat struct {
	Logger logr.Logger
}

var _ Solver = Gophersat{}

func (s Gophersat) Solve(ctx context.Context, path string) (Result, error) {
	log := orDiscard(s.Logger).WithValues("solver", "gophersat")

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening formula: %w", err)
	}
	pb, err := gsolver.ParseCNF(f)
	f.Close()
	if err != nil {
		return Result{}, &ProcessError{Command: "gophersat", Err: fmt.Errorf("loading %s: %w", path, err)}
	}
	log.V(1).Info("formula loaded", "vars", pb.NbVars, "clauses", len(pb.Clauses))

	g := gsolver.New(pb)
	done := make(chan gsolver.Status, 1)
	go func() {
		done <- g.Solve()
	}()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case status := <-done:
		switch status {
		case gsolver.Sat:
			model := g.Model()
			lits := make([]sat.Lit, len(model))
			for i, val := range model {
				lits[i] = sat.Lit(i + 1)
				if !val {
					lits[i] = sat.Lit(-(i + 1))
				}
			}
			return Result{Status: Satisfiable, Assignment: lits}, nil
		case gsolver.Unsat:
			return Result{Status: Unsatisfiable}, nil
		}
		return Result{}, ErrIndeterminate
	}
}
