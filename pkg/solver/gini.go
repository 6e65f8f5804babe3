package solver

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/go-logr/logr"

	"github.com/operator-framework/polypack/pkg/sat"
)

const defaultPollInterval = 10 * time.Millisecond

// Gini solves formulas in-process with github.com/go-air/gini.
type Gini struct {
	// PollInterval is how often a running solve checks for
	// cancellation.
	PollInterval time.Duration
	Logger       logr.Logger
}

var _ Solver = Gini{}

func (s Gini) Solve(ctx context.Context, path string) (Result, error) {
	log := orDiscard(s.Logger).WithValues("solver", "gini")

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening formula: %w", err)
	}
	defer f.Close()

	g, err := gini.NewDimacs(f)
	if err != nil {
		return Result{}, &ProcessError{Command: "gini", Err: fmt.Errorf("loading %s: %w", path, err)}
	}
	log.V(1).Info("formula loaded", "maxVar", g.MaxVar())

	interval := s.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	solve := g.GoSolve()
	for {
		if outcome, finished := solve.Test(); finished {
			return giniResult(g, outcome)
		}
		select {
		case <-ctx.Done():
			solve.Stop()
			return Result{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func giniResult(g *gini.Gini, outcome int) (Result, error) {
	switch outcome {
	case 1:
		n := int(g.MaxVar())
		lits := make([]sat.Lit, n)
		for i := 1; i <= n; i++ {
			lits[i-1] = sat.Lit(i)
			if !g.Value(z.Var(i).Pos()) {
				lits[i-1] = sat.Lit(-i)
			}
		}
		return Result{Status: Satisfiable, Assignment: lits}, nil
	case -1:
		return Result{Status: Unsatisfiable}, nil
	}
	return Result{}, ErrIndeterminate
}
