package tiling

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/operator-framework/polypack/pkg/solver"
)

// Solution is the outcome of one tiling session.
type Solution struct {
	Status solver.Status
	// Grid is only set when Status is solver.Satisfiable.
	Grid    Grid
	Vars    int
	Clauses int
}

// Solve runs a complete session: it encodes cfg, writes the formula to
// a file, hands it to s and decodes the model. An unsatisfiable problem
// yields a Solution with Status solver.Unsatisfiable and no error.
// Structural encoding errors are returned before s is invoked.
//
// The formula file lives in a temporary directory that is removed on
// every exit path, unless KeepFormula names a location for it.
func Solve(ctx context.Context, cfg Config, s solver.Solver, opts ...Option) (*Solution, error) {
	o := newOptions(opts)

	enc, err := Encode(cfg, opts...)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := writeFormula(enc, o)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	log := o.log.WithValues("formula", path)
	log.V(1).Info("invoking solver", "vars", enc.Formula.Vars(), "clauses", enc.Formula.Clauses())
	res, err := s.Solve(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("solving %dx%d tiling: %w", cfg.Height, cfg.Width, err)
	}
	log.V(1).Info("solver finished", "status", res.Status)

	sol := &Solution{
		Status:  res.Status,
		Vars:    enc.Formula.Vars(),
		Clauses: enc.Formula.Clauses(),
	}
	if res.Status != solver.Satisfiable {
		return sol, nil
	}
	sol.Grid, err = Decode(enc, res.Assignment)
	if err != nil {
		return nil, fmt.Errorf("decoding solver model: %w", err)
	}
	return sol, nil
}

func writeFormula(enc *Encoding, o options) (string, func(), error) {
	cleanup := func() {}
	path := o.keepFormula
	if path == "" {
		dir, err := os.MkdirTemp("", "polypack-")
		if err != nil {
			return "", nil, fmt.Errorf("creating formula directory: %w", err)
		}
		cleanup = func() { removeAll(o.log, dir) }
		path = filepath.Join(dir, "problem.cnf")
	}

	f, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("creating formula file: %w", err)
	}
	werr := enc.WriteDIMACS(f, o.preamble...)
	if err := errors.Join(werr, f.Close()); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing formula to %s: %w", path, err)
	}
	return path, cleanup, nil
}

func removeAll(log logr.Logger, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		log.Error(err, "failed to remove formula directory", "dir", dir)
	}
}
