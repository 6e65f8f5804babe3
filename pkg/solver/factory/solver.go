package factory

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/operator-framework/polypack/pkg/solver"
)

const (
	Gini      = "gini"
	Gophersat = "gophersat"
	Exec      = "exec"
)

// Names lists the solver kinds New understands.
var Names = []string{Gini, Gophersat, Exec}

// Options carries the settings of every solver kind; each kind reads
// only the fields it needs.
type Options struct {
	Path         string
	Args         []string
	SuccessCodes []int
	Logger       logr.Logger
}

// New returns the solver registered under kind. An empty kind selects
// gini.
func New(kind string, opts Options) (solver.Solver, error) {
	switch kind {
	case Gini, "":
		return solver.Gini{Logger: opts.Logger}, nil
	case Gophersat:
		return solver.Gophersat{Logger: opts.Logger}, nil
	case Exec:
		if opts.Path == "" {
			return nil, fmt.Errorf("solver %q needs the path of a solver program", kind)
		}
		return solver.Exec{
			Path:         opts.Path,
			Args:         opts.Args,
			SuccessCodes: opts.SuccessCodes,
			Logger:       opts.Logger,
		}, nil
	}
	return nil, fmt.Errorf("unknown solver %q, expected one of %v", kind, Names)
}
