// Package solver runs SAT solvers over DIMACS formula files. Solvers
// are external collaborators: either a program invoked as a
// subprocess, or a solver library run in-process.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/operator-framework/polypack/pkg/sat"
)

// Status is the verdict of a completed solve. The values follow the
// convention of gini and most SAT libraries.
type Status int

const (
	Satisfiable   Status = 1
	Unsatisfiable Status = -1
)

func (s Status) String() string {
	switch s {
	case Satisfiable:
		return "satisfiable"
	case Unsatisfiable:
		return "unsatisfiable"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of a solve that terminated normally. An
// unsatisfiable problem is a Result, not an error.
type Result struct {
	Status Status
	// Assignment holds one literal per variable when Status is
	// Satisfiable.
	Assignment []sat.Lit
}

// Solver decides the satisfiability of the DIMACS CNF formula stored at
// path. Solve blocks until the solver terminates or ctx is done.
type Solver interface {
	Solve(ctx context.Context, path string) (Result, error)
}

// ErrIndeterminate is returned when a solver stops without a verdict.
var ErrIndeterminate = errors.New("solver finished without deciding satisfiability")

// ProcessError reports a solver that failed abnormally: a nonzero exit
// status, a failure to start, or output that could not be parsed.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("solver %s", e.Command)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" exited with status %d", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func orDiscard(l logr.Logger) logr.Logger {
	if l.GetSink() == nil {
		return logr.Discard()
	}
	return l
}
