package sat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyClause is recorded when a clause without literals is added.
// An empty disjunction can never hold, and its DIMACS rendering would
// be a bare terminator.
var ErrEmptyClause = errors.New("empty clause")

// InvalidLiteralError is recorded when a clause contains the literal 0.
type InvalidLiteralError struct {
	Clause int
	Index  int
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("clause %d: literal %d is 0, which is reserved as the clause terminator", e.Clause, e.Index)
}

// UnknownVariableError reports a literal referring to a variable that
// the registry in use never issued.
type UnknownVariableError struct {
	Lit Lit
	Max int
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("literal %d refers to an unknown variable (registry holds %d)", e.Lit, e.Max)
}

// UnsatisfiedClauseError reports a clause that an assignment leaves
// false. Clauses are numbered from 1 in insertion order.
type UnsatisfiedClauseError struct {
	Clause int
	Lits   []Lit
}

func (e *UnsatisfiedClauseError) Error() string {
	s := make([]string, len(e.Lits))
	for i, m := range e.Lits {
		s[i] = m.String()
	}
	return fmt.Sprintf("clause %d (%s) is not satisfied", e.Clause, strings.Join(s, " "))
}

// InconsistentFormula aggregates every error encountered while
// building a Formula. A non-nil value indicates a bug in the encoder
// that produced the clauses.
type InconsistentFormula []error

func (e InconsistentFormula) Error() string {
	s := make([]string, len(e))
	for i, err := range e {
		s[i] = err.Error()
	}
	return fmt.Sprintf("%d errors encountered: %s", len(s), strings.Join(s, ", "))
}

func (e InconsistentFormula) Unwrap() []error {
	return e
}
