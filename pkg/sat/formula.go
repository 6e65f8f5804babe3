package sat

import (
	"fmt"
	"strings"
)

// Entry is a single item of a Formula: either a comment or a clause.
type Entry struct {
	comment   string
	lits      []Lit
	isComment bool
}

// IsComment reports whether e carries no logical meaning.
func (e Entry) IsComment() bool {
	return e.isComment
}

// Comment returns the text of a comment entry.
func (e Entry) Comment() string {
	return e.comment
}

// Lits returns the literals of a clause entry. The slice must not be
// modified.
func (e Entry) Lits() []Lit {
	return e.lits
}

// Formula is an ordered log of comments and clauses over the variables
// of a Registry. Entries keep their insertion order so that
// serialization is reproducible.
type Formula[K comparable] struct {
	reg     *Registry[K]
	entries []Entry
	clauses int
	errs    InconsistentFormula
}

// NewFormula returns an empty Formula whose literals must refer to
// variables issued by reg. A nil reg gets a fresh Registry.
func NewFormula[K comparable](reg *Registry[K]) *Formula[K] {
	if reg == nil {
		reg = NewRegistry[K]()
	}
	return &Formula[K]{reg: reg}
}

// Registry returns the variable registry backing f.
func (f *Formula[K]) Registry() *Registry[K] {
	return f.reg
}

// Var interns key in the backing registry.
func (f *Formula[K]) Var(key K) Var {
	return f.reg.Intern(key)
}

// AddClause appends the disjunction of lits. Malformed clauses are not
// appended; the problem is recorded and reported by Err.
func (f *Formula[K]) AddClause(lits ...Lit) {
	n := f.clauses + 1
	if len(lits) == 0 {
		f.errs = append(f.errs, fmt.Errorf("clause %d: %w", n, ErrEmptyClause))
		return
	}
	for i, m := range lits {
		if m == 0 {
			f.errs = append(f.errs, &InvalidLiteralError{Clause: n, Index: i})
			return
		}
		if !f.reg.Has(m.Var()) {
			f.errs = append(f.errs, fmt.Errorf("clause %d: %w", n, &UnknownVariableError{Lit: m, Max: f.reg.Len()}))
			return
		}
	}
	f.entries = append(f.entries, Entry{lits: append([]Lit(nil), lits...)})
	f.clauses++
}

// AddComment appends a comment. Multi-line text becomes one comment
// entry per line.
func (f *Formula[K]) AddComment(format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	for _, line := range strings.Split(text, "\n") {
		f.entries = append(f.entries, Entry{comment: line, isComment: true})
	}
}

// Vars returns the number of variables in the backing registry.
func (f *Formula[K]) Vars() int {
	return f.reg.Len()
}

// Clauses returns the number of clauses, not counting comments.
func (f *Formula[K]) Clauses() int {
	return f.clauses
}

// Entries returns every entry in insertion order. The slice must not
// be modified.
func (f *Formula[K]) Entries() []Entry {
	return f.entries
}

// Check reports the first clause that assignment leaves false.
// Variables missing from assignment count as false.
func (f *Formula[K]) Check(assignment []Lit) error {
	truth := make(map[Var]bool, len(assignment))
	for _, m := range assignment {
		if m.IsPos() {
			truth[m.Var()] = true
		}
	}
	n := 0
	for _, e := range f.entries {
		if e.isComment {
			continue
		}
		n++
		if !satisfied(e.lits, truth) {
			return &UnsatisfiedClauseError{Clause: n, Lits: e.lits}
		}
	}
	return nil
}

func satisfied(clause []Lit, truth map[Var]bool) bool {
	for _, m := range clause {
		if truth[m.Var()] == m.IsPos() {
			return true
		}
	}
	return false
}

// Err returns a single error value that is an aggregation of all
// errors encountered while adding clauses, or nil if there have been
// none.
func (f *Formula[K]) Err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return f.errs
}
