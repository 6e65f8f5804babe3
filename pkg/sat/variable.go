package sat

import "strconv"

// Var values identify boolean variables within a single Formula.
// Valid values start at 1; 0 is reserved as the clause terminator of
// the DIMACS format.
type Var int

// Pos returns the literal asserting v.
func (v Var) Pos() Lit {
	return Lit(v)
}

// Neg returns the literal asserting the negation of v.
func (v Var) Neg() Lit {
	return Lit(-v)
}

func (v Var) String() string {
	return strconv.Itoa(int(v))
}

// Lit is a signed reference to a Var. A positive Lit asserts the
// variable, a negative one asserts its negation.
type Lit int

// Not returns the complement of m.
func (m Lit) Not() Lit {
	return -m
}

// Var returns the variable m refers to.
func (m Lit) Var() Var {
	if m < 0 {
		return Var(-m)
	}
	return Var(m)
}

// IsPos reports whether m asserts its variable.
func (m Lit) IsPos() bool {
	return m > 0
}

func (m Lit) String() string {
	return strconv.Itoa(int(m))
}
