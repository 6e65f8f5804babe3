package sat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

type writeOptions struct {
	preamble []string
	legend   bool
}

// WriteOption configures WriteDIMACS.
type WriteOption func(*writeOptions)

// WithPreamble writes lines as comments ahead of the problem line.
func WithPreamble(lines ...string) WriteOption {
	return func(o *writeOptions) {
		o.preamble = append(o.preamble, lines...)
	}
}

// WithLegend appends a trailing comment block mapping every variable
// id back to its key.
func WithLegend() WriteOption {
	return func(o *writeOptions) {
		o.legend = true
	}
}

// WriteDIMACS renders f in DIMACS CNF format: the problem line, then
// every entry in insertion order. Output only depends on the state of
// f and the given options.
func WriteDIMACS[K comparable](w io.Writer, f *Formula[K], opts ...WriteOption) error {
	if err := f.Err(); err != nil {
		return fmt.Errorf("refusing to write inconsistent formula: %w", err)
	}
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	bw := bufio.NewWriter(w)
	for _, line := range o.preamble {
		writeComment(bw, line)
	}
	fmt.Fprintf(bw, "p cnf %d %d\n", f.Vars(), f.Clauses())

	buf := make([]byte, 0, 64)
	for _, e := range f.entries {
		if e.isComment {
			writeComment(bw, e.comment)
			continue
		}
		buf = buf[:0]
		for _, m := range e.lits {
			buf = strconv.AppendInt(buf, int64(m), 10)
			buf = append(buf, ' ')
		}
		buf = append(buf, '0', '\n')
		bw.Write(buf)
	}

	if o.legend {
		writeComment(bw, "Variables:")
		for i, k := range f.reg.keys {
			writeComment(bw, fmt.Sprintf("%d = %v", i+1, k))
		}
	}
	return bw.Flush()
}

func writeComment(w *bufio.Writer, text string) {
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			w.WriteString("c\n")
			continue
		}
		w.WriteString("c ")
		w.WriteString(line)
		w.WriteByte('\n')
	}
}

// DIMACS holds the variables and clauses of a CNF problem read from
// DIMACS format.
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
type DIMACS struct {
	vars    int
	clauses [][]Lit
}

// Vars returns the variable count declared in the problem line.
func (d *DIMACS) Vars() int {
	return d.vars
}

// Clauses returns the parsed clauses without their terminators.
func (d *DIMACS) Clauses() [][]Lit {
	return d.clauses
}

var (
	commentLine = regexp.MustCompile(`^c(\s.*)?$`)
	headerLine  = regexp.MustCompile(`^p\s+cnf\s+\d+\s+\d+$`)
	clauseLine  = regexp.MustCompile(`^(-?\d+\s+)+0$`)
)

// ParseDIMACS reads and validates a DIMACS CNF problem: the problem
// line must precede every clause, each clause must sit on one line and
// end in 0, literals must be in range and the clause count must match
// the problem line.
func ParseDIMACS(r io.Reader) (*DIMACS, error) {
	reader := bufio.NewReader(r)

	var (
		d          *DIMACS
		numClauses int
	)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading dimacs data: %w", err)
		}
		eof := err != nil
		line = strings.TrimSpace(line)

		switch {
		case line == "" || commentLine.MatchString(line):
			// ignore comments
		case headerLine.MatchString(line):
			if d != nil {
				return nil, fmt.Errorf("invalid dimacs format: duplicate problem line (%s)", line)
			}
			problem := strings.Fields(line)
			numVars, err := strconv.Atoi(problem[2])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", problem[2], line)
			}
			numClauses, err = strconv.Atoi(problem[3])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", problem[3], line)
			}
			d = &DIMACS{vars: numVars, clauses: make([][]Lit, 0, numClauses)}
		case clauseLine.MatchString(line):
			if d == nil {
				return nil, fmt.Errorf("invalid dimacs format: missing header 'p cnf <variables> <clauses>'")
			}
			terms := strings.Fields(line)
			clause, err := parseClause(terms[:len(terms)-1], d.vars)
			if err != nil {
				return nil, fmt.Errorf("invalid clause (%s): %w", line, err)
			}
			d.clauses = append(d.clauses, clause)
		default:
			return nil, fmt.Errorf("invalid dimacs command: %s", line)
		}

		if eof {
			break
		}
	}

	if d == nil {
		return nil, fmt.Errorf("invalid dimacs format: missing header 'p cnf <variables> <clauses>'")
	}
	if len(d.clauses) != numClauses {
		return nil, fmt.Errorf("invalid format: header declares %d clauses, found %d", numClauses, len(d.clauses))
	}
	return d, nil
}

func parseClause(terms []string, numVars int) ([]Lit, error) {
	clause := make([]Lit, 0, len(terms))
	for _, term := range terms {
		n, err := strconv.Atoi(term)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", term)
		}
		m := Lit(n)
		if m == 0 {
			return nil, fmt.Errorf("0 is not a valid literal")
		}
		if int(m.Var()) > numVars {
			return nil, &UnknownVariableError{Lit: m, Max: numVars}
		}
		clause = append(clause, m)
	}
	return clause, nil
}
