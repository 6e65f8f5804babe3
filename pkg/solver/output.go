package solver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/operator-framework/polypack/pkg/sat"
)

// ParseOutput extracts the verdict and model from a solver's standard
// output. Two dialects are understood: zchaff's
//
//	Instance Satisfiable
//	1 -2 3 ...
//
// and the SAT competition format with an "s SATISFIABLE" status line
// followed by "v" lines holding the model and ending in 0. A verdict of
// satisfiable without a readable model is an error.
func ParseOutput(out []byte) (Result, error) {
	lines := strings.Split(string(out), "\n")
	for i, raw := range lines {
		switch strings.TrimSpace(raw) {
		case "Instance Satisfiable":
			if i+1 >= len(lines) {
				return Result{}, errors.New("missing assignment after satisfiable verdict")
			}
			lits, err := parseModelLine(lines[i+1])
			if err != nil {
				return Result{}, err
			}
			return Result{Status: Satisfiable, Assignment: lits}, nil
		case "Instance Unsatisfiable", "s UNSATISFIABLE":
			return Result{Status: Unsatisfiable}, nil
		case "s SATISFIABLE":
			lits, err := parseValueLines(lines)
			if err != nil {
				return Result{}, err
			}
			return Result{Status: Satisfiable, Assignment: lits}, nil
		case "s UNKNOWN":
			return Result{}, ErrIndeterminate
		}
	}
	return Result{}, errors.New("no satisfiability verdict found in solver output")
}

func parseValueLines(lines []string) ([]sat.Lit, error) {
	var lits []sat.Lit
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != "v" {
			continue
		}
		more, done, err := parseLits(fields[1:])
		if err != nil {
			return nil, err
		}
		lits = append(lits, more...)
		if done {
			return lits, nil
		}
	}
	if len(lits) == 0 {
		return nil, errors.New("missing assignment after satisfiable verdict")
	}
	return nil, errors.New("assignment is not terminated by 0")
}

// zchaffTrailer is printed by zchaff on the model line, right after
// the last literal.
const zchaffTrailer = "Random Seed Used"

// parseModelLine reads the model zchaff prints after its verdict. The
// model has to hold at least one literal and nothing but literals up to
// the trailer.
func parseModelLine(line string) ([]sat.Lit, error) {
	model, _, _ := strings.Cut(line, zchaffTrailer)
	lits, _, err := parseLits(strings.Fields(model))
	if err != nil {
		return nil, err
	}
	if len(lits) == 0 {
		return nil, errors.New("missing assignment after satisfiable verdict")
	}
	return lits, nil
}

// parseLits converts fields to literals up to an optional 0 terminator
// and reports whether the terminator was seen.
func parseLits(fields []string) ([]sat.Lit, bool, error) {
	lits := make([]sat.Lit, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, false, fmt.Errorf("invalid literal %q in solver output", field)
		}
		if n == 0 {
			return lits, true, nil
		}
		lits = append(lits, sat.Lit(n))
	}
	return lits, false, nil
}
