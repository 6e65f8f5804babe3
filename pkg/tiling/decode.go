package tiling

import (
	"errors"
	"fmt"

	"github.com/operator-framework/polypack/pkg/sat"
	"github.com/operator-framework/polypack/pkg/shape"
)

// Decode maps a model of enc's formula back to a Grid. assignment
// holds the literals the solver reported; the positive ones form the
// truth set. Every cell has to be occupied by exactly one tile,
// otherwise the returned error aggregates an InconsistentCellError per
// offending cell.
func Decode(enc *Encoding, assignment []sat.Lit) (Grid, error) {
	reg := enc.Formula.Registry()
	truth := make(map[sat.Var]bool, len(assignment))
	for _, m := range assignment {
		if !reg.Has(m.Var()) {
			return Grid{}, fmt.Errorf("invalid assignment: %w", &sat.UnknownVariableError{Lit: m, Max: reg.Len()})
		}
		if m.IsPos() {
			truth[m.Var()] = true
		}
	}

	cfg := enc.Config
	grid := newGrid(cfg)
	var errs []error
	for r := 0; r < cfg.Height; r++ {
		for c := 0; c < cfg.Width; c++ {
			var occupants []int
			for t := range cfg.Tiles {
				if v, ok := reg.Lookup(Occupied(t, r, c)); ok && truth[v] {
					occupants = append(occupants, t)
				}
			}
			if len(occupants) != 1 {
				names := make([]string, len(occupants))
				for i, t := range occupants {
					names[i] = cfg.TileName(t)
				}
				errs = append(errs, &InconsistentCellError{Row: r, Col: c, Tiles: names})
				continue
			}
			grid.cells[r*cfg.Width+c] = occupants[0]
		}
	}
	if len(errs) > 0 {
		return Grid{}, errors.Join(errs...)
	}
	return grid, nil
}

// Model is the inverse of Decode: it returns the full assignment of
// enc's variables that draws grid. Every tile has to cover its cells
// in exactly the figure of one of its encoded placements.
func Model(enc *Encoding, grid Grid) ([]sat.Lit, error) {
	cfg := enc.Config
	if grid.h != cfg.Height || grid.w != cfg.Width {
		return nil, fmt.Errorf("grid is %dx%d, encoding is %dx%d", grid.h, grid.w, cfg.Height, cfg.Width)
	}

	truth := make(map[Key]bool)
	drawn := make([]int, len(cfg.Tiles))
	for r := 0; r < grid.h; r++ {
		for c := 0; c < grid.w; c++ {
			if t := grid.At(r, c); t != Empty {
				truth[Occupied(t, r, c)] = true
				drawn[t]++
			}
		}
	}

	var errs []error
	for t, placements := range enc.Placements {
		found := false
		for _, p := range placements {
			figure := cfg.Tiles[t].Shape.Orient(p.Orientation)
			if figure.Cells() == drawn[t] && covers(grid, figure, t, p.Row, p.Col) {
				truth[Placed(t, p.Orientation, p.Row, p.Col)] = true
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("tile %d (%s) is not drawn in any of its placements", t, cfg.TileName(t)))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	reg := enc.Formula.Registry()
	model := make([]sat.Lit, 0, reg.Len())
	for _, k := range reg.Keys() {
		v, _ := reg.Lookup(k)
		if truth[k] {
			model = append(model, v.Pos())
		} else {
			model = append(model, v.Neg())
		}
	}
	return model, nil
}

func covers(grid Grid, figure shape.Shape, t, row, col int) bool {
	for r := 0; r < figure.Height(); r++ {
		for c := 0; c < figure.Width(); c++ {
			if figure.At(r, c) && grid.At(row+r, col+c) != t {
				return false
			}
		}
	}
	return true
}
