package tiling

import (
	"fmt"
	"io"

	"github.com/operator-framework/polypack/pkg/sat"
	"github.com/operator-framework/polypack/pkg/shape"
)

// Placement is one way of putting a tile on the grid.
type Placement struct {
	Tile        int
	Orientation shape.Orientation
	Row         int
	Col         int
	Var         sat.Var
}

// Encoding is the CNF form of a Config together with the bookkeeping
// needed to decode a model of it.
type Encoding struct {
	Config  Config
	Formula *sat.Formula[Key]
	// Placements holds, per tile, every placement that got a variable.
	Placements [][]Placement
}

// WriteDIMACS serializes the formula with its variable legend.
func (e *Encoding) WriteDIMACS(w io.Writer, preamble ...string) error {
	return sat.WriteDIMACS(w, e.Formula, sat.WithPreamble(preamble...), sat.WithLegend())
}

// Encode translates cfg into a formula whose models are exactly the
// tilings of the grid in which every tile is placed once and every
// cell is covered once.
//
// Two families of variables are used: occupied(t, r, c) ties tiles to
// cells, and placed(t, o, r, c) selects an orientation and anchor. A
// placement implies occupancy of the cells it covers; each cell needs
// exactly one occupant; each tile needs a placement.
func Encode(cfg Config, opts ...Option) (*Encoding, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	o := newOptions(opts)
	log := o.log.WithValues("height", cfg.Height, "width", cfg.Width)

	f := sat.NewFormula[Key](nil)
	nTiles := len(cfg.Tiles)

	cover := make([]sat.Lit, nTiles)
	for r := 0; r < cfg.Height; r++ {
		for c := 0; c < cfg.Width; c++ {
			for t := range cover {
				cover[t] = f.Var(Occupied(t, r, c)).Pos()
			}
			f.AddComment("Grid (%d, %d) must have a tile", r, c)
			f.AddClause(cover...)

			f.AddComment("Grid (%d, %d) may not have more than one tile", r, c)
			for t1 := 0; t1 < nTiles-1; t1++ {
				for t2 := t1 + 1; t2 < nTiles; t2++ {
					f.AddClause(cover[t1].Not(), cover[t2].Not())
				}
			}
		}
	}

	enc := &Encoding{
		Config:     cfg,
		Formula:    f,
		Placements: make([][]Placement, nTiles),
	}
	area := 0
	for t, tile := range cfg.Tiles {
		area += tile.Shape.Cells()
		name := cfg.TileName(t)

		var placements []Placement
		for _, orient := range cfg.legalOrientations(t) {
			figure := tile.Shape.Orient(orient)
			for r := 0; r <= cfg.Height-figure.Height(); r++ {
				for c := 0; c <= cfg.Width-figure.Width(); c++ {
					f.AddComment("Placement of tile %d (%s) in orientation %s at (%d, %d)", t, name, orient, r, c)
					placed := f.Var(Placed(t, orient, r, c))
					for sr := 0; sr < figure.Height(); sr++ {
						for sc := 0; sc < figure.Width(); sc++ {
							if figure.At(sr, sc) {
								f.AddClause(placed.Neg(), f.Var(Occupied(t, r+sr, c+sc)).Pos())
							}
						}
					}
					placements = append(placements, Placement{Tile: t, Orientation: orient, Row: r, Col: c, Var: placed})
				}
			}
		}
		if len(placements) == 0 {
			return nil, &NoPlacementError{Tile: t, Name: name, Height: cfg.Height, Width: cfg.Width}
		}
		enc.Placements[t] = placements

		exists := make([]sat.Lit, len(placements))
		for i, p := range placements {
			exists[i] = p.Var.Pos()
		}
		f.AddComment("Tile %d (%s) must exist in one of its possible placements", t, name)
		f.AddClause(exists...)

		if !o.noUniqueness {
			f.AddComment("Tile %d (%s) should not occur in more than one placement", t, name)
			for i := 0; i < len(exists)-1; i++ {
				for j := i + 1; j < len(exists); j++ {
					f.AddClause(exists[i].Not(), exists[j].Not())
				}
			}
		}
		log.V(1).Info("encoded tile", "tile", name, "orientations", len(cfg.legalOrientations(t)), "placements", len(placements))
	}

	if err := f.Err(); err != nil {
		return nil, err
	}
	if area != cfg.Height*cfg.Width {
		log.Info("tile area does not match grid area", "tileArea", area, "gridArea", cfg.Height*cfg.Width)
	}
	log.V(1).Info("encoding complete", "vars", f.Vars(), "clauses", f.Clauses())
	return enc, nil
}
