package tiling

import (
	"errors"
	"fmt"

	"github.com/operator-framework/polypack/pkg/shape"
)

// Tile is one entry of the catalog: a shape that has to be placed
// exactly once, and the orientations it may be placed in. The
// orientation list is expected to be free of symmetric duplicates;
// it is enumerated as given.
type Tile struct {
	Name         string
	Shape        shape.Shape
	Orientations []shape.Orientation
}

// Config describes one tiling problem.
type Config struct {
	Height int
	Width  int
	// AllowFlips enables the reflected orientations 4 to 7. When it is
	// false those entries of a tile's orientation list are skipped.
	AllowFlips bool
	Tiles      []Tile
}

// Validate reports every structural problem of c that would make an
// encoding meaningless.
func (c Config) Validate() error {
	var errs []error
	if c.Height <= 0 || c.Width <= 0 {
		errs = append(errs, fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Height, c.Width))
	}
	if len(c.Tiles) == 0 {
		errs = append(errs, errors.New("tile catalog is empty"))
	}
	for i, t := range c.Tiles {
		if t.Shape.Cells() == 0 {
			errs = append(errs, fmt.Errorf("tile %d (%s): shape has no occupied cells", i, t.Name))
		}
		if len(t.Orientations) == 0 {
			errs = append(errs, fmt.Errorf("tile %d (%s): no orientations configured", i, t.Name))
		}
		seen := make(map[shape.Orientation]bool, len(t.Orientations))
		for _, o := range t.Orientations {
			if !o.Valid() {
				errs = append(errs, fmt.Errorf("tile %d (%s): orientation %d out of range 0..%d", i, t.Name, int(o), shape.NumOrientations-1))
				continue
			}
			if seen[o] {
				errs = append(errs, fmt.Errorf("tile %d (%s): orientation %d listed twice", i, t.Name, int(o)))
			}
			seen[o] = true
		}
	}
	return errors.Join(errs...)
}

// legalOrientations returns the configured orientations of tile t
// that the reflection policy admits, in configuration order.
func (c Config) legalOrientations(t int) []shape.Orientation {
	out := make([]shape.Orientation, 0, len(c.Tiles[t].Orientations))
	for _, o := range c.Tiles[t].Orientations {
		if o.Reflected() && !c.AllowFlips {
			continue
		}
		out = append(out, o)
	}
	return out
}

// TileName returns the display name of tile t.
func (c Config) TileName(t int) string {
	if t >= 0 && t < len(c.Tiles) && c.Tiles[t].Name != "" {
		return c.Tiles[t].Name
	}
	return fmt.Sprintf("#%d", t)
}
