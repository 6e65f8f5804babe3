package tiling

import (
	"fmt"
	"strings"
)

// NoPlacementError reports a tile that fits on the grid in none of its
// legal orientations. Its existence clause would be an empty
// disjunction, so the problem is rejected before reaching a solver.
type NoPlacementError struct {
	Tile   int
	Name   string
	Height int
	Width  int
}

func (e *NoPlacementError) Error() string {
	return fmt.Sprintf("tile %d (%s) has no legal placement on a %dx%d grid", e.Tile, e.Name, e.Height, e.Width)
}

// InconsistentCellError reports a cell that a supposedly satisfying
// assignment leaves uncovered or covers more than once. It indicates a
// mismatch between encoder and decoder, or a corrupt assignment.
type InconsistentCellError struct {
	Row   int
	Col   int
	Tiles []string
}

func (e *InconsistentCellError) Error() string {
	if len(e.Tiles) == 0 {
		return fmt.Sprintf("cell (%d, %d) is not occupied by any tile", e.Row, e.Col)
	}
	return fmt.Sprintf("cell (%d, %d) is occupied by %d tiles: %s", e.Row, e.Col, len(e.Tiles), strings.Join(e.Tiles, ", "))
}
