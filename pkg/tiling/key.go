package tiling

import (
	"fmt"

	"github.com/operator-framework/polypack/pkg/shape"
)

// Kind tags the proposition a Key stands for.
type Kind uint8

const (
	// KindOccupied keys "tile occupies cell (Row, Col)".
	KindOccupied Kind = iota + 1
	// KindPlaced keys "tile is placed in Orientation with its top-left
	// corner at (Row, Col)".
	KindPlaced
)

// Key identifies a boolean proposition of the tiling encoding. Keys
// are comparable values, so equal keys always intern to the same
// variable.
type Key struct {
	Kind        Kind
	Tile        int
	Orientation shape.Orientation
	Row         int
	Col         int
}

// Occupied returns the key of "tile occupies (row, col)".
func Occupied(tile, row, col int) Key {
	return Key{Kind: KindOccupied, Tile: tile, Row: row, Col: col}
}

// Placed returns the key of "tile is anchored at (row, col) in
// orientation o".
func Placed(tile int, o shape.Orientation, row, col int) Key {
	return Key{Kind: KindPlaced, Tile: tile, Orientation: o, Row: row, Col: col}
}

func (k Key) String() string {
	switch k.Kind {
	case KindOccupied:
		return fmt.Sprintf("occupied(t=%d,r=%d,c=%d)", k.Tile, k.Row, k.Col)
	case KindPlaced:
		return fmt.Sprintf("placed(t=%d,o=%s,r=%d,c=%d)", k.Tile, k.Orientation, k.Row, k.Col)
	}
	return fmt.Sprintf("Key(%d)", k.Kind)
}
