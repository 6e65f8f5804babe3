package shape

import "fmt"

// Orientation indexes the eight symmetries of the square as applied to
// a Shape. The first four are pure rotations; the last four apply the
// same rotations after a Flip.
type Orientation int

const (
	Identity Orientation = iota
	Rot90
	Rot180
	Rot270
	Flipped
	FlippedRot90
	FlippedRot180
	FlippedRot270

	// NumOrientations is the order of the dihedral group of the square.
	NumOrientations = 8
	// NumRotations is the number of orientations reachable without a
	// reflection.
	NumRotations = 4
)

// Valid reports whether o is one of the eight orientations.
func (o Orientation) Valid() bool {
	return o >= Identity && o < NumOrientations
}

// Reflected reports whether o involves a Flip.
func (o Orientation) Reflected() bool {
	return o >= Flipped
}

func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return [...]string{"id", "r90", "r180", "r270", "f", "f-r90", "f-r180", "f-r270"}[o]
}

// Orient returns s in orientation o. It panics if o is not valid.
func (s Shape) Orient(o Orientation) Shape {
	if !o.Valid() {
		panic(fmt.Sprintf("shape: invalid orientation %d", int(o)))
	}
	out := s
	if o.Reflected() {
		out = out.Flip()
	}
	for i := 0; i < int(o)%NumRotations; i++ {
		out = out.Rotate90()
	}
	return out
}

// Orientations returns the orientations legal under the given
// reflection policy, in canonical order.
func Orientations(allowFlips bool) []Orientation {
	n := NumRotations
	if allowFlips {
		n = NumOrientations
	}
	list := make([]Orientation, n)
	for i := range list {
		list[i] = Orientation(i)
	}
	return list
}

// Distinct returns the legal orientations of s that produce pairwise
// different occupancy patterns, keeping the first of each group in
// canonical order. It is a helper for writing tile catalogs; encoders
// take the orientation lists from configuration.
func Distinct(s Shape, allowFlips bool) []Orientation {
	var (
		seen []Shape
		out  []Orientation
	)
	for _, o := range Orientations(allowFlips) {
		oriented := s.Orient(o)
		dup := false
		for _, prev := range seen {
			if prev.Equal(oriented) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, oriented)
		out = append(out, o)
	}
	return out
}
