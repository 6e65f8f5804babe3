// Package shape models polyomino tiles as immutable occupancy
// matrices and derives their rotated and reflected orientations.
package shape

import (
	"errors"
	"fmt"
	"strings"
)

// Shape is a rectangular occupancy matrix. The zero value is an empty
// 0x0 shape; use Parse or New to build a usable one. Shapes are never
// modified after construction.
type Shape struct {
	h, w  int
	cells []bool
}

// New builds a Shape of height h and width w from row-major cells.
func New(h, w int, cells []bool) (Shape, error) {
	if h <= 0 || w <= 0 {
		return Shape{}, fmt.Errorf("invalid shape dimensions %dx%d", h, w)
	}
	if len(cells) != h*w {
		return Shape{}, fmt.Errorf("shape %dx%d needs %d cells, got %d", h, w, h*w, len(cells))
	}
	s := Shape{h: h, w: w, cells: append([]bool(nil), cells...)}
	if s.Cells() == 0 {
		return Shape{}, errors.New("shape has no occupied cells")
	}
	return s, nil
}

// Parse builds a Shape from text rows where 'x', 'X' or '#' mark an
// occupied cell and ' ' or '.' an empty one. Short rows are padded on
// the right with empty cells.
func Parse(rows ...string) (Shape, error) {
	if len(rows) == 0 {
		return Shape{}, errors.New("shape has no rows")
	}
	w := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	if w == 0 {
		return Shape{}, errors.New("shape has no columns")
	}
	cells := make([]bool, len(rows)*w)
	for r, row := range rows {
		for c, ch := range []rune(row) {
			switch ch {
			case 'x', 'X', '#':
				cells[r*w+c] = true
			case ' ', '.':
			default:
				return Shape{}, fmt.Errorf("row %d: unexpected character %q", r, ch)
			}
		}
	}
	return New(len(rows), w, cells)
}

// MustParse is like Parse but panics on malformed input. It is meant
// for shapes written into source code.
func MustParse(rows ...string) Shape {
	s, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Shape) Height() int {
	return s.h
}

func (s Shape) Width() int {
	return s.w
}

// At reports whether cell (r, c) is occupied. Cells outside the
// matrix are empty.
func (s Shape) At(r, c int) bool {
	if r < 0 || r >= s.h || c < 0 || c >= s.w {
		return false
	}
	return s.cells[r*s.w+c]
}

// Cells returns the number of occupied cells.
func (s Shape) Cells() int {
	n := 0
	for _, on := range s.cells {
		if on {
			n++
		}
	}
	return n
}

// Equal reports whether s and o have the same dimensions and
// occupancy.
func (s Shape) Equal(o Shape) bool {
	if s.h != o.h || s.w != o.w {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Rows renders s in the format accepted by Parse.
func (s Shape) Rows() []string {
	rows := make([]string, s.h)
	var b strings.Builder
	for r := 0; r < s.h; r++ {
		b.Reset()
		for c := 0; c < s.w; c++ {
			if s.At(r, c) {
				b.WriteByte('x')
			} else {
				b.WriteByte('.')
			}
		}
		rows[r] = b.String()
	}
	return rows
}

func (s Shape) String() string {
	return strings.Join(s.Rows(), "\n")
}

// Rotate90 returns s turned a quarter counter-clockwise. The result is
// s.Width() rows high and s.Height() columns wide.
func (s Shape) Rotate90() Shape {
	out := Shape{h: s.w, w: s.h, cells: make([]bool, len(s.cells))}
	for r := 0; r < out.h; r++ {
		for c := 0; c < out.w; c++ {
			out.cells[r*out.w+c] = s.At(c, s.w-1-r)
		}
	}
	return out
}

// Flip returns s mirrored left to right.
func (s Shape) Flip() Shape {
	out := Shape{h: s.h, w: s.w, cells: make([]bool, len(s.cells))}
	for r := 0; r < s.h; r++ {
		for c := 0; c < s.w; c++ {
			out.cells[r*s.w+c] = s.At(r, s.w-1-c)
		}
	}
	return out
}
