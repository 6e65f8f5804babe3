package tiling

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Empty marks a grid cell without a tile.
const Empty = -1

// Grid is the decoded tiling: for every cell, the index of the tile
// occupying it or Empty.
type Grid struct {
	h, w  int
	cells []int
	names []string
}

func newGrid(cfg Config) Grid {
	g := Grid{
		h:     cfg.Height,
		w:     cfg.Width,
		cells: make([]int, cfg.Height*cfg.Width),
		names: make([]string, len(cfg.Tiles)),
	}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	for t := range g.names {
		g.names[t] = cfg.TileName(t)
	}
	return g
}

func (g Grid) Height() int {
	return g.h
}

func (g Grid) Width() int {
	return g.w
}

// At returns the tile occupying (r, c), or Empty.
func (g Grid) At(r, c int) int {
	if r < 0 || r >= g.h || c < 0 || c >= g.w {
		return Empty
	}
	return g.cells[r*g.w+c]
}

// Rows returns a copy of the grid as a row-major table.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.h)
	for r := range rows {
		rows[r] = append([]int(nil), g.cells[r*g.w:(r+1)*g.w]...)
	}
	return rows
}

// String renders one line per row with cells separated by a space.
// Each cell shows the first character of its tile name, or '.' when
// empty.
func (g Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.h; r++ {
		for c := 0; c < g.w; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			t := g.At(r, c)
			if t == Empty {
				b.WriteByte('.')
				continue
			}
			ch, _ := utf8.DecodeRuneInString(g.names[t])
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ReadGrid parses the rendering of Grid.String back into a grid of
// cfg. Tiles are recognized by the first character of their name,
// which therefore has to be unique within cfg.
func ReadGrid(cfg Config, text string) (Grid, error) {
	tiles := make(map[rune]int, len(cfg.Tiles))
	for t := range cfg.Tiles {
		ch, _ := utf8.DecodeRuneInString(cfg.TileName(t))
		if prev, ok := tiles[ch]; ok {
			return Grid{}, fmt.Errorf("tiles %d (%s) and %d (%s) are both drawn as %q", prev, cfg.TileName(prev), t, cfg.TileName(t), ch)
		}
		tiles[ch] = t
	}

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			rows = append(rows, fields)
		}
	}
	if len(rows) != cfg.Height {
		return Grid{}, fmt.Errorf("expected %d rows, got %d", cfg.Height, len(rows))
	}

	g := newGrid(cfg)
	var errs []error
	for r, row := range rows {
		if len(row) != cfg.Width {
			errs = append(errs, fmt.Errorf("row %d: expected %d cells, got %d", r, cfg.Width, len(row)))
			continue
		}
		for c, cell := range row {
			if cell == "." {
				continue
			}
			ch, size := utf8.DecodeRuneInString(cell)
			t, ok := tiles[ch]
			if !ok || size != len(cell) {
				errs = append(errs, fmt.Errorf("cell (%d, %d): unknown tile %q", r, c, cell))
				continue
			}
			g.cells[r*cfg.Width+c] = t
		}
	}
	if len(errs) > 0 {
		return Grid{}, errors.Join(errs...)
	}
	return g, nil
}
