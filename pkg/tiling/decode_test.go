package tiling_test

import (
	"errors"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/polypack/pkg/sat"
	"github.com/operator-framework/polypack/pkg/shape"
	"github.com/operator-framework/polypack/pkg/tiling"
)

// assignment returns a full model of enc's variables in which exactly
// the keys in truth are true.
func assignment(enc *tiling.Encoding, truth ...tiling.Key) []sat.Lit {
	reg := enc.Formula.Registry()
	set := make(map[tiling.Key]bool, len(truth))
	for _, k := range truth {
		set[k] = true
	}
	lits := make([]sat.Lit, 0, reg.Len())
	for _, k := range reg.Keys() {
		v, _ := reg.Lookup(k)
		if set[k] {
			lits = append(lits, v.Pos())
		} else {
			lits = append(lits, v.Neg())
		}
	}
	return lits
}

var _ = Describe("Decode", func() {
	var enc *tiling.Encoding

	Context("a single 1x1 tile on a 2x2 grid", func() {
		BeforeEach(func() {
			var err error
			enc, err = tiling.Encode(tiling.Config{Height: 2, Width: 2, Tiles: squares(1)})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should fill every cell whichever placement is chosen", func() {
			for _, p := range enc.Placements[0] {
				model := assignment(enc,
					tiling.Placed(0, p.Orientation, p.Row, p.Col),
					tiling.Occupied(0, 0, 0), tiling.Occupied(0, 0, 1),
					tiling.Occupied(0, 1, 0), tiling.Occupied(0, 1, 1),
				)
				grid, err := tiling.Decode(enc, model)
				Expect(err).ToNot(HaveOccurred())
				Expect(cmp.Diff([][]int{{0, 0}, {0, 0}}, grid.Rows())).To(BeEmpty())
				Expect(grid.String()).To(Equal("A A\nA A\n"))
			}
		})

		It("should report every uncovered cell", func() {
			_, err := tiling.Decode(enc, assignment(enc, tiling.Occupied(0, 1, 1)))
			Expect(err).To(HaveOccurred())
			var cell *tiling.InconsistentCellError
			Expect(errors.As(err, &cell)).To(BeTrue())
			Expect(cell.Row).To(Equal(0))
			Expect(cell.Col).To(Equal(0))
			Expect(cell.Tiles).To(BeEmpty())
			Expect(err.Error()).To(ContainSubstring("cell (1, 0) is not occupied by any tile"))
			Expect(err.Error()).ToNot(ContainSubstring("cell (1, 1)"))
		})

		It("should reject literals of unknown variables", func() {
			for _, m := range []sat.Lit{0, 9, -12} {
				_, err := tiling.Decode(enc, []sat.Lit{1, m})
				var unknown *sat.UnknownVariableError
				Expect(errors.As(err, &unknown)).To(BeTrue())
				Expect(unknown.Lit).To(Equal(m))
			}
		})
	})

	It("should report a cell claimed by two tiles", func() {
		var err error
		enc, err = tiling.Encode(tiling.Config{Height: 1, Width: 2, Tiles: squares(2)})
		Expect(err).ToNot(HaveOccurred())
		model := assignment(enc,
			tiling.Occupied(0, 0, 0), tiling.Occupied(1, 0, 0), tiling.Occupied(1, 0, 1),
		)
		_, err = tiling.Decode(enc, model)
		var cell *tiling.InconsistentCellError
		Expect(errors.As(err, &cell)).To(BeTrue())
		Expect(cell.Tiles).To(Equal([]string{"A", "B"}))
		Expect(err).To(MatchError("cell (0, 0) is occupied by 2 tiles: A, B"))
	})

	It("should treat literals missing from the model as false", func() {
		var err error
		enc, err = tiling.Encode(tiling.Config{Height: 1, Width: 2, Tiles: squares(2)})
		Expect(err).ToNot(HaveOccurred())
		reg := enc.Formula.Registry()
		b0, _ := reg.Lookup(tiling.Occupied(1, 0, 0))
		a1, _ := reg.Lookup(tiling.Occupied(0, 0, 1))
		grid, err := tiling.Decode(enc, []sat.Lit{b0.Pos(), a1.Pos()})
		Expect(err).ToNot(HaveOccurred())
		Expect(cmp.Diff([][]int{{1, 0}}, grid.Rows())).To(BeEmpty())
		Expect(grid.At(0, 0)).To(Equal(1))
		Expect(grid.At(3, 0)).To(Equal(tiling.Empty))
	})
})

var _ = Describe("Model", func() {
	var cfg tiling.Config

	BeforeEach(func() {
		cfg = tiling.Config{
			Height: 2,
			Width:  3,
			Tiles: []tiling.Tile{
				tile("L", []shape.Orientation{0, 1, 2, 3}, "xx", "x "),
				tile("J", []shape.Orientation{0, 1, 2, 3}, "xx", " x"),
			},
		}
	})

	It("should satisfy the formula and decode back to the same grid", func() {
		enc, err := tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		grid, err := tiling.ReadGrid(cfg, "L L J\nL J J\n")
		Expect(err).ToNot(HaveOccurred())

		model, err := tiling.Model(enc, grid)
		Expect(err).ToNot(HaveOccurred())
		Expect(model).To(HaveLen(enc.Formula.Vars()))
		Expect(enc.Formula.Check(model)).To(Succeed())

		decoded, err := tiling.Decode(enc, model)
		Expect(err).ToNot(HaveOccurred())
		Expect(cmp.Diff(grid.Rows(), decoded.Rows())).To(BeEmpty())
		Expect(decoded.String()).To(Equal("L L J\nL J J\n"))
	})

	It("should reject a tile drawn in no placement", func() {
		enc, err := tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		grid, err := tiling.ReadGrid(cfg, "L J L\nL J J\n")
		Expect(err).ToNot(HaveOccurred())
		_, err = tiling.Model(enc, grid)
		Expect(err).To(MatchError(ContainSubstring("tile 0 (L) is not drawn in any of its placements")))
		Expect(err).ToNot(MatchError(ContainSubstring("tile 1")))
	})

	It("should reject a grid of other dimensions", func() {
		enc, err := tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		other := cfg
		other.Width = 4
		grid, err := tiling.ReadGrid(other, "L L J J\nL . . J\n")
		Expect(err).ToNot(HaveOccurred())
		_, err = tiling.Model(enc, grid)
		Expect(err).To(MatchError("grid is 2x4, encoding is 2x3"))
	})
})

var _ = Describe("ReadGrid", func() {
	cfg := tiling.Config{Height: 1, Width: 3, Tiles: squares(2)}

	It("should read empty cells", func() {
		grid, err := tiling.ReadGrid(cfg, "A . B")
		Expect(err).ToNot(HaveOccurred())
		Expect(cmp.Diff([][]int{{0, tiling.Empty, 1}}, grid.Rows())).To(BeEmpty())
	})

	It("should report every malformed row and cell", func() {
		_, err := tiling.ReadGrid(cfg, "A C AB")
		Expect(err).To(MatchError(ContainSubstring(`cell (0, 1): unknown tile "C"`)))
		Expect(err).To(MatchError(ContainSubstring(`cell (0, 2): unknown tile "AB"`)))

		_, err = tiling.ReadGrid(cfg, "A B")
		Expect(err).To(MatchError("row 0: expected 3 cells, got 2"))

		_, err = tiling.ReadGrid(cfg, "A B A\nA B A")
		Expect(err).To(MatchError("expected 1 rows, got 2"))
	})

	It("should refuse tiles drawn with the same character", func() {
		ambiguous := cfg
		ambiguous.Tiles = []tiling.Tile{
			tile("Long", []shape.Orientation{0}, "x"),
			tile("Lean", []shape.Orientation{0}, "x"),
		}
		_, err := tiling.ReadGrid(ambiguous, "L L .")
		Expect(err).To(MatchError(ContainSubstring(`tiles 0 (Long) and 1 (Lean) are both drawn as 'L'`)))
	})
})
