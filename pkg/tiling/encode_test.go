package tiling_test

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/polypack/pkg/sat"
	"github.com/operator-framework/polypack/pkg/shape"
	"github.com/operator-framework/polypack/pkg/tiling"
)

// clauseAfter returns the first clause following the first comment
// that starts with prefix.
func clauseAfter(f *sat.Formula[tiling.Key], prefix string) []sat.Lit {
	entries := f.Entries()
	for i, e := range entries {
		if !e.IsComment() || !strings.HasPrefix(e.Comment(), prefix) {
			continue
		}
		for _, next := range entries[i+1:] {
			if !next.IsComment() {
				return next.Lits()
			}
		}
	}
	return nil
}

func countKind(f *sat.Formula[tiling.Key], kind tiling.Kind) int {
	n := 0
	for _, k := range f.Registry().Keys() {
		if k.Kind == kind {
			n++
		}
	}
	return n
}

var _ = Describe("Encode", func() {
	Context("a single 1x1 tile on a 2x2 grid", func() {
		var enc *tiling.Encoding

		BeforeEach(func() {
			var err error
			enc, err = tiling.Encode(tiling.Config{Height: 2, Width: 2, Tiles: squares(1)})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should create one placement variable per cell", func() {
			Expect(enc.Placements[0]).To(HaveLen(4))
			Expect(countKind(enc.Formula, tiling.KindPlaced)).To(Equal(4))
			Expect(countKind(enc.Formula, tiling.KindOccupied)).To(Equal(4))
			Expect(enc.Formula.Vars()).To(Equal(8))
		})

		It("should emit one existence clause over the four placements", func() {
			exists := clauseAfter(enc.Formula, "Tile 0 (A) must exist")
			Expect(exists).To(HaveLen(4))
			for i, p := range enc.Placements[0] {
				Expect(exists[i]).To(Equal(p.Var.Pos()))
			}
		})

		It("should count every clause group", func() {
			// 4 coverage, 0 exclusivity, 4 implications, 1 existence, 6 uniqueness
			Expect(enc.Formula.Clauses()).To(Equal(15))
		})
	})

	It("should intern occupancy variables for every cell first", func() {
		enc, err := tiling.Encode(tiling.Config{Height: 2, Width: 3, Tiles: squares(2)})
		Expect(err).ToNot(HaveOccurred())
		keys := enc.Formula.Registry().Keys()
		Expect(keys[0]).To(Equal(tiling.Occupied(0, 0, 0)))
		Expect(keys[1]).To(Equal(tiling.Occupied(1, 0, 0)))
		Expect(keys[2]).To(Equal(tiling.Occupied(0, 0, 1)))
		Expect(keys[12]).To(Equal(tiling.Placed(0, shape.Identity, 0, 0)))
	})

	It("should name variables in the legend by what they stand for", func() {
		Expect(tiling.Occupied(2, 0, 1).String()).To(Equal("occupied(t=2,r=0,c=1)"))
		Expect(tiling.Placed(0, shape.Rot90, 3, 4).String()).To(Equal("placed(t=0,o=r90,r=3,c=4)"))

		enc, err := tiling.Encode(tiling.Config{Height: 1, Width: 1, Tiles: squares(1)})
		Expect(err).ToNot(HaveOccurred())
		var buf bytes.Buffer
		Expect(enc.WriteDIMACS(&buf)).To(Succeed())
		Expect(buf.String()).To(HaveSuffix("c Variables:\nc 1 = occupied(t=0,r=0,c=0)\nc 2 = placed(t=0,o=id,r=0,c=0)\n"))
	})

	It("should emit pairwise exclusivity per cell", func() {
		enc, err := tiling.Encode(tiling.Config{Height: 1, Width: 3, Tiles: squares(3)})
		Expect(err).ToNot(HaveOccurred())
		a, _ := enc.Formula.Registry().Lookup(tiling.Occupied(0, 0, 0))
		c, _ := enc.Formula.Registry().Lookup(tiling.Occupied(2, 0, 0))
		Expect(clauseAfter(enc.Formula, "Grid (0, 0) must have a tile")).To(HaveLen(3))
		Expect(enc.Formula.Entries()).To(ContainElement(WithTransform(func(e sat.Entry) []sat.Lit {
			return e.Lits()
		}, Equal([]sat.Lit{a.Neg(), c.Neg()}))))
	})

	It("should keep every placement inside the grid", func() {
		cfg := tiling.Config{
			Height:     4,
			Width:      5,
			AllowFlips: true,
			Tiles: []tiling.Tile{
				tile("L", shape.Orientations(true), "xxxx", "   x"),
				tile("T", []shape.Orientation{0, 1, 2, 3}, "xxx", " x ", " x "),
			},
		}
		enc, err := tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		for t, placements := range enc.Placements {
			Expect(placements).ToNot(BeEmpty())
			for _, p := range placements {
				figure := cfg.Tiles[t].Shape.Orient(p.Orientation)
				Expect(p.Row).To(BeNumerically(">=", 0))
				Expect(p.Col).To(BeNumerically(">=", 0))
				Expect(p.Row + figure.Height()).To(BeNumerically("<=", cfg.Height))
				Expect(p.Col + figure.Width()).To(BeNumerically("<=", cfg.Width))
			}
		}
		// L lies 2x4 (3x2 anchors) or 4x2 (1x4 anchors), four orientations each way
		Expect(enc.Placements[0]).To(HaveLen(2 * (2*(1*4) + 2*(3*2))))
	})

	It("should only emit well-formed clauses", func() {
		cfg := tiling.Config{
			Height: 3,
			Width:  4,
			Tiles: []tiling.Tile{
				tile("L", []shape.Orientation{0, 1, 2, 3}, "xxx", "x  "),
				tile("O", []shape.Orientation{0}, "xx", "xx"),
				tile("I", []shape.Orientation{0, 1}, "xxx"),
				tile("S", []shape.Orientation{0}, "x"),
			},
		}
		enc, err := tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.Formula.Err()).ToNot(HaveOccurred())
		reg := enc.Formula.Registry()
		for _, e := range enc.Formula.Entries() {
			if e.IsComment() {
				continue
			}
			Expect(e.Lits()).ToNot(BeEmpty())
			for _, m := range e.Lits() {
				Expect(m).ToNot(BeZero())
				Expect(reg.Has(m.Var())).To(BeTrue())
			}
		}
	})

	It("should skip reflected orientations when flips are not allowed", func() {
		cfg := tiling.Config{
			Height: 4,
			Width:  4,
			Tiles:  []tiling.Tile{tile("N", shape.Orientations(true), "xxx ", "  xx")},
		}
		enc, err := tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		for _, p := range enc.Placements[0] {
			Expect(p.Orientation.Reflected()).To(BeFalse())
		}

		cfg.AllowFlips = true
		withFlips, err := tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(withFlips.Placements[0]).To(HaveLen(2 * len(enc.Placements[0])))
	})

	It("should omit placement uniqueness on request", func() {
		cfg := tiling.Config{Height: 2, Width: 2, Tiles: squares(1)}
		full, err := tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		lean, err := tiling.Encode(cfg, tiling.WithoutPlacementUniqueness())
		Expect(err).ToNot(HaveOccurred())
		Expect(full.Formula.Clauses() - lean.Formula.Clauses()).To(Equal(6))
		Expect(lean.Formula.Vars()).To(Equal(full.Formula.Vars()))
	})

	It("should reject a tile that fits nowhere", func() {
		cfg := tiling.Config{
			Height:     2,
			Width:      2,
			AllowFlips: true,
			Tiles: []tiling.Tile{
				tile("S", []shape.Orientation{0}, "x"),
				tile("I", shape.Orientations(true), "xxxxx"),
			},
		}
		_, err := tiling.Encode(cfg)
		var target *tiling.NoPlacementError
		Expect(errors.As(err, &target)).To(BeTrue())
		Expect(target.Tile).To(Equal(1))
		Expect(target.Name).To(Equal("I"))
	})

	It("should reject an invalid configuration", func() {
		cfg := tiling.Config{
			Height: 0,
			Width:  2,
			Tiles: []tiling.Tile{
				{Name: "empty"},
				tile("dup", []shape.Orientation{1, 1}, "x"),
				tile("range", []shape.Orientation{8}, "x"),
			},
		}
		_, err := tiling.Encode(cfg)
		Expect(err).To(MatchError(ContainSubstring("grid dimensions must be positive")))
		Expect(err).To(MatchError(ContainSubstring("tile 0 (empty): shape has no occupied cells")))
		Expect(err).To(MatchError(ContainSubstring("tile 0 (empty): no orientations configured")))
		Expect(err).To(MatchError(ContainSubstring("orientation 1 listed twice")))
		Expect(err).To(MatchError(ContainSubstring("orientation 8 out of range")))

		_, err = tiling.Encode(tiling.Config{Height: 1, Width: 1})
		Expect(err).To(MatchError(ContainSubstring("tile catalog is empty")))
	})

	It("should serialize deterministically", func() {
		cfg := tiling.Config{
			Height:     3,
			Width:      4,
			AllowFlips: true,
			Tiles: []tiling.Tile{
				tile("L", shape.Orientations(true), "xxx", "x  "),
				tile("O", []shape.Orientation{0}, "xx", "xx"),
				tile("I", []shape.Orientation{0, 1}, "xx"),
			},
		}
		var first, second bytes.Buffer
		enc, err := tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.WriteDIMACS(&first)).To(Succeed())
		enc, err = tiling.Encode(cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.WriteDIMACS(&second)).To(Succeed())
		Expect(first.String()).To(Equal(second.String()))

		parsed, err := sat.ParseDIMACS(&first)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed.Vars()).To(Equal(enc.Formula.Vars()))
		Expect(parsed.Clauses()).To(HaveLen(enc.Formula.Clauses()))
	})
})
