package shapes

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/operator-framework/polypack/cmd/options"
	"github.com/operator-framework/polypack/pkg/shape"
	"github.com/operator-framework/polypack/pkg/tiling"
)

func NewShapesCommand() *cobra.Command {
	o := &options.Catalog{}
	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "Shows the orientations of every tile in a catalog",
		Long: `Shows the orientations of every tile in a catalog together with the
distinct orientations of its shape. Orientations that repeat a figure
already listed only slow the solver down; they are reported so the
catalog can be trimmed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.Config()
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

func printCatalog(w io.Writer, cfg tiling.Config) {
	fmt.Fprintf(w, "grid %s, flips allowed: %t\n", options.GridName(cfg), cfg.AllowFlips)
	for t, tile := range cfg.Tiles {
		distinct := shape.Distinct(tile.Shape, cfg.AllowFlips)
		fmt.Fprintf(w, "\ntile %d (%s): %d cells\n", t, cfg.TileName(t), tile.Shape.Cells())
		fmt.Fprintf(w, "  configured: %s\n", list(tile.Orientations))
		fmt.Fprintf(w, "  distinct:   %s\n", list(distinct))

		if redundant := redundant(tile, cfg.AllowFlips); len(redundant) > 0 {
			fmt.Fprintf(w, "  redundant:  %s\n", list(redundant))
		}
		for _, o := range tile.Orientations {
			if o.Reflected() && !cfg.AllowFlips {
				continue
			}
			fmt.Fprintf(w, "  %s:\n", o)
			for _, row := range tile.Shape.Orient(o).Rows() {
				fmt.Fprintf(w, "    %s\n", row)
			}
		}
	}
}

// redundant returns the legal orientations of t that draw a figure an
// earlier orientation already drew.
func redundant(t tiling.Tile, allowFlips bool) []shape.Orientation {
	var (
		seen []shape.Shape
		out  []shape.Orientation
	)
	for _, o := range t.Orientations {
		if !o.Valid() || (o.Reflected() && !allowFlips) {
			continue
		}
		figure := t.Shape.Orient(o)
		dup := false
		for _, prev := range seen {
			if prev.Equal(figure) {
				dup = true
				break
			}
		}
		if dup {
			out = append(out, o)
			continue
		}
		seen = append(seen, figure)
	}
	return out
}

func list(orientations []shape.Orientation) string {
	s := make([]string, len(orientations))
	for i, o := range orientations {
		s[i] = fmt.Sprintf("%d (%s)", int(o), o)
	}
	return "[" + strings.Join(s, ", ") + "]"
}
