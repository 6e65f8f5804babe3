package encode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/operator-framework/polypack/cmd/options"
	"github.com/operator-framework/polypack/pkg/tiling"
)

type encodeOptions struct {
	catalog      options.Catalog
	output       string
	noUniqueness bool
}

func NewEncodeCommand() *cobra.Command {
	o := &encodeOptions{}
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Writes the SAT formula of a tiling problem in dimacs format",
		Long: `Writes the SAT formula of a tiling problem in dimacs format, for use
with an external solver. The file starts with the command line and date
it was generated with and ends with a legend naming every variable:

c Variables:
c 1 = occupied(t=0,r=0,c=0)
...
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	o.catalog.AddFlags(cmd.Flags())
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the formula to this file instead of stdout")
	cmd.Flags().BoolVar(&o.noUniqueness, "no-uniqueness", false, "omit the clauses placing each tile at most once")
	return cmd
}

func (o *encodeOptions) run(cmd *cobra.Command) error {
	cfg, err := o.catalog.Config()
	if err != nil {
		return err
	}
	opts := []tiling.Option{tiling.WithLogger(options.Logger(cmd))}
	if o.noUniqueness {
		opts = append(opts, tiling.WithoutPlacementUniqueness())
	}
	enc, err := tiling.Encode(cfg, opts...)
	if err != nil {
		return err
	}

	preamble := options.Preamble(options.Args(), time.Now())
	if o.output == "" {
		return enc.WriteDIMACS(cmd.OutOrStdout(), preamble...)
	}
	f, err := os.Create(o.output)
	if err != nil {
		return fmt.Errorf("error creating dimacs file (%s): %w", o.output, err)
	}
	return errors.Join(write(f, enc, preamble), f.Close())
}

func write(w io.Writer, enc *tiling.Encoding, preamble []string) error {
	if err := enc.WriteDIMACS(w, preamble...); err != nil {
		return fmt.Errorf("error writing dimacs data: %w", err)
	}
	return nil
}
