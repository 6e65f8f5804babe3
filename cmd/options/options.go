// Package options holds the flags shared by the polypack commands.
package options

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/operator-framework/polypack/pkg/catalog"
	"github.com/operator-framework/polypack/pkg/solver"
	"github.com/operator-framework/polypack/pkg/solver/factory"
	"github.com/operator-framework/polypack/pkg/tiling"
)

const verbosityFlag = "verbosity"

// AddVerbosityFlag registers the persistent -v flag on the root command.
func AddVerbosityFlag(fs *pflag.FlagSet) {
	fs.IntP(verbosityFlag, "v", 0, "log verbosity; 1 logs encoding and solver progress, 2 adds per-tile detail")
}

// Logger returns a logger writing to stderr at the verbosity selected
// on the command line.
func Logger(cmd *cobra.Command) logr.Logger {
	v, err := cmd.Flags().GetInt(verbosityFlag)
	if err != nil {
		v = 0
	}
	stdr.SetVerbosity(v)
	return stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
}

// Catalog selects the tiling problems a command works on.
type Catalog struct {
	Path  string
	Grids []string
	Flips bool
	Tiles []string

	flags *pflag.FlagSet
}

func (o *Catalog) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Path, "catalog", "c", "", "catalog file (default: the built-in pentominoes)")
	fs.StringArrayVarP(&o.Grids, "grid", "g", nil, "grid as WIDTHxHEIGHT, e.g. 10x6 (default: the catalog's grid)")
	fs.BoolVar(&o.Flips, "flips", false, "allow reflected orientations (default: the catalog's setting)")
	fs.StringSliceVarP(&o.Tiles, "tiles", "t", nil, "pack only the named tiles of the catalog, e.g. L,V,P")
	o.flags = fs
}

// Configs loads the catalog once per requested grid.
func (o *Catalog) Configs() ([]tiling.Config, error) {
	var base []catalog.Option
	if o.flags != nil && o.flags.Changed("flips") {
		base = append(base, catalog.WithFlips(o.Flips))
	}
	if len(o.Tiles) > 0 {
		base = append(base, catalog.WithTiles(o.Tiles...))
	}
	if len(o.Grids) == 0 {
		cfg, err := o.load(base)
		if err != nil {
			return nil, err
		}
		return []tiling.Config{cfg}, nil
	}

	configs := make([]tiling.Config, 0, len(o.Grids))
	for _, g := range o.Grids {
		h, w, err := catalog.ParseGrid(g)
		if err != nil {
			return nil, err
		}
		cfg, err := o.load(append(base[:len(base):len(base)], catalog.WithGrid(h, w)))
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// Config loads a single tiling problem.
func (o *Catalog) Config() (tiling.Config, error) {
	if len(o.Grids) > 1 {
		return tiling.Config{}, fmt.Errorf("expected at most one --grid, got %d", len(o.Grids))
	}
	configs, err := o.Configs()
	if err != nil {
		return tiling.Config{}, err
	}
	return configs[0], nil
}

func (o *Catalog) load(opts []catalog.Option) (tiling.Config, error) {
	if o.Path == "" {
		return catalog.Pentominoes(opts...)
	}
	return catalog.LoadFile(o.Path, opts...)
}

// Solver selects and configures the solver backend.
type Solver struct {
	Kind         string
	Path         string
	Args         []string
	SuccessCodes []int
	Timeout      time.Duration
}

func (o *Solver) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Kind, "solver", "s", factory.Gini, fmt.Sprintf("solver backend, one of %s", strings.Join(factory.Names, ", ")))
	fs.StringVar(&o.Path, "solver-path", "", "solver program run by the exec backend, e.g. ./zchaff")
	fs.StringArrayVar(&o.Args, "solver-arg", nil, "argument passed to the solver program ahead of the formula path (repeatable)")
	fs.IntSliceVar(&o.SuccessCodes, "success-code", nil, "exit status of the solver program that counts as success (default 0)")
	fs.DurationVar(&o.Timeout, "timeout", 0, "give up after this long (0 waits forever)")
}

func (o *Solver) New(log logr.Logger) (solver.Solver, error) {
	return factory.New(o.Kind, factory.Options{
		Path:         o.Path,
		Args:         o.Args,
		SuccessCodes: o.SuccessCodes,
		Logger:       log,
	})
}

// Preamble returns the comment lines identifying how a formula file
// was produced.
func Preamble(args []string, now time.Time) []string {
	return []string{
		"Command: " + strings.Join(args, " "),
		"Date: " + now.Format("02/01/2006 15:04:05 MST"),
	}
}

// GridName renders the dimensions of cfg the way --grid accepts them.
func GridName(cfg tiling.Config) string {
	return fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
}

// KeepPath returns where the formula of cfg is kept when several grids
// share one --keep-cnf path.
func KeepPath(path string, cfg tiling.Config, shared bool) string {
	if path == "" || !shared {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + GridName(cfg) + ext
}

// Args returns the command line of the running process.
func Args() []string {
	return append([]string{filepath.Base(os.Args[0])}, os.Args[1:]...)
}
