package tiling

import "github.com/go-logr/logr"

type options struct {
	log          logr.Logger
	noUniqueness bool
	keepFormula  string
	preamble     []string
}

// Option configures Encode and Solve.
type Option func(*options)

// WithLogger sets the logger used while encoding and solving.
func WithLogger(l logr.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithoutPlacementUniqueness omits the pairwise "placed at most once"
// clauses of every tile. When the tile areas add up to the grid area
// they are implied by the per-cell constraints and only speed up
// solving.
func WithoutPlacementUniqueness() Option {
	return func(o *options) {
		o.noUniqueness = true
	}
}

// KeepFormula makes Solve write the formula to path and leave it there
// instead of using a temporary file.
func KeepFormula(path string) Option {
	return func(o *options) {
		o.keepFormula = path
	}
}

// WithPreamble adds comment lines to the top of the formula file
// written by Solve.
func WithPreamble(lines ...string) Option {
	return func(o *options) {
		o.preamble = append(o.preamble, lines...)
	}
}

func newOptions(opts []Option) options {
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
