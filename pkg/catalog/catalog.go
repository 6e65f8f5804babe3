// Package catalog reads tiling problems from YAML documents.
//
// A catalog names the grid, the reflection policy and the tiles to
// pack:
//
//	height: 6
//	width: 10
//	allowFlips: true
//	tiles:
//	- name: "I"
//	  shape: ["xxxxx"]
//	  orientations: [0, 1]
//
// A tile without an orientation list may take every orientation that
// yields a distinct figure.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/operator-framework/polypack/pkg/shape"
	"github.com/operator-framework/polypack/pkg/tiling"
)

//go:embed pentominoes.yaml
var pentominoes []byte

// Catalog is the serialized form of a tiling.Config.
type Catalog struct {
	Height     int    `json:"height"`
	Width      int    `json:"width"`
	AllowFlips bool   `json:"allowFlips"`
	Tiles      []Tile `json:"tiles"`
}

type Tile struct {
	Name         string   `json:"name"`
	Shape        []string `json:"shape"`
	Orientations []int    `json:"orientations,omitempty"`
}

// Option adjusts a configuration after it has been read.
type Option func(*tiling.Config) error

// WithGrid replaces the grid dimensions of the catalog.
func WithGrid(height, width int) Option {
	return func(c *tiling.Config) error {
		c.Height = height
		c.Width = width
		return nil
	}
}

// WithFlips overrides the reflection policy of the catalog.
func WithFlips(allow bool) Option {
	return func(c *tiling.Config) error {
		c.AllowFlips = allow
		return nil
	}
}

// WithTiles keeps only the named tiles, in catalog order.
func WithTiles(names ...string) Option {
	return func(c *tiling.Config) error {
		want := make(map[string]bool, len(names))
		for _, n := range names {
			want[n] = true
		}
		var kept []tiling.Tile
		for _, t := range c.Tiles {
			if want[t.Name] {
				kept = append(kept, t)
				delete(want, t.Name)
			}
		}
		var errs []error
		for _, n := range names {
			if want[n] {
				errs = append(errs, fmt.Errorf("unknown tile %q", n))
				delete(want, n)
			}
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		c.Tiles = kept
		return nil
	}
}

// Load reads a catalog document from r and returns the validated
// configuration it describes.
func Load(r io.Reader, opts ...Option) (tiling.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return tiling.Config{}, err
	}
	var cat Catalog
	if err := yaml.UnmarshalStrict(data, &cat); err != nil {
		return tiling.Config{}, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := checkNames(data); err != nil {
		return tiling.Config{}, fmt.Errorf("parsing catalog: %w", err)
	}
	cfg, err := cat.Config()
	if err != nil {
		return tiling.Config{}, err
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return tiling.Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return tiling.Config{}, err
	}
	return cfg, nil
}

// checkNames rejects tile names that YAML resolved to something other
// than a string. Decoding into Tile.Name would silently turn a bare N
// into "false".
func checkNames(data []byte) error {
	var raw struct {
		Tiles []struct {
			Name any `json:"name"`
		} `json:"tiles"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	var errs []error
	for i, t := range raw.Tiles {
		switch t.Name.(type) {
		case nil, string:
		default:
			errs = append(errs, fmt.Errorf("tile %d: name %v is not a string, quote it", i, t.Name))
		}
	}
	return errors.Join(errs...)
}

// LoadFile is Load on the contents of the named file.
func LoadFile(path string, opts ...Option) (tiling.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return tiling.Config{}, err
	}
	defer f.Close()
	cfg, err := Load(f, opts...)
	if err != nil {
		return tiling.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Pentominoes returns the built-in catalog of the twelve pentominoes
// on a 10x6 grid with reflections allowed.
func Pentominoes(opts ...Option) (tiling.Config, error) {
	return Load(strings.NewReader(string(pentominoes)), opts...)
}

// Config converts c into a tiling configuration. Shapes are parsed
// here; the rest of the validation is left to tiling.Config.Validate.
func (c Catalog) Config() (tiling.Config, error) {
	cfg := tiling.Config{
		Height:     c.Height,
		Width:      c.Width,
		AllowFlips: c.AllowFlips,
		Tiles:      make([]tiling.Tile, len(c.Tiles)),
	}
	var errs []error
	for i, t := range c.Tiles {
		s, err := shape.Parse(t.Shape...)
		if err != nil {
			errs = append(errs, fmt.Errorf("tile %d (%s): %w", i, t.Name, err))
			continue
		}
		orientations := make([]shape.Orientation, len(t.Orientations))
		for j, o := range t.Orientations {
			orientations[j] = shape.Orientation(o)
		}
		if len(orientations) == 0 {
			orientations = shape.Distinct(s, true)
		}
		cfg.Tiles[i] = tiling.Tile{Name: t.Name, Shape: s, Orientations: orientations}
	}
	if err := errors.Join(errs...); err != nil {
		return tiling.Config{}, err
	}
	return cfg, nil
}

// FromConfig is the inverse of Catalog.Config.
func FromConfig(cfg tiling.Config) Catalog {
	c := Catalog{
		Height:     cfg.Height,
		Width:      cfg.Width,
		AllowFlips: cfg.AllowFlips,
		Tiles:      make([]Tile, len(cfg.Tiles)),
	}
	for i, t := range cfg.Tiles {
		orientations := make([]int, len(t.Orientations))
		for j, o := range t.Orientations {
			orientations[j] = int(o)
		}
		c.Tiles[i] = Tile{Name: t.Name, Shape: t.Shape.Rows(), Orientations: orientations}
	}
	return c
}

// Marshal renders cfg as a catalog document.
func Marshal(cfg tiling.Config) ([]byte, error) {
	return yaml.Marshal(FromConfig(cfg))
}

// ParseGrid parses grid dimensions written as WIDTHxHEIGHT, the way
// pentomino boards are usually named ("10x6" has 6 rows of 10 cells).
func ParseGrid(s string) (height, width int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid grid %q: expected WIDTHxHEIGHT", s)
	}
	width, werr := strconv.Atoi(strings.TrimSpace(ws))
	height, herr := strconv.Atoi(strings.TrimSpace(hs))
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid grid %q: expected WIDTHxHEIGHT with positive integers", s)
	}
	return height, width, nil
}
