// Package shape describes the spatial layout of a galaxy: which region every
// normalized coordinate falls in, and how dense stars are there.
package shape

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

var (
	ErrBadColor    = errors.New("shape: invalid color")
	ErrNoRegions   = errors.New("shape: no regions defined")
	ErrNoSpawn     = errors.New("shape: no spawn region defined")
	ErrNoRegionMap = errors.New("shape: no region map")
	ErrUnknown     = errors.New("shape: unknown shape")
)

// Black marks undefined space. Stars are never placed on it.
var Black = color.RGBA{A: 0xff}

// RegionMap classifies a normalized coordinate (x and y in [0, 1]) into a region color.
type RegionMap interface {
	Region(x, y float64) color.RGBA
}

// DensityMap returns the relative star density in [0, 1] at a normalized coordinate.
type DensityMap interface {
	Density(x, y float64) float64
}

// Region is one entry of a shape legend
type Region struct {
	Color  color.RGBA
	Spawn  bool
	Weight int
}

// Link declares two regions as adjacent
type Link struct {
	A, B color.RGBA
}

// Shape is a fully loaded galaxy layout.
type Shape struct {
	Name string

	Regions         []Region
	Topology        []Link
	SpawnerSequence []color.RGBA

	MinConstellations int
	MaxConstellations int
	MinEmpires        int
	MaxEmpires        int

	RegionMap  RegionMap
	DensityMap DensityMap // nil means uniform density
}

// Validate checks that the shape can be used for generation
func (s *Shape) Validate() error {
	if s.RegionMap == nil {
		return fmt.Errorf("%s: %w", s.Name, ErrNoRegionMap)
	}
	if len(s.Regions) == 0 {
		return fmt.Errorf("%s: %w", s.Name, ErrNoRegions)
	}
	if len(s.SpawnerSequence) == 0 {
		return fmt.Errorf("%s: %w", s.Name, ErrNoSpawn)
	}
	return nil
}

// Region returns the legend entry for c
func (s *Shape) Region(c color.RGBA) (Region, bool) {
	for _, r := range s.Regions {
		if r.Color == c {
			return r, true
		}
	}
	return Region{}, false
}

// Adjacent reports whether the topology links a and b
func (s *Shape) Adjacent(a, b color.RGBA) bool {
	for _, l := range s.Topology {
		if (l.A == a && l.B == b) || (l.A == b && l.B == a) {
			return true
		}
	}
	return false
}

// Connectable reports whether stars of regions a and b may be linked
func (s *Shape) Connectable(a, b color.RGBA) bool {
	return a == b || s.Adjacent(a, b)
}

// Neighbors returns the regions linked to c by the topology, in topology order
func (s *Shape) Neighbors(c color.RGBA) []color.RGBA {
	var out []color.RGBA
	for _, l := range s.Topology {
		switch c {
		case l.A:
			out = append(out, l.B)
		case l.B:
			out = append(out, l.A)
		}
	}
	return out
}

// Classify returns the legend color for a normalized coordinate. Colors that
// are not in the legend snap to the nearest legend color (black included), so
// anti-aliased edges of a raster still resolve.
func (s *Shape) Classify(x, y float64) color.RGBA {
	return s.Snap(s.RegionMap.Region(x, y))
}

// Snap returns the legend color (or black) closest to c in RGB space
func (s *Shape) Snap(c color.RGBA) color.RGBA {
	c.A = 0xff
	best := Black
	bestDistance := colorDistance(c, Black)
	for _, r := range s.Regions {
		d := colorDistance(c, r.Color)
		if d < bestDistance {
			best = r.Color
			bestDistance = d
		}
	}
	return best
}

// DensityAt returns the density at a normalized coordinate, 1 without a density map
func (s *Shape) DensityAt(x, y float64) float64 {
	if s.DensityMap == nil {
		return 1
	}
	return s.DensityMap.Density(x, y)
}

func colorDistance(a, b color.RGBA) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ParseColor parses a "#rrggbb" color
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FormatColor returns c as "#rrggbb"
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
