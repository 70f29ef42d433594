// Package stats summarizes a generated galaxy: population counts, resource
// totals and warp network shape.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/geometry"
)

// Count is a named tally
type Count struct {
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

// Connectivity describes the warp degree of the stars
type Connectivity struct {
	Average      float64 `yaml:"average" json:"average"`
	Min          int     `yaml:"min" json:"min"`
	Max          int     `yaml:"max" json:"max"`
	MaxWormholes int     `yaml:"max_wormholes" json:"max_wormholes"`

	// Degrees[n] is the number of stars with n warps
	Degrees []int `yaml:"degrees" json:"degrees"`
}

// Bounds is the axis-aligned box around every star
type Bounds struct {
	MinX float64 `yaml:"min_x" json:"min_x"`
	MinY float64 `yaml:"min_y" json:"min_y"`
	MaxX float64 `yaml:"max_x" json:"max_x"`
	MaxY float64 `yaml:"max_y" json:"max_y"`
}

// Stats is the summary of one galaxy.
type Stats struct {
	Stars          int `yaml:"stars" json:"stars"`
	Planets        int `yaml:"planets" json:"planets"`
	Moons          int `yaml:"moons" json:"moons"`
	Constellations int `yaml:"constellations" json:"constellations"`
	Warps          int `yaml:"warps" json:"warps"`
	Wormholes      int `yaml:"wormholes" json:"wormholes"`

	StarTypes []Count `yaml:"star_types" json:"star_types"`

	// PlanetsPerSystem[n] is the number of stars with n planets
	PlanetsPerSystem []int `yaml:"planets_per_system" json:"planets_per_system"`

	PlanetTypes []Count `yaml:"planet_types" json:"planet_types"`
	PlanetSizes []Count `yaml:"planet_sizes" json:"planet_sizes"`
	Anomalies   []Count `yaml:"anomalies" json:"anomalies"`
	Temples     []Count `yaml:"temples" json:"temples"`

	// Strategic and Luxury hold the total deposit size per resource
	Strategic []Count `yaml:"strategic" json:"strategic"`
	Luxury    []Count `yaml:"luxury" json:"luxury"`

	Connectivity Connectivity `yaml:"connectivity" json:"connectivity"`
	Bounds       Bounds       `yaml:"bounds" json:"bounds"`

	// Diameter is the longest shortest path in warp hops
	Diameter int `yaml:"diameter" json:"diameter"`
}

// tally collects counts and returns them sorted by name
type tally map[string]int

func (t tally) add(name string, n int) {
	if name != "" {
		t[name] += n
	}
}

func (t tally) sorted() []Count {
	out := make([]Count, 0, len(t))
	for name, n := range t {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Compute summarizes g
func Compute(g *galaxy.Galaxy) *Stats {
	s := &Stats{
		Stars:          len(g.Stars),
		Planets:        len(g.Planets),
		Constellations: len(g.Constellations),
		Warps:          len(g.Warps),
		Wormholes:      g.Wormholes(),
	}

	starTypes := tally{}
	points := make([]geometry.Point, 0, len(g.Stars))
	for _, star := range g.Stars {
		starTypes.add(star.Type, 1)
		points = append(points, star.Position)

		n := len(star.Planets)
		for len(s.PlanetsPerSystem) <= n {
			s.PlanetsPerSystem = append(s.PlanetsPerSystem, 0)
		}
		s.PlanetsPerSystem[n]++
	}
	s.StarTypes = starTypes.sorted()

	types, sizes, anomalies, temples := tally{}, tally{}, tally{}, tally{}
	strategic, luxury := tally{}, tally{}
	for _, p := range g.Planets {
		types.add(p.Type, 1)
		sizes.add(p.Size, 1)
		anomalies.add(p.Anomaly, 1)
		s.Moons += len(p.Moons)
		for _, m := range p.Moons {
			if m != galaxy.NoTemple {
				temples.add(m, 1)
			}
		}
		if d := p.Deposit; d != nil {
			if d.Kind == galaxy.Luxury {
				luxury.add(d.Name, d.Size)
			} else {
				strategic.add(d.Name, d.Size)
			}
		}
	}
	s.PlanetTypes = types.sorted()
	s.PlanetSizes = sizes.sorted()
	s.Anomalies = anomalies.sorted()
	s.Temples = temples.sorted()
	s.Strategic = strategic.sorted()
	s.Luxury = luxury.sorted()

	s.Connectivity = connectivity(g)

	r := geometry.Bounds(points)
	s.Bounds = Bounds{MinX: r.Min.X, MinY: r.Min.Y, MaxX: r.Max.X, MaxY: r.Max.Y}
	s.Diameter = diameter(g)
	return s
}

func connectivity(g *galaxy.Galaxy) Connectivity {
	var c Connectivity
	if len(g.Stars) == 0 {
		return c
	}

	wormholes := make([]int, len(g.Stars))
	for _, w := range g.Warps {
		if w.Wormhole {
			wormholes[w.A]++
			wormholes[w.B]++
		}
	}

	c.Min = g.Stars[0].Degree()
	total := 0
	for _, star := range g.Stars {
		d := star.Degree()
		total += d
		if d < c.Min {
			c.Min = d
		}
		if d > c.Max {
			c.Max = d
		}
		if wormholes[star.ID] > c.MaxWormholes {
			c.MaxWormholes = wormholes[star.ID]
		}
		for len(c.Degrees) <= d {
			c.Degrees = append(c.Degrees, 0)
		}
		c.Degrees[d]++
	}
	c.Average = float64(total) / float64(len(g.Stars))
	return c
}

// diameter uses the warp distance tables when present
func diameter(g *galaxy.Galaxy) int {
	max := 0
	for _, star := range g.Stars {
		for _, d := range star.WarpDistance {
			if d > max {
				max = d
			}
		}
	}
	return max
}

// Format renders the summary as a text report
func (s *Stats) Format() string {
	var out strings.Builder

	out.WriteString(fmt.Sprintf("Stars: %d  Planets: %d  Moons: %d\n", s.Stars, s.Planets, s.Moons))
	out.WriteString(fmt.Sprintf("Constellations: %d  Warps: %d  Wormholes: %d\n", s.Constellations, s.Warps, s.Wormholes))
	out.WriteString(fmt.Sprintf("Bounds: (%.1f, %.1f) - (%.1f, %.1f)  Diameter: %d jumps\n",
		s.Bounds.MinX, s.Bounds.MinY, s.Bounds.MaxX, s.Bounds.MaxY, s.Diameter))
	out.WriteString(strings.Repeat("=", 60) + "\n")

	writeCounts(&out, "Star types", s.StarTypes)
	writeHistogram(&out, "Planets per system", s.PlanetsPerSystem)
	writeCounts(&out, "Planet types", s.PlanetTypes)
	writeCounts(&out, "Planet sizes", s.PlanetSizes)
	writeCounts(&out, "Anomalies", s.Anomalies)
	writeCounts(&out, "Temples", s.Temples)
	writeCounts(&out, "Strategic resources", s.Strategic)
	writeCounts(&out, "Luxury resources", s.Luxury)

	c := s.Connectivity
	out.WriteString(fmt.Sprintf("Connectivity: avg %.2f  min %d  max %d  max wormholes per star %d\n",
		c.Average, c.Min, c.Max, c.MaxWormholes))
	writeHistogram(&out, "Warps per star", c.Degrees)
	return out.String()
}

func writeCounts(out *strings.Builder, title string, counts []Count) {
	out.WriteString(title + ":\n")
	if len(counts) == 0 {
		out.WriteString("  (none)\n")
		return
	}
	for _, c := range counts {
		out.WriteString(fmt.Sprintf("  %-16s %5d\n", c.Name, c.Count))
	}
}

func writeHistogram(out *strings.Builder, title string, bins []int) {
	out.WriteString(title + ":\n")
	for n, count := range bins {
		if count == 0 {
			continue
		}
		out.WriteString(fmt.Sprintf("  %2d %5d %s\n", n, count, strings.Repeat("#", (count+4)/5)))
	}
}
