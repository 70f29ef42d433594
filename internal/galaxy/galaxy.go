// Package galaxy holds the generated galaxy model and the per-attempt
// generation context shared by the builder stages.
//
// Entities live in slices on Galaxy and refer to each other by index: a star's
// ID is its position in Galaxy.Stars, a planet's ID its position in
// Galaxy.Planets, and so on. Nothing keeps a pointer to another entity.
package galaxy

import (
	"image/color"
	"sort"

	"github.com/lawnchairsociety/galaxygen/internal/geometry"
)

// MaxDepositSize bounds the size of a single resource deposit
const MaxDepositSize = 3

// NoTemple is the temple name of a moon without one
const NoTemple = "NoTemple"

// Kind of resource deposit
type Kind int

const (
	Strategic Kind = iota
	Luxury
)

func (k Kind) String() string {
	if k == Luxury {
		return "luxury"
	}
	return "strategic"
}

// Deposit is a resource deposit on a planet
type Deposit struct {
	Name   string
	Size   int
	Kind   Kind
	Planet int
}

// Planet belongs to exactly one star and carries at most one deposit
type Planet struct {
	ID      int
	Star    int
	Type    string
	Size    string
	Anomaly string
	Moons   []string // temple name per moon
	Deposit *Deposit

	InhibitedAnomalies  []string
	InhibitedLuxuries   []string
	InhibitedStrategics []string
}

// HasTemple reports whether any moon carries a temple
func (p *Planet) HasTemple() bool {
	for _, m := range p.Moons {
		if m != NoTemple {
			return true
		}
	}
	return false
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

// AnomalyInhibited reports whether name may not appear on the planet
func (p *Planet) AnomalyInhibited(name string) bool {
	return contains(p.InhibitedAnomalies, name)
}

// StrategicInhibited reports whether the strategic resource name is blocked
func (p *Planet) StrategicInhibited(name string) bool {
	return contains(p.InhibitedStrategics, name)
}

// LuxuryInhibited reports whether the luxury resource name is blocked
func (p *Planet) LuxuryInhibited(name string) bool {
	return contains(p.InhibitedLuxuries, name)
}

// Star is one star system
type Star struct {
	ID       int
	Name     string
	Position geometry.Point
	Type     string
	Region   color.RGBA

	Planets   []int
	HomeWorld int // index into Planets of the home world, -1 if none

	// Constellation is -1 until clustering assigns the star
	Constellation int

	// Destinations are the neighbor star IDs, sorted. Only the warp builder
	// writes them.
	Destinations []int

	// PreWarps are the neighbors reachable before constellations existed
	PreWarps []int

	DirectDistance []float64
	WarpDistance   []int
}

// Degree returns the number of warp connections
func (s *Star) Degree() int {
	return len(s.Destinations)
}

// Region is a color-keyed subset of stars
type Region struct {
	Color  color.RGBA
	Spawn  bool
	Weight int
	Stars  []int
}

// Constellation is a named group of stars
type Constellation struct {
	ID    int
	Name  string
	Stars []int
}

// Warp is an undirected link between two stars. A is always the lower ID.
type Warp struct {
	A, B     int
	Wormhole bool
}

// Galaxy is the output of one generation attempt.
type Galaxy struct {
	Stars          []*Star
	Planets        []*Planet
	Regions        []*Region
	Constellations []*Constellation
	Warps          []Warp

	// SpawnStars holds one home star per empire, in empire order
	SpawnStars []int
}

// New returns an empty galaxy
func New() *Galaxy {
	return &Galaxy{}
}

// AddStar appends a star and returns it
func (g *Galaxy) AddStar(pos geometry.Point, region color.RGBA) *Star {
	s := &Star{
		ID:            len(g.Stars),
		Position:      pos,
		Region:        region,
		HomeWorld:     -1,
		Constellation: -1,
	}
	g.Stars = append(g.Stars, s)
	return s
}

// AddPlanet appends a planet to star and returns it
func (g *Galaxy) AddPlanet(star int) *Planet {
	p := &Planet{ID: len(g.Planets), Star: star}
	g.Planets = append(g.Planets, p)
	g.Stars[star].Planets = append(g.Stars[star].Planets, p.ID)
	return p
}

// RemovePlanets detaches every planet of star. The planets stay in the arena
// with Star set to -1 so that IDs remain stable; Compact drops them.
func (g *Galaxy) RemovePlanets(star int) {
	for _, id := range g.Stars[star].Planets {
		g.Planets[id].Star = -1
	}
	g.Stars[star].Planets = nil
	g.Stars[star].HomeWorld = -1
}

// Compact drops detached planets and renumbers the rest
func (g *Galaxy) Compact() {
	remap := make([]int, len(g.Planets))
	var kept []*Planet
	for i, p := range g.Planets {
		if p.Star < 0 {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		p.ID = len(kept)
		if p.Deposit != nil {
			p.Deposit.Planet = p.ID
		}
		kept = append(kept, p)
	}
	g.Planets = kept
	for _, s := range g.Stars {
		for i, id := range s.Planets {
			s.Planets[i] = remap[id]
		}
	}
}

// AddConstellation appends an empty constellation and returns it
func (g *Galaxy) AddConstellation(name string) *Constellation {
	c := &Constellation{ID: len(g.Constellations), Name: name}
	g.Constellations = append(g.Constellations, c)
	return c
}

// Assign puts star into constellation c
func (g *Galaxy) Assign(star, c int) {
	g.Stars[star].Constellation = c
	g.Constellations[c].Stars = append(g.Constellations[c].Stars, star)
}

// Region returns the region keyed by c
func (g *Galaxy) Region(c color.RGBA) *Region {
	for _, r := range g.Regions {
		if r.Color == c {
			return r
		}
	}
	return nil
}

// SpawnRegions returns the spawn-eligible regions holding at least one star
func (g *Galaxy) SpawnRegions() []*Region {
	var out []*Region
	for _, r := range g.Regions {
		if r.Spawn && len(r.Stars) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// NeutralRegions returns the non-spawn regions holding at least one star
func (g *Galaxy) NeutralRegions() []*Region {
	var out []*Region
	for _, r := range g.Regions {
		if !r.Spawn && len(r.Stars) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// ComputeDirectDistances fills every star's direct distance table
func (g *Galaxy) ComputeDirectDistances() {
	n := len(g.Stars)
	for _, s := range g.Stars {
		s.DirectDistance = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geometry.Distance(g.Stars[i].Position, g.Stars[j].Position)
			g.Stars[i].DirectDistance[j] = d
			g.Stars[j].DirectDistance[i] = d
		}
	}
}

// Distance returns the direct distance between two stars
func (g *Galaxy) Distance(a, b int) float64 {
	if t := g.Stars[a].DirectDistance; t != nil {
		return t[b]
	}
	return geometry.Distance(g.Stars[a].Position, g.Stars[b].Position)
}

// Unreachable is the warp distance between disconnected stars
const Unreachable = -1

// ComputeWarpDistances fills every star's hop distance table by BFS over Destinations
func (g *Galaxy) ComputeWarpDistances() {
	n := len(g.Stars)
	for _, s := range g.Stars {
		dist := make([]int, n)
		for i := range dist {
			dist[i] = Unreachable
		}
		dist[s.ID] = 0
		queue := []int{s.ID}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range g.Stars[cur].Destinations {
				if dist[next] == Unreachable {
					dist[next] = dist[cur] + 1
					queue = append(queue, next)
				}
			}
		}
		s.WarpDistance = dist
	}
}

// SetWarps replaces the warp list and rebuilds every star's Destinations
func (g *Galaxy) SetWarps(warps []Warp) {
	g.Warps = warps
	for _, s := range g.Stars {
		s.Destinations = nil
	}
	for _, w := range warps {
		g.Stars[w.A].Destinations = append(g.Stars[w.A].Destinations, w.B)
		g.Stars[w.B].Destinations = append(g.Stars[w.B].Destinations, w.A)
	}
	for _, s := range g.Stars {
		sort.Ints(s.Destinations)
	}
}

// IsWormhole reports whether a link between a and b crosses constellations
func (g *Galaxy) IsWormhole(a, b int) bool {
	return g.Stars[a].Constellation != g.Stars[b].Constellation
}

// Wormholes returns the number of wormhole links
func (g *Galaxy) Wormholes() int {
	n := 0
	for _, w := range g.Warps {
		if w.Wormhole {
			n++
		}
	}
	return n
}

// Deposits returns every deposit of the given kind, in planet order
func (g *Galaxy) Deposits(kind Kind) []*Deposit {
	var out []*Deposit
	for _, p := range g.Planets {
		if p.Deposit != nil && p.Deposit.Kind == kind {
			out = append(out, p.Deposit)
		}
	}
	return out
}

// HomeWorld returns the home world planet of star, or nil
func (g *Galaxy) HomeWorld(star int) *Planet {
	s := g.Stars[star]
	if s.HomeWorld < 0 || s.HomeWorld >= len(s.Planets) {
		return nil
	}
	return g.Planets[s.Planets[s.HomeWorld]]
}

// IsSpawn reports whether star is an empire home
func (g *Galaxy) IsSpawn(star int) bool {
	for _, s := range g.SpawnStars {
		if s == star {
			return true
		}
	}
	return false
}
