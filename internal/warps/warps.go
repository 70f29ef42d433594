// Package warps builds the warp network linking the stars of a galaxy.
//
// The builder runs twice per attempt. The first pass lays out a connected
// network over the regions before constellations exist; the second pass,
// run once constellations are known, flags wormholes and thins the network
// down to the requested connectivity.
package warps

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/geometry"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
	"github.com/lawnchairsociety/galaxygen/internal/triangulation"
)

// ErrPassesExhausted is returned when Execute is called after both passes ran.
var ErrPassesExhausted = errors.New("warps: both passes already executed")

// nearStarRatio is the fraction of a link's length within which a third
// star's reflection disqualifies the link.
const nearStarRatio = 0.2

// wormholeSlack scales the wormhole connectivity target before clutter is
// reduced.
const wormholeSlack = 1.5

// State tracks the progress of the builder between passes
type State int

const (
	Uninitialized State = iota
	Pass1Done
	Pass2Done
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Pass1Done:
		return "Pass1Done"
	case Pass2Done:
		return "Pass2Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Builder is the two-pass warp network builder. A Builder serves a single
// generation attempt.
type Builder struct {
	state State
	net   *network
}

// New creates a warp builder
func New() *Builder {
	return &Builder{}
}

func (b *Builder) Name() string { return "Warp" }

// State returns the passes completed so far
func (b *Builder) State() State { return b.state }

// Execute runs the next pass
func (b *Builder) Execute(ctx *galaxy.Context) error {
	switch b.state {
	case Uninitialized:
		b.state = Pass1Done
		b.firstPass(ctx)
		return nil
	case Pass1Done:
		b.state = Pass2Done
		if b.net == nil {
			ctx.Fatal(b.Name(), "No stars available")
			return nil
		}
		b.secondPass(ctx)
		return nil
	default:
		return ErrPassesExhausted
	}
}

func (b *Builder) firstPass(ctx *galaxy.Context) {
	log := logger.With("warps")
	g := ctx.Galaxy
	if len(g.Stars) == 0 {
		ctx.Fatal(b.Name(), "No stars available")
		return
	}

	net := newNetwork(g)
	b.net = net

	b.createRaw(ctx)
	log.Debug("raw network", "links", len(net.links))

	pruned := b.removeCloseToStar()
	log.Debug("pruned links passing near stars", "removed", pruned)

	net.scopes = topologyScopes(ctx)
	added := 0
	for _, s := range net.scopes {
		added += net.forceConnect(s)
	}
	all := newScope("galaxy", len(g.Stars), allStars(g))
	added += net.forceConnect(all)
	net.scopes = append(net.scopes, all)
	log.Debug("forced connectivity", "added", added, "links", len(net.links))

	if !net.fullyConnected() {
		ctx.Fatal(b.Name(), "Unable to fully connect")
		return
	}

	for _, l := range net.links {
		g.Stars[l.a].PreWarps = append(g.Stars[l.a].PreWarps, l.b)
		g.Stars[l.b].PreWarps = append(g.Stars[l.b].PreWarps, l.a)
	}
	for _, s := range g.Stars {
		sort.Ints(s.PreWarps)
	}
}

// createRaw keeps the Delaunay edges between connectable stars
func (b *Builder) createRaw(ctx *galaxy.Context) {
	g := ctx.Galaxy
	vertices := make([]triangulation.Vertex, len(g.Stars))
	for i, s := range g.Stars {
		vertices[i] = triangulation.Vertex{Point: s.Position, Label: s.ID}
	}

	triangles, err := triangulation.Triangulate(vertices)
	if err != nil {
		// fewer than three stars: forceConnect links them
		return
	}
	for _, e := range triangulation.Edges(triangles) {
		a, c := vertices[e.A].Label, vertices[e.B].Label
		if ctx.Shape.Connectable(g.Stars[a].Region, g.Stars[c].Region) {
			b.net.add(newLink(a, c))
		}
	}
}

// removeCloseToStar drops links running too close to a third star
func (b *Builder) removeCloseToStar() int {
	g := b.net.g
	removed := b.net.remove(func(_ int, l link) bool {
		a, c := g.Stars[l.a].Position, g.Stars[l.b].Position
		limit := nearStarRatio * geometry.Distance(a, c)
		for _, s := range g.Stars {
			if s.ID == l.a || s.ID == l.b {
				continue
			}
			p := geometry.Symmetrical(s.Position, a, c)
			if geometry.Intersect(a, c, s.Position, p).Kind != geometry.InsideSegment {
				continue
			}
			if geometry.Distance(s.Position, p) < limit {
				return true
			}
		}
		return false
	})
	return len(removed)
}

// topologyScopes returns one scope per topology link, holding the stars of
// both regions
func topologyScopes(ctx *galaxy.Context) []scope {
	g := ctx.Galaxy
	var scopes []scope
	for _, l := range ctx.Shape.Topology {
		var stars []int
		for _, c := range []color.RGBA{l.A, l.B} {
			if r := g.Region(c); r != nil {
				stars = append(stars, r.Stars...)
			}
		}
		if len(stars) == 0 {
			continue
		}
		name := shape.FormatColor(l.A) + "-" + shape.FormatColor(l.B)
		scopes = append(scopes, newScope(name, len(g.Stars), stars))
	}
	return scopes
}

func allStars(g *galaxy.Galaxy) []int {
	ids := make([]int, len(g.Stars))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (b *Builder) secondPass(ctx *galaxy.Context) {
	log := logger.With("warps")
	g := ctx.Galaxy
	net := b.net

	var constellationScopes []scope
	for _, c := range g.Constellations {
		s := newScope(c.Name, len(g.Stars), c.Stars)
		net.forceConnect(s)
		constellationScopes = append(constellationScopes, s)
	}
	net.scopes = append(constellationScopes, net.scopes...)

	for i := range net.links {
		l := &net.links[i]
		l.wormhole = g.IsWormhole(l.a, l.b)
	}
	log.Debug("second pass", "links", len(net.links), "wormholes", net.wormholes())

	eliminated := b.eliminateCrossers(ctx)
	log.Debug("eliminated crossing links", "removed", eliminated)

	reduced := b.reduceConnectivity(ctx)
	log.Debug("reduced connectivity", "removed", reduced, "average", net.averageDegree())

	cleared := b.reduceWormholeClutter(ctx)
	log.Debug("reduced wormholes", "removed", cleared, "wormholes", net.wormholes())

	if !net.fullyConnected() {
		ctx.Fatal(b.Name(), "Unable to fully connect")
		return
	}

	warps := make([]galaxy.Warp, len(net.links))
	for i, l := range net.links {
		warps[i] = galaxy.Warp{A: l.a, B: l.b, Wormhole: l.wormhole}
	}
	sort.Slice(warps, func(i, j int) bool {
		if warps[i].A != warps[j].A {
			return warps[i].A < warps[j].A
		}
		return warps[i].B < warps[j].B
	})
	g.SetWarps(warps)
	g.ComputeWarpDistances()
}

// eliminateCrossers removes links crossing each other. A random crossing link
// is kept and everything it crosses is removed; when that breaks a scope the
// removed links come back and the kept one is marked a breaker.
func (b *Builder) eliminateCrossers(ctx *galaxy.Context) int {
	net := b.net
	crossing := net.crossings()

	// links are addressed by their index at the start of elimination
	initial := append([]link(nil), net.links...)
	alive := make([]bool, len(initial))
	for i := range alive {
		alive[i] = true
	}
	breaker := make([]bool, len(initial))

	removed := 0
	for iterations := 0; iterations <= 2*len(initial); iterations++ {
		var crossers []int
		for i := range initial {
			if !alive[i] || breaker[i] {
				continue
			}
			for _, j := range crossing[i] {
				if alive[j] {
					crossers = append(crossers, i)
					break
				}
			}
		}
		if len(crossers) == 0 {
			break
		}

		pick := crossers[ctx.Rand.Next(len(crossers))]
		var victims []int
		for _, j := range crossing[pick] {
			if alive[j] {
				victims = append(victims, j)
			}
		}
		drop := make(map[[2]int]bool, len(victims))
		for _, j := range victims {
			alive[j] = false
			drop[[2]int{initial[j].a, initial[j].b}] = true
		}
		net.remove(func(_ int, l link) bool { return drop[[2]int{l.a, l.b}] })

		if net.fullyConnected() {
			removed += len(victims)
			continue
		}
		for _, j := range victims {
			alive[j] = true
			net.add(initial[j])
		}
		breaker[pick] = true
	}
	return removed
}

// reduceConnectivity removes random non-critical regular links until the
// average degree reaches the star connectivity target
func (b *Builder) reduceConnectivity(ctx *galaxy.Context) int {
	net := b.net
	target := ctx.Params.StarConnectivity
	removed := 0
	for net.averageDegree() > target {
		candidates := b.removable(false)
		if len(candidates) == 0 {
			break
		}
		net.removeAt(candidates[ctx.Rand.Next(len(candidates))])
		removed++
	}
	return removed
}

// reduceWormholeClutter removes random non-critical wormholes while there are
// too many per constellation
func (b *Builder) reduceWormholeClutter(ctx *galaxy.Context) int {
	net := b.net
	constellations := len(ctx.Galaxy.Constellations)
	if constellations == 0 {
		return 0
	}
	limit := wormholeSlack * ctx.Params.WormholeConnectivity
	removed := 0
	for 2*float64(net.wormholes())/float64(constellations) > limit {
		candidates := b.removable(true)
		if len(candidates) == 0 {
			break
		}
		net.removeAt(candidates[ctx.Rand.Next(len(candidates))])
		removed++
	}
	return removed
}

// removable lists the indices of non-critical links of the given kind
func (b *Builder) removable(wormhole bool) []int {
	crit := b.net.critical()
	var out []int
	for i, l := range b.net.links {
		if l.wormhole == wormhole && !crit[i] {
			out = append(out, i)
		}
	}
	return out
}

func intersects(a, b, c, d geometry.Point) bool {
	return geometry.Intersect(a, b, c, d).Kind == geometry.InsideSegment
}
