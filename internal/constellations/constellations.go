// Package constellations partitions the stars of a galaxy into named
// constellations.
package constellations

import (
	"fmt"
	"math"
	"sort"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/geometry"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
)

// maxFactor bounds the per-region constellation counts tried when spreading
// constellations over spawn and neutral regions.
const maxFactor = 20

// Builder groups stars into constellations
type Builder struct{}

// New creates a constellation builder
func New() *Builder {
	return &Builder{}
}

func (b *Builder) Name() string { return "Constellation" }

// Execute partitions every star into exactly one constellation
func (b *Builder) Execute(ctx *galaxy.Context) error {
	log := logger.With("constellations")
	g := ctx.Galaxy
	min := ctx.Params.MinStarsPerConstellation

	k := ctx.Params.Constellations
	for k > 1 && k*min > len(g.Stars) {
		k--
	}
	if k < 1 {
		k = 1
	}
	if k < ctx.Params.Constellations {
		ctx.Defect(b.Name(), "Number of constellations was limited by stars number")
	}

	spawn := g.SpawnRegions()
	neutral := g.NeutralRegions()
	populated := append(append([]*galaxy.Region(nil), spawn...), neutral...)
	log.Debug("clustering", "constellations", k, "spawn_regions", len(spawn), "neutral_regions", len(neutral))

	c := &clusterer{ctx: ctx, min: min}
	switch {
	case k == 1:
		c.commit([][]int{allStars(g)})
	case k == len(populated):
		for _, r := range g.Regions {
			if len(r.Stars) > 0 {
				c.commit([][]int{r.Stars})
			}
		}
	default:
		c.distribute(k, spawn, neutral)
		if len(g.Constellations) == 0 {
			c.split(k, allStars(g))
			ctx.Defect(b.Name(), "Unable to correlate regions and constellations")
		}
		c.aggregateIsolated()
	}

	log.Debug("clustering done", "constellations", len(g.Constellations))
	return nil
}

func allStars(g *galaxy.Galaxy) []int {
	ids := make([]int, len(g.Stars))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func regionStars(regions []*galaxy.Region) []int {
	var pool []int
	for _, r := range regions {
		pool = append(pool, r.Stars...)
	}
	return pool
}

type clusterer struct {
	ctx *galaxy.Context
	min int
}

// distribute spreads k constellations over the regions
func (c *clusterer) distribute(k int, spawn, neutral []*galaxy.Region) {
	factorA, factorB, match := 0, 0, false
	for a := 1; a < maxFactor; a++ {
		for b := 0; b < maxFactor; b++ {
			if a*len(spawn)+b*len(neutral) == k {
				factorA, factorB, match = a, b, true
			}
		}
	}

	if match {
		for _, r := range spawn {
			c.split(factorA, r.Stars)
		}
		if factorB > 0 {
			for _, r := range neutral {
				c.split(factorB, r.Stars)
			}
		}
		return
	}

	if k >= len(spawn) {
		for _, r := range spawn {
			c.split(1, r.Stars)
		}
		if k-len(spawn) > 0 {
			c.split(k-len(spawn), regionStars(neutral))
		}
		return
	}

	c.mergeByTopology(k, spawn, neutral)
}

// mergeByTopology groups adjacent spawn regions so that fewer constellations
// than spawn regions still each cover whole regions.
func (c *clusterer) mergeByTopology(k int, spawn, neutral []*galaxy.Region) {
	g := c.ctx.Galaxy
	src := c.ctx.Rand

	factor := 1
	for factor*k < len(spawn) {
		factor++
	}

	remaining := append([]*galaxy.Region(nil), spawn...)
	start := remaining[src.Next(len(remaining))]
	for start != nil && len(remaining) >= factor && len(g.Constellations) < k {
		remaining = without(remaining, start)
		merged := []*galaxy.Region{start}

		for i := 0; i < factor-1; i++ {
			adjacent := c.adjacentTo(merged, remaining)
			if len(adjacent) == 0 {
				break
			}
			next := adjacent[src.Next(len(adjacent))]
			merged = append(merged, next)
			remaining = without(remaining, next)
		}

		c.split(1, regionStars(merged))

		start = nil
		if next := c.adjacentTo(merged, remaining); len(next) > 0 {
			start = next[src.Next(len(next))]
		} else if len(remaining) > 0 {
			start = remaining[src.Next(len(remaining))]
		}
	}

	pool := append(regionStars(remaining), regionStars(neutral)...)
	c.split(k-len(g.Constellations), pool)
}

// adjacentTo returns the regions of candidates adjacent to any region of set
func (c *clusterer) adjacentTo(set, candidates []*galaxy.Region) []*galaxy.Region {
	var out []*galaxy.Region
	for _, cand := range candidates {
		for _, r := range set {
			if c.ctx.Shape.Adjacent(r.Color, cand.Color) {
				out = append(out, cand)
				break
			}
		}
	}
	return out
}

func without(regions []*galaxy.Region, r *galaxy.Region) []*galaxy.Region {
	out := regions[:0:0]
	for _, x := range regions {
		if x != r {
			out = append(out, x)
		}
	}
	return out
}

// split builds up to n constellations out of pool. Foci are spread evenly on a
// circle around the pool centroid; every star joins the constellation of its
// nearest focus once starved constellations are fed.
func (c *clusterer) split(n int, pool []int) {
	if n <= 0 || len(pool) == 0 {
		return
	}
	g := c.ctx.Galaxy

	for n > 1 && n*c.min > len(pool) {
		n--
	}

	points := make([]geometry.Point, len(pool))
	for i, id := range pool {
		points[i] = g.Stars[id].Position
	}
	center := geometry.Centroid(points)

	radius := 0.0
	for _, p := range points {
		radius = math.Max(radius, geometry.Distance(center, p))
	}
	radius *= 1.1

	// the star with the farthest partner fixes the start angle
	diametral := center
	best := 0.0
	for _, a := range pool {
		for _, b := range pool {
			if d := g.Distance(a, b); d > best {
				best = d
				diametral = g.Stars[a].Position
			}
		}
	}
	startAngle := geometry.Bearing(center, diametral)

	foci := make([]geometry.Point, n)
	for i := range foci {
		angle := float64(i)*360/float64(n) + startAngle
		foci[i] = center.Plus(geometry.FromPolar(radius, angle))
	}

	remaining := append([]int(nil), pool...)
	groups := make([][]int, n)
	for i, focus := range foci {
		if len(remaining) == 0 {
			break
		}
		j := nearestTo(g, focus, remaining)
		groups[i] = append(groups[i], remaining[j])
		remaining = append(remaining[:j], remaining[j+1:]...)
	}

	groups, remaining = c.feedStarved(groups, remaining)

	for _, id := range remaining {
		best, bestDistance := 0, math.Inf(1)
		for i, focus := range foci {
			if d := geometry.Distance(g.Stars[id].Position, focus); d < bestDistance {
				best, bestDistance = i, d
			}
		}
		groups[best] = append(groups[best], id)
	}

	c.commit(groups)
}

func nearestTo(g *galaxy.Galaxy, p geometry.Point, stars []int) int {
	best, bestDistance := -1, math.Inf(1)
	for i, id := range stars {
		if d := geometry.Distance(g.Stars[id].Position, p); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	return best
}

// feedStarved moves pool stars into non-empty groups below the minimum
// population, one closest (star, group) pair at a time.
func (c *clusterer) feedStarved(groups [][]int, pool []int) ([][]int, []int) {
	g := c.ctx.Galaxy
	for len(pool) > 0 {
		bestGroup, bestStar := -1, -1
		bestDistance := math.Inf(1)
		for gi, members := range groups {
			if len(members) == 0 || len(members) >= c.min {
				continue
			}
			for pi, id := range pool {
				for _, m := range members {
					if d := g.Distance(id, m); d < bestDistance {
						bestGroup, bestStar, bestDistance = gi, pi, d
					}
				}
			}
		}
		if bestGroup < 0 {
			break
		}
		groups[bestGroup] = append(groups[bestGroup], pool[bestStar])
		pool = append(pool[:bestStar], pool[bestStar+1:]...)
	}
	return groups, pool
}

// commit turns non-empty groups into named constellations
func (c *clusterer) commit(groups [][]int) {
	g := c.ctx.Galaxy
	for _, members := range groups {
		if len(members) == 0 {
			continue
		}
		name := c.ctx.ConstellationNames.Next(c.ctx.Rand)
		if name == "" {
			name = fmt.Sprintf("Constellation %d", len(g.Constellations))
		}
		con := g.AddConstellation(name)
		for _, id := range members {
			g.Assign(id, con.ID)
		}
	}
}

// aggregateIsolated attaches every unassigned star to an existing
// constellation: first by feeding starved ones, then each remaining star goes
// to its nearest assigned neighbor in the same or an adjacent region, falling
// back to the nearest assigned neighbor at all.
func (c *clusterer) aggregateIsolated() {
	g := c.ctx.Galaxy

	var isolated []int
	for _, s := range g.Stars {
		if s.Constellation < 0 {
			isolated = append(isolated, s.ID)
		}
	}
	if len(isolated) == 0 || len(g.Constellations) == 0 {
		return
	}

	groups := make([][]int, len(g.Constellations))
	for i, con := range g.Constellations {
		groups[i] = append([]int(nil), con.Stars...)
	}
	fed, isolated := c.feedStarved(groups, isolated)
	for i, members := range fed {
		for _, id := range members[len(g.Constellations[i].Stars):] {
			g.Assign(id, i)
		}
	}

	var others []int
	for _, s := range g.Stars {
		if s.Constellation >= 0 {
			others = append(others, s.ID)
		}
	}

	type taker struct{ star, constellation int }
	var takers []taker
	for len(isolated) > 0 {
		i := c.ctx.Rand.Next(len(isolated))
		star := isolated[i]
		isolated = append(isolated[:i], isolated[i+1:]...)

		byDistance := append([]int(nil), others...)
		sort.SliceStable(byDistance, func(a, b int) bool {
			return g.Distance(star, byDistance[a]) < g.Distance(star, byDistance[b])
		})

		target := g.Stars[byDistance[0]].Constellation
		for _, id := range byDistance {
			if c.ctx.Shape.Connectable(g.Stars[id].Region, g.Stars[star].Region) {
				target = g.Stars[id].Constellation
				break
			}
		}
		takers = append(takers, taker{star: star, constellation: target})
	}

	for _, t := range takers {
		g.Assign(t.star, t.constellation)
	}
}
