// Package spawn picks one home star per empire.
package spawn

import (
	"image/color"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/geometry"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
	"github.com/lawnchairsociety/galaxygen/internal/rng"
)

// Connection scores, favoring stars well linked inside their own region.
const (
	wormholeScore    = 1
	crossRegionScore = 2
	sameRegionScore  = 5
)

// Builder places the empire home stars
type Builder struct{}

// New creates a spawn builder
func New() *Builder {
	return &Builder{}
}

func (b *Builder) Name() string { return "Spawn" }

// Execute fills Galaxy.SpawnStars with Params.Empires distinct stars
func (b *Builder) Execute(ctx *galaxy.Context) error {
	log := logger.With("spawn")
	g := ctx.Galaxy
	want := ctx.Params.Empires
	log.Debug("placing empires", "empires", want)

	p := &placer{ctx: ctx, claimed: make([]bool, len(g.Stars))}
	sequence := p.sequence()

	// primary phase: regions take turns until every one runs out of stars
	// far enough from the claimed ones
	active := make(map[color.RGBA]bool, len(sequence))
	for _, r := range sequence {
		active[r.Color] = true
	}
	for len(g.SpawnStars) < want && len(active) > 0 {
		for _, r := range sequence {
			if len(g.SpawnStars) >= want {
				break
			}
			if !active[r.Color] {
				continue
			}
			candidates := p.primaryCandidates(r)
			if len(candidates) == 0 {
				delete(active, r.Color)
				continue
			}
			p.claim(p.farthest(candidates))
		}
	}

	if len(g.SpawnStars) < want {
		ctx.Defect(b.Name(), "Using downgraded spawn algorithm")
		log.Debug("downgraded spawn", "placed", len(g.SpawnStars), "empires", want)
		p.downgraded(sequence, want)
	}

	if len(g.SpawnStars) < want {
		ctx.Fatal(b.Name(), "Failed to spawn - Not enough empires were spawned")
		return nil
	}

	spawns := g.SpawnStars
	rng.Shuffle(ctx.Rand, len(spawns), func(i, j int) {
		spawns[i], spawns[j] = spawns[j], spawns[i]
	})
	log.Debug("empires placed", "spawns", spawns)
	return nil
}

type placer struct {
	ctx     *galaxy.Context
	claimed []bool
}

// sequence returns the populated spawn regions in spawner order. Shapes
// without a spawner sequence use legend order.
func (p *placer) sequence() []*galaxy.Region {
	g := p.ctx.Galaxy
	var out []*galaxy.Region
	seen := make(map[color.RGBA]bool)
	for _, c := range p.ctx.Shape.SpawnerSequence {
		r := g.Region(c)
		if r == nil || !r.Spawn || len(r.Stars) == 0 || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, r)
	}
	if len(out) == 0 {
		out = g.SpawnRegions()
	}
	return out
}

func (p *placer) claim(star int) {
	p.claimed[star] = true
	p.ctx.Galaxy.SpawnStars = append(p.ctx.Galaxy.SpawnStars, star)
}

// interdicted reports whether star lies too close to a claimed star
func (p *placer) interdicted(star int) bool {
	g := p.ctx.Galaxy
	for _, s := range g.SpawnStars {
		if g.Distance(star, s) < p.ctx.Params.MinEmpireDistance {
			return true
		}
	}
	return false
}

func (p *placer) primaryCandidates(r *galaxy.Region) []int {
	g := p.ctx.Galaxy

	var candidates []int
	for _, id := range r.Stars {
		if !p.claimed[id] && !p.interdicted(id) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var connected []int
	for _, id := range candidates {
		if g.Stars[id].Degree() > 1 {
			connected = append(connected, id)
		}
	}
	if len(connected) > 0 {
		candidates = connected
	}

	best := 0
	scores := make([]int, len(candidates))
	for i, id := range candidates {
		scores[i] = Score(g, id)
		if scores[i] > best {
			best = scores[i]
		}
	}
	var top []int
	for i, id := range candidates {
		if scores[i] == best {
			top = append(top, id)
		}
	}
	return top
}

// downgraded places the missing empires without the separation filter. A
// region out of free stars draws from the whole galaxy.
func (p *placer) downgraded(sequence []*galaxy.Region, want int) {
	g := p.ctx.Galaxy
	for turn := 0; len(g.SpawnStars) < want; turn++ {
		var candidates []int
		if len(sequence) > 0 {
			for _, id := range sequence[turn%len(sequence)].Stars {
				if !p.claimed[id] {
					candidates = append(candidates, id)
				}
			}
		}
		if len(candidates) == 0 {
			for _, s := range g.Stars {
				if !p.claimed[s.ID] {
					candidates = append(candidates, s.ID)
				}
			}
		}
		if len(candidates) == 0 {
			return
		}
		p.claim(p.farthest(candidates))
	}
}

// farthest returns the candidate with the largest summed distance to the
// claimed stars, or a random candidate when none is claimed yet.
func (p *placer) farthest(candidates []int) int {
	g := p.ctx.Galaxy
	if len(g.SpawnStars) == 0 {
		return rng.Pick(p.ctx.Rand, candidates)
	}

	best, bestSum := candidates[0], -1.0
	for _, id := range candidates {
		sum := 0.0
		for _, s := range g.SpawnStars {
			sum += geometry.Distance(g.Stars[id].Position, g.Stars[s].Position)
		}
		if sum > bestSum {
			best, bestSum = id, sum
		}
	}
	return best
}

// Score rates the warps of star: wormholes count 1, links leaving the region
// 2 and links inside the region 5.
func Score(g *galaxy.Galaxy, star int) int {
	s := g.Stars[star]
	score := 0
	for _, to := range s.Destinations {
		switch {
		case g.IsWormhole(star, to):
			score += wormholeScore
		case g.Stars[to].Region != s.Region:
			score += crossRegionScore
		default:
			score += sameRegionScore
		}
	}
	return score
}
