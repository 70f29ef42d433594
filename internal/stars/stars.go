// Package stars places the star systems of a galaxy and builds its regions.
package stars

import (
	"fmt"
	"image/color"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/geometry"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
	"github.com/lawnchairsociety/galaxygen/internal/settings"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
)

const (
	// densityTries bounds the acceptance draws against the density map.
	// The last draw is kept when every try is rejected.
	densityTries = 120

	// positionTries bounds the draws that land on black space
	positionTries = 50

	// localRetries bounds the candidates tried for one star
	localRetries = 100
)

// Builder places stars according to the shape and the population parameters.
type Builder struct{}

// New creates a star builder
func New() *Builder {
	return &Builder{}
}

func (b *Builder) Name() string { return "Star" }

// Execute places the population, builds the regions and fills the direct
// distance tables.
func (b *Builder) Execute(ctx *galaxy.Context) error {
	log := logger.With("stars")
	p := ctx.Params
	g := ctx.Galaxy

	balanced := int(float64(p.Population) * p.Balancing)
	random := p.Population - balanced
	log.Debug("placing stars", "balanced", balanced, "random", random)

	quotas := regionQuotas(ctx.Shape.Regions, balanced)
	if balanced > 0 && quotas == nil {
		ctx.Defect(b.Name(), "Predictable star population is insufficient for successful balancing")
		balanced = 0
		random = p.Population
	}

	counts := make(map[color.RGBA]int)
	placed, failed := 0, 0
	for placed < balanced && failed < 10*p.Population {
		pos, region, ok := b.candidate(ctx, func(c color.RGBA) bool {
			return counts[c] < quotas[c]
		})
		if !ok {
			failed++
			continue
		}
		b.place(ctx, pos, region)
		counts[region]++
		placed++
	}
	if placed < balanced {
		ctx.Defectf(b.Name(), "Could place only %d balanced stars iso %d", placed, balanced)
		random += balanced - placed
	}

	for i := 0; i < random; i++ {
		if pos, region, ok := b.candidate(ctx, nil); ok {
			b.place(ctx, pos, region)
		}
	}

	g.Regions = buildRegions(ctx.Shape, g.Stars)
	g.ComputeDirectDistances()

	log.Debug("stars placed", "count", len(g.Stars), "target", p.Population)

	switch {
	case len(g.Stars) < p.Population/5:
		ctx.Fatal(b.Name(), "Very few stars were generated")
		return nil
	case len(g.Stars) < 4*p.Population/5:
		ctx.Defect(b.Name(), "Abnormally few stars were generated")
	}

	if len(g.Stars) < p.Empires {
		ctx.Fatal(b.Name(), "More empires than generated stars")
	}
	return nil
}

// regionQuotas spreads balanced stars over the regions, whole weight cycles
// at a time. It returns nil when some region would get nothing.
func regionQuotas(regions []shape.Region, balanced int) map[color.RGBA]int {
	total := 0
	for _, r := range regions {
		total += r.Weight
	}
	if total <= 0 {
		return nil
	}
	cycles := balanced / total
	if cycles == 0 {
		return nil
	}

	quotas := make(map[color.RGBA]int, len(regions))
	for _, r := range regions {
		if r.Weight <= 0 {
			return nil
		}
		quotas[r.Color] = cycles * r.Weight
	}
	return quotas
}

// candidate draws positions until one is free of overlap and accepted by
// accept (nil accepts every region).
func (b *Builder) candidate(ctx *galaxy.Context, accept func(color.RGBA) bool) (geometry.Point, color.RGBA, bool) {
	for try := 0; try < localRetries; try++ {
		pos, region, ok := RandomPosition(ctx)
		if !ok {
			continue
		}
		if accept != nil && !accept(region) {
			continue
		}
		if overlaps(ctx, pos) {
			continue
		}
		return pos, region, true
	}
	return geometry.Point{}, shape.Black, false
}

// RandomPosition draws a galaxy position weighted by the density map and
// returns it with its region. Positions are centered on the origin, y up.
func RandomPosition(ctx *galaxy.Context) (geometry.Point, color.RGBA, bool) {
	src := ctx.Rand
	sh := ctx.Shape
	width := ctx.Params.MaxWidth

	for try := 0; try < positionTries; try++ {
		var x, y float64
		for d := 0; d < densityTries; d++ {
			x, y = src.NextDouble(), src.NextDouble()
			if src.NextDouble() <= sh.DensityAt(x, y) {
				break
			}
		}

		region := sh.Classify(x, y)
		if region == shape.Black {
			continue
		}
		pos := geometry.Point{
			X: x*width - width/2,
			Y: -(y*width - width/2),
		}
		return pos, region, true
	}
	return geometry.Point{}, shape.Black, false
}

func overlaps(ctx *galaxy.Context, pos geometry.Point) bool {
	for _, s := range ctx.Galaxy.Stars {
		if geometry.Distance(pos, s.Position) <= ctx.Params.MinStarDistance {
			return true
		}
	}
	return false
}

func (b *Builder) place(ctx *galaxy.Context, pos geometry.Point, region color.RGBA) {
	s := ctx.Galaxy.AddStar(pos, region)
	s.Name = ctx.StarNames.Next(ctx.Rand)
	if s.Name == "" {
		s.Name = fmt.Sprintf("Star %d", s.ID)
	}
	s.Type = settings.Draw(ctx.Rand, ctx.Params.StarTypes)
}

// buildRegions groups stars by region color, in shape legend order
func buildRegions(sh *shape.Shape, stars []*galaxy.Star) []*galaxy.Region {
	regions := make([]*galaxy.Region, len(sh.Regions))
	index := make(map[color.RGBA]int, len(sh.Regions))
	for i, r := range sh.Regions {
		regions[i] = &galaxy.Region{Color: r.Color, Spawn: r.Spawn, Weight: r.Weight}
		index[r.Color] = i
	}
	for _, s := range stars {
		if i, ok := index[s.Region]; ok {
			regions[i].Stars = append(regions[i].Stars, s.ID)
		}
	}
	return regions
}
