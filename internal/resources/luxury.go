package resources

import (
	"math"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
	"github.com/lawnchairsociety/galaxygen/internal/settings"
)

const (
	// luxuryQuantity is the number of site draws per luxury resource
	luxuryQuantity = 7

	// luxurySites bounds the distinct planets holding one luxury resource
	luxurySites = 4

	// luxuryMinimum is the total below which a luxury resource is removed
	luxuryMinimum = 4

	// closeTries is the number of candidates drawn when looking for a site
	// close to the source star
	closeTries = 3
)

// LuxuryBuilder clusters each chosen luxury resource around a random star
type LuxuryBuilder struct{}

// NewLuxury creates a luxury resource builder
func NewLuxury() *LuxuryBuilder {
	return &LuxuryBuilder{}
}

func (b *LuxuryBuilder) Name() string { return "Luxury" }

func (b *LuxuryBuilder) Execute(ctx *galaxy.Context) error {
	log := logger.With("luxury")
	g := ctx.Galaxy

	chosen := ChooseLuxuries(ctx, ctx.Params.LuxuryTypes)
	log.Debug("luxury resources chosen", "resources", chosen)
	if len(g.Stars) == 0 {
		return nil
	}

	for _, name := range chosen {
		b.allocate(ctx, name)
	}
	b.prune(ctx, chosen)
	log.Debug("luxury deposits placed", "deposits", len(g.Deposits(galaxy.Luxury)))
	return nil
}

// prune reports chosen resources that got no deposit and removes those
// whose total falls below luxuryMinimum
func (b *LuxuryBuilder) prune(ctx *galaxy.Context, chosen []string) {
	g := ctx.Galaxy
	totals := make(map[string]int, len(chosen))
	for _, d := range g.Deposits(galaxy.Luxury) {
		totals[d.Name] += d.Size
	}
	for _, name := range chosen {
		switch total := totals[name]; {
		case total == 0:
			ctx.Defectf(b.Name(), "%s could not be spawned", name)
		case total < luxuryMinimum:
			ctx.Defectf(b.Name(), "%s spawned quantity less than %d, removing...", name, luxuryMinimum)
			for _, p := range g.Planets {
				if p.Deposit != nil && p.Deposit.Kind == galaxy.Luxury && p.Deposit.Name == name {
					p.Deposit = nil
				}
			}
		}
	}
}

// ChooseLuxuries picks up to n distinct luxury resources, cycling through the
// tiers so that every tier gets represented.
func ChooseLuxuries(ctx *galaxy.Context, n int) []string {
	tiers := ctx.Settings.LuxuryTiers
	distinct := make(map[string]bool)
	for _, name := range ctx.Settings.LuxuryNames() {
		distinct[name] = true
	}
	if n > len(distinct) {
		n = len(distinct)
	}

	used := make(map[string]bool)
	var chosen []string
	for tier := 0; len(chosen) < n; tier = (tier + 1) % len(tiers) {
		var free []string
		for _, name := range tiers[tier].Names {
			if !used[name] {
				free = append(free, name)
			}
		}
		if len(free) == 0 {
			continue
		}
		name := free[ctx.Rand.Next(len(free))]
		used[name] = true
		chosen = append(chosen, name)
	}
	return chosen
}

// allocate grows up to luxurySites deposits of name around a random source
// star
func (b *LuxuryBuilder) allocate(ctx *galaxy.Context, name string) {
	g := ctx.Galaxy
	source := ctx.Rand.Next(len(g.Stars))

	// each free planet appears once per unit of affinity
	var sites []int
	distinct := 0
	for _, p := range g.Planets {
		if p.Deposit != nil || p.LuxuryInhibited(name) {
			continue
		}
		weight := settings.Scale(ctx.Settings.LuxuryScale, ctx.Settings.LuxuryLevel(p.Type, name))
		if weight <= 0 {
			continue
		}
		distinct++
		for i := 0; i < weight; i++ {
			sites = append(sites, p.ID)
		}
	}
	if distinct < 2 {
		return
	}

	used := make(map[int]bool)
	for i := 0; i < luxuryQuantity; i++ {
		pool := sites
		if len(used) < 2 {
			// the first two sites are always distinct
			pool = nil
			for _, id := range sites {
				if !used[id] {
					pool = append(pool, id)
				}
			}
		} else if len(used) >= luxurySites {
			pool = nil
			for _, id := range sites {
				if used[id] {
					pool = append(pool, id)
				}
			}
		}

		site := findClose(ctx, source, pool)
		used[site] = true

		p := g.Planets[site]
		switch {
		case p.Deposit == nil:
			p.Deposit = &galaxy.Deposit{Name: name, Size: 1, Kind: galaxy.Luxury, Planet: site}
		case p.Deposit.Size < galaxy.MaxDepositSize:
			p.Deposit.Size++
		}
	}
}

// findClose draws a few candidates and keeps the one nearest to source
func findClose(ctx *galaxy.Context, source int, candidates []int) int {
	g := ctx.Galaxy
	best, bestDistance := candidates[0], math.Inf(1)
	for i := 0; i < closeTries; i++ {
		id := candidates[ctx.Rand.Next(len(candidates))]
		if d := g.Distance(source, g.Planets[id].Star); d < bestDistance {
			best, bestDistance = id, d
		}
	}
	return best
}
