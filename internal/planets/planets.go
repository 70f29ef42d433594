// Package planets creates the planets of every star system and applies the
// home traits of the empire spawn stars.
package planets

import (
	"strconv"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
	"github.com/lawnchairsociety/galaxygen/internal/rng"
	"github.com/lawnchairsociety/galaxygen/internal/settings"
)

// Planet counts are clamped to this range
const (
	MinPlanets = 1
	MaxPlanets = 6
)

// Builder generates the planets of every star
type Builder struct{}

// New creates a planet builder
func New() *Builder {
	return &Builder{}
}

func (b *Builder) Name() string { return "Planet" }

func (b *Builder) Execute(ctx *galaxy.Context) error {
	log := logger.With("planets")
	for _, s := range ctx.Galaxy.Stars {
		Generate(ctx, s.ID, -1)
	}
	log.Debug("planets generated", "planets", len(ctx.Galaxy.Planets))
	return nil
}

// Generate replaces the planets of star with count new ones. A negative count
// draws from the planets-per-system table. The first planet is the home world.
func Generate(ctx *galaxy.Context, star, count int) {
	g := ctx.Galaxy
	if count < 0 {
		count, _ = strconv.Atoi(settings.Draw(ctx.Rand, ctx.Params.PlanetsPerSystem))
	}
	if count < MinPlanets {
		count = MinPlanets
	}
	if count > MaxPlanets {
		count = MaxPlanets
	}

	g.RemovePlanets(star)
	s := g.Stars[star]
	for i := 0; i < count; i++ {
		p := g.AddPlanet(star)
		Recreate(ctx, p, settings.Draw(ctx.Rand, ctx.Settings.PlanetTypes(s.Type)))
	}
	s.HomeWorld = 0
}

// Recreate turns p into a fresh planet of type planetType: size, moons and
// anomaly are drawn again. Inhibitions already set on p are kept.
func Recreate(ctx *galaxy.Context, p *galaxy.Planet, planetType string) {
	star := ctx.Galaxy.Stars[p.Star]
	p.Type = planetType
	p.Size = drawSize(ctx, planetType)
	p.Moons = drawMoons(ctx, planetType, star.Type)
	p.Anomaly = drawAnomaly(ctx, planetType)
	if p.AnomalyInhibited(p.Anomaly) {
		p.Anomaly = ""
	}
}

func drawSize(ctx *galaxy.Context, planetType string) string {
	sizes := ctx.Settings.PlanetSizes(planetType)
	weighted := make([]settings.Weight, len(sizes))
	for i, w := range sizes {
		factor := ctx.Params.SizeFactors.Get(w.Name)
		weighted[i] = settings.Weight{Name: w.Name, Weight: int(100 * float64(w.Weight) * factor)}
	}
	return settings.Draw(ctx.Rand, weighted)
}

func drawMoons(ctx *galaxy.Context, planetType, starType string) []string {
	n, _ := strconv.Atoi(settings.Draw(ctx.Rand, ctx.Settings.Moons(planetType)))
	if n <= 0 {
		return nil
	}
	moons := make([]string, n)
	for i := range moons {
		moons[i] = drawTemple(ctx, starType)
	}
	return moons
}

func drawTemple(ctx *galaxy.Context, starType string) string {
	if !rng.Percent(ctx.Rand, ctx.Settings.TempleChance(starType)) {
		return galaxy.NoTemple
	}
	if temple := settings.Draw(ctx.Rand, ctx.Settings.TempleTypes); temple != "" {
		return temple
	}
	return galaxy.NoTemple
}

func drawAnomaly(ctx *galaxy.Context, planetType string) string {
	s := ctx.Settings
	if !rng.Percent(ctx.Rand, s.AnomalyBaseChance) {
		return ""
	}
	levels := s.Anomalies(planetType)
	weighted := make([]settings.Weight, len(levels))
	for i, w := range levels {
		weighted[i] = settings.Weight{Name: w.Name, Weight: settings.Scale(s.AnomalyScale, w.Weight)}
	}
	return settings.Draw(ctx.Rand, weighted)
}
