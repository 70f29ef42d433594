package planets

import (
	"strconv"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
	"github.com/lawnchairsociety/galaxygen/internal/rng"
	"github.com/lawnchairsociety/galaxygen/internal/settings"
)

// Trait operations
const (
	OverridePlanetsInSystem = "OverridePlanetsInSystem"
	OverrideStarType        = "OverrideStarType"
	OverrideType            = "OverrideType"
	OverrideSize            = "OverrideSize"
	OverrideAnomaly         = "OverrideAnomaly"
	InhibitAnomalies        = "InhibitAnomalies"
	InhibitLuxuries         = "InhibitLuxuries"
	InhibitStrategics       = "InhibitStrategics"
)

// Operation targets
const (
	TargetStar      = "star"
	TargetHomeWorld = "homeworld"
	TargetOthers    = "others"
)

// HomeBuilder applies the configured home traits to the spawn stars. The
// traits at index i apply to spawn star i.
type HomeBuilder struct{}

// NewHome creates a home trait builder
func NewHome() *HomeBuilder {
	return &HomeBuilder{}
}

func (b *HomeBuilder) Name() string { return "Home" }

func (b *HomeBuilder) Execute(ctx *galaxy.Context) error {
	log := logger.With("home")
	g := ctx.Galaxy
	for i, traits := range ctx.Params.HomeTraits {
		if i >= len(g.SpawnStars) {
			break
		}
		for _, trait := range traits {
			log.Debug("applying home trait", "trait", trait.Name, "star", g.SpawnStars[i])
			ApplyTrait(ctx, g.SpawnStars[i], trait)
		}
	}
	g.Compact()
	return nil
}

// ApplyTrait runs the operations of trait on star: star-wide operations first,
// then those on the home world, then those on the other planets.
func ApplyTrait(ctx *galaxy.Context, star int, trait settings.HomeTrait) {
	for _, scope := range []string{TargetStar, TargetHomeWorld, TargetOthers} {
		for _, op := range trait.Ops {
			if targetOf(op) == scope {
				applyOp(ctx, star, op)
			}
		}
	}
}

func targetOf(op settings.TraitOp) string {
	switch {
	case op.Op == OverridePlanetsInSystem, op.Op == OverrideStarType:
		return TargetStar
	case op.Target == "":
		return TargetHomeWorld
	default:
		return op.Target
	}
}

// applies rolls the probability of op. Ops without one always apply.
func applies(src rng.Source, op settings.TraitOp) bool {
	if op.Probability == nil {
		return true
	}
	return rng.Chance(src, *op.Probability)
}

// targets returns the planets of star addressed by target
func targets(g *galaxy.Galaxy, star int, target string) []*galaxy.Planet {
	s := g.Stars[star]
	var out []*galaxy.Planet
	for i, id := range s.Planets {
		switch {
		case target == TargetStar,
			target == TargetHomeWorld && i == s.HomeWorld,
			target == TargetOthers && i != s.HomeWorld:
			out = append(out, g.Planets[id])
		}
	}
	return out
}

func applyOp(ctx *galaxy.Context, star int, op settings.TraitOp) {
	g := ctx.Galaxy
	s := g.Stars[star]

	switch op.Op {
	case OverridePlanetsInSystem:
		if !applies(ctx.Rand, op) {
			return
		}
		n, err := strconv.Atoi(settings.Draw(ctx.Rand, op.Weights))
		if err != nil {
			logger.With("home").Debug("bad planet count override", "star", star, "error", err)
			return
		}
		Generate(ctx, star, n)

	case OverrideStarType:
		if !applies(ctx.Rand, op) {
			return
		}
		if t := settings.Draw(ctx.Rand, op.Weights); t != "" {
			s.Type = t
		}

	case OverrideType, OverrideSize, OverrideAnomaly:
		for _, p := range targets(g, star, targetOf(op)) {
			if !applies(ctx.Rand, op) {
				continue
			}
			value := settings.Draw(ctx.Rand, op.Weights)
			if value == "" {
				continue
			}
			switch op.Op {
			case OverrideType:
				Recreate(ctx, p, value)
			case OverrideSize:
				p.Size = value
			case OverrideAnomaly:
				p.Anomaly = value
			}
		}

	case InhibitAnomalies, InhibitLuxuries, InhibitStrategics:
		if !applies(ctx.Rand, op) {
			return
		}
		names := op.Names
		if op.All {
			names = allNames(ctx.Settings, op.Op)
		}
		for _, p := range targets(g, star, targetOf(op)) {
			switch op.Op {
			case InhibitAnomalies:
				p.InhibitedAnomalies = merge(p.InhibitedAnomalies, names)
				if p.AnomalyInhibited(p.Anomaly) {
					p.Anomaly = ""
				}
			case InhibitLuxuries:
				p.InhibitedLuxuries = merge(p.InhibitedLuxuries, names)
			case InhibitStrategics:
				p.InhibitedStrategics = merge(p.InhibitedStrategics, names)
			}
		}
	}
}

func allNames(s *settings.Settings, op string) []string {
	switch op {
	case InhibitAnomalies:
		return s.AnomalyNames()
	case InhibitLuxuries:
		return s.LuxuryNames()
	default:
		return s.StrategicResources
	}
}

// merge appends the names missing from list
func merge(list, names []string) []string {
	seen := make(map[string]bool, len(list))
	for _, n := range list {
		seen[n] = true
	}
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			list = append(list, n)
		}
	}
	return list
}
