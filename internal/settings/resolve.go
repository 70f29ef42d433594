package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lawnchairsociety/galaxygen/internal/config"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
)

// DefaultMaxAttempts bounds whole-galaxy retries when the config leaves it unset
const DefaultMaxAttempts = 6

var ErrBadPolicy = errors.New("settings: unknown constellation policy")

// Params are the scalar generation parameters of one galaxy, resolved from a
// config against the settings tables and the chosen shape.
type Params struct {
	Seed int64

	Population int
	MaxWidth   float64
	Balancing  float64
	Empires    int

	Constellations       int
	StarConnectivity     float64
	WormholeConnectivity float64

	MinStarDistance          float64
	MinEmpireDistance        float64
	MinStarsPerConstellation int

	StrategicPerType int
	LuxuryTypes      int

	StarTypes        []Weight
	PlanetsPerSystem []Weight
	SizeFactors      FactorSet

	// HomeTraits[i] applies to spawn star i
	HomeTraits [][]HomeTrait

	MaxAttempts int
}

// Resolve turns a generation config into Params
func Resolve(s *Settings, cfg config.GenerationConfig, sh *shape.Shape) (Params, error) {
	size, err := s.GalaxySize(cfg.GalaxySize)
	if err != nil {
		return Params{}, err
	}
	age, err := s.GalaxyAge(cfg.GalaxyAge)
	if err != nil {
		return Params{}, err
	}
	density, err := factor(s.GalaxyDensities, "galaxy density", cfg.GalaxyDensity)
	if err != nil {
		return Params{}, err
	}
	starConnectivity, err := factor(s.StarConnectivities, "star connectivity", cfg.StarConnectivity)
	if err != nil {
		return Params{}, err
	}
	wormholeConnectivity, err := factor(s.ConstellationConnectivities, "constellation connectivity", cfg.ConstellationConnectivity)
	if err != nil {
		return Params{}, err
	}
	balancing, err := factor(s.StarPopulationBalancing, "star population balancing", cfg.StarPopulationBalancing)
	if err != nil {
		return Params{}, err
	}
	repartition, err := factor(s.ResourceRepartitionFactors, "resource repartition factor", cfg.ResourceRepartitionFactor)
	if err != nil {
		return Params{}, err
	}
	planets, ok := table(s.PlanetsPerSystem, cfg.PlanetsPerSystem)
	if !ok {
		return Params{}, fmt.Errorf("%w: planets per system %q", ErrUnknownPreset, cfg.PlanetsPerSystem)
	}
	sizeFactors, ok := factorSet(s.PlanetSizeFactors, cfg.PlanetsSizeFactor)
	if !ok {
		return Params{}, fmt.Errorf("%w: planets size factor %q", ErrUnknownPreset, cfg.PlanetsSizeFactor)
	}

	p := Params{
		Seed:                     cfg.Seed,
		Population:               int(float64(size.NumStars) * density),
		MaxWidth:                 size.Width,
		Balancing:                balancing,
		StarConnectivity:         starConnectivity,
		WormholeConnectivity:     wormholeConnectivity,
		MinStarDistance:          s.Constraints.MinStarDistance,
		MinEmpireDistance:        s.Constraints.MinEmpireDistance,
		MinStarsPerConstellation: s.Constraints.MinStarsPerConstellation,
		StrategicPerType:         int(100*float64(size.StrategicResourceNumberPerType)*repartition) / 100,
		LuxuryTypes:              int(100*float64(size.LuxuryResourceTypes)*repartition) / 100,
		StarTypes:                age.StarTypes,
		PlanetsPerSystem:         planets.Weights,
		SizeFactors:              sizeFactors,
		MaxAttempts:              cfg.MaxAttempts,
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}

	p.Empires = empires(cfg.EmpiresNumber, size, sh)

	p.Constellations, err = constellations(cfg.ConstellationNumber, p.Empires, sh)
	if err != nil {
		return Params{}, err
	}

	for i, names := range cfg.HomeGeneration {
		var traits []HomeTrait
		for _, name := range names {
			trait, ok := s.HomeTrait(name)
			if !ok {
				return Params{}, fmt.Errorf("%w: empire %d: unknown trait %q", ErrBadTrait, i, name)
			}
			traits = append(traits, trait)
		}
		p.HomeTraits = append(p.HomeTraits, traits)
	}

	return p, nil
}

// empires applies the fallback chain: explicit count, size nominal players,
// shape minimum, shape maximum, then 4.
func empires(explicit int, size GalaxySize, sh *shape.Shape) int {
	switch {
	case explicit > 0:
		return explicit
	case size.NominalPlayers > 0:
		return size.NominalPlayers
	case sh != nil && sh.MinEmpires > 0:
		return sh.MinEmpires
	case sh != nil && sh.MaxEmpires > 0:
		return sh.MaxEmpires
	}
	return 4
}

func constellations(policy string, empires int, sh *shape.Shape) (int, error) {
	switch strings.ToLower(policy) {
	case "none":
		return 1, nil
	case "", "few":
		if sh != nil && sh.MinConstellations > 0 {
			return sh.MinConstellations, nil
		}
		return empires, nil
	case "many":
		if sh != nil && sh.MaxConstellations > 0 {
			return sh.MaxConstellations, nil
		}
		return 2 * empires, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadPolicy, policy)
}

func factorSet(list []FactorSet, name string) (FactorSet, bool) {
	for _, fs := range list {
		if fs.Name == name {
			return fs, true
		}
	}
	return FactorSet{}, false
}
