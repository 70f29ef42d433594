// Package settings holds the static generation tables: presets, weighted
// probability tables, name pools and home traits.
package settings

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/lawnchairsociety/galaxygen/internal/rng"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPreset = errors.New("settings: unknown preset")
	ErrBadTrait      = errors.New("settings: invalid home trait")
)

// Weight is a named entry of a weighted table. Tables are ordered slices so
// that weighted draws are reproducible.
type Weight struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

// Factor is a named scalar preset
type Factor struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// Table is a keyed weighted table, e.g. planet types for one star type
type Table struct {
	Key     string   `yaml:"key"`
	Weights []Weight `yaml:"weights"`
}

// Get returns the weight of name, 0 if absent
func (t Table) Get(name string) int {
	for _, w := range t.Weights {
		if w.Name == name {
			return w.Weight
		}
	}
	return 0
}

// FactorSet is a named group of factors, e.g. planet size factors
type FactorSet struct {
	Name    string   `yaml:"name"`
	Factors []Factor `yaml:"factors"`
}

// Get returns the factor called name, 1 if absent
func (fs FactorSet) Get(name string) float64 {
	for _, f := range fs.Factors {
		if f.Name == name {
			return f.Value
		}
	}
	return 1
}

// GalaxySize is a size preset
type GalaxySize struct {
	Name                           string  `yaml:"name"`
	NumStars                       int     `yaml:"num_stars"`
	Width                          float64 `yaml:"width"`
	NominalPlayers                 int     `yaml:"nominal_players"`
	StrategicResourceNumberPerType int     `yaml:"strategic_resource_number_per_type"`
	LuxuryResourceTypes            int     `yaml:"luxury_resource_types"`
}

// GalaxyAge is an age preset, weighting star types
type GalaxyAge struct {
	Name      string   `yaml:"name"`
	StarTypes []Weight `yaml:"star_types"`
}

// DepositIteration gives the deposit size used by one strategic allocation pass
type DepositIteration struct {
	Pass int `yaml:"pass"`
	Size int `yaml:"size"`
}

// LuxuryTier is a pool of luxury resources sharing a priority
type LuxuryTier struct {
	Priority int      `yaml:"priority"`
	Names    []string `yaml:"names"`
}

// Constraints are hard geometric and population limits
type Constraints struct {
	MinEmpireDistance        float64 `yaml:"min_empire_distance"`
	MinStarDistance          float64 `yaml:"min_star_distance"`
	MinStarsPerConstellation int     `yaml:"min_stars_per_constellation"`
}

// TraitOp is one operation of a home trait
type TraitOp struct {
	// Op is one of OverridePlanetsInSystem, OverrideStarType, OverrideType,
	// OverrideSize, OverrideAnomaly, InhibitAnomalies, InhibitLuxuries,
	// InhibitStrategics.
	Op string `yaml:"op"`

	// Target is star, homeworld or others. Star-level ops ignore it.
	Target string `yaml:"target,omitempty"`

	// Probability that the op applies (default: 1)
	Probability *float64 `yaml:"probability,omitempty"`

	// Weights are the candidate values of an override
	Weights []Weight `yaml:"weights,omitempty"`

	// Names and All select what an inhibit op blocks
	Names []string `yaml:"names,omitempty"`
	All   bool     `yaml:"all,omitempty"`
}

// HomeTrait is a named list of operations applied to a spawn star
type HomeTrait struct {
	Name string    `yaml:"name"`
	Ops  []TraitOp `yaml:"ops"`
}

// Settings holds every static table used by the builders.
type Settings struct {
	GalaxySizes                 []GalaxySize `yaml:"galaxy_sizes"`
	GalaxyAges                  []GalaxyAge  `yaml:"galaxy_ages"`
	GalaxyDensities             []Factor     `yaml:"galaxy_densities"`
	StarConnectivities          []Factor     `yaml:"star_connectivities"`
	ConstellationConnectivities []Factor     `yaml:"constellation_connectivities"`
	StarPopulationBalancing     []Factor     `yaml:"star_population_balancing"`
	ResourceRepartitionFactors  []Factor     `yaml:"resource_repartition_factors"`

	// PlanetsPerSystem maps a preset name to a table of planet counts.
	// Weight names are integer counts.
	PlanetsPerSystem  []Table     `yaml:"planets_per_system"`
	PlanetSizeFactors []FactorSet `yaml:"planet_size_factors"`

	ResourceDepositSizeIterations []DepositIteration `yaml:"resource_deposit_size_iterations"`

	PlanetTypesPerStar []Table `yaml:"planet_types_per_star"`
	PlanetSizesPerType []Table `yaml:"planet_sizes_per_type"`

	// MoonChances is the fallback moon count table; MoonsPerPlanetType overrides it
	MoonChances        []Weight `yaml:"moon_chances"`
	MoonsPerPlanetType []Table  `yaml:"moons_per_planet_type"`

	TempleChancePerStar []Weight `yaml:"temple_chance_per_star"`
	TempleTypes         []Weight `yaml:"temple_types"`

	// Anomaly, strategic and luxury tables hold a probability level per name;
	// the matching scale converts levels into weights.
	AnomalyBaseChance      int      `yaml:"anomaly_base_chance"`
	AnomalyScale           []Weight `yaml:"anomaly_scale"`
	AnomaliesPerPlanetType []Table  `yaml:"anomalies_per_planet_type"`
	StrategicScale         []Weight `yaml:"strategic_scale"`
	StrategicsPerType      []Table  `yaml:"strategics_per_planet_type"`
	LuxuryScale            []Weight `yaml:"luxury_scale"`
	LuxuriesPerType        []Table  `yaml:"luxuries_per_planet_type"`

	StrategicResources []string     `yaml:"strategic_resources"`
	LuxuryTiers        []LuxuryTier `yaml:"luxury_tiers"`

	Constraints Constraints `yaml:"constraints"`

	StarNames          []string `yaml:"star_names"`
	ConstellationNames []string `yaml:"constellation_names"`

	HomeTraits []HomeTrait `yaml:"home_traits"`
}

// LoadSettings reads a settings file over the built-in defaults. Top-level
// keys present in the file replace the default table entirely.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks home trait ops and the luxury tiers
func (s *Settings) Validate() error {
	for _, trait := range s.HomeTraits {
		for _, op := range trait.Ops {
			if !validOps[op.Op] {
				return fmt.Errorf("%w: %s: unknown op %q", ErrBadTrait, trait.Name, op.Op)
			}
			switch op.Target {
			case "", "star", "homeworld", "others":
			default:
				return fmt.Errorf("%w: %s: unknown target %q", ErrBadTrait, trait.Name, op.Target)
			}
		}
	}
	sort.SliceStable(s.LuxuryTiers, func(i, j int) bool {
		return s.LuxuryTiers[i].Priority < s.LuxuryTiers[j].Priority
	})
	return nil
}

var validOps = map[string]bool{
	"OverridePlanetsInSystem": true,
	"OverrideStarType":        true,
	"OverrideType":            true,
	"OverrideSize":            true,
	"OverrideAnomaly":         true,
	"InhibitAnomalies":        true,
	"InhibitLuxuries":         true,
	"InhibitStrategics":       true,
}

// GalaxySize returns the size preset called name
func (s *Settings) GalaxySize(name string) (GalaxySize, error) {
	for _, gs := range s.GalaxySizes {
		if gs.Name == name {
			return gs, nil
		}
	}
	return GalaxySize{}, fmt.Errorf("%w: galaxy size %q", ErrUnknownPreset, name)
}

// GalaxyAge returns the age preset called name
func (s *Settings) GalaxyAge(name string) (GalaxyAge, error) {
	for _, ga := range s.GalaxyAges {
		if ga.Name == name {
			return ga, nil
		}
	}
	return GalaxyAge{}, fmt.Errorf("%w: galaxy age %q", ErrUnknownPreset, name)
}

// HomeTrait returns the trait called name
func (s *Settings) HomeTrait(name string) (HomeTrait, bool) {
	for _, ht := range s.HomeTraits {
		if ht.Name == name {
			return ht, true
		}
	}
	return HomeTrait{}, false
}

func factor(list []Factor, kind, name string) (float64, error) {
	for _, f := range list {
		if f.Name == name {
			return f.Value, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownPreset, kind, name)
}

func table(list []Table, key string) (Table, bool) {
	for _, t := range list {
		if t.Key == key {
			return t, true
		}
	}
	return Table{}, false
}

// PlanetTypes returns the planet type weights for a star type
func (s *Settings) PlanetTypes(starType string) []Weight {
	t, _ := table(s.PlanetTypesPerStar, starType)
	return t.Weights
}

// PlanetSizes returns the size weights for a planet type
func (s *Settings) PlanetSizes(planetType string) []Weight {
	t, _ := table(s.PlanetSizesPerType, planetType)
	return t.Weights
}

// Moons returns the moon count table for a planet type, falling back to MoonChances
func (s *Settings) Moons(planetType string) []Weight {
	if t, ok := table(s.MoonsPerPlanetType, planetType); ok {
		return t.Weights
	}
	return s.MoonChances
}

// Anomalies returns the anomaly levels for a planet type
func (s *Settings) Anomalies(planetType string) []Weight {
	t, _ := table(s.AnomaliesPerPlanetType, planetType)
	return t.Weights
}

// StrategicLevel returns the probability level of a strategic resource on a planet type
func (s *Settings) StrategicLevel(planetType, resource string) int {
	t, _ := table(s.StrategicsPerType, planetType)
	return t.Get(resource)
}

// LuxuryLevel returns the probability level of a luxury resource on a planet type
func (s *Settings) LuxuryLevel(planetType, resource string) int {
	t, _ := table(s.LuxuriesPerType, planetType)
	return t.Get(resource)
}

// TempleChance returns the percent chance of a temple on a moon around starType
func (s *Settings) TempleChance(starType string) int {
	return Table{Weights: s.TempleChancePerStar}.Get(starType)
}

// Scale converts a probability level into a weight using scale
func Scale(scale []Weight, level int) int {
	return Table{Weights: scale}.Get(strconv.Itoa(level))
}

// AnomalyNames returns every anomaly mentioned by any planet type, in first-seen order
func (s *Settings) AnomalyNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range s.AnomaliesPerPlanetType {
		for _, w := range t.Weights {
			if !seen[w.Name] {
				seen[w.Name] = true
				names = append(names, w.Name)
			}
		}
	}
	return names
}

// LuxuryNames returns every luxury resource in tier order
func (s *Settings) LuxuryNames() []string {
	var names []string
	for _, tier := range s.LuxuryTiers {
		names = append(names, tier.Names...)
	}
	return names
}

// DepositSizes returns the strategic deposit sizes sorted by pass
func (s *Settings) DepositSizes() []DepositIteration {
	out := append([]DepositIteration(nil), s.ResourceDepositSizeIterations...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pass < out[j].Pass })
	return out
}

// Draw picks a name from weights in proportion to its weight. It returns ""
// when the weights sum to zero.
func Draw(src rng.Source, weights []Weight) string {
	values := make([]int, len(weights))
	for i, w := range weights {
		values[i] = w.Weight
	}
	i := rng.Weighted(src, values)
	if i < 0 {
		return ""
	}
	return weights[i].Name
}
