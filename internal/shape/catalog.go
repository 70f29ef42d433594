package shape

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML layout of a shapes file
type CatalogFile struct {
	Shapes []ShapeData `yaml:"shapes"`
}

// ShapeData is the serialized form of a shape. Exactly one of RegionMap and
// Sectors describes regions; DensityMap and Noise are optional.
type ShapeData struct {
	Name              string       `yaml:"name"`
	MinConstellations int          `yaml:"min_constellations"`
	MaxConstellations int          `yaml:"max_constellations"`
	MinEmpires        int          `yaml:"min_empires"`
	MaxEmpires        int          `yaml:"max_empires"`
	Regions           []RegionData `yaml:"regions"`
	Topology          []LinkData   `yaml:"topology"`
	SpawnerSequence   []string     `yaml:"spawner_sequence,omitempty"`
	RegionMap         string       `yaml:"region_map,omitempty"`
	Sectors           *SectorData  `yaml:"sectors,omitempty"`
	DensityMap        string       `yaml:"density_map,omitempty"`
	Noise             *NoiseData   `yaml:"noise,omitempty"`
}

// RegionData is a serialized legend entry
type RegionData struct {
	Color  string `yaml:"color"`
	Spawn  bool   `yaml:"spawn"`
	Weight int    `yaml:"weight,omitempty"`
}

// LinkData is a serialized topology link
type LinkData struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// SectorData configures a SectorRegions map
type SectorData struct {
	Colors      []string `yaml:"colors"`
	Hub         string   `yaml:"hub,omitempty"`
	HubRadius   float64  `yaml:"hub_radius,omitempty"`
	OuterRadius float64  `yaml:"outer_radius"`
	Rotation    float64  `yaml:"rotation,omitempty"`
}

// NoiseData configures a NoiseDensity map
type NoiseData struct {
	Seed        int64   `yaml:"seed"`
	Octaves     int     `yaml:"octaves"`
	Frequency   float64 `yaml:"frequency"`
	Persistence float64 `yaml:"persistence"`
	Falloff     float64 `yaml:"falloff"`
	Floor       float64 `yaml:"floor"`
}

// Catalog is an ordered set of shapes addressed by name
type Catalog struct {
	shapes []*Shape
}

// Get returns the shape called name
func (c *Catalog) Get(name string) (*Shape, error) {
	for _, s := range c.shapes {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Names returns the shape names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.shapes))
	for i, s := range c.shapes {
		names[i] = s.Name
	}
	return names
}

// LoadCatalog reads a shapes file. Raster paths are resolved relative to the
// file's directory.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shapes file: %w", err)
	}

	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse shapes file: %w", err)
	}

	return NewCatalog(file.Shapes, filepath.Dir(path))
}

// NewCatalog builds shapes from their serialized form
func NewCatalog(data []ShapeData, baseDir string) (*Catalog, error) {
	c := &Catalog{}
	for _, sd := range data {
		s, err := sd.Build(baseDir)
		if err != nil {
			return nil, err
		}
		c.shapes = append(c.shapes, s)
	}
	return c, nil
}

// Build converts the serialized shape into a usable Shape
func (sd ShapeData) Build(baseDir string) (*Shape, error) {
	s := &Shape{
		Name:              sd.Name,
		MinConstellations: sd.MinConstellations,
		MaxConstellations: sd.MaxConstellations,
		MinEmpires:        sd.MinEmpires,
		MaxEmpires:        sd.MaxEmpires,
	}

	for _, rd := range sd.Regions {
		c, err := ParseColor(rd.Color)
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", sd.Name, err)
		}
		weight := rd.Weight
		if weight <= 0 {
			weight = 1
		}
		s.Regions = append(s.Regions, Region{Color: c, Spawn: rd.Spawn, Weight: weight})
	}

	for _, ld := range sd.Topology {
		a, err := ParseColor(ld.A)
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", sd.Name, err)
		}
		b, err := ParseColor(ld.B)
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", sd.Name, err)
		}
		s.Topology = append(s.Topology, Link{A: a, B: b})
	}

	if len(sd.SpawnerSequence) > 0 {
		for _, cs := range sd.SpawnerSequence {
			c, err := ParseColor(cs)
			if err != nil {
				return nil, fmt.Errorf("shape %s: %w", sd.Name, err)
			}
			s.SpawnerSequence = append(s.SpawnerSequence, c)
		}
	} else {
		for _, r := range s.Regions {
			if r.Spawn {
				s.SpawnerSequence = append(s.SpawnerSequence, r.Color)
			}
		}
	}

	switch {
	case sd.RegionMap != "":
		m, err := LoadImageMap(resolve(baseDir, sd.RegionMap))
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", sd.Name, err)
		}
		s.RegionMap = m
	case sd.Sectors != nil:
		m, err := sd.Sectors.build()
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", sd.Name, err)
		}
		s.RegionMap = m
	}

	switch {
	case sd.DensityMap != "":
		m, err := LoadImageMap(resolve(baseDir, sd.DensityMap))
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", sd.Name, err)
		}
		s.DensityMap = m
	case sd.Noise != nil:
		n := sd.Noise
		s.DensityMap = NewNoiseDensity(n.Seed, n.Octaves, n.Frequency, n.Persistence, n.Falloff, n.Floor)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (sd *SectorData) build() (*SectorRegions, error) {
	m := &SectorRegions{
		HubRadius:   sd.HubRadius,
		OuterRadius: sd.OuterRadius,
		Rotation:    sd.Rotation,
	}
	if m.OuterRadius <= 0 {
		m.OuterRadius = 0.5
	}
	for _, cs := range sd.Colors {
		c, err := ParseColor(cs)
		if err != nil {
			return nil, err
		}
		m.Colors = append(m.Colors, c)
	}
	if sd.Hub != "" {
		c, err := ParseColor(sd.Hub)
		if err != nil {
			return nil, err
		}
		m.Hub = c
		m.HasHub = true
	}
	return m, nil
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

var (
	red    = color.RGBA{R: 0xff, A: 0xff}
	green  = color.RGBA{G: 0xff, A: 0xff}
	blue   = color.RGBA{B: 0xff, A: 0xff}
	yellow = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	grey   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// DefaultData returns the serialized built-in shapes
func DefaultData() []ShapeData {
	quadRegions := []RegionData{
		{Color: FormatColor(red), Spawn: true, Weight: 1},
		{Color: FormatColor(green), Spawn: true, Weight: 1},
		{Color: FormatColor(blue), Spawn: true, Weight: 1},
		{Color: FormatColor(yellow), Spawn: true, Weight: 1},
		{Color: FormatColor(grey), Spawn: false, Weight: 1},
	}
	quadTopology := []LinkData{
		{A: FormatColor(red), B: FormatColor(green)},
		{A: FormatColor(green), B: FormatColor(blue)},
		{A: FormatColor(blue), B: FormatColor(yellow)},
		{A: FormatColor(yellow), B: FormatColor(red)},
		{A: FormatColor(red), B: FormatColor(grey)},
		{A: FormatColor(green), B: FormatColor(grey)},
		{A: FormatColor(blue), B: FormatColor(grey)},
		{A: FormatColor(yellow), B: FormatColor(grey)},
	}
	quadSectors := &SectorData{
		Colors:      []string{FormatColor(red), FormatColor(green), FormatColor(blue), FormatColor(yellow)},
		Hub:         FormatColor(grey),
		HubRadius:   0.15,
		OuterRadius: 0.48,
	}

	return []ShapeData{
		{
			Name:       "Disc",
			MinEmpires: 2,
			MaxEmpires: 8,
			Regions: []RegionData{
				{Color: FormatColor(red), Spawn: true, Weight: 1},
				{Color: FormatColor(grey), Spawn: false, Weight: 1},
			},
			Topology: []LinkData{{A: FormatColor(red), B: FormatColor(grey)}},
			Sectors: &SectorData{
				Colors:      []string{FormatColor(red)},
				Hub:         FormatColor(grey),
				HubRadius:   0.2,
				OuterRadius: 0.48,
			},
		},
		{
			Name:              "Quad",
			MinConstellations: 4,
			MaxConstellations: 8,
			MinEmpires:        2,
			MaxEmpires:        8,
			Regions:           quadRegions,
			Topology:          quadTopology,
			Sectors:           quadSectors,
		},
		{
			Name:       "Nebula",
			MinEmpires: 2,
			MaxEmpires: 8,
			Regions:    quadRegions,
			Topology:   quadTopology,
			Sectors:    quadSectors,
			Noise: &NoiseData{
				Seed:        7,
				Octaves:     4,
				Frequency:   3,
				Persistence: 0.5,
				Falloff:     0.5,
				Floor:       0.25,
			},
		},
	}
}

// DefaultCatalog returns the built-in shapes
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultData(), "")
	if err != nil {
		// built-in data is static; a failure here is a programming error
		panic(err)
	}
	return c
}
