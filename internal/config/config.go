package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/galaxygen/internal/database"
	"gopkg.in/yaml.v3"
)

// Config holds everything needed to run one generation.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Paths      PathsConfig      `yaml:"paths"`
	Output     OutputConfig     `yaml:"output"`
	Archive    ArchiveConfig    `yaml:"archive"`
}

// GenerationConfig selects the presets used to build a galaxy. Every string
// field names an entry of the matching settings table.
type GenerationConfig struct {
	// Seed for the random source. 0 means derive one from the clock.
	Seed int64 `yaml:"seed"`

	// Shape is the name of the galaxy shape (see shapes catalog).
	Shape string `yaml:"shape"`

	GalaxySize                string `yaml:"galaxy_size"`
	GalaxyAge                 string `yaml:"galaxy_age"`
	GalaxyDensity             string `yaml:"galaxy_density"`
	StarConnectivity          string `yaml:"star_connectivity"`
	ConstellationConnectivity string `yaml:"constellation_connectivity"`
	StarPopulationBalancing   string `yaml:"star_population_balancing"`
	PlanetsPerSystem          string `yaml:"planets_per_system"`
	PlanetsSizeFactor         string `yaml:"planets_size_factor"`
	ResourceRepartitionFactor string `yaml:"resource_repartition_factor"`

	// ConstellationNumber is one of "none", "few" or "many".
	ConstellationNumber string `yaml:"constellation_number"`

	// EmpiresNumber overrides the empire count. 0 falls back to the galaxy
	// size, then the shape bounds, then 4.
	EmpiresNumber int `yaml:"empires_number"`

	// MaxAttempts bounds whole-galaxy retries (default: 6)
	MaxAttempts int `yaml:"max_attempts"`

	// HomeGeneration lists, per empire, the names of the home traits to apply
	// to its spawn star. Entry i applies to spawn star i.
	HomeGeneration [][]string `yaml:"home_generation"`
}

// PathsConfig points at external data files. Empty paths use built-in data.
type PathsConfig struct {
	Settings string `yaml:"settings"`
	Shapes   string `yaml:"shapes"`
}

// OutputConfig controls how a generated galaxy is written.
type OutputConfig struct {
	// Format is "yaml" or "json"
	Format string `yaml:"format"`

	// Path of the output file. Empty writes to stdout.
	Path string `yaml:"path"`
}

// ArchiveConfig controls storage of generated galaxies.
type ArchiveConfig struct {
	Enabled  bool            `yaml:"enabled"`
	Database database.Config `yaml:"database"`
}

// DefaultConfig returns a Config with the stock presets.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Seed:                      0,
			Shape:                     "Quad",
			GalaxySize:                "Medium",
			GalaxyAge:                 "Mature",
			GalaxyDensity:             "Normal",
			StarConnectivity:          "Normal",
			ConstellationConnectivity: "Normal",
			StarPopulationBalancing:   "Normal",
			PlanetsPerSystem:          "Normal",
			PlanetsSizeFactor:         "Normal",
			ResourceRepartitionFactor: "Normal",
			ConstellationNumber:       "few",
			MaxAttempts:               6,
		},
		Output: OutputConfig{
			Format: "yaml",
		},
		Archive: ArchiveConfig{
			Enabled:  false,
			Database: database.DefaultConfig("data/galaxies.db"),
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies environment
// overrides. If the file doesn't exist, defaults are used.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return config, err
		}
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("GALAXY_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Generation.Seed = seed
		}
	}
	if v := os.Getenv("GALAXY_SHAPE"); v != "" {
		config.Generation.Shape = v
	}
	if v := os.Getenv("GALAXY_SIZE"); v != "" {
		config.Generation.GalaxySize = v
	}
	if v := os.Getenv("GALAXY_EMPIRES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Generation.EmpiresNumber = n
		}
	}
	if v := os.Getenv("ARCHIVE_ENABLED"); v != "" {
		config.Archive.Enabled = strings.ToLower(v) == "true" || v == "1"
	}
	if v := os.Getenv("ARCHIVE_DRIVER"); v != "" {
		config.Archive.Database.Driver = v
	}
	if v := os.Getenv("ARCHIVE_SQLITE_PATH"); v != "" {
		config.Archive.Database.SQLitePath = v
	}
	if v := os.Getenv("ARCHIVE_POSTGRES_HOST"); v != "" {
		config.Archive.Database.Postgres.Host = v
	}
	if v := os.Getenv("ARCHIVE_POSTGRES_USER"); v != "" {
		config.Archive.Database.Postgres.User = v
	}
	if v := os.Getenv("ARCHIVE_POSTGRES_PASSWORD"); v != "" {
		config.Archive.Database.Postgres.Password = v
	}
	if v := os.Getenv("ARCHIVE_POSTGRES_DATABASE"); v != "" {
		config.Archive.Database.Postgres.Database = v
	}
}
