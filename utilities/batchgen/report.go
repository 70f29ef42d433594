package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lawnchairsociety/galaxygen/internal/config"
	"gopkg.in/yaml.v3"
)

// Report summarizes a batch run
type Report struct {
	Shape       string    `yaml:"shape"`
	GalaxySize  string    `yaml:"galaxy_size"`
	GeneratedAt time.Time `yaml:"generated_at"`

	Valid  int `yaml:"valid"`
	Failed int `yaml:"failed"`
	Errors int `yaml:"errors"`

	// AverageAttempts is taken over valid seeds
	AverageAttempts float64 `yaml:"average_attempts"`

	// Duplicates maps a fingerprint to the seeds that produced it, when more
	// than one did
	Duplicates map[string][]int64 `yaml:"duplicates,omitempty"`

	Seeds []SeedReport `yaml:"seeds"`
}

// NewReport aggregates seed reports, which must be sorted by seed
func NewReport(cfg *config.Config, seeds []SeedReport) *Report {
	r := &Report{
		Shape:       cfg.Generation.Shape,
		GalaxySize:  cfg.Generation.GalaxySize,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Seeds:       seeds,
	}

	attempts := 0
	byFingerprint := make(map[string][]int64)
	for _, s := range seeds {
		switch {
		case s.Error != "":
			r.Errors++
		case s.Valid:
			r.Valid++
			attempts += s.Attempts
		default:
			r.Failed++
		}
		if s.Fingerprint != "" {
			byFingerprint[s.Fingerprint] = append(byFingerprint[s.Fingerprint], s.Seed)
		}
	}
	if r.Valid > 0 {
		r.AverageAttempts = float64(attempts) / float64(r.Valid)
	}

	for fp, list := range byFingerprint {
		if len(list) > 1 {
			if r.Duplicates == nil {
				r.Duplicates = make(map[string][]int64)
			}
			r.Duplicates[fp] = list
		}
	}
	return r
}

// WriteReport writes a report to a YAML file
func WriteReport(report *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "# Batch report - %s %s\n", report.Shape, report.GalaxySize)
	fmt.Fprintf(f, "# Seeds: %d\n\n", len(report.Seeds))

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return encoder.Close()
}
