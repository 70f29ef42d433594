package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/lawnchairsociety/galaxygen/internal/config"
	"github.com/lawnchairsociety/galaxygen/internal/database"
	"github.com/lawnchairsociety/galaxygen/internal/export"
	"github.com/lawnchairsociety/galaxygen/internal/generator"
)

// BatchGenerator generates one galaxy per seed, each with its own generator
type BatchGenerator struct {
	Config    *config.Config
	OutputDir string
	Workers   int

	// Archive, when set, receives every result. Writes are serialized.
	Archive *database.Database

	archiveMu sync.Mutex
}

// SeedReport is the outcome of one seed
type SeedReport struct {
	Seed        int64         `yaml:"seed"`
	Valid       bool          `yaml:"valid"`
	Attempts    int           `yaml:"attempts"`
	Stars       int           `yaml:"stars"`
	Warps       int           `yaml:"warps"`
	Wormholes   int           `yaml:"wormholes"`
	Defects     int           `yaml:"defects"`
	Fatal       []string      `yaml:"fatal,omitempty"`
	Fingerprint string        `yaml:"fingerprint,omitempty"`
	File        string        `yaml:"file,omitempty"`
	ArchiveID   string        `yaml:"archive_id,omitempty"`
	Duration    time.Duration `yaml:"duration"`
	Error       string        `yaml:"error,omitempty"`
}

// NewBatchGenerator creates a batch generator. Fewer than one worker means one.
func NewBatchGenerator(cfg *config.Config, outputDir string, workers int) *BatchGenerator {
	if workers < 1 {
		workers = 1
	}
	return &BatchGenerator{
		Config:    cfg,
		OutputDir: outputDir,
		Workers:   workers,
	}
}

// Run generates seeds start..end and returns the report sorted by seed.
// progress, if set, is called from a single goroutine as seeds complete.
func (b *BatchGenerator) Run(start, end int64, progress func(SeedReport)) *Report {
	seeds := make(chan int64)
	results := make(chan SeedReport)

	var wg sync.WaitGroup
	for i := 0; i < b.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range seeds {
				results <- b.generate(seed)
			}
		}()
	}

	go func() {
		for seed := start; seed <= end; seed++ {
			seeds <- seed
		}
		close(seeds)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var reports []SeedReport
	for r := range results {
		if progress != nil {
			progress(r)
		}
		reports = append(reports, r)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Seed < reports[j].Seed })
	return NewReport(b.Config, reports)
}

// generate runs one seed with its own generator
func (b *BatchGenerator) generate(seed int64) SeedReport {
	began := time.Now()
	r := SeedReport{Seed: seed}

	cfg := *b.Config
	cfg.Generation.Seed = seed

	gen, err := generator.Setup(&cfg)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	result, err := gen.Generate()
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Valid = result.Valid
	r.Attempts = result.Attempts
	r.Defects = len(result.Defects)
	for _, d := range result.Fatal() {
		r.Fatal = append(r.Fatal, fmt.Sprintf("attempt %d [%s] %s", d.Attempt, d.Stage, d.Message))
	}

	doc := export.FromResult(result)
	r.Stars = len(doc.Stars)
	r.Warps = len(doc.Warps)
	r.Wormholes = len(doc.Wormholes)
	if doc.Valid {
		if r.Fingerprint, err = export.Fingerprint(doc); err != nil {
			r.Error = err.Error()
			return r
		}
	}

	ext := cfg.Output.Format
	if ext == "" {
		ext = export.YAML
	}
	r.File = filepath.Join(b.OutputDir, fmt.Sprintf("galaxy_%d.%s", seed, ext))
	if err := export.WriteFile(r.File, doc, cfg.Output.Format); err != nil {
		r.Error = err.Error()
		return r
	}

	if b.Archive != nil {
		if r.ArchiveID, err = b.archive(doc); err != nil {
			r.Error = err.Error()
		}
	}

	r.Duration = time.Since(began).Round(time.Millisecond)
	return r
}

func (b *BatchGenerator) archive(doc *export.Document) (string, error) {
	rec, err := export.Record(doc, b.Config.Generation.GalaxySize)
	if err != nil {
		return "", err
	}

	b.archiveMu.Lock()
	defer b.archiveMu.Unlock()
	if err := b.Archive.SaveGalaxy(rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}
