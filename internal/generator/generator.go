// Package generator runs the galaxy pipeline: star placement, the two warp
// passes around constellation clustering, spawn placement, planets, home
// traits and resources. A failed attempt is discarded and the whole pipeline
// runs again, drawing from the same random source.
package generator

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/galaxygen/internal/config"
	"github.com/lawnchairsociety/galaxygen/internal/constellations"
	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
	"github.com/lawnchairsociety/galaxygen/internal/planets"
	"github.com/lawnchairsociety/galaxygen/internal/resources"
	"github.com/lawnchairsociety/galaxygen/internal/rng"
	"github.com/lawnchairsociety/galaxygen/internal/settings"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
	"github.com/lawnchairsociety/galaxygen/internal/spawn"
	"github.com/lawnchairsociety/galaxygen/internal/stars"
	"github.com/lawnchairsociety/galaxygen/internal/warps"
)

var (
	ErrNoShape    = errors.New("generator: no shape")
	ErrNoSettings = errors.New("generator: no settings")
)

// Result is the outcome of a generation run. Galaxy is nil unless Valid.
type Result struct {
	Galaxy   *galaxy.Galaxy
	Defects  []galaxy.Defect // every attempt, in order
	Valid    bool
	Attempts int

	Seed   int64
	Shape  string
	Params settings.Params
}

// Fatal returns the fatal defects of the run
func (r *Result) Fatal() []galaxy.Defect {
	var out []galaxy.Defect
	for _, d := range r.Defects {
		if d.Fatal {
			out = append(out, d)
		}
	}
	return out
}

// Generator builds galaxies for one shape, settings and parameter set.
type Generator struct {
	shape    *shape.Shape
	settings *settings.Settings
	params   settings.Params

	src  rng.Source
	seed int64
}

// New creates a generator seeded from p.Seed (0 derives a seed from the clock).
func New(sh *shape.Shape, s *settings.Settings, p settings.Params) (*Generator, error) {
	r := rng.New(p.Seed)
	g, err := NewWithSource(sh, s, p, r)
	if err != nil {
		return nil, err
	}
	g.seed = r.Seed()
	return g, nil
}

// NewWithSource creates a generator drawing from src
func NewWithSource(sh *shape.Shape, s *settings.Settings, p settings.Params, src rng.Source) (*Generator, error) {
	if sh == nil {
		return nil, ErrNoShape
	}
	if err := sh.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if s == nil {
		return nil, ErrNoSettings
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = settings.DefaultMaxAttempts
	}
	return &Generator{shape: sh, settings: s, params: p, src: src, seed: p.Seed}, nil
}

// Setup loads the settings and shape named by cfg and resolves the
// generation parameters.
func Setup(cfg *config.Config) (*Generator, error) {
	s, err := settings.LoadSettings(cfg.Paths.Settings)
	if err != nil {
		return nil, err
	}

	catalog := shape.DefaultCatalog()
	if cfg.Paths.Shapes != "" {
		catalog, err = shape.LoadCatalog(cfg.Paths.Shapes)
		if err != nil {
			return nil, err
		}
	}
	sh, err := catalog.Get(cfg.Generation.Shape)
	if err != nil {
		return nil, err
	}

	p, err := settings.Resolve(s, cfg.Generation, sh)
	if err != nil {
		return nil, err
	}
	return New(sh, s, p)
}

// Seed returns the seed actually used
func (g *Generator) Seed() int64 {
	return g.seed
}

// Params returns the resolved generation parameters
func (g *Generator) Params() settings.Params {
	return g.params
}

// Stages returns a fresh pipeline. The same warp builder runs both passes.
func Stages() []galaxy.Builder {
	w := warps.New()
	return []galaxy.Builder{
		stars.New(),
		w,
		constellations.New(),
		w,
		spawn.New(),
		planets.New(),
		planets.NewHome(),
		resources.NewStrategic(),
		resources.NewLuxury(),
	}
}

// Generate runs up to MaxAttempts attempts and returns the first valid galaxy.
// A returned error means a stage was misused; generation failures are
// reported through Result.Valid and Result.Defects.
func (g *Generator) Generate() (*Result, error) {
	log := logger.With("generator")
	result := &Result{Seed: g.seed, Shape: g.shape.Name, Params: g.params}

	for attempt := 1; attempt <= g.params.MaxAttempts; attempt++ {
		result.Attempts = attempt
		log.Info("generation attempt", "attempt", attempt, "seed", g.seed, "shape", g.shape.Name)

		ctx, err := g.attempt()
		for _, d := range ctx.Defects {
			d.Attempt = attempt
			result.Defects = append(result.Defects, d)
		}
		if err != nil {
			return nil, fmt.Errorf("attempt %d: %w", attempt, err)
		}

		if !ctx.Failed() {
			result.Galaxy = ctx.Galaxy
			result.Valid = true
			log.Info("galaxy generated", "attempt", attempt,
				"stars", len(ctx.Galaxy.Stars), "warps", len(ctx.Galaxy.Warps), "defects", len(ctx.Defects))
			return result, nil
		}

		for _, d := range ctx.Defects {
			if d.Fatal {
				log.Warn("generation attempt failed", "attempt", attempt, "stage", d.Stage, "defect", d.Message)
			}
		}
	}

	logger.Warningf("galaxy generation failed after %d attempts", result.Attempts)
	return result, nil
}

// attempt runs the pipeline once on a fresh context, stopping at the first
// fatal defect
func (g *Generator) attempt() (*galaxy.Context, error) {
	log := logger.With("generator")
	ctx := galaxy.NewContext(g.shape, g.settings, g.params, g.src)

	for _, stage := range Stages() {
		log.Debug("stage begin", "stage", stage.Name())
		if err := stage.Execute(ctx); err != nil {
			return ctx, fmt.Errorf("%s: %w", stage.Name(), err)
		}
		log.Debug("stage end", "stage", stage.Name(), "defects", len(ctx.Defects))
		if ctx.Failed() {
			break
		}
	}
	return ctx, nil
}
