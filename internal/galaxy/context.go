package galaxy

import (
	"fmt"

	"github.com/lawnchairsociety/galaxygen/internal/rng"
	"github.com/lawnchairsociety/galaxygen/internal/settings"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
)

// Defect is a generation anomaly recorded by a stage. A fatal defect ends the attempt.
type Defect struct {
	Stage   string
	Message string
	Fatal   bool

	// Attempt is the 1-based generation attempt, set when defects are
	// collected across retries
	Attempt int
}

func (d Defect) String() string {
	if d.Fatal {
		return fmt.Sprintf("[%s] FATAL %s", d.Stage, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Stage, d.Message)
}

// Context carries one generation attempt through the builder stages. It owns
// the in-progress galaxy and is dropped when the attempt ends.
type Context struct {
	Galaxy   *Galaxy
	Shape    *shape.Shape
	Settings *settings.Settings
	Params   settings.Params
	Rand     rng.Source

	StarNames          *NamePool
	ConstellationNames *NamePool

	Defects []Defect
	failed  bool
}

// NewContext creates the context for a fresh attempt
func NewContext(sh *shape.Shape, s *settings.Settings, p settings.Params, src rng.Source) *Context {
	return &Context{
		Galaxy:             New(),
		Shape:              sh,
		Settings:           s,
		Params:             p,
		Rand:               src,
		StarNames:          NewNamePool(s.StarNames),
		ConstellationNames: NewNamePool(s.ConstellationNames),
	}
}

// Defect records a non-fatal defect
func (c *Context) Defect(stage, msg string) {
	c.Defects = append(c.Defects, Defect{Stage: stage, Message: msg})
}

// Defectf records a formatted non-fatal defect
func (c *Context) Defectf(stage, format string, args ...any) {
	c.Defect(stage, fmt.Sprintf(format, args...))
}

// Fatal records a fatal defect and marks the attempt failed
func (c *Context) Fatal(stage, msg string) {
	c.Defects = append(c.Defects, Defect{Stage: stage, Message: msg, Fatal: true})
	c.failed = true
}

// Fatalf records a formatted fatal defect
func (c *Context) Fatalf(stage, format string, args ...any) {
	c.Fatal(stage, fmt.Sprintf(format, args...))
}

// Failed reports whether a fatal defect was recorded
func (c *Context) Failed() bool {
	return c.failed
}

// Builder is one stage of the generation pipeline.
type Builder interface {
	Name() string

	// Execute runs the stage against ctx. Domain failures are recorded as
	// fatal defects on ctx; a returned error means the builder was misused.
	Execute(ctx *Context) error
}
