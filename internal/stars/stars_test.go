package stars

import (
	"image/color"
	"math"
	"testing"

	"github.com/lawnchairsociety/galaxygen/internal/config"
	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/geometry"
	"github.com/lawnchairsociety/galaxygen/internal/rng"
	"github.com/lawnchairsociety/galaxygen/internal/settings"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func newContext(t *testing.T, sh *shape.Shape, seed int64, mutate func(*settings.Params)) *galaxy.Context {
	t.Helper()
	s := settings.DefaultSettings()
	p, err := settings.Resolve(s, config.DefaultConfig().Generation, sh)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if mutate != nil {
		mutate(&p)
	}
	return galaxy.NewContext(sh, s, p, rng.New(seed))
}

func defaultShape(t *testing.T, name string) *shape.Shape {
	t.Helper()
	sh, err := shape.DefaultCatalog().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	return sh
}

func TestPlacement(t *testing.T) {
	ctx := newContext(t, defaultShape(t, "Quad"), 1, nil)
	if err := New().Execute(ctx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ctx.Failed() {
		t.Fatalf("placement failed: %v", ctx.Defects)
	}

	g := ctx.Galaxy
	p := ctx.Params
	if len(g.Stars) < 4*p.Population/5 {
		t.Errorf("placed %d stars, want at least %d", len(g.Stars), 4*p.Population/5)
	}

	half := p.MaxWidth / 2
	for _, s := range g.Stars {
		if math.Abs(s.Position.X) > half || math.Abs(s.Position.Y) > half {
			t.Errorf("star %d at %v lies outside the galaxy", s.ID, s.Position)
		}
		if s.Region == shape.Black {
			t.Errorf("star %d placed in black space", s.ID)
		}
		if s.Name == "" || s.Type == "" {
			t.Errorf("star %d has name %q type %q", s.ID, s.Name, s.Type)
		}
		if len(s.DirectDistance) != len(g.Stars) {
			t.Errorf("star %d distance table = %d entries", s.ID, len(s.DirectDistance))
		}
	}

	for i := range g.Stars {
		for j := i + 1; j < len(g.Stars); j++ {
			if d := g.Distance(i, j); d <= p.MinStarDistance {
				t.Fatalf("stars %d and %d are %.2f apart, want > %.2f", i, j, d, p.MinStarDistance)
			}
		}
	}

	total := 0
	for _, r := range g.Regions {
		total += len(r.Stars)
		for _, id := range r.Stars {
			if g.Stars[id].Region != r.Color {
				t.Errorf("star %d listed in the wrong region", id)
			}
		}
	}
	if total != len(g.Stars) {
		t.Errorf("regions hold %d stars, galaxy has %d", total, len(g.Stars))
	}
}

func TestRegionQuotas(t *testing.T) {
	regions := []shape.Region{
		{Color: red, Weight: 1},
		{Color: color.RGBA{G: 0xff, A: 0xff}, Weight: 2},
	}

	q := regionQuotas(regions, 10)
	if q[regions[0].Color] != 3 || q[regions[1].Color] != 6 {
		t.Errorf("regionQuotas(10) = %v, want 3 and 6", q)
	}
	if q := regionQuotas(regions, 2); q != nil {
		t.Errorf("regionQuotas(2) = %v, want nil", q)
	}
	if q := regionQuotas(nil, 10); q != nil {
		t.Errorf("regionQuotas(no regions) = %v, want nil", q)
	}
}

func TestFullBalancing(t *testing.T) {
	ctx := newContext(t, defaultShape(t, "Quad"), 3, func(p *settings.Params) {
		p.Balancing = 1
	})
	if err := New().Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Failed() {
		t.Fatalf("placement failed: %v", ctx.Defects)
	}

	want := ctx.Params.Population / len(ctx.Shape.Regions)
	for _, r := range ctx.Galaxy.Regions {
		if len(r.Stars) < want {
			t.Errorf("region %s has %d stars, want at least %d", shape.FormatColor(r.Color), len(r.Stars), want)
		}
	}
}

func TestDeterministicPlacement(t *testing.T) {
	a := newContext(t, defaultShape(t, "Nebula"), 99, nil)
	b := newContext(t, defaultShape(t, "Nebula"), 99, nil)
	New().Execute(a)
	New().Execute(b)

	if len(a.Galaxy.Stars) != len(b.Galaxy.Stars) {
		t.Fatalf("star counts differ: %d vs %d", len(a.Galaxy.Stars), len(b.Galaxy.Stars))
	}
	for i := range a.Galaxy.Stars {
		if !geometry.Equal(a.Galaxy.Stars[i].Position, b.Galaxy.Stars[i].Position) {
			t.Fatalf("star %d differs: %v vs %v", i, a.Galaxy.Stars[i].Position, b.Galaxy.Stars[i].Position)
		}
	}
}

// spotMap has three tiny red spots on black
type spotMap struct {
	spots  []geometry.Point
	radius float64
}

func (m spotMap) Region(x, y float64) color.RGBA {
	for _, s := range m.spots {
		if math.Hypot(x-s.X, y-s.Y) < m.radius {
			return red
		}
	}
	return shape.Black
}

func TestUnreachablePopulation(t *testing.T) {
	sh := &shape.Shape{
		Name:            "Spots",
		Regions:         []shape.Region{{Color: red, Spawn: true, Weight: 1}},
		SpawnerSequence: []color.RGBA{red},
		RegionMap: spotMap{
			spots:  []geometry.Point{{X: 0.25, Y: 0.25}, {X: 0.75, Y: 0.25}, {X: 0.5, Y: 0.75}},
			radius: 0.005,
		},
	}
	ctx := newContext(t, sh, 5, func(p *settings.Params) {
		p.Population = 40
		p.MaxWidth = 100
		p.Empires = 10
	})
	if err := New().Execute(ctx); err != nil {
		t.Fatal(err)
	}

	if !ctx.Failed() {
		t.Fatalf("Failed() = false with %d stars placed", len(ctx.Galaxy.Stars))
	}
	if n := len(ctx.Galaxy.Stars); n > 3 {
		t.Errorf("placed %d stars on three spots", n)
	}
}
