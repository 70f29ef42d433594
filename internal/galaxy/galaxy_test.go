package galaxy

import (
	"image/color"
	"testing"

	"github.com/lawnchairsociety/galaxygen/internal/geometry"
	"github.com/lawnchairsociety/galaxygen/internal/rng"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	grey = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

func lineGalaxy(n int) *Galaxy {
	g := New()
	for i := 0; i < n; i++ {
		g.AddStar(geometry.Point{X: float64(i), Y: 0}, red)
	}
	return g
}

func TestAddStar(t *testing.T) {
	g := lineGalaxy(3)
	for i, s := range g.Stars {
		if s.ID != i {
			t.Errorf("Stars[%d].ID = %d", i, s.ID)
		}
		if s.Constellation != -1 || s.HomeWorld != -1 {
			t.Errorf("Stars[%d] not initialized unassigned", i)
		}
	}
}

func TestDirectDistances(t *testing.T) {
	g := lineGalaxy(4)
	g.ComputeDirectDistances()

	if d := g.Distance(0, 3); d != 3 {
		t.Errorf("Distance(0, 3) = %v, want 3", d)
	}
	if d := g.Distance(2, 1); d != 1 {
		t.Errorf("Distance(2, 1) = %v, want 1", d)
	}
	if d := g.Distance(2, 2); d != 0 {
		t.Errorf("Distance(2, 2) = %v, want 0", d)
	}
}

func TestWarpDistances(t *testing.T) {
	g := lineGalaxy(5)
	g.SetWarps([]Warp{{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 3}})
	g.ComputeWarpDistances()

	if got := g.Stars[0].WarpDistance[3]; got != 3 {
		t.Errorf("WarpDistance[0][3] = %d, want 3", got)
	}
	if got := g.Stars[3].WarpDistance[0]; got != 3 {
		t.Errorf("WarpDistance[3][0] = %d, want 3", got)
	}
	if got := g.Stars[0].WarpDistance[4]; got != Unreachable {
		t.Errorf("WarpDistance[0][4] = %d, want Unreachable", got)
	}
	if got := g.Stars[1].Destinations; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Destinations of 1 = %v, want [0 2]", got)
	}
}

func TestConstellationsAndWormholes(t *testing.T) {
	g := lineGalaxy(4)
	a := g.AddConstellation("Lyra")
	b := g.AddConstellation("Vela")
	g.Assign(0, a.ID)
	g.Assign(1, a.ID)
	g.Assign(2, b.ID)
	g.Assign(3, b.ID)

	if !g.IsWormhole(1, 2) {
		t.Error("IsWormhole(1, 2) = false, want true")
	}
	if g.IsWormhole(0, 1) {
		t.Error("IsWormhole(0, 1) = true, want false")
	}
	g.SetWarps([]Warp{{A: 0, B: 1}, {A: 1, B: 2, Wormhole: true}, {A: 2, B: 3}})
	if got := g.Wormholes(); got != 1 {
		t.Errorf("Wormholes() = %d, want 1", got)
	}
	if len(b.Stars) != 2 {
		t.Errorf("Vela has %d stars, want 2", len(b.Stars))
	}
}

func TestRegions(t *testing.T) {
	g := New()
	g.Regions = []*Region{
		{Color: red, Spawn: true, Stars: []int{0}},
		{Color: grey, Spawn: false, Stars: []int{1}},
		{Color: color.RGBA{B: 0xff, A: 0xff}, Spawn: true},
	}

	if got := len(g.SpawnRegions()); got != 1 {
		t.Errorf("SpawnRegions() = %d, want 1 (empty regions skipped)", got)
	}
	if got := len(g.NeutralRegions()); got != 1 {
		t.Errorf("NeutralRegions() = %d, want 1", got)
	}
	if r := g.Region(grey); r == nil || r.Spawn {
		t.Errorf("Region(grey) = %v, want neutral region", r)
	}
}

func TestRemovePlanetsAndCompact(t *testing.T) {
	g := lineGalaxy(2)
	g.AddPlanet(0)
	g.AddPlanet(0)
	p := g.AddPlanet(1)
	p.Deposit = &Deposit{Name: "Titanium", Size: 1, Planet: p.ID}

	g.RemovePlanets(0)
	g.AddPlanet(0)
	g.Compact()

	if len(g.Planets) != 2 {
		t.Fatalf("Planets = %d, want 2", len(g.Planets))
	}
	for i, pl := range g.Planets {
		if pl.ID != i {
			t.Errorf("Planets[%d].ID = %d", i, pl.ID)
		}
	}
	if got := g.Stars[1].Planets[0]; got != 0 {
		t.Errorf("star 1 planet = %d, want 0", got)
	}
	if got := g.Planets[0].Deposit.Planet; got != 0 {
		t.Errorf("deposit back reference = %d, want 0", got)
	}
	if got := g.Stars[0].Planets[0]; got != 1 {
		t.Errorf("star 0 planet = %d, want 1", got)
	}
}

func TestNamePool(t *testing.T) {
	names := []string{"Vega", "Rigel", "Spica"}
	pool := NewNamePool(names)
	src := rng.New(42)

	seen := make(map[string]bool)
	for i := 0; i < len(names); i++ {
		n := pool.Next(src)
		if seen[n] {
			t.Fatalf("Next() repeated %q before exhaustion", n)
		}
		seen[n] = true
	}
	if n := pool.Next(src); n == "" {
		t.Error("Next() after exhaustion = \"\", want a reset pool")
	}

	if n := NewNamePool(nil).Next(src); n != "" {
		t.Errorf("empty pool Next() = %q, want \"\"", n)
	}
}

func TestContextDefects(t *testing.T) {
	ctx := &Context{}
	ctx.Defect("Star", "Abnormally few stars were generated")
	if ctx.Failed() {
		t.Error("Failed() = true after a non-fatal defect")
	}
	ctx.Fatalf("Spawn", "Only %d of %d empires placed", 2, 4)
	if !ctx.Failed() {
		t.Error("Failed() = false after a fatal defect")
	}
	if len(ctx.Defects) != 2 || !ctx.Defects[1].Fatal {
		t.Errorf("Defects = %v", ctx.Defects)
	}
	if got := ctx.Defects[1].String(); got != "[Spawn] FATAL Only 2 of 4 empires placed" {
		t.Errorf("String() = %q", got)
	}
}
