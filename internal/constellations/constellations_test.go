package constellations

import (
	"image/color"
	"testing"

	"github.com/lawnchairsociety/galaxygen/internal/config"
	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/geometry"
	"github.com/lawnchairsociety/galaxygen/internal/rng"
	"github.com/lawnchairsociety/galaxygen/internal/settings"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
	"github.com/lawnchairsociety/galaxygen/internal/stars"
)

func placedContext(t *testing.T, shapeName string, seed int64, k int) *galaxy.Context {
	t.Helper()
	sh, err := shape.DefaultCatalog().Get(shapeName)
	if err != nil {
		t.Fatal(err)
	}
	s := settings.DefaultSettings()
	p, err := settings.Resolve(s, config.DefaultConfig().Generation, sh)
	if err != nil {
		t.Fatal(err)
	}
	p.Constellations = k
	p.Empires = 4

	ctx := galaxy.NewContext(sh, s, p, rng.New(seed))
	if err := stars.New().Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Failed() {
		t.Fatalf("star placement failed: %v", ctx.Defects)
	}
	return ctx
}

// checkPartition verifies that every star belongs to exactly one constellation
func checkPartition(t *testing.T, g *galaxy.Galaxy) {
	t.Helper()
	count := make([]int, len(g.Stars))
	for _, c := range g.Constellations {
		for _, id := range c.Stars {
			count[id]++
			if g.Stars[id].Constellation != c.ID {
				t.Errorf("star %d lists constellation %d, member of %d", id, g.Stars[id].Constellation, c.ID)
			}
		}
	}
	for id, n := range count {
		if n != 1 {
			t.Errorf("star %d belongs to %d constellations", id, n)
		}
	}
}

func hasDefect(ctx *galaxy.Context, msg string) bool {
	for _, d := range ctx.Defects {
		if d.Message == msg {
			return true
		}
	}
	return false
}

func TestClustering(t *testing.T) {
	tests := []struct {
		name  string
		shape string
		k     int
		want  int
	}{
		{"single", "Quad", 1, 1},
		{"one per region", "Disc", 2, 2},
		{"spawn factorization", "Quad", 4, 4},
		{"spawn and neutral factorization", "Quad", 9, 9},
		{"topology merge", "Quad", 2, 2},
		{"factorization with isolated hub", "Disc", 3, 3},
		{"uneven factorization", "Quad", 6, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := placedContext(t, tc.shape, 11, tc.k)
			if err := New().Execute(ctx); err != nil {
				t.Fatal(err)
			}

			g := ctx.Galaxy
			checkPartition(t, g)
			if len(g.Constellations) != tc.want {
				t.Errorf("constellations = %d, want %d", len(g.Constellations), tc.want)
			}

			if hasDefect(ctx, "Unable to correlate regions and constellations") {
				return
			}
			for _, c := range g.Constellations {
				if len(c.Stars) < ctx.Params.MinStarsPerConstellation {
					t.Errorf("%s has %d stars, want at least %d", c.Name, len(c.Stars), ctx.Params.MinStarsPerConstellation)
				}
				if c.Name == "" {
					t.Errorf("constellation %d has no name", c.ID)
				}
			}
		})
	}
}

func TestClusteringLimitedByStars(t *testing.T) {
	ctx := placedContext(t, "Quad", 4, 200)
	if err := New().Execute(ctx); err != nil {
		t.Fatal(err)
	}

	if !hasDefect(ctx, "Number of constellations was limited by stars number") {
		t.Errorf("missing limit defect: %v", ctx.Defects)
	}
	checkPartition(t, ctx.Galaxy)
	max := len(ctx.Galaxy.Stars) / ctx.Params.MinStarsPerConstellation
	if n := len(ctx.Galaxy.Constellations); n > max {
		t.Errorf("constellations = %d, want at most %d", n, max)
	}
}

func TestSpawnRegionsStayWhole(t *testing.T) {
	ctx := placedContext(t, "Quad", 21, 4)
	if err := New().Execute(ctx); err != nil {
		t.Fatal(err)
	}

	// with one constellation per spawn region no constellation spans two of them
	g := ctx.Galaxy
	for _, c := range g.Constellations {
		spawnColors := make(map[color.RGBA]bool)
		for _, id := range c.Stars {
			if r := g.Region(g.Stars[id].Region); r.Spawn {
				spawnColors[r.Color] = true
			}
		}
		if len(spawnColors) > 1 {
			t.Errorf("%s spans %d spawn regions", c.Name, len(spawnColors))
		}
	}
}

func TestFeedStarved(t *testing.T) {
	sh := &shape.Shape{}
	ctx := galaxy.NewContext(sh, settings.DefaultSettings(), settings.Params{}, rng.New(1))
	g := ctx.Galaxy
	red := color.RGBA{R: 0xff, A: 0xff}
	for _, x := range []float64{0, 1, 10, 11, 2, 12} {
		g.AddStar(geometry.Point{X: x}, red)
	}
	g.ComputeDirectDistances()

	c := &clusterer{ctx: ctx, min: 3}
	groups, pool := c.feedStarved([][]int{{0}, {2}, {}}, []int{1, 3, 4, 5})

	want := [][]int{{0, 1, 4}, {2, 3, 5}, {}}
	for i := range want {
		if len(groups[i]) != len(want[i]) {
			t.Fatalf("groups[%d] = %v, want %v", i, groups[i], want[i])
		}
		for j := range want[i] {
			if groups[i][j] != want[i][j] {
				t.Errorf("groups[%d] = %v, want %v", i, groups[i], want[i])
				break
			}
		}
	}
	if len(pool) != 0 {
		t.Errorf("pool = %v, want empty", pool)
	}
}

func TestSplitUsesNearestFocus(t *testing.T) {
	sh := &shape.Shape{}
	ctx := galaxy.NewContext(sh, settings.DefaultSettings(), settings.Params{}, rng.New(1))
	g := ctx.Galaxy
	red := color.RGBA{R: 0xff, A: 0xff}

	// two well separated clumps on the x axis
	var pool []int
	for _, x := range []float64{-20, -19, -18, -17, 17, 18, 19, 20} {
		s := g.AddStar(geometry.Point{X: x}, red)
		pool = append(pool, s.ID)
	}
	g.ComputeDirectDistances()

	c := &clusterer{ctx: ctx, min: 2}
	c.split(2, pool)

	if len(g.Constellations) != 2 {
		t.Fatalf("constellations = %d, want 2", len(g.Constellations))
	}
	for _, con := range g.Constellations {
		side := g.Stars[con.Stars[0]].Position.X > 0
		for _, id := range con.Stars {
			if (g.Stars[id].Position.X > 0) != side {
				t.Errorf("%s mixes both clumps", con.Name)
				break
			}
		}
	}
}
