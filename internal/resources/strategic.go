// Package resources distributes strategic and luxury resource deposits over
// the planets of a galaxy.
package resources

import (
	"math"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
	"github.com/lawnchairsociety/galaxygen/internal/rng"
	"github.com/lawnchairsociety/galaxygen/internal/settings"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
)

// StrategicBuilder places strategic resource deposits in passes. The first
// pass puts one deposit of every resource on distinct planets, the second
// covers every spawn region, and later passes spread the remaining quotas as
// far as possible from deposits of the same resource.
type StrategicBuilder struct{}

// NewStrategic creates a strategic resource builder
func NewStrategic() *StrategicBuilder {
	return &StrategicBuilder{}
}

func (b *StrategicBuilder) Name() string { return "Strategic" }

func (b *StrategicBuilder) Execute(ctx *galaxy.Context) error {
	log := logger.With("strategic")
	g := ctx.Galaxy
	names := ctx.Settings.StrategicResources

	if len(g.Planets) < len(names) {
		ctx.Fatal(b.Name(), "Less planets than strategic resource types")
		return nil
	}

	a := &allocator{ctx: ctx, stage: b.Name(), remaining: make(map[string]int, len(names))}
	a.pool = make([]int, len(g.Planets))
	for i := range a.pool {
		a.pool[i] = i
	}
	rng.Shuffle(ctx.Rand, len(a.pool), func(i, j int) { a.pool[i], a.pool[j] = a.pool[j], a.pool[i] })
	for _, name := range names {
		a.remaining[name] = ctx.Params.StrategicPerType
	}

	iterations := ctx.Settings.DepositSizes()
	if len(iterations) == 0 {
		ctx.Fatal(b.Name(), "Found empty iteration table for strategic resource deposits")
		return nil
	}
	sizes := make([]int, len(iterations))
	for i, it := range iterations {
		sizes[i] = it.Size
		switch {
		case it.Size <= 0:
			sizes[i] = 1
			ctx.Defect(b.Name(), "Found negative deposit size in iteration - defaulted to 1")
		case it.Size > galaxy.MaxDepositSize:
			ctx.Defect(b.Name(), "Found too large deposit size in iteration - left unchanged")
		}
	}

	a.resources = append([]string(nil), names...)
	rng.Shuffle(ctx.Rand, len(a.resources), func(i, j int) {
		a.resources[i], a.resources[j] = a.resources[j], a.resources[i]
	})

	pass := 0
	placed := true
	for a.quotaLeft() && placed {
		for _, size := range sizes {
			pass++
			switch pass {
			case 1:
				if !a.first(size) {
					ctx.Fatal(b.Name(), "Failed to allocate first batch of strategic resources")
					return nil
				}
			case 2:
				a.second(size)
			default:
				placed = a.spread(size)
			}
		}
	}
	log.Debug("strategic passes done", "passes", pass, "deposits", len(g.Deposits(galaxy.Strategic)))

	for _, name := range names {
		if !a.present(name) {
			ctx.Fatalf(b.Name(), "Unable to place a single deposit of %s", name)
			return nil
		}
	}
	return nil
}

type allocator struct {
	ctx       *galaxy.Context
	stage     string
	pool      []int // shuffled planets without a deposit
	resources []string
	remaining map[string]int
}

func (a *allocator) quotaLeft() bool {
	for _, n := range a.remaining {
		if n > 0 {
			return true
		}
	}
	return false
}

// accepts reports whether planet p may receive a deposit of the strategic
// resource name
func (a *allocator) accepts(p *galaxy.Planet, name string) bool {
	s := a.ctx.Settings
	if p.Deposit != nil || p.StrategicInhibited(name) {
		return false
	}
	return settings.Scale(s.StrategicScale, s.StrategicLevel(p.Type, name)) > 0
}

func (a *allocator) place(planet int, name string, size int) {
	p := a.ctx.Galaxy.Planets[planet]
	p.Deposit = &galaxy.Deposit{Name: name, Size: size, Kind: galaxy.Strategic, Planet: planet}
	a.remaining[name] -= size
	for i, id := range a.pool {
		if id == planet {
			a.pool = append(a.pool[:i], a.pool[i+1:]...)
			break
		}
	}
}

func (a *allocator) clamp(name string, size int) int {
	if r := a.remaining[name]; size > r {
		return r
	}
	return size
}

func (a *allocator) present(name string) bool {
	for _, d := range a.ctx.Galaxy.Deposits(galaxy.Strategic) {
		if d.Name == name {
			return true
		}
	}
	return false
}

// first looks for one distinct legal planet per resource, starting the scan
// of the shuffled planets at every possible offset until one offset works.
func (a *allocator) first(size int) bool {
	g := a.ctx.Galaxy
	n := len(a.pool)
	for start := 0; start < n; start++ {
		sites := make(map[string]int, len(a.resources))
		taken := make(map[int]bool, len(a.resources))
		for _, name := range a.resources {
			for k := 0; k < n; k++ {
				id := a.pool[(start+k)%n]
				if !taken[id] && a.accepts(g.Planets[id], name) {
					sites[name] = id
					taken[id] = true
					break
				}
			}
		}
		if len(sites) < len(a.resources) {
			continue
		}
		for _, name := range a.resources {
			a.place(sites[name], name, size)
		}
		return true
	}
	return false
}

// second puts a deposit of every resource in every populated spawn region
func (a *allocator) second(size int) {
	g := a.ctx.Galaxy
	regions := g.SpawnRegions()
	found := make(map[*galaxy.Region]map[string]bool, len(regions))

	for _, name := range a.resources {
		for _, r := range regions {
			var candidates []int
			for _, star := range r.Stars {
				for _, id := range g.Stars[star].Planets {
					if a.accepts(g.Planets[id], name) {
						candidates = append(candidates, id)
					}
				}
			}
			local := a.clamp(name, size)
			if len(candidates) == 0 || local <= 0 {
				continue
			}
			a.place(rng.Pick(a.ctx.Rand, candidates), name, local)
			if found[r] == nil {
				found[r] = make(map[string]bool)
			}
			found[r][name] = true
		}
	}

	for _, r := range regions {
		if len(found[r]) < len(a.resources) {
			a.ctx.Defectf(a.stage, "Region %s misses some strategic resource", shape.FormatColor(r.Color))
		}
	}
}

// spread places one deposit per resource on the legal planet farthest from
// the deposits of the same resource. It reports whether anything was placed.
func (a *allocator) spread(size int) bool {
	placed := false
	for _, name := range a.resources {
		local := a.clamp(name, size)
		if local <= 0 {
			continue
		}
		if id, ok := a.farthest(name); ok {
			a.place(id, name, local)
			placed = true
		}
	}
	return placed
}

func (a *allocator) farthest(name string) (int, bool) {
	g := a.ctx.Galaxy

	var sites []int
	for _, d := range g.Deposits(galaxy.Strategic) {
		if d.Name == name {
			sites = append(sites, g.Planets[d.Planet].Star)
		}
	}

	best, bestDistance := -1, -1.0
	for _, id := range a.pool {
		p := g.Planets[id]
		if !a.accepts(p, name) {
			continue
		}
		nearest := math.Inf(1)
		for _, star := range sites {
			nearest = math.Min(nearest, g.Distance(p.Star, star))
		}
		if nearest > bestDistance {
			best, bestDistance = id, nearest
		}
	}
	return best, best >= 0
}
