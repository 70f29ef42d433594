package export

import (
	"bytes"
	"errors"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/generator"
	"github.com/lawnchairsociety/galaxygen/internal/geometry"
)

func sampleResult() *generator.Result {
	red := color.RGBA{R: 0xff, A: 0xff}
	g := galaxy.New()
	for i, pos := range []geometry.Point{{X: -12.5, Y: 3.25}, {X: 7, Y: 0.1}, {X: 1.0 / 3, Y: -9}} {
		s := g.AddStar(pos, red)
		s.Name = []string{"Alpha", "Beta", "Gamma"}[i]
		s.Type = "YellowStar"
		p := g.AddPlanet(s.ID)
		p.Type, p.Size = "Terran", "Medium"
		s.HomeWorld = 0
	}
	g.Planets[0].Moons = []string{galaxy.NoTemple, "SunTemple"}
	g.Planets[1].Deposit = &galaxy.Deposit{Name: "Titanium", Size: 2, Kind: galaxy.Strategic, Planet: 1}
	g.Planets[2].Deposit = &galaxy.Deposit{Name: "Silk", Size: 3, Kind: galaxy.Luxury, Planet: 2}

	c := g.AddConstellation("Orion")
	d := g.AddConstellation("Lyra")
	g.Assign(0, c.ID)
	g.Assign(1, c.ID)
	g.Assign(2, d.ID)
	g.SetWarps([]galaxy.Warp{{A: 0, B: 1}, {A: 1, B: 2, Wormhole: true}})
	g.ComputeWarpDistances()
	g.SpawnStars = []int{2, 0}

	return &generator.Result{
		Galaxy:   g,
		Defects:  []galaxy.Defect{{Stage: "Spawn", Message: "Using downgraded spawn algorithm", Attempt: 1}},
		Valid:    true,
		Attempts: 1,
		Seed:     99,
		Shape:    "Disc",
	}
}

func TestFromResult(t *testing.T) {
	doc := FromResult(sampleResult())

	if len(doc.Stars) != 3 || len(doc.Constellations) != 2 {
		t.Fatalf("stars, constellations = %d, %d, want 3, 2", len(doc.Stars), len(doc.Constellations))
	}
	if len(doc.Warps) != 1 || len(doc.Wormholes) != 1 {
		t.Errorf("warps, wormholes = %v, %v", doc.Warps, doc.Wormholes)
	}
	if doc.Wormholes[0] != (Link{A: 1, B: 2}) {
		t.Errorf("wormhole = %v, want 1-2", doc.Wormholes[0])
	}
	if doc.Stars[0].Region != "#ff0000" {
		t.Errorf("region = %q, want #ff0000", doc.Stars[0].Region)
	}
	if dep := doc.Stars[2].Planets[0].Deposit; dep == nil || dep.Kind != "luxury" || dep.Size != 3 {
		t.Errorf("deposit = %+v, want luxury Silk 3", dep)
	}
	if doc.Constellations[0].Size != 2 {
		t.Errorf("constellation size = %d, want 2", doc.Constellations[0].Size)
	}
	if len(doc.Spawns) != 2 || doc.Spawns[0] != 2 {
		t.Errorf("spawns = %v, want [2 0]", doc.Spawns)
	}
	if doc.Stats == nil || doc.Stats.Stars != 3 {
		t.Errorf("stats = %+v", doc.Stats)
	}
	if len(doc.Defects) != 1 || doc.Defects[0].Attempt != 1 {
		t.Errorf("defects = %+v", doc.Defects)
	}
}

func TestFromFailedResult(t *testing.T) {
	r := &generator.Result{
		Attempts: 6,
		Defects:  []galaxy.Defect{{Stage: "Star", Message: "Very few stars were generated", Fatal: true, Attempt: 6}},
	}
	doc := FromResult(r)
	if doc.Valid || len(doc.Stars) != 0 || doc.Stats != nil {
		t.Errorf("failed document = %+v", doc)
	}
	if len(doc.Defects) != 1 || !doc.Defects[0].Fatal {
		t.Errorf("defects = %+v", doc.Defects)
	}
}

func TestRoundTrip(t *testing.T) {
	doc := FromResult(sampleResult())
	want, err := Fingerprint(doc)
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range []string{YAML, JSON} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "galaxy."+format)
			if err := WriteFile(path, doc, format); err != nil {
				t.Fatal(err)
			}
			back, err := ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if back.Seed != 99 || back.Shape != "Disc" || !back.Valid {
				t.Errorf("header = %d %s %v", back.Seed, back.Shape, back.Valid)
			}
			if back.Stars[2].X != doc.Stars[2].X {
				t.Errorf("x = %v, want %v", back.Stars[2].X, doc.Stars[2].X)
			}
			got, err := Fingerprint(back)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("Fingerprint after %s round trip = %s, want %s", format, got, want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := FromResult(sampleResult())
	b := FromResult(sampleResult())
	b.Seed = 1
	b.Defects = nil

	fa, _ := Fingerprint(a)
	fb, _ := Fingerprint(b)
	if fa != fb {
		t.Errorf("seed and defects changed the fingerprint")
	}
	if len(fa) != 64 {
		t.Errorf("Fingerprint length = %d, want 64", len(fa))
	}

	b.Warps[0].B = 2
	if fc, _ := Fingerprint(b); fc == fa {
		t.Error("changing a warp kept the fingerprint")
	}
}

func TestEncodeFormats(t *testing.T) {
	doc := FromResult(sampleResult())

	var buf bytes.Buffer
	if err := Encode(&buf, doc, "YAML"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "name: Alpha") {
		t.Errorf("yaml output missing star name:\n%s", buf.String())
	}

	buf.Reset()
	if err := Encode(&buf, doc, JSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"name": "Orion"`) {
		t.Errorf("json output missing constellation name")
	}

	if err := Encode(&buf, doc, "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode(xml) error = %v, want ErrUnknownFormat", err)
	}
}
