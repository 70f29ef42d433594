package shape

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}, true},
		{"#80ff10", color.RGBA{R: 0x80, G: 0xff, B: 0x10, A: 255}, true},
		{" #000000 ", Black, true},
		{"ff0000", color.RGBA{}, false},
		{"#gg0000", color.RGBA{}, false},
	}

	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseColor(%q) error = %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if !errors.Is(err, ErrBadColor) {
				t.Errorf("ParseColor(%q) error = %v, want ErrBadColor", tc.in, err)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if FormatColor(got) != FormatColor(tc.want) {
			t.Errorf("FormatColor round trip failed for %q", tc.in)
		}
	}
}

func testShape() *Shape {
	return &Shape{
		Name: "test",
		Regions: []Region{
			{Color: red, Spawn: true, Weight: 1},
			{Color: grey, Spawn: false, Weight: 2},
		},
		Topology:        []Link{{A: red, B: grey}},
		SpawnerSequence: []color.RGBA{red},
		RegionMap: &SectorRegions{
			Colors:      []color.RGBA{red},
			Hub:         grey,
			HasHub:      true,
			HubRadius:   0.2,
			OuterRadius: 0.45,
		},
	}
}

func TestSnap(t *testing.T) {
	s := testShape()

	tests := []struct {
		in   color.RGBA
		want color.RGBA
	}{
		{color.RGBA{R: 250, G: 10, B: 5, A: 255}, red},
		{color.RGBA{R: 120, G: 130, B: 125, A: 255}, grey},
		{color.RGBA{R: 10, G: 10, B: 10, A: 255}, Black},
	}

	for _, tc := range tests {
		if got := s.Snap(tc.in); got != tc.want {
			t.Errorf("Snap(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClassifySectors(t *testing.T) {
	s := testShape()

	if got := s.Classify(0.5, 0.5); got != grey {
		t.Errorf("center = %v, want hub grey", got)
	}
	if got := s.Classify(0.5, 0.1); got != red {
		t.Errorf("ring = %v, want red", got)
	}
	if got := s.Classify(0.01, 0.01); got != Black {
		t.Errorf("corner = %v, want black", got)
	}
}

func TestSectorOrder(t *testing.T) {
	m := &SectorRegions{Colors: []color.RGBA{red, green, blue, yellow}, OuterRadius: 0.5}

	tests := []struct {
		x, y float64
		want color.RGBA
	}{
		{0.6, 0.2, red},    // north-east
		{0.6, 0.8, green},  // south-east
		{0.4, 0.8, blue},   // south-west
		{0.4, 0.2, yellow}, // north-west
	}
	for _, tc := range tests {
		if got := m.Region(tc.x, tc.y); got != tc.want {
			t.Errorf("Region(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestTopology(t *testing.T) {
	s := testShape()

	if !s.Adjacent(grey, red) {
		t.Error("Adjacent(grey, red) = false, want true")
	}
	if !s.Connectable(red, red) {
		t.Error("Connectable(red, red) = false, want true")
	}
	if s.Connectable(red, blue) {
		t.Error("Connectable(red, blue) = true, want false")
	}
	if n := s.Neighbors(red); len(n) != 1 || n[0] != grey {
		t.Errorf("Neighbors(red) = %v, want [grey]", n)
	}
}

func TestNoiseDensityRange(t *testing.T) {
	n := NewNoiseDensity(3, 4, 3, 0.5, 1, 0.2)
	for x := 0.0; x <= 1; x += 0.05 {
		for y := 0.0; y <= 1; y += 0.05 {
			d := n.Density(x, y)
			if d < 0 || d > 1 {
				t.Fatalf("Density(%v, %v) = %v, expected [0, 1]", x, y, d)
			}
		}
	}
	if d := n.Density(0, 0); d != 0 {
		t.Errorf("Density at corner = %v, want 0 with falloff", d)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	for _, name := range []string{"Disc", "Quad", "Nebula"} {
		s, err := c.Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if len(s.SpawnerSequence) == 0 {
			t.Errorf("%s: empty spawner sequence", name)
		}
	}

	if _, err := c.Get("Missing"); !errors.Is(err, ErrUnknown) {
		t.Errorf("Get(Missing) error = %v, want ErrUnknown", err)
	}

	quad, _ := c.Get("Quad")
	if len(quad.SpawnerSequence) != 4 {
		t.Errorf("Quad spawner sequence = %d, want 4", len(quad.SpawnerSequence))
	}
}

func TestLoadCatalogWithRaster(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			if x < 5 {
				img.Set(x, y, red)
			} else {
				img.Set(x, y, green)
			}
		}
	}
	f, err := os.Create(filepath.Join(dir, "regions.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	content := `
shapes:
  - name: Halves
    min_empires: 2
    regions:
      - {color: "#ff0000", spawn: true}
      - {color: "#00ff00", spawn: true, weight: 3}
    topology:
      - {a: "#ff0000", b: "#00ff00"}
    region_map: regions.png
`
	path := filepath.Join(dir, "shapes.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}

	s, err := c.Get("Halves")
	if err != nil {
		t.Fatalf("Get(Halves) failed: %v", err)
	}
	if got := s.Classify(0.1, 0.5); got != red {
		t.Errorf("left half = %v, want red", got)
	}
	if got := s.Classify(0.9, 0.5); got != green {
		t.Errorf("right half = %v, want green", got)
	}
	if s.Regions[1].Weight != 3 {
		t.Errorf("green weight = %d, want 3", s.Regions[1].Weight)
	}
	if s.Regions[0].Weight != 1 {
		t.Errorf("default weight = %d, want 1", s.Regions[0].Weight)
	}
	if len(s.SpawnerSequence) != 2 {
		t.Errorf("spawner sequence = %d, want 2", len(s.SpawnerSequence))
	}
	if s.DensityMap != nil {
		t.Error("expected nil density map")
	}
}

func TestLoadCatalogMissingRegionMap(t *testing.T) {
	dir := t.TempDir()
	content := `
shapes:
  - name: Broken
    regions:
      - {color: "#ff0000", spawn: true}
`
	path := filepath.Join(dir, "shapes.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCatalog(path); !errors.Is(err, ErrNoRegionMap) {
		t.Errorf("LoadCatalog() error = %v, want ErrNoRegionMap", err)
	}
}
