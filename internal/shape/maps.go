package shape

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"

	"github.com/lawnchairsociety/galaxygen/internal/geometry"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// ImageMap samples a raster. It serves both as a region map (pixel color) and
// as a density map (pixel brightness).
type ImageMap struct {
	img    image.Image
	bounds image.Rectangle
}

// NewImageMap wraps an already decoded image
func NewImageMap(img image.Image) *ImageMap {
	return &ImageMap{img: img, bounds: img.Bounds()}
}

// LoadImageMap decodes a PNG file
func LoadImageMap(path string) (*ImageMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode map %s: %w", path, err)
	}
	return NewImageMap(img), nil
}

func (m *ImageMap) at(x, y float64) color.RGBA {
	w, h := m.bounds.Dx(), m.bounds.Dy()
	px := clampIndex(int(x*float64(w)), w)
	py := clampIndex(int(y*float64(h)), h)
	return color.RGBAModel.Convert(m.img.At(m.bounds.Min.X+px, m.bounds.Min.Y+py)).(color.RGBA)
}

// Region returns the pixel color at the normalized coordinate
func (m *ImageMap) Region(x, y float64) color.RGBA {
	return m.at(x, y)
}

// Density returns the pixel brightness at the normalized coordinate
func (m *ImageMap) Density(x, y float64) float64 {
	c := m.at(x, y)
	return (float64(c.R) + float64(c.G) + float64(c.B)) / (3 * 255)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// SectorRegions splits a disc into equal angular sectors around an optional
// hub. Everything outside OuterRadius is black.
type SectorRegions struct {
	Colors      []color.RGBA
	Hub         color.RGBA
	HasHub      bool
	HubRadius   float64 // normalized, 0.5 touches the map border
	OuterRadius float64
	Rotation    float64 // degrees, bearing of the first sector start
}

// Region returns the sector (or hub) color at the normalized coordinate
func (s *SectorRegions) Region(x, y float64) color.RGBA {
	offset := geometry.Point{X: x - 0.5, Y: 0.5 - y}
	d := offset.Magnitude()
	if d > s.OuterRadius || len(s.Colors) == 0 {
		return Black
	}
	if s.HasHub && d <= s.HubRadius {
		return s.Hub
	}

	bearing := geometry.Bearing(geometry.Point{}, offset) - s.Rotation
	for bearing < 0 {
		bearing += 360
	}
	sector := int(bearing / (360 / float64(len(s.Colors))))
	return s.Colors[clampIndex(sector, len(s.Colors))]
}

// NoiseDensity is a procedural density field made of layered simplex noise and
// a radial falloff towards the map border.
type NoiseDensity struct {
	noise       opensimplex.Noise
	Octaves     int
	Frequency   float64
	Persistence float64
	Falloff     float64 // exponent of the radial falloff, 0 disables it
	Floor       float64 // minimum density inside the disc
}

// NewNoiseDensity creates a density field from seed
func NewNoiseDensity(seed int64, octaves int, frequency, persistence, falloff, floor float64) *NoiseDensity {
	if octaves < 1 {
		octaves = 1
	}
	return &NoiseDensity{
		noise:       opensimplex.NewNormalized(seed),
		Octaves:     octaves,
		Frequency:   frequency,
		Persistence: persistence,
		Falloff:     falloff,
		Floor:       floor,
	}
}

// Density returns a value in [0, 1]
func (n *NoiseDensity) Density(x, y float64) float64 {
	v := octaveNoise(n.noise, x, y, n.Octaves, n.Frequency, n.Persistence)
	v = n.Floor + (1-n.Floor)*v

	if n.Falloff > 0 {
		d := math.Hypot(x-0.5, y-0.5) / 0.5
		radial := 1 - d
		if radial < 0 {
			radial = 0
		}
		v *= math.Pow(radial, n.Falloff)
	}
	return clamp01(v)
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
