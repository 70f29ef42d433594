package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/lawnchairsociety/galaxygen/internal/shape"
	"gopkg.in/yaml.v3"
)

// palette holds the sector colors, in sector order
var palette = []color.RGBA{
	{R: 0xff, A: 0xff},
	{G: 0xff, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xff, G: 0xff, A: 0xff},
	{R: 0xff, B: 0xff, A: 0xff},
	{G: 0xff, B: 0xff, A: 0xff},
	{R: 0xff, G: 0x80, A: 0xff},
	{R: 0x80, B: 0xff, A: 0xff},
}

var hubColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

var ErrSectorCount = fmt.Errorf("sector count must be between 1 and %d", len(palette))

// SectorShape builds a shape of n spawn sectors, each adjacent to its two
// neighbors and to the hub when there is one
func SectorShape(n int, hubRadius, outerRadius, rotation float64, noiseSeed int64) (shape.ShapeData, error) {
	if n < 1 || n > len(palette) {
		return shape.ShapeData{}, ErrSectorCount
	}

	data := shape.ShapeData{
		MinEmpires: 2,
		MaxEmpires: 8,
		Sectors: &shape.SectorData{
			OuterRadius: outerRadius,
			Rotation:    rotation,
		},
	}
	for i := 0; i < n; i++ {
		c := shape.FormatColor(palette[i])
		data.Regions = append(data.Regions, shape.RegionData{Color: c, Spawn: true, Weight: 1})
		data.Sectors.Colors = append(data.Sectors.Colors, c)
		if n > 1 {
			next := shape.FormatColor(palette[(i+1)%n])
			// two sectors share both borders, link them once
			if n > 2 || i == 0 {
				data.Topology = append(data.Topology, shape.LinkData{A: c, B: next})
			}
		}
	}
	data.MinConstellations = n

	if hubRadius > 0 {
		hub := shape.FormatColor(hubColor)
		data.Sectors.Hub = hub
		data.Sectors.HubRadius = hubRadius
		data.Regions = append(data.Regions, shape.RegionData{Color: hub, Weight: 1})
		for i := 0; i < n; i++ {
			data.Topology = append(data.Topology, shape.LinkData{A: shape.FormatColor(palette[i]), B: hub})
		}
	}
	data.MaxConstellations = 2 * n

	if noiseSeed != 0 {
		data.Noise = &shape.NoiseData{
			Seed:        noiseSeed,
			Octaves:     4,
			Frequency:   3,
			Persistence: 0.5,
			Falloff:     0.5,
			Floor:       0.25,
		}
	}
	return data, nil
}

// Describe serializes the legend of a loaded shape, without its maps
func Describe(sh *shape.Shape) shape.ShapeData {
	data := shape.ShapeData{
		Name:              sh.Name,
		MinConstellations: sh.MinConstellations,
		MaxConstellations: sh.MaxConstellations,
		MinEmpires:        sh.MinEmpires,
		MaxEmpires:        sh.MaxEmpires,
	}
	for _, r := range sh.Regions {
		data.Regions = append(data.Regions, shape.RegionData{Color: shape.FormatColor(r.Color), Spawn: r.Spawn, Weight: r.Weight})
	}
	for _, l := range sh.Topology {
		data.Topology = append(data.Topology, shape.LinkData{A: shape.FormatColor(l.A), B: shape.FormatColor(l.B)})
	}
	for _, c := range sh.SpawnerSequence {
		data.SpawnerSequence = append(data.SpawnerSequence, shape.FormatColor(c))
	}
	return data
}

// Render rasterizes the region and density maps of sh into PNG files in
// outDir, and returns data pointing at them instead of procedural sources.
func Render(data shape.ShapeData, sh *shape.Shape, size int, outDir string) (shape.ShapeData, error) {
	if size < 8 {
		return data, errors.New("raster size must be at least 8 pixels")
	}
	if sh.RegionMap == nil {
		return data, shape.ErrNoRegionMap
	}

	regions := image.NewRGBA(image.Rect(0, 0, size, size))
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x, y := center(px, size), center(py, size)
			regions.SetRGBA(px, py, sh.RegionMap.Region(x, y))
		}
	}

	out := data
	out.Sectors, out.Noise = nil, nil
	out.RegionMap = data.Name + "_regions.png"
	if err := writePNG(filepath.Join(outDir, out.RegionMap), regions); err != nil {
		return data, err
	}

	out.DensityMap = ""
	if sh.DensityMap != nil {
		density := image.NewGray(image.Rect(0, 0, size, size))
		for py := 0; py < size; py++ {
			for px := 0; px < size; px++ {
				v := sh.DensityMap.Density(center(px, size), center(py, size))
				density.SetGray(px, py, color.Gray{Y: uint8(v*255 + 0.5)})
			}
		}
		out.DensityMap = data.Name + "_density.png"
		if err := writePNG(filepath.Join(outDir, out.DensityMap), density); err != nil {
			return data, err
		}
	}
	return out, nil
}

// center maps a pixel index to the normalized coordinate of its center
func center(p, size int) float64 {
	return (float64(p) + 0.5) / float64(size)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// WriteCatalog writes a shapes file holding data alone
func WriteCatalog(data shape.ShapeData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "# Shape %s\n", data.Name)
	fmt.Fprintf(f, "# Regions: %d\n\n", len(data.Regions))

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(shape.CatalogFile{Shapes: []shape.ShapeData{data}}); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return encoder.Close()
}
