package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lawnchairsociety/galaxygen/internal/shape"
)

func main() {
	name := flag.String("name", "", "Name of the generated shape (required)")
	base := flag.String("from", "", "Rasterize a built-in or catalog shape instead of building one from flags")
	shapesFile := flag.String("shapes", "", "Shapes catalog to read -from shapes (default: built-in)")
	sectors := flag.Int("sectors", 4, "Number of spawn sectors")
	hubRadius := flag.Float64("hub-radius", 0.15, "Radius of the neutral hub (0 disables it)")
	outerRadius := flag.Float64("outer-radius", 0.48, "Radius of the galaxy disc")
	rotation := flag.Float64("rotation", 0, "Bearing of the first sector, in degrees")
	noiseSeed := flag.Int64("noise-seed", 0, "Seed of the density noise (0 means uniform density)")
	size := flag.Int("size", 512, "Raster size in pixels")
	outDir := flag.String("out", "data/shapes", "Output directory")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "Error: --name is required")
		flag.Usage()
		os.Exit(1)
	}

	var (
		data shape.ShapeData
		sh   *shape.Shape
		err  error
	)
	if *base != "" {
		catalog := shape.DefaultCatalog()
		if *shapesFile != "" {
			if catalog, err = shape.LoadCatalog(*shapesFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		sh, err = catalog.Get(*base)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		data = Describe(sh)
	} else {
		data, err = SectorShape(*sectors, *hubRadius, *outerRadius, *rotation, *noiseSeed)
		if err == nil {
			sh, err = data.Build("")
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	data.Name = *name

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendering shape '%s' at %dx%d\n", data.Name, *size, *size)
	written, err := Render(data, sh, *size, *outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		os.Exit(1)
	}

	catalogPath := filepath.Join(*outDir, data.Name+".yaml")
	if err := WriteCatalog(written, catalogPath); err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Region map:  %s\n", filepath.Join(*outDir, written.RegionMap))
	if written.DensityMap != "" {
		fmt.Printf("Density map: %s\n", filepath.Join(*outDir, written.DensityMap))
	}
	fmt.Printf("Catalog:     %s\n", catalogPath)
}
