package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lawnchairsociety/galaxygen/internal/config"
	"github.com/lawnchairsociety/galaxygen/internal/database"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
)

func main() {
	configFile := flag.String("config", "data/galaxygen.yaml", "Path to config YAML file")
	seeds := flag.String("seeds", "", "Seed range to generate (e.g., 1-100 or 42)")
	outDir := flag.String("out", "out/batch", "Output directory")
	format := flag.String("format", "", "Output format: yaml or json (default: from config)")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of concurrent generators")
	archive := flag.Bool("archive", false, "Store every result in the galaxy archive")
	flag.Parse()

	if *seeds == "" {
		fmt.Fprintln(os.Stderr, "Error: --seeds is required (e.g., --seeds=1-100 or --seeds=42)")
		flag.Usage()
		os.Exit(1)
	}

	start, end, err := parseSeedRange(*seeds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid seed range: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	// batch output is the report, keep the generator quiet
	logConfig, _ := logger.LoadConfig(*configFile)
	if logConfig.Level == "INFO" || logConfig.Level == "DEBUG" {
		logConfig.Level = "WARNING"
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *format != "" {
		cfg.Output.Format = *format
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	gen := NewBatchGenerator(cfg, *outDir, *workers)
	if *archive || cfg.Archive.Enabled {
		db, err := database.OpenWithConfig(cfg.Archive.Database)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open archive: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		gen.Archive = db
	}

	fmt.Printf("Generating seeds %d-%d (shape: %s, size: %s, workers: %d)\n",
		start, end, cfg.Generation.Shape, cfg.Generation.GalaxySize, gen.Workers)
	fmt.Printf("Output directory: %s\n\n", *outDir)

	report := gen.Run(start, end, func(r SeedReport) {
		switch {
		case r.Error != "":
			fmt.Printf("seed %d... ERROR: %s\n", r.Seed, r.Error)
		case !r.Valid:
			fmt.Printf("seed %d... FAILED after %d attempts\n", r.Seed, r.Attempts)
		default:
			fmt.Printf("seed %d... OK (%d stars, %d attempts)\n", r.Seed, r.Stars, r.Attempts)
		}
	})

	reportPath := filepath.Join(*outDir, "report.yaml")
	if err := WriteReport(report, reportPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%d valid, %d failed, %d errors, %d duplicate fingerprints\n",
		report.Valid, report.Failed, report.Errors, len(report.Duplicates))
	fmt.Printf("Report written to %s\n", reportPath)
	if report.Errors > 0 {
		os.Exit(1)
	}
}

// parseSeedRange parses a seed range string like "1-100" or "42"
func parseSeedRange(s string) (start, end int64, err error) {
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("invalid range format, expected 'start-end'")
		}
		start, err = strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start seed: %w", err)
		}
		end, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end seed: %w", err)
		}
	} else {
		start, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid seed: %w", err)
		}
		end = start
	}

	if start < 1 {
		return 0, 0, fmt.Errorf("seeds must be >= 1 (seed 0 picks a random seed)")
	}
	if end < start {
		return 0, 0, fmt.Errorf("end seed must be >= start seed")
	}

	return start, end, nil
}
