// galaxygen generates one galaxy and writes it as YAML or JSON.
//
// Usage:
//
//	go run ./cmd/galaxygen -config data/galaxygen.yaml -seed 42 -out out/galaxy.yaml
//	go run ./cmd/galaxygen -archive -format json
//	go run ./cmd/galaxygen -list 20
//	go run ./cmd/galaxygen -show <archive id>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lawnchairsociety/galaxygen/internal/config"
	"github.com/lawnchairsociety/galaxygen/internal/database"
	"github.com/lawnchairsociety/galaxygen/internal/export"
	"github.com/lawnchairsociety/galaxygen/internal/generator"
	"github.com/lawnchairsociety/galaxygen/internal/logger"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
)

func main() {
	configFile := flag.String("config", "data/galaxygen.yaml", "Path to config YAML file (also read for the logging block)")
	seed := flag.Int64("seed", 0, "Generation seed (default: from config, then random based on current time)")
	shapeName := flag.String("shape", "", "Galaxy shape name")
	size := flag.String("size", "", "Galaxy size preset")
	empires := flag.Int("empires", 0, "Number of empires")
	format := flag.String("format", "", "Output format: yaml or json")
	outFile := flag.String("out", "", "Output file (empty for stdout)")
	archive := flag.Bool("archive", false, "Store the result in the galaxy archive")
	showStats := flag.Bool("stats", true, "Print galaxy statistics to stderr")
	listShapes := flag.Bool("shapes", false, "List available shapes and exit")
	listArchive := flag.Int("list", 0, "List the N most recent archived galaxies and exit")
	showArchived := flag.String("show", "", "Print an archived galaxy by ID and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	logConfig, err := logger.LoadConfig(*configFile)
	if err != nil {
		log.Printf("Failed to load logging config, using defaults: %v", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg, *seed, *shapeName, *size, *empires, *format, *outFile, *archive)

	switch {
	case *listShapes:
		printShapes(cfg)
		return
	case *listArchive > 0:
		listArchived(cfg, *listArchive)
		return
	case *showArchived != "":
		showArchivedGalaxy(cfg, *showArchived)
		return
	}

	gen, err := generator.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to set up generator: %v", err)
	}
	logger.Info("Generating galaxy",
		"seed", gen.Seed(),
		"random", cfg.Generation.Seed == 0,
		"shape", cfg.Generation.Shape,
		"size", cfg.Generation.GalaxySize,
		"stars", gen.Params().Population,
		"empires", gen.Params().Empires)

	result, err := gen.Generate()
	if err != nil {
		log.Fatalf("Generation error: %v", err)
	}

	doc := export.FromResult(result)
	if *showStats && doc.Stats != nil {
		fmt.Fprint(os.Stderr, doc.Stats.Format())
	}

	if cfg.Output.Path != "" {
		if err := export.WriteFile(cfg.Output.Path, doc, cfg.Output.Format); err != nil {
			log.Fatalf("Failed to write galaxy: %v", err)
		}
		logger.Info("Galaxy written", "path", cfg.Output.Path, "format", cfg.Output.Format)
	} else if err := export.Encode(os.Stdout, doc, cfg.Output.Format); err != nil {
		log.Fatalf("Failed to write galaxy: %v", err)
	}

	if cfg.Archive.Enabled {
		if err := archiveResult(cfg, doc); err != nil {
			log.Fatalf("Failed to archive galaxy: %v", err)
		}
	}

	if !result.Valid {
		for _, d := range result.Fatal() {
			logger.Error("Fatal defect", "attempt", d.Attempt, "stage", d.Stage, "message", d.Message)
		}
		os.Exit(2)
	}
}

// applyFlags lets non-zero flags override the loaded config
func applyFlags(cfg *config.Config, seed int64, shapeName, size string, empires int, format, outFile string, archive bool) {
	if seed != 0 {
		cfg.Generation.Seed = seed
	}
	if shapeName != "" {
		cfg.Generation.Shape = shapeName
	}
	if size != "" {
		cfg.Generation.GalaxySize = size
	}
	if empires > 0 {
		cfg.Generation.EmpiresNumber = empires
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if outFile != "" {
		cfg.Output.Path = outFile
	}
	if archive {
		cfg.Archive.Enabled = true
	}
}

func printShapes(cfg *config.Config) {
	catalog := shape.DefaultCatalog()
	if cfg.Paths.Shapes != "" {
		var err error
		if catalog, err = shape.LoadCatalog(cfg.Paths.Shapes); err != nil {
			log.Fatalf("Failed to load shapes: %v", err)
		}
	}
	for _, name := range catalog.Names() {
		fmt.Println(name)
	}
}

func openArchive(cfg *config.Config) *database.Database {
	db, err := database.OpenWithConfig(cfg.Archive.Database)
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	return db
}

func archiveResult(cfg *config.Config, doc *export.Document) error {
	db, err := database.OpenWithConfig(cfg.Archive.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := export.Record(doc, cfg.Generation.GalaxySize)
	if err != nil {
		return err
	}

	if rec.Fingerprint != "" {
		same, err := db.FindByFingerprint(rec.Fingerprint)
		if err != nil {
			return err
		}
		if len(same) > 0 {
			logger.Info("Galaxy already archived by an earlier run", "id", same[0].ID, "seed", same[0].Seed)
		}
	}

	if err := db.SaveGalaxy(rec); err != nil {
		return err
	}
	logger.Info("Galaxy archived", "id", rec.ID, "fingerprint", rec.Fingerprint, "driver", db.Dialect().DriverName())
	return nil
}

func listArchived(cfg *config.Config, limit int) {
	db := openArchive(cfg)
	defer db.Close()

	records, err := db.ListGalaxies(limit)
	if err != nil {
		log.Fatalf("Failed to list archive: %v", err)
	}
	for _, rec := range records {
		status := "ok"
		if !rec.Valid {
			status = "failed"
		}
		fmt.Printf("%s  %s  seed=%-20d %-10s %-8s stars=%-5d attempts=%d %s\n",
			rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Seed,
			rec.Shape, rec.Size, rec.StarCount, rec.Attempts, status)
	}
}

func showArchivedGalaxy(cfg *config.Config, id string) {
	db := openArchive(cfg)
	defer db.Close()

	rec, err := db.GetGalaxy(id)
	if err != nil {
		log.Fatalf("Failed to load galaxy %s: %v", id, err)
	}
	doc, err := export.FromRecord(rec)
	if err != nil {
		log.Fatalf("Failed to decode galaxy %s: %v", id, err)
	}
	if err := export.Encode(os.Stdout, doc, cfg.Output.Format); err != nil {
		log.Fatalf("Failed to write galaxy: %v", err)
	}
}
