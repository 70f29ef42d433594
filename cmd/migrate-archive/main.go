// migrate-archive copies the galaxy archive from SQLite to PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-archive \
//	    -sqlite data/galaxies.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user galaxygen \
//	    -pg-password galaxygen \
//	    -pg-database galaxygen
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lawnchairsociety/galaxygen/internal/database"
)

func main() {
	defaults := database.DefaultPostgresConfig()

	sqlitePath := flag.String("sqlite", "data/galaxies.db", "Path to SQLite archive")
	pgHost := flag.String("pg-host", defaults.Host, "PostgreSQL host")
	pgPort := flag.Int("pg-port", defaults.Port, "PostgreSQL port")
	pgUser := flag.String("pg-user", defaults.User, "PostgreSQL user")
	pgPassword := flag.String("pg-password", envOr("ARCHIVE_POSTGRES_PASSWORD", ""), "PostgreSQL password")
	pgDatabase := flag.String("pg-database", defaults.Database, "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", defaults.SSLMode, "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("Galaxy Archive Migration Tool")
	log.Println("====================================")

	if _, err := os.Stat(*sqlitePath); err != nil {
		log.Fatalf("SQLite archive not found: %v", err)
	}

	log.Printf("Opening SQLite archive: %s", *sqlitePath)
	src, err := database.Open(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite archive: %v", err)
	}
	defer src.Close()

	records, err := src.ListGalaxies(0)
	if err != nil {
		log.Fatalf("Failed to list galaxies: %v", err)
	}
	log.Printf("Found %d archived galaxies", len(records))

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
		for _, rec := range records {
			log.Printf("  would copy %s (seed %d, %s)", rec.ID, rec.Seed, rec.Shape)
		}
		return
	}

	pgConfig := defaults
	pgConfig.Host = *pgHost
	pgConfig.Port = *pgPort
	pgConfig.User = *pgUser
	pgConfig.Password = *pgPassword
	pgConfig.Database = *pgDatabase
	pgConfig.SSLMode = *pgSSLMode

	// opening migrates the schema
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", pgConfig.User, pgConfig.Host, pgConfig.Port, pgConfig.Database)
	dst, err := database.OpenWithConfig(database.Config{Driver: string(database.DialectPostgres), Postgres: pgConfig})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer dst.Close()

	copied, skipped, err := migrateGalaxies(src, dst, records)
	if err != nil {
		log.Fatalf("Migration failed after %d galaxies: %v", copied, err)
	}

	log.Println("====================================")
	log.Printf("Migration complete! Copied %d galaxies, %d already present", copied, skipped)
}

// migrateGalaxies copies records with their defects and payloads, keeping IDs
// and timestamps. Galaxies already in dst are skipped.
func migrateGalaxies(src, dst *database.Database, records []*database.GalaxyRecord) (copied, skipped int, err error) {
	for _, summary := range records {
		rec, err := src.GetGalaxy(summary.ID)
		if err != nil {
			return copied, skipped, fmt.Errorf("read %s: %w", summary.ID, err)
		}
		err = dst.SaveGalaxy(rec)
		switch {
		case errors.Is(err, database.ErrGalaxyExists):
			skipped++
		case err != nil:
			return copied, skipped, fmt.Errorf("write %s: %w", rec.ID, err)
		default:
			copied++
		}
	}
	return copied, skipped, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Copies the galaxy archive from SQLite to PostgreSQL.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -sqlite data/galaxies.db -pg-host localhost -pg-user galaxygen -pg-password galaxygen -pg-database galaxygen\n", os.Args[0])
	}
}
