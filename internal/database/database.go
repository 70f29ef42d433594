// Package database archives generated galaxies in SQLite or PostgreSQL.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var ErrUnknownDriver = errors.New("database: unknown driver")

// Database wraps the archive connection.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens or creates the SQLite archive at path.
func Open(path string) (*Database, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens the archive selected by cfg and migrates its schema.
func OpenWithConfig(cfg Config) (*Database, error) {
	var dsn string
	switch DialectType(cfg.Driver) {
	case DialectSQLite, "":
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	case DialectPostgres:
		dsn = cfg.Postgres.DSN()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	dialect := NewDialect(DialectType(cfg.Driver))
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, ok := dialect.(*PostgresDialect); ok {
		p := cfg.Postgres
		if p.MaxOpenConns > 0 {
			db.SetMaxOpenConns(p.MaxOpenConns)
		}
		if p.MaxIdleConns > 0 {
			db.SetMaxIdleConns(p.MaxIdleConns)
		}
		if p.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(p.ConnMaxLifetime)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database (%s): %w", stmt, err)
		}
	}

	d := &Database{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// migrate creates the archive schema if it doesn't exist.
func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS galaxies (
			id TEXT PRIMARY KEY,
			seed {bigint} NOT NULL,
			shape {nocase} NOT NULL,
			galaxy_size TEXT NOT NULL DEFAULT '',
			valid INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 0,
			fingerprint TEXT NOT NULL DEFAULT '',
			star_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			payload {blob}
		)`,

		`CREATE TABLE IF NOT EXISTS defects (
			id {serial},
			galaxy_id TEXT NOT NULL REFERENCES galaxies(id) ON DELETE CASCADE,
			attempt INTEGER NOT NULL,
			stage TEXT NOT NULL,
			message TEXT NOT NULL,
			fatal INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_galaxies_fingerprint ON galaxies(fingerprint)`,
		`CREATE INDEX IF NOT EXISTS idx_galaxies_seed ON galaxies(seed)`,
		`CREATE INDEX IF NOT EXISTS idx_defects_galaxy_id ON defects(galaxy_id)`,
	}

	for _, m := range migrations {
		stmt := d.qb.Expand(m)
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, stmt)
		}
	}
	return nil
}

// DB returns the underlying sql.DB for advanced operations.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Dialect returns the SQL dialect of the connection
func (d *Database) Dialect() Dialect {
	return d.dialect
}
