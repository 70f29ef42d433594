package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// PostgresDialect targets PostgreSQL through lib/pq.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// Placeholder returns "$N"
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// InitStatements enables citext, used for the shape column
func (d *PostgresDialect) InitStatements() []string {
	return []string{
		"CREATE EXTENSION IF NOT EXISTS citext",
	}
}

// IsDuplicateKeyError checks for SQLSTATE 23505 (unique_violation)
func (d *PostgresDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key")
}

func (d *PostgresDialect) SerialPrimaryKey() string {
	return "SERIAL PRIMARY KEY"
}

func (d *PostgresDialect) BlobType() string {
	return "BYTEA"
}

func (d *PostgresDialect) BigIntType() string {
	return "BIGINT"
}

func (d *PostgresDialect) NoCaseText() string {
	return "CITEXT"
}
