package database

import (
	"strings"
)

// SQLiteDialect targets modernc.org/sqlite.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite"
}

// Placeholder returns "?" whatever the position
func (d *SQLiteDialect) Placeholder(position int) string {
	return "?"
}

// InitStatements enables foreign keys (defect rows cascade with their
// galaxy), WAL and a busy timeout for concurrent batch writers.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

func (d *SQLiteDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (d *SQLiteDialect) SerialPrimaryKey() string {
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (d *SQLiteDialect) BlobType() string {
	return "BLOB"
}

func (d *SQLiteDialect) BigIntType() string {
	return "INTEGER"
}

func (d *SQLiteDialect) NoCaseText() string {
	return "TEXT COLLATE NOCASE"
}
