package database

// Dialect hides the SQL differences between SQLite and PostgreSQL that the
// archive schema and queries run into.
type Dialect interface {
	// DriverName is the database/sql driver name
	DriverName() string

	// Placeholder returns the parameter placeholder for a 1-based position
	Placeholder(position int) string

	// InitStatements run once after the connection opens
	InitStatements() []string

	// IsDuplicateKeyError reports a unique constraint violation
	IsDuplicateKeyError(err error) bool

	// Column types used by the schema
	SerialPrimaryKey() string
	BlobType() string
	BigIntType() string
	NoCaseText() string
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect returns the dialect for dialectType, SQLite when unknown.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
