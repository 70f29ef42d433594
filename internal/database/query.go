package database

import (
	"strings"
)

// QueryBuilder rewrites queries written with ? placeholders for a dialect.
type QueryBuilder struct {
	dialect Dialect
}

func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build converts ? placeholders to the dialect's form. SQLite queries are
// returned unchanged, PostgreSQL ones get $1, $2, ...
//
//	input:    "SELECT id FROM galaxies WHERE seed = ? AND shape = ?"
//	Postgres: "SELECT id FROM galaxies WHERE seed = $1 AND shape = $2"
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var result strings.Builder
	position := 1
	inString := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inString = !inString
			result.WriteByte(c)
		case c == '?' && !inString:
			result.WriteString(qb.dialect.Placeholder(position))
			position++
		default:
			result.WriteByte(c)
		}
	}
	return result.String()
}

// Expand replaces the {name} markers of a schema statement with the
// dialect's column types.
func (qb *QueryBuilder) Expand(statement string) string {
	return strings.NewReplacer(
		"{serial}", qb.dialect.SerialPrimaryKey(),
		"{blob}", qb.dialect.BlobType(),
		"{bigint}", qb.dialect.BigIntType(),
		"{nocase}", qb.dialect.NoCaseText(),
	).Replace(statement)
}
