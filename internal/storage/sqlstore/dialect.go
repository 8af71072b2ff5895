// Package sqlstore is the relational Storage backend.
//
// Queries are written with PostgreSQL placeholders ($1, $2, ...) and rebound
// by the active Dialect, so one repository serves PostgreSQL, SQLite and MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
)

// Dialect hides the SQL differences between the supported engines
type Dialect interface {
	// Name is the driver identifier ("postgres", "sqlite", "mysql")
	Name() string
	// Rebind converts $N placeholders to the engine's style
	Rebind(query string) string
	// SupportsReturning reports whether INSERT ... RETURNING id is available
	SupportsReturning() bool
	// IsUniqueViolation reports whether err comes from a UNIQUE constraint
	IsUniqueViolation(err error) bool
	// Schema returns the CREATE statements, executed one at a time
	Schema() []string
}

var pgPlaceholderRe = regexp.MustCompile(`\$(\d+)`)

// rebindToQuestion turns $N placeholders into ? (MySQL/SQLite)
func rebindToQuestion(query string) string {
	return pgPlaceholderRe.ReplaceAllString(query, "?")
}

// AutoMigrate creates the tables if they do not exist
func AutoMigrate(ctx context.Context, db *sql.DB, d Dialect) error {
	for _, stmt := range d.Schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", d.Name(), err)
		}
	}
	return nil
}
