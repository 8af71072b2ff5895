package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"COURSEHUB_BACK-END/internal/config"
)

// SQLiteDialect targets modernc.org/sqlite; used for local runs and tests
type SQLiteDialect struct{}

var _ Dialect = SQLiteDialect{}

func (SQLiteDialect) Name() string               { return config.DriverSQLite }
func (SQLiteDialect) Rebind(query string) string { return rebindToQuestion(query) }
func (SQLiteDialect) SupportsReturning() bool    { return true }

func (SQLiteDialect) IsUniqueViolation(err error) bool {
	var sqErr *sqlite.Error
	if !errors.As(err, &sqErr) {
		return false
	}
	code := sqErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func (SQLiteDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT,
			education_level TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			price INTEGER NOT NULL,
			original_price INTEGER,
			duration TEXT NOT NULL,
			enrolled INTEGER NOT NULL DEFAULT 0,
			image_url TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS course_registrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			course_id INTEGER NOT NULL REFERENCES courses(id),
			payment_status TEXT NOT NULL DEFAULT 'pending',
			registration_date DATETIME NOT NULL,
			UNIQUE (user_id, course_id)
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_category ON courses (category)`,
		`CREATE INDEX IF NOT EXISTS idx_course_registrations_user ON course_registrations (user_id)`,
	}
}

// OpenSQLite opens a SQLite database.
// dsn examples: "file:coursehub.db?cache=shared&mode=rwc" or ":memory:"
func OpenSQLite(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// every connection to :memory: is a separate database
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", p, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return db, nil
}
