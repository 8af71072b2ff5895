package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"COURSEHUB_BACK-END/internal/config"
)

// PostgresDialect targets PostgreSQL through pgx
type PostgresDialect struct{}

var _ Dialect = PostgresDialect{}

func (PostgresDialect) Name() string               { return config.DriverPostgres }
func (PostgresDialect) Rebind(query string) string { return query }
func (PostgresDialect) SupportsReturning() bool    { return true }

func (PostgresDialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (PostgresDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT,
			education_level TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			price BIGINT NOT NULL,
			original_price BIGINT,
			duration TEXT NOT NULL,
			enrolled BIGINT NOT NULL DEFAULT 0,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS course_registrations (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			course_id BIGINT NOT NULL REFERENCES courses(id),
			payment_status TEXT NOT NULL DEFAULT 'pending',
			registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, course_id)
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id BIGSERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_category ON courses (category)`,
		`CREATE INDEX IF NOT EXISTS idx_course_registrations_user ON course_registrations (user_id)`,
	}
}

// OpenPostgres builds a tuned pgx pool and exposes it as *sql.DB.
// The returned func closes the pool and must run after the *sql.DB is closed.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("parse dsn: %w", err)
	}
	// Simple protocol is required behind PgBouncer in transaction mode
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "coursehub-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", cfg.QueryTimeout.Milliseconds())
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	return stdlib.OpenDBFromPool(pool), pool.Close, nil
}
