package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"COURSEHUB_BACK-END/internal/config"
)

// MySQLDialect targets MySQL 8 through go-sql-driver/mysql
type MySQLDialect struct{}

var _ Dialect = MySQLDialect{}

func (MySQLDialect) Name() string               { return config.DriverMySQL }
func (MySQLDialect) Rebind(query string) string { return rebindToQuestion(query) }
func (MySQLDialect) SupportsReturning() bool    { return false }

func (MySQLDialect) IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

func (MySQLDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(254) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(32),
			education_level VARCHAR(64),
			created_at DATETIME(6) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(32) NOT NULL,
			price BIGINT NOT NULL,
			original_price BIGINT,
			duration VARCHAR(64) NOT NULL,
			enrolled BIGINT NOT NULL DEFAULT 0,
			image_url TEXT,
			created_at DATETIME(6) NOT NULL,
			INDEX idx_courses_category (category)
		)`,
		`CREATE TABLE IF NOT EXISTS course_registrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			course_id BIGINT NOT NULL,
			payment_status VARCHAR(32) NOT NULL DEFAULT 'pending',
			registration_date DATETIME(6) NOT NULL,
			UNIQUE KEY uq_registration (user_id, course_id),
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (course_id) REFERENCES courses(id)
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email VARCHAR(254) NOT NULL,
			phone VARCHAR(32),
			subject VARCHAR(200) NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME(6) NOT NULL
		)`,
	}
}

// OpenMySQL connects to MySQL, retrying while the server comes up
func OpenMySQL(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnTimeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return db, nil
		}
		if attempt >= cfg.ConnRetries {
			db.Close()
			return nil, fmt.Errorf("failed to connect to mysql after %d attempts: %w", attempt, err)
		}
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}
}
