package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements storage.Storage on top of database/sql
type Store struct {
	db      *sql.DB
	dialect Dialect
	closers []func()
	now     func() time.Time
}

var _ storage.Storage = (*Store)(nil)

// NewStore wraps an open database. closers run after the database is closed.
func NewStore(db *sql.DB, dialect Dialect, closers ...func()) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		closers: closers,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Open connects to the configured driver and migrates the schema
func Open(ctx context.Context, driver string, cfg config.DatabaseConfig) (*Store, error) {
	var (
		db      *sql.DB
		dialect Dialect
		closers []func()
		err     error
	)
	switch driver {
	case config.DriverPostgres:
		var closePool func()
		db, closePool, err = OpenPostgres(ctx, cfg)
		dialect = PostgresDialect{}
		closers = append(closers, closePool)
	case config.DriverSQLite:
		db, err = OpenSQLite(cfg.SQLitePath)
		dialect = SQLiteDialect{}
	case config.DriverMySQL:
		db, err = OpenMySQL(ctx, cfg)
		dialect = MySQLDialect{}
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	store := NewStore(db, dialect, closers...)
	if err := AutoMigrate(ctx, db, dialect); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	err := s.db.Close()
	for _, c := range s.closers {
		c()
	}
	return err
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB returns the underlying connection (tests only)
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) rebind(query string) string {
	return s.dialect.Rebind(query)
}

// insert runs an INSERT and returns the generated id
func (s *Store) insert(ctx context.Context, q execer, query string, args ...any) (int64, error) {
	if s.dialect.SupportsReturning() {
		var id int64
		err := q.QueryRowContext(ctx, s.rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := q.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const userColumns = `id, email, password, first_name, last_name, phone, education_level, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.EducationLevel, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

// GetUser finds a user by id
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+userColumns+` FROM users WHERE id = $1`), id)
	return scanUser(row)
}

// GetUserByEmail finds a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+userColumns+` FROM users WHERE email = $1`), email)
	return scanUser(row)
}

// CreateUser inserts a user; the UNIQUE email constraint surfaces as storage.ErrDuplicate
func (s *Store) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	now := s.now()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO users (email, password, first_name, last_name, phone, education_level, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		in.Email, in.PasswordHash, in.FirstName, in.LastName, in.Phone, in.EducationLevel, now)
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return nil, storage.ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	u := models.User{
		ID:             id,
		Email:          in.Email,
		PasswordHash:   in.PasswordHash,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		EducationLevel: in.EducationLevel,
		CreatedAt:      now,
	}.Clone()
	return &u, nil
}

const courseColumns = `id, title, description, category, price, original_price, duration, enrolled, image_url, created_at`

func scanCourse(row interface{ Scan(...any) error }) (*models.Course, error) {
	c := &models.Course{}
	var category string
	err := row.Scan(&c.ID, &c.Title, &c.Description, &category, &c.Price, &c.OriginalPrice,
		&c.Duration, &c.Enrolled, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Category = models.Category(category)
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

// GetAllCourses lists every course ordered by id
func (s *Store) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.queryCourses(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id`)
}

// GetCoursesByCategory filters by category; "all" or an unknown category lists everything
func (s *Store) GetCoursesByCategory(ctx context.Context, category string) ([]models.Course, error) {
	c, ok := models.ParseCategory(category)
	if !ok {
		return s.GetAllCourses(ctx)
	}
	return s.queryCourses(ctx, `SELECT `+courseColumns+` FROM courses WHERE category = $1 ORDER BY id`, string(c))
}

func (s *Store) queryCourses(ctx context.Context, query string, args ...any) ([]models.Course, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// GetCourse finds a course by id
func (s *Store) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+courseColumns+` FROM courses WHERE id = $1`), id)
	c, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// CreateCourse inserts a course
func (s *Store) CreateCourse(ctx context.Context, in models.NewCourse) (*models.Course, error) {
	now := s.now()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO courses (title, description, category, price, original_price, duration, enrolled, image_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		in.Title, in.Description, string(in.Category), in.Price, in.OriginalPrice, in.Duration, in.Enrolled, in.ImageURL, now)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	c := models.Course{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Duration:      in.Duration,
		Enrolled:      in.Enrolled,
		ImageURL:      in.ImageURL,
		CreatedAt:     now,
	}.Clone()
	return &c, nil
}

// GetUserRegistrations lists a user's registrations ordered by id
func (s *Store) GetUserRegistrations(ctx context.Context, userID int64) ([]models.CourseRegistration, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, user_id, course_id, payment_status, registration_date
		 FROM course_registrations WHERE user_id = $1 ORDER BY id`), userID)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	regs := make([]models.CourseRegistration, 0)
	for rows.Next() {
		var r models.CourseRegistration
		if err := rows.Scan(&r.ID, &r.UserID, &r.CourseID, &r.PaymentStatus, &r.RegistrationDate); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		r.RegistrationDate = r.RegistrationDate.UTC()
		regs = append(regs, r)
	}
	return regs, rows.Err()
}

// CreateCourseRegistration inserts the registration and bumps the course's
// enrolled counter in one transaction
func (s *Store) CreateCourseRegistration(ctx context.Context, in models.NewCourseRegistration) (*models.CourseRegistration, error) {
	status := in.PaymentStatus
	if status == "" {
		status = models.PaymentStatusPending
	}
	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	id, err := s.insert(ctx, tx,
		`INSERT INTO course_registrations (user_id, course_id, payment_status, registration_date)
		 VALUES ($1, $2, $3, $4)`,
		in.UserID, in.CourseID, status, now)
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return nil, storage.ErrDuplicate
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`UPDATE courses SET enrolled = enrolled + 1 WHERE id = $1`), in.CourseID); err != nil {
		return nil, fmt.Errorf("increment enrolled: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit registration: %w", err)
	}

	return &models.CourseRegistration{
		ID:               id,
		UserID:           in.UserID,
		CourseID:         in.CourseID,
		PaymentStatus:    status,
		RegistrationDate: now,
	}, nil
}

// CreateContactMessage inserts a contact message
func (s *Store) CreateContactMessage(ctx context.Context, in models.NewContactMessage) (*models.ContactMessage, error) {
	now := s.now()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO contact_messages (first_name, last_name, email, phone, subject, message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		in.FirstName, in.LastName, in.Email, in.Phone, in.Subject, in.Message, now)
	if err != nil {
		return nil, fmt.Errorf("insert contact message: %w", err)
	}
	m := models.ContactMessage{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: now,
	}.Clone()
	return &m, nil
}
