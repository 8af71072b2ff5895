package sqlstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
	"COURSEHUB_BACK-END/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), config.DriverSQLite, config.DatabaseConfig{SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage { return newTestStore(t) })
}

func TestAutoMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, AutoMigrate(context.Background(), s.DB(), SQLiteDialect{}))
	require.NoError(t, s.Ping(context.Background()))
}

func TestForeignKeysEnforced(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateCourseRegistration(context.Background(), models.NewCourseRegistration{UserID: 1, CourseID: 1})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrDuplicate)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", config.DatabaseConfig{})
	assert.EqualError(t, err, `unsupported storage driver "oracle"`)
}

func TestRebind(t *testing.T) {
	q := `SELECT * FROM t WHERE a = $1 AND b = $2 OR c = $10`
	assert.Equal(t, `SELECT * FROM t WHERE a = ? AND b = ? OR c = ?`, SQLiteDialect{}.Rebind(q))
	assert.Equal(t, `SELECT * FROM t WHERE a = ? AND b = ? OR c = ?`, MySQLDialect{}.Rebind(q))
	assert.Equal(t, q, PostgresDialect{}.Rebind(q))
}

func TestDialectSchemasCoverAllTables(t *testing.T) {
	for _, d := range []Dialect{PostgresDialect{}, SQLiteDialect{}, MySQLDialect{}} {
		joined := strings.Join(d.Schema(), "\n")
		for _, table := range []string{"users", "courses", "course_registrations", "contact_messages"} {
			assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS "+table, "%s schema", d.Name())
		}
		assert.Contains(t, joined, "user_id", "%s schema", d.Name())
	}
}
