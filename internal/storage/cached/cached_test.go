package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"COURSEHUB_BACK-END/internal/cache"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
	"COURSEHUB_BACK-END/internal/storage/memory"
	"COURSEHUB_BACK-END/internal/storage/storagetest"
)

// countingStore records how many course reads reach the backend
type countingStore struct {
	storage.Storage
	listCalls int
	getCalls  int
}

func (s *countingStore) GetCoursesByCategory(ctx context.Context, category string) ([]models.Course, error) {
	s.listCalls++
	return s.Storage.GetCoursesByCategory(ctx, category)
}

func (s *countingStore) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	s.getCalls++
	return s.Storage.GetCourse(ctx, id)
}

// failingCache errors on every call
type failingCache struct{}

var errCacheDown = errors.New("cache down")

func (failingCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errCacheDown }
func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errCacheDown
}
func (failingCache) DeletePrefix(context.Context, string) error { return errCacheDown }
func (failingCache) Close() error                               { return nil }

func TestStore_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return New(memory.New(), cache.NewMemory(), time.Minute)
	})
}

func TestStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Storage: memory.New()}
	s := New(backend, cache.NewMemory(), time.Minute)

	_, err := s.CreateCourse(ctx, models.NewCourse{Title: "Go", Category: models.CategoryTechnology, Price: 100})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		courses, err := s.GetCoursesByCategory(ctx, "technology")
		require.NoError(t, err)
		require.Len(t, courses, 1)
		c, err := s.GetCourse(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Go", c.Title)
	}
	assert.Equal(t, 1, backend.listCalls)
	assert.Equal(t, 1, backend.getCalls)

	// "all" and unknown categories share one key
	_, err = s.GetAllCourses(ctx)
	require.NoError(t, err)
	_, err = s.GetCoursesByCategory(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.listCalls)
}

func TestStore_MissesAreNotCached(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Storage: memory.New()}
	s := New(backend, cache.NewMemory(), time.Minute)

	for i := 0; i < 2; i++ {
		c, err := s.GetCourse(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, c)
	}
	assert.Equal(t, 2, backend.getCalls)
}

func TestStore_RegistrationInvalidatesCourses(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Storage: memory.New()}
	s := New(backend, cache.NewMemory(), time.Minute)

	u, err := s.CreateUser(ctx, models.NewUser{Email: "a@x.com", PasswordHash: "h", FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	c, err := s.CreateCourse(ctx, models.NewCourse{Title: "Go", Category: models.CategoryTechnology, Enrolled: 5})
	require.NoError(t, err)

	before, err := s.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), before.Enrolled)

	_, err = s.CreateCourseRegistration(ctx, models.NewCourseRegistration{UserID: u.ID, CourseID: c.ID})
	require.NoError(t, err)

	after, err := s.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), after.Enrolled)
	assert.Equal(t, 2, backend.getCalls)
}

func TestStore_CacheFailuresFallBack(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), failingCache{}, time.Minute)

	_, err := s.CreateCourse(ctx, models.NewCourse{Title: "Go", Category: models.CategoryTechnology})
	require.NoError(t, err)

	courses, err := s.GetAllCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	c, err := s.GetCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go", c.Title)
}
