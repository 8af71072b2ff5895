// Package cached wraps a Storage with a read-through cache for course reads.
package cached

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"COURSEHUB_BACK-END/internal/cache"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
)

const keyPrefix = "courses:"

// Store caches course lists and single courses. Users, registrations and
// contact messages pass straight through to the wrapped Storage.
// Any write that changes a course (creation, enrolled counter) drops every course key.
type Store struct {
	storage.Storage
	cache cache.Cache
	ttl   time.Duration
}

var _ storage.Storage = (*Store)(nil)

// New wraps next with c; entries live for ttl
func New(next storage.Storage, c cache.Cache, ttl time.Duration) *Store {
	return &Store{Storage: next, cache: c, ttl: ttl}
}

func listKey(category string) string {
	if c, ok := models.ParseCategory(category); ok {
		return keyPrefix + "list:" + string(c)
	}
	return keyPrefix + "list:" + models.CategoryAll
}

func courseKey(id int64) string {
	return keyPrefix + "id:" + strconv.FormatInt(id, 10)
}

func (s *Store) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.GetCoursesByCategory(ctx, models.CategoryAll)
}

func (s *Store) GetCoursesByCategory(ctx context.Context, category string) ([]models.Course, error) {
	key := listKey(category)
	var courses []models.Course
	if s.load(ctx, key, &courses) {
		return courses, nil
	}
	courses, err := s.Storage.GetCoursesByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, courses)
	return courses, nil
}

func (s *Store) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	key := courseKey(id)
	var course models.Course
	if s.load(ctx, key, &course) {
		return &course, nil
	}
	c, err := s.Storage.GetCourse(ctx, id)
	if err != nil || c == nil {
		return c, err
	}
	s.store(ctx, key, c)
	return c, nil
}

func (s *Store) CreateCourse(ctx context.Context, in models.NewCourse) (*models.Course, error) {
	c, err := s.Storage.CreateCourse(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *Store) CreateCourseRegistration(ctx context.Context, in models.NewCourseRegistration) (*models.CourseRegistration, error) {
	r, err := s.Storage.CreateCourseRegistration(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return r, nil
}

func (s *Store) Close() error {
	err := s.Storage.Close()
	if cerr := s.cache.Close(); err == nil {
		err = cerr
	}
	return err
}

// Cache failures degrade to the wrapped store and are only logged.

func (s *Store) load(ctx context.Context, key string, dst any) bool {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("course cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("course cache entry corrupt")
		return false
	}
	return true
}

func (s *Store) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("course cache write failed")
	}
}

func (s *Store) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, keyPrefix); err != nil {
		log.Warn().Err(err).Msg("course cache invalidation failed")
	}
}
