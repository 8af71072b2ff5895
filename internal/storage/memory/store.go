// Package memory is the default in-process Storage backend.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
)

type regKey struct {
	userID   int64
	courseID int64
}

// Store keeps all four collections in maps guarded by one RWMutex.
// Id counters start at 1 and only move forward.
type Store struct {
	mu sync.RWMutex

	users         map[int64]models.User
	usersByEmail  map[string]int64
	courses       map[int64]models.Course
	registrations map[int64]models.CourseRegistration
	regIndex      map[regKey]int64
	messages      map[int64]models.ContactMessage

	nextUserID         int64
	nextCourseID       int64
	nextRegistrationID int64
	nextMessageID      int64

	now func() time.Time
}

var _ storage.Storage = (*Store)(nil)

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		users:              make(map[int64]models.User),
		usersByEmail:       make(map[string]int64),
		courses:            make(map[int64]models.Course),
		registrations:      make(map[int64]models.CourseRegistration),
		regIndex:           make(map[regKey]int64),
		messages:           make(map[int64]models.ContactMessage),
		nextUserID:         1,
		nextCourseID:       1,
		nextRegistrationID: 1,
		nextMessageID:      1,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u = u.Clone()
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, nil
	}
	u := s.users[id].Clone()
	return &u, nil
}

// CreateUser rejects an email that is already taken inside the same critical
// section as the insert, so concurrent sign-ups cannot both succeed.
func (s *Store) CreateUser(_ context.Context, in models.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usersByEmail[in.Email]; exists {
		return nil, storage.ErrDuplicate
	}
	u := models.User{
		ID:             s.nextUserID,
		Email:          in.Email,
		PasswordHash:   in.PasswordHash,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		EducationLevel: in.EducationLevel,
		CreatedAt:      s.now(),
	}.Clone()
	s.nextUserID++
	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID
	out := u.Clone()
	return &out, nil
}

func (s *Store) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.GetCoursesByCategory(ctx, models.CategoryAll)
}

func (s *Store) GetCoursesByCategory(_ context.Context, category string) ([]models.Course, error) {
	filter, filtered := models.ParseCategory(category)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if filtered && c.Category != filter {
			continue
		}
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetCourse(_ context.Context, id int64) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, nil
	}
	c = c.Clone()
	return &c, nil
}

func (s *Store) CreateCourse(_ context.Context, in models.NewCourse) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := models.Course{
		ID:            s.nextCourseID,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Duration:      in.Duration,
		Enrolled:      in.Enrolled,
		ImageURL:      in.ImageURL,
		CreatedAt:     s.now(),
	}.Clone()
	s.nextCourseID++
	s.courses[c.ID] = c
	out := c.Clone()
	return &out, nil
}

func (s *Store) GetUserRegistrations(_ context.Context, userID int64) ([]models.CourseRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CourseRegistration, 0)
	for _, r := range s.registrations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateCourseRegistration(_ context.Context, in models.NewCourseRegistration) (*models.CourseRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := regKey{userID: in.UserID, courseID: in.CourseID}
	if _, exists := s.regIndex[key]; exists {
		return nil, storage.ErrDuplicate
	}
	status := in.PaymentStatus
	if status == "" {
		status = models.PaymentStatusPending
	}
	r := models.CourseRegistration{
		ID:               s.nextRegistrationID,
		UserID:           in.UserID,
		CourseID:         in.CourseID,
		PaymentStatus:    status,
		RegistrationDate: s.now(),
	}
	s.nextRegistrationID++
	s.registrations[r.ID] = r
	s.regIndex[key] = r.ID
	if c, ok := s.courses[in.CourseID]; ok {
		c.Enrolled++
		s.courses[c.ID] = c
	}
	return &r, nil
}

func (s *Store) CreateContactMessage(_ context.Context, in models.NewContactMessage) (*models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := models.ContactMessage{
		ID:        s.nextMessageID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: s.now(),
	}.Clone()
	s.nextMessageID++
	s.messages[m.ID] = m
	out := m.Clone()
	return &out, nil
}

// Ping always succeeds for the in-memory backend
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op; there is nothing to release
func (s *Store) Close() error { return nil }
