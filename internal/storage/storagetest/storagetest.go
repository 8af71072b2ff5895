// Package storagetest is a behavioural test suite every storage.Storage backend must pass.
package storagetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
)

// Factory returns a fresh, empty store
type Factory func(t *testing.T) storage.Storage

func strPtr(s string) *string { return &s }
func intPtr(v int64) *int64   { return &v }

func newUser(email string) models.NewUser {
	return models.NewUser{
		Email:        email,
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		LastName:     "Smith",
		Phone:        strPtr("555-0100"),
	}
}

func newCourse(title string, category models.Category) models.NewCourse {
	return models.NewCourse{
		Title:         title,
		Description:   title + " description",
		Category:      category,
		Price:         199,
		OriginalPrice: intPtr(299),
		Duration:      "8 weeks",
		Enrolled:      10,
	}
}

// Run executes the suite
func Run(t *testing.T, factory Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, factory(t)) })
	t.Run("courses", func(t *testing.T) { testCourses(t, factory(t)) })
	t.Run("registrations", func(t *testing.T) { testRegistrations(t, factory(t)) })
	t.Run("contact messages", func(t *testing.T) { testContactMessages(t, factory(t)) })
	t.Run("concurrent duplicate emails", func(t *testing.T) { testConcurrentUsers(t, factory(t)) })
}

func testUsers(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	missing, err := s.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)
	missing, err = s.GetUserByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	a, err := s.CreateUser(ctx, newUser("alice@x.com"))
	require.NoError(t, err)
	b, err := s.CreateUser(ctx, newUser("bob@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := s.GetUserByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0100", *got.Phone)
	assert.Nil(t, got.EducationLevel)

	*got.Phone = "mutated"
	again, err := s.GetUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", *again.Phone)

	_, err = s.CreateUser(ctx, newUser("alice@x.com"))
	assert.ErrorIs(t, err, storage.ErrDuplicate)
}

func testCourses(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	all, err := s.GetAllCourses(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, c := range []models.NewCourse{
		newCourse("Go", models.CategoryTechnology),
		newCourse("Marketing", models.CategoryBusiness),
		newCourse("Rust", models.CategoryTechnology),
	} {
		_, err := s.CreateCourse(ctx, c)
		require.NoError(t, err)
	}

	for _, tc := range []struct {
		category string
		titles   []string
	}{
		{"", []string{"Go", "Marketing", "Rust"}},
		{"all", []string{"Go", "Marketing", "Rust"}},
		{"nonsense", []string{"Go", "Marketing", "Rust"}},
		{"technology", []string{"Go", "Rust"}},
		{"business", []string{"Marketing"}},
		{"design", nil},
	} {
		courses, err := s.GetCoursesByCategory(ctx, tc.category)
		require.NoError(t, err, tc.category)
		var titles []string
		for _, c := range courses {
			titles = append(titles, c.Title)
		}
		assert.Equal(t, tc.titles, titles, "category %q", tc.category)
	}

	c, err := s.GetCourse(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Marketing", c.Title)
	assert.Equal(t, models.CategoryBusiness, c.Category)
	require.NotNil(t, c.OriginalPrice)
	assert.Equal(t, int64(299), *c.OriginalPrice)
	assert.Nil(t, c.ImageURL)
	assert.Equal(t, int64(10), c.Enrolled)

	missing, err := s.GetCourse(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testRegistrations(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	u, err := s.CreateUser(ctx, newUser("alice@x.com"))
	require.NoError(t, err)
	c1, err := s.CreateCourse(ctx, newCourse("Go", models.CategoryTechnology))
	require.NoError(t, err)
	c2, err := s.CreateCourse(ctx, newCourse("Design", models.CategoryDesign))
	require.NoError(t, err)

	regs, err := s.GetUserRegistrations(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, regs)

	r1, err := s.CreateCourseRegistration(ctx, models.NewCourseRegistration{UserID: u.ID, CourseID: c1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), r1.ID)
	assert.Equal(t, models.PaymentStatusPending, r1.PaymentStatus)
	assert.False(t, r1.RegistrationDate.IsZero())

	r2, err := s.CreateCourseRegistration(ctx, models.NewCourseRegistration{UserID: u.ID, CourseID: c2.ID, PaymentStatus: models.PaymentStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, int64(2), r2.ID)

	_, err = s.CreateCourseRegistration(ctx, models.NewCourseRegistration{UserID: u.ID, CourseID: c1.ID})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	regs, err = s.GetUserRegistrations(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, c1.ID, regs[0].CourseID)
	assert.Equal(t, models.PaymentStatusCompleted, regs[1].PaymentStatus)

	course, err := s.GetCourse(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, c1.Enrolled+1, course.Enrolled)

	others, err := s.GetUserRegistrations(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func testContactMessages(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	m1, err := s.CreateContactMessage(ctx, models.NewContactMessage{
		FirstName: "Bob", LastName: "Jones", Email: "bob@x.com", Subject: "Hi", Message: "Hello there, world",
	})
	require.NoError(t, err)
	m2, err := s.CreateContactMessage(ctx, models.NewContactMessage{
		FirstName: "Eve", LastName: "Doe", Email: "eve@x.com", Phone: strPtr("1"), Subject: "Q", Message: "Another question",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m1.ID)
	assert.Equal(t, int64(2), m2.ID)
	assert.Nil(t, m1.Phone)
	assert.False(t, m2.CreatedAt.IsZero())
}

func testConcurrentUsers(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateUser(ctx, newUser("race@x.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case assert.ErrorIs(t, err, storage.ErrDuplicate):
				conflicts++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
}
