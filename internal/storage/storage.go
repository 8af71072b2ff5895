// Package storage defines the persistence contract for users, courses,
// course registrations and contact messages.
//
// Implementations live in sub-packages (memory, sqlstore) and are injected
// at startup. Every lookup miss returns a nil record and a nil error; callers
// decide what absence means. Returned records are copies owned by the caller.
package storage

import (
	"context"
	"errors"

	"COURSEHUB_BACK-END/internal/models"
)

// ErrDuplicate is returned when an insert would break a uniqueness rule
// (user email, or one registration per user and course).
var ErrDuplicate = errors.New("duplicate: entity already exists")

// Storage is the contract every backend satisfies
type Storage interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)

	GetAllCourses(ctx context.Context) ([]models.Course, error)
	// GetCoursesByCategory returns every course when category is "all", empty or unknown.
	GetCoursesByCategory(ctx context.Context, category string) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, course models.NewCourse) (*models.Course, error)

	GetUserRegistrations(ctx context.Context, userID int64) ([]models.CourseRegistration, error)
	// CreateCourseRegistration also increments the course's enrolled counter.
	CreateCourseRegistration(ctx context.Context, reg models.NewCourseRegistration) (*models.CourseRegistration, error)

	CreateContactMessage(ctx context.Context, msg models.NewContactMessage) (*models.ContactMessage, error)

	Ping(ctx context.Context) error
	Close() error
}
