package service

import (
	"context"
	"fmt"

	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
)

// CourseService exposes the read-only catalogue
type CourseService interface {
	// List returns every course when category is "all", empty or unknown
	List(ctx context.Context, category string) ([]models.Course, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
}

type courseService struct {
	store storage.Storage
}

func NewCourseService(store storage.Storage) CourseService {
	return &courseService{store: store}
}

func (s *courseService) List(ctx context.Context, category string) ([]models.Course, error) {
	var (
		courses []models.Course
		err     error
	)
	if c, ok := models.ParseCategory(category); ok {
		courses, err = s.store.GetCoursesByCategory(ctx, string(c))
	} else {
		courses, err = s.store.GetAllCourses(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

func (s *courseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.store.GetCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	if course == nil {
		return nil, &NotFoundError{Resource: "Course", ID: id}
	}
	return course, nil
}
