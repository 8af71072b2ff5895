// Package seed loads the sample course catalogue.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
)

//go:embed courses.yaml
var defaultCourses []byte

// DefaultCourses returns the built-in catalogue
func DefaultCourses() ([]models.NewCourse, error) {
	return Parse(defaultCourses)
}

// LoadFile reads a catalogue from a YAML file
func LoadFile(path string) ([]models.NewCourse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of courses and checks their categories
func Parse(data []byte) ([]models.NewCourse, error) {
	var courses []models.NewCourse
	if err := yaml.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("decode seed courses: %w", err)
	}
	for i, c := range courses {
		cat, ok := models.ParseCategory(string(c.Category))
		if !ok {
			return nil, fmt.Errorf("seed course %d (%q): unknown category %q", i, c.Title, c.Category)
		}
		courses[i].Category = cat
	}
	return courses, nil
}

// Courses inserts the given courses when the store has none yet.
// It returns the number of courses created.
func Courses(ctx context.Context, s storage.Storage, courses []models.NewCourse) (int, error) {
	existing, err := s.GetAllCourses(ctx)
	if err != nil {
		return 0, fmt.Errorf("list courses: %w", err)
	}
	if len(existing) > 0 {
		log.Debug().Int("existing", len(existing)).Msg("course catalogue already present, skipping seed")
		return 0, nil
	}
	for _, c := range courses {
		if _, err := s.CreateCourse(ctx, c); err != nil {
			return 0, fmt.Errorf("create course %q: %w", c.Title, err)
		}
	}
	log.Info().Int("courses", len(courses)).Msg("seeded course catalogue")
	return len(courses), nil
}
