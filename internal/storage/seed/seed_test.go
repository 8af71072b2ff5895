package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage/memory"
)

func TestDefaultCourses(t *testing.T) {
	courses, err := DefaultCourses()
	require.NoError(t, err)
	require.Len(t, courses, 6)

	perCategory := map[models.Category]int{}
	for _, c := range courses {
		perCategory[c.Category]++
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Duration)
		assert.Positive(t, c.Price)
	}
	assert.Equal(t, map[models.Category]int{
		models.CategoryTechnology: 2,
		models.CategoryBusiness:   2,
		models.CategoryDesign:     1,
		models.CategoryLanguage:   1,
	}, perCategory)
}

func TestParse(t *testing.T) {
	courses, err := Parse([]byte(`
- title: Intro
  description: Basics
  category: Design
  price: 10
  duration: 1 week
`))
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, models.CategoryDesign, courses[0].Category)

	_, err = Parse([]byte(`- {title: Odd, category: cooking}`))
	assert.EqualError(t, err, `seed course 0 ("Odd"): unknown category "cooking"`)

	_, err = Parse([]byte(`not: [a list`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- {title: A, category: other, price: 1}\n"), 0o600))

	courses, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, models.CategoryOther, courses[0].Category)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCourses_SeedsOnlyEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	courses, err := DefaultCourses()
	require.NoError(t, err)

	n, err := Courses(ctx, s, courses)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = Courses(ctx, s, courses)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := s.GetAllCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
	assert.Equal(t, int64(1), all[0].ID)
}
