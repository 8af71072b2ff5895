package models

import (
	"strings"
	"time"
)

// Category is one of the fixed course labels
type Category string

const (
	CategoryTechnology Category = "technology"
	CategoryBusiness   Category = "business"
	CategoryDesign     Category = "design"
	CategoryLanguage   Category = "language"
	CategoryOther      Category = "other"

	// CategoryAll is the pass-through filter value
	CategoryAll = "all"
)

var categories = map[Category]bool{
	CategoryTechnology: true,
	CategoryBusiness:   true,
	CategoryDesign:     true,
	CategoryLanguage:   true,
	CategoryOther:      true,
}

// ParseCategory reports whether s names a known category.
// "all", empty and unknown values return false.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !categories[c] {
		return "", false
	}
	return c, true
}

// Course represents a course in the catalogue
type Course struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Category      Category  `json:"category" db:"category"`
	Price         int64     `json:"price" db:"price"`
	OriginalPrice *int64    `json:"originalPrice" db:"original_price"`
	Duration      string    `json:"duration" db:"duration"`
	Enrolled      int64     `json:"enrolled" db:"enrolled"`
	ImageURL      *string   `json:"imageUrl" db:"image_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// NewCourse is the input for creating a course
type NewCourse struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Category      Category `yaml:"category"`
	Price         int64    `yaml:"price"`
	OriginalPrice *int64   `yaml:"originalPrice"`
	Duration      string   `yaml:"duration"`
	Enrolled      int64    `yaml:"enrolled"`
	ImageURL      *string  `yaml:"imageUrl"`
}

// Clone returns a deep copy
func (c Course) Clone() Course {
	c.OriginalPrice = cloneInt64(c.OriginalPrice)
	c.ImageURL = cloneString(c.ImageURL)
	return c
}
