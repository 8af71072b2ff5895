package models

import "time"

// User represents a student account
type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password"` // Hidden from JSON responses
	FirstName      string    `json:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" db:"last_name"`
	Phone          *string   `json:"phone" db:"phone"`
	EducationLevel *string   `json:"educationLevel" db:"education_level"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// NewUser is the validated input for creating a user
type NewUser struct {
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Phone          *string
	EducationLevel *string
}

// Clone returns a deep copy so callers never share pointers with the store
func (u User) Clone() User {
	u.Phone = cloneString(u.Phone)
	u.EducationLevel = cloneString(u.EducationLevel)
	return u
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
