package models

import "time"

// ContactMessage is a message left through the contact form
type ContactMessage struct {
	ID        int64     `json:"id" db:"id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NewContactMessage is the validated contact form input
type NewContactMessage struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Subject   string
	Message   string
}

// Clone returns a deep copy
func (m ContactMessage) Clone() ContactMessage {
	m.Phone = cloneString(m.Phone)
	return m
}
