// Package events publishes domain events about course registrations.
package events

import (
	"context"
	"time"
)

// TypeRegistrationCreated is emitted after a registration is stored
const TypeRegistrationCreated = "registration.created"

// RegistrationCreated is the payload of TypeRegistrationCreated
type RegistrationCreated struct {
	Type           string    `json:"type"`
	RegistrationID int64     `json:"registrationId"`
	UserID         int64     `json:"userId"`
	CourseID       int64     `json:"courseId"`
	PaymentStatus  string    `json:"paymentStatus"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishRegistrationCreated(ctx context.Context, ev RegistrationCreated) error
	Close() error
}
