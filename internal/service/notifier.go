package service

import (
	"context"

	"COURSEHUB_BACK-END/internal/models"
)

// Notifier sends user-facing notifications. A nil Notifier disables them.
type Notifier interface {
	SendRegistrationConfirmation(ctx context.Context, user models.User, course models.Course) error
	SendContactNotification(ctx context.Context, msg models.ContactMessage) error
}
