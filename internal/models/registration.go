package models

import "time"

// Payment statuses. The client always sends PaymentStatusCompleted; no gateway exists.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// CourseRegistration links a user to a course they enrolled in
type CourseRegistration struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"userId" db:"user_id"`
	CourseID         int64     `json:"courseId" db:"course_id"`
	PaymentStatus    string    `json:"paymentStatus" db:"payment_status"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date"`
}

// NewCourseRegistration is the validated input for an enrollment
type NewCourseRegistration struct {
	UserID        int64
	CourseID      int64
	PaymentStatus string
}
