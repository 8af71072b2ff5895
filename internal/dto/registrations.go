package dto

// CourseRegistrationRequest represents the enrollment payload sent by the wizard
type CourseRegistrationRequest struct {
	UserID        *int64  `json:"userId" validate:"required,gt=0"`
	CourseID      *int64  `json:"courseId" validate:"required,gt=0"`
	PaymentStatus *string `json:"paymentStatus,omitempty" validate:"omitempty,max=32"`
}
