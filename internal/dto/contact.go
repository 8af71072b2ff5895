package dto

// ContactRequest represents the contact form payload
type ContactRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email,max=254" sanitize:"lower"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Subject   string  `json:"subject" validate:"required,max=200"`
	Message   string  `json:"message" validate:"required,max=5000"`
}
