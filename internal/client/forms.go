package client

// RegisterForm is the sign-up form. Rules are stricter than the server's.
type RegisterForm struct {
	FirstName       string  `json:"firstName" validate:"required"`
	LastName        string  `json:"lastName" validate:"required"`
	Email           string  `json:"email" validate:"required,email" sanitize:"lower"`
	Phone           *string `json:"phone"`
	Password        string  `json:"password" validate:"required,min=8" sanitize:"keep"`
	ConfirmPassword string  `json:"confirmPassword" validate:"required,eqfield=Password" sanitize:"keep"`
	EducationLevel  *string `json:"educationLevel"`
	Terms           bool    `json:"terms" validate:"required"`
}

// LoginForm is the sign-in form
type LoginForm struct {
	Email    string `json:"email" validate:"required,email" sanitize:"lower"`
	Password string `json:"password" validate:"required" sanitize:"keep"`
}

// ContactForm is the contact page form
type ContactForm struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     string  `json:"email" validate:"required,email" sanitize:"lower"`
	Phone     *string `json:"phone"`
	Subject   string  `json:"subject" validate:"required"`
	Message   string  `json:"message" validate:"required,min=10"`
	Privacy   bool    `json:"privacy" validate:"required"`
}
