// Package wizard implements the three-step course registration flow:
// personal info, payment info, confirmation. Only the final step talks to the
// API; card details are checked for format and never transmitted.
package wizard

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/validation"
)

// Step is a wizard state
type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepPaymentInfo
	StepConfirmation
	StepSuccess
)

// TotalSteps is the number of form steps shown in the progress bar
const TotalSteps = 3

func (s Step) String() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Information"
	case StepPaymentInfo:
		return "Payment Information"
	case StepConfirmation:
		return "Confirmation"
	case StepSuccess:
		return "Success"
	default:
		return "Unknown"
	}
}

var (
	ErrWrongStep       = errors.New("wizard: action not allowed in the current step")
	ErrConsentRequired = errors.New("wizard: terms must be accepted")
	ErrNotSignedIn     = errors.New("wizard: sign in to register")
)

// PersonalInfo is step 1
type PersonalInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email" sanitize:"lower"`
	Phone     string `json:"phone" validate:"required"`
	Education string `json:"education" validate:"required,oneof=high-school bachelor master phd other"`
}

// PaymentInfo is step 2
type PaymentInfo struct {
	CardName   string `json:"cardName" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required,cardnumber"`
	ExpiryDate string `json:"expiryDate" validate:"required,expiry"`
	CVV        string `json:"cvv" validate:"required,cvv"`
}

// Registrar sends the final enrollment request. *client.Client implements it.
type Registrar interface {
	RegisterForCourse(ctx context.Context, userID, courseID int64, paymentStatus string) (*models.CourseRegistration, error)
}

// Wizard holds the state of one registration attempt. It is not safe for concurrent use.
type Wizard struct {
	course    models.Course
	user      *dto.UserResponse
	registrar Registrar

	step         Step
	personal     PersonalInfo
	payment      PaymentInfo
	consent      bool
	registration *models.CourseRegistration
	err          error
}

// New starts a wizard for course. user may be nil; step 1 is then left blank
// and Complete fails with ErrNotSignedIn.
func New(course models.Course, user *dto.UserResponse, registrar Registrar) *Wizard {
	w := &Wizard{course: course, user: user, registrar: registrar}
	w.Reset()
	return w
}

// SubmitPersonalInfo records the entered values and advances when they are valid.
// On failure the wizard stays on step 1 and the returned *validation.Errors lists each field.
func (w *Wizard) SubmitPersonalInfo(info PersonalInfo) error {
	if w.step != StepPersonalInfo {
		return ErrWrongStep
	}
	w.personal = info
	clean := info
	validation.Sanitize(&clean)
	if err := validation.Struct(clean); err != nil {
		return err
	}
	w.personal = clean
	w.step = StepPaymentInfo
	return nil
}

// SubmitPaymentInfo is SubmitPersonalInfo for step 2
func (w *Wizard) SubmitPaymentInfo(info PaymentInfo) error {
	if w.step != StepPaymentInfo {
		return ErrWrongStep
	}
	w.payment = info
	clean := info
	validation.Sanitize(&clean)
	if err := validation.Struct(clean); err != nil {
		return err
	}
	w.payment = clean
	w.step = StepConfirmation
	return nil
}

// Back returns to the previous step without re-validating
func (w *Wizard) Back() error {
	switch w.step {
	case StepPaymentInfo:
		w.step = StepPersonalInfo
	case StepConfirmation:
		w.step = StepPaymentInfo
	default:
		return ErrWrongStep
	}
	w.err = nil
	return nil
}

// SetConsent records the terms checkbox
func (w *Wizard) SetConsent(accepted bool) {
	w.consent = accepted
}

// Complete sends the registration. On failure the wizard stays on the
// confirmation step with every entered value intact and the error recorded.
func (w *Wizard) Complete(ctx context.Context) (*models.CourseRegistration, error) {
	if w.step != StepConfirmation {
		return nil, ErrWrongStep
	}
	if !w.consent {
		return nil, ErrConsentRequired
	}
	if w.user == nil {
		return nil, ErrNotSignedIn
	}

	reg, err := w.registrar.RegisterForCourse(ctx, w.user.ID, w.course.ID, models.PaymentStatusCompleted)
	if err != nil {
		w.err = err
		return nil, err
	}
	w.err = nil
	w.registration = reg
	w.step = StepSuccess
	return reg, nil
}

// Reset clears every step and returns to step 1 with the signed-in user's details prefilled
func (w *Wizard) Reset() {
	w.step = StepPersonalInfo
	w.personal = w.prefill()
	w.payment = PaymentInfo{}
	w.consent = false
	w.registration = nil
	w.err = nil
}

func (w *Wizard) prefill() PersonalInfo {
	if w.user == nil {
		return PersonalInfo{}
	}
	p := PersonalInfo{
		FirstName: w.user.FirstName,
		LastName:  w.user.LastName,
		Email:     w.user.Email,
	}
	if w.user.Phone != nil {
		p.Phone = *w.user.Phone
	}
	return p
}

func (w *Wizard) Step() Step { return w.step }
func (w *Wizard) Course() models.Course { return w.course }
func (w *Wizard) PersonalInfo() PersonalInfo { return w.personal }
func (w *Wizard) PaymentInfo() PaymentInfo { return w.payment }
func (w *Wizard) Consent() bool { return w.consent }
func (w *Wizard) Registration() *models.CourseRegistration { return w.registration }

// Err is the error of the last failed Complete, cleared on success, Back and Reset
func (w *Wizard) Err() error { return w.err }

// Progress returns the 1-based step shown in the progress bar
func (w *Wizard) Progress() (current, total int) {
	if w.step >= StepConfirmation {
		return TotalSteps, TotalSteps
	}
	return int(w.step), TotalSteps
}

// FormatCardNumber groups digits in blocks of four: "4111111111111111" -> "4111 1111 1111 1111"
func FormatCardNumber(s string) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if n > 0 && n%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// FormatExpiryDate keeps the digits of s and inserts the slash: "1227" -> "12/27"
func FormatExpiryDate(s string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if len(digits) < 2 {
		return digits
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits[:2] + "/" + digits[2:]
}
