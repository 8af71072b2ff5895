package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"COURSEHUB_BACK-END/internal/dto"
)

func strPtr(s string) *string { return &s }
func intPtr(v int64) *int64   { return &v }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs *Errors
	require.ErrorAs(t, err, &verrs)
	return verrs.Fields
}

func TestStruct_Register(t *testing.T) {
	tests := []struct {
		name   string
		req    dto.RegisterRequest
		fields map[string]string
	}{
		{
			name: "valid",
			req:  dto.RegisterRequest{Email: "a@b.com", Password: "x", FirstName: "A", LastName: "B"},
		},
		{
			name: "all missing",
			req:  dto.RegisterRequest{},
			fields: map[string]string{
				"email":     "Email is required",
				"password":  "Password is required",
				"firstName": "First name is required",
				"lastName":  "Last name is required",
			},
		},
		{
			name:   "bad email",
			req:    dto.RegisterRequest{Email: "nope", Password: "x", FirstName: "A", LastName: "B"},
			fields: map[string]string{"email": "Invalid email address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.fields, fieldsOf(t, err))
		})
	}
}

func TestStruct_CourseRegistration(t *testing.T) {
	err := Struct(dto.CourseRegistrationRequest{})
	assert.Equal(t, map[string]string{
		"userId":   "User id is required",
		"courseId": "Course id is required",
	}, fieldsOf(t, err))

	err = Struct(dto.CourseRegistrationRequest{UserID: intPtr(0), CourseID: intPtr(-3)})
	assert.Equal(t, map[string]string{
		"userId":   "User id must be greater than 0",
		"courseId": "Course id must be greater than 0",
	}, fieldsOf(t, err))

	err = Struct(dto.CourseRegistrationRequest{UserID: intPtr(1), CourseID: intPtr(1), PaymentStatus: strPtr(strings.Repeat("x", 33))})
	assert.Equal(t, map[string]string{
		"paymentStatus": "Payment status must be at most 32 characters",
	}, fieldsOf(t, err))

	assert.NoError(t, Struct(dto.CourseRegistrationRequest{UserID: intPtr(1), CourseID: intPtr(1), PaymentStatus: strPtr("paid")}))

	assert.NoError(t, Struct(dto.CourseRegistrationRequest{UserID: intPtr(1), CourseID: intPtr(2)}))
}

type cardForm struct {
	Number string `json:"cardNumber" validate:"required,cardnumber"`
	Expiry string `json:"expiryDate" validate:"required,expiry"`
	CVV    string `json:"cvv" validate:"required,cvv"`
}

func TestStruct_CardRules(t *testing.T) {
	assert.NoError(t, Struct(cardForm{Number: "4111 1111 1111 1111", Expiry: "12/29", CVV: "123"}))
	assert.NoError(t, Struct(cardForm{Number: "4111111111111111", Expiry: "01/30", CVV: "1234"}))

	err := Struct(cardForm{Number: "4111", Expiry: "13/29", CVV: "12"})
	assert.Equal(t, map[string]string{
		"cardNumber": "Card number must be 16 digits",
		"expiryDate": "Expiry date must be in MM/YY format",
		"cvv":        "CVV must be 3 or 4 digits",
	}, fieldsOf(t, err))
}

type consentForm struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Terms           bool   `json:"terms" validate:"required"`
}

func TestStruct_ClientRules(t *testing.T) {
	err := Struct(consentForm{Password: "short", ConfirmPassword: "other"})
	assert.Equal(t, map[string]string{
		"password":        "Password must be at least 8 characters",
		"confirmPassword": "Confirm password must match password",
		"terms":           "Terms must be accepted",
	}, fieldsOf(t, err))
}

func TestErrors_Error(t *testing.T) {
	err := &Errors{Fields: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())
	assert.Equal(t, map[string]string{"email": "taken"}, Field("email", "taken").Fields)
}

func TestSanitize(t *testing.T) {
	req := dto.RegisterRequest{
		Email:          "  Alice@Example.COM ",
		Password:       "  spaced secret  ",
		FirstName:      "  Alice ",
		LastName:       "Smith",
		Phone:          strPtr("   "),
		EducationLevel: strPtr(" master "),
	}
	Sanitize(&req)

	assert.Equal(t, "alice@example.com", req.Email)
	assert.Equal(t, "  spaced secret  ", req.Password)
	assert.Equal(t, "Alice", req.FirstName)
	assert.Nil(t, req.Phone)
	require.NotNil(t, req.EducationLevel)
	assert.Equal(t, "master", *req.EducationLevel)

	assert.NotPanics(t, func() {
		Sanitize(nil)
		Sanitize(req)
		var p *dto.RegisterRequest
		Sanitize(p)
	})
}
