package utils

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/dustin/go-humanize"

	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/models"
)

// sendFunc matches smtp.SendMail
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
	send   sendFunc
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
		send:   smtp.SendMail,
	}
}

// SendRegistrationConfirmation tells the student their enrollment went through
func (e *EmailService) SendRegistrationConfirmation(ctx context.Context, user models.User, course models.Course) error {
	subject := "Registration confirmed: " + course.Title
	body := fmt.Sprintf(`Hello %s,

Thank you for registering for "%s".

Duration: %s
Price paid: D%s

You can find the course on your dashboard at any time.

Best regards,
%s
`, user.FirstName, course.Title, course.Duration, humanize.Comma(course.Price), e.config.FromName)

	return e.sendEmail(ctx, user.Email, subject, body)
}

// SendContactNotification forwards a contact form message to the admin inbox
func (e *EmailService) SendContactNotification(ctx context.Context, msg models.ContactMessage) error {
	if e.config.AdminEmail == "" {
		return nil
	}
	phone := "-"
	if msg.Phone != nil {
		phone = *msg.Phone
	}
	subject := "New contact message: " + msg.Subject
	body := fmt.Sprintf(`From: %s %s <%s>
Phone: %s

%s
`, msg.FirstName, msg.LastName, msg.Email, phone, msg.Message)

	return e.sendEmail(ctx, e.config.AdminEmail, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		e.config.FromName, fromEmail, to, headerSafe(subject), body))

	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	if err := e.send(addr, auth, fromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
