package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/events"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
	"COURSEHUB_BACK-END/internal/validation"
)

// RegistrationService enrolls users in courses
type RegistrationService interface {
	Create(ctx context.Context, req dto.CourseRegistrationRequest) (*models.CourseRegistration, error)
	ListForUser(ctx context.Context, userID int64) ([]models.CourseRegistration, error)
}

type registrationService struct {
	store     storage.Storage
	publisher events.Publisher
	notifier  Notifier
}

// NewRegistrationService wires storage with the event publisher and an optional notifier
func NewRegistrationService(store storage.Storage, publisher events.Publisher, notifier Notifier) RegistrationService {
	return &registrationService{store: store, publisher: publisher, notifier: notifier}
}

var errAlreadyRegistered = &ConflictError{Message: "User is already registered for this course"}

func (s *registrationService) Create(ctx context.Context, req dto.CourseRegistrationRequest) (*models.CourseRegistration, error) {
	validation.Sanitize(&req)
	if err := validation.Struct(req); err != nil {
		return nil, invalid("Invalid registration data", err)
	}
	userID, courseID := *req.UserID, *req.CourseID

	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", courseID, err)
	}
	if course == nil {
		return nil, &NotFoundError{Resource: "Course", ID: courseID}
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, &NotFoundError{Resource: "User", ID: userID}
	}

	existing, err := s.store.GetUserRegistrations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations for user %d: %w", userID, err)
	}
	for _, r := range existing {
		if r.CourseID == courseID {
			return nil, errAlreadyRegistered
		}
	}

	status := models.PaymentStatusPending
	if req.PaymentStatus != nil {
		status = *req.PaymentStatus
	}

	reg, err := s.store.CreateCourseRegistration(ctx, models.NewCourseRegistration{
		UserID:        userID,
		CourseID:      courseID,
		PaymentStatus: status,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, errAlreadyRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	logger := log.Ctx(ctx).With().Int64("registration_id", reg.ID).Int64("user_id", userID).Int64("course_id", courseID).Logger()
	logger.Info().Str("payment_status", reg.PaymentStatus).Msg("course registration created")

	if s.publisher != nil {
		err := s.publisher.PublishRegistrationCreated(ctx, events.RegistrationCreated{
			RegistrationID: reg.ID,
			UserID:         reg.UserID,
			CourseID:       reg.CourseID,
			PaymentStatus:  reg.PaymentStatus,
			OccurredAt:     reg.RegistrationDate,
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to publish registration event")
		}
	}
	if s.notifier != nil {
		if err := s.notifier.SendRegistrationConfirmation(ctx, *user, *course); err != nil {
			logger.Warn().Err(err).Msg("failed to send confirmation email")
		}
	}

	return reg, nil
}

func (s *registrationService) ListForUser(ctx context.Context, userID int64) ([]models.CourseRegistration, error) {
	regs, err := s.store.GetUserRegistrations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations for user %d: %w", userID, err)
	}
	if regs == nil {
		regs = []models.CourseRegistration{}
	}
	return regs, nil
}
