package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
	"COURSEHUB_BACK-END/internal/validation"
)

// ContactService stores contact form messages
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactMessage, error)
}

type contactService struct {
	store    storage.Storage
	notifier Notifier
}

func NewContactService(store storage.Storage, notifier Notifier) ContactService {
	return &contactService{store: store, notifier: notifier}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactMessage, error) {
	validation.Sanitize(&req)
	if err := validation.Struct(req); err != nil {
		return nil, invalid("Invalid message data", err)
	}

	msg, err := s.store.CreateContactMessage(ctx, models.NewContactMessage{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	log.Ctx(ctx).Info().Int64("message_id", msg.ID).Str("subject", msg.Subject).Msg("contact message received")
	if s.notifier != nil {
		if err := s.notifier.SendContactNotification(ctx, *msg); err != nil {
			log.Ctx(ctx).Warn().Err(err).Int64("message_id", msg.ID).Msg("failed to send contact notification")
		}
	}
	return msg, nil
}
