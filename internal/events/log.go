package events

import (
	"context"

	"github.com/rs/zerolog"
)

// LogPublisher records events in the application log when no broker is configured
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishRegistrationCreated(_ context.Context, ev RegistrationCreated) error {
	p.logger.Info().
		Str("event", TypeRegistrationCreated).
		Int64("registration_id", ev.RegistrationID).
		Int64("user_id", ev.UserID).
		Int64("course_id", ev.CourseID).
		Str("payment_status", ev.PaymentStatus).
		Time("occurred_at", ev.OccurredAt).
		Msg("domain event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
