package events

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPublisher_WritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))

	err := p.PublishRegistrationCreated(context.Background(), RegistrationCreated{
		RegistrationID: 7,
		UserID:         3,
		CourseID:       1,
		PaymentStatus:  "completed",
		OccurredAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, TypeRegistrationCreated, line["event"])
	assert.EqualValues(t, 7, line["registration_id"])
	assert.EqualValues(t, 3, line["user_id"])
	assert.EqualValues(t, 1, line["course_id"])
	assert.Equal(t, "completed", line["payment_status"])
	assert.NoError(t, p.Close())
}

func TestNewKafkaWriter_Settings(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092", "localhost:9093"}, "course-registrations")
	defer w.Close()

	assert.Equal(t, "course-registrations", w.Topic)
	assert.True(t, w.AllowAutoTopicCreation)
	assert.NotNil(t, w.Addr)
}
