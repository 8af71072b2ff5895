package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/events"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.RegistrationCreated
	err    error
}

func (p *recordingPublisher) PublishRegistrationCreated(_ context.Context, ev events.RegistrationCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type recordingNotifier struct {
	confirmations []string
	contacts      []int64
	err           error
}

func (n *recordingNotifier) SendRegistrationConfirmation(_ context.Context, user models.User, course models.Course) error {
	n.confirmations = append(n.confirmations, user.Email+"|"+course.Title)
	return n.err
}

func (n *recordingNotifier) SendContactNotification(_ context.Context, msg models.ContactMessage) error {
	n.contacts = append(n.contacts, msg.ID)
	return n.err
}

func ptr[T any](v T) *T { return &v }

func newAuth(t *testing.T) (*authService, *memory.Store) {
	t.Helper()
	store := memory.New()
	return newAuthService(store, bcrypt.MinCost), store
}

func registerReq(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     email,
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hash and normalizes email", func(t *testing.T) {
		svc, store := newAuth(t)
		req := registerReq("  Alice@X.com ")
		req.Phone = ptr("   ")

		user, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice@x.com", user.Email)
		assert.Nil(t, user.Phone)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))

		stored, err := store.GetUserByEmail(ctx, "alice@x.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		svc, _ := newAuth(t)
		_, err := svc.Register(ctx, registerReq("alice@x.com"))
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerReq("ALICE@x.com"))
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "User already exists with this email", conflict.Message)
	})

	t.Run("missing fields are reported per field", func(t *testing.T) {
		svc, _ := newAuth(t)
		_, err := svc.Register(ctx, dto.RegisterRequest{Email: "not-an-email"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
		assert.Contains(t, verr.Fields, "password")
		assert.Contains(t, verr.Fields, "firstName")
		assert.Contains(t, verr.Fields, "lastName")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t)
	_, err := svc.Register(ctx, registerReq("alice@x.com"))
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Login(ctx, dto.LoginRequest{Email: "Alice@x.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", user.Email)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := svc.Login(ctx, dto.LoginRequest{Email: "bob@x.com", Password: "secret123"})
		_, errWrong := svc.Login(ctx, dto.LoginRequest{Email: "alice@x.com", Password: "wrong-password"})
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("malformed request", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@x.com"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "password")
	})
}

func TestAuthService_Profile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t)
	created, err := svc.Register(ctx, registerReq("alice@x.com"))
	require.NoError(t, err)

	user, err := svc.Profile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)

	_, err = svc.Profile(ctx, 99)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "User not found", nf.Error())
}

func seedCourse(t *testing.T, store *memory.Store, title string, category models.Category) *models.Course {
	t.Helper()
	c, err := store.CreateCourse(context.Background(), models.NewCourse{
		Title:    title,
		Category: category,
		Price:    100,
		Duration: "4 weeks",
	})
	require.NoError(t, err)
	return c
}

func TestCourseService(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedCourse(t, store, "Go", models.CategoryTechnology)
	seedCourse(t, store, "Marketing", models.CategoryBusiness)
	svc := NewCourseService(store)

	for _, tc := range []struct {
		category string
		want     int
	}{
		{"", 2},
		{"all", 2},
		{"unknown", 2},
		{"technology", 1},
		{"design", 0},
	} {
		t.Run("category="+tc.category, func(t *testing.T) {
			courses, err := svc.List(ctx, tc.category)
			require.NoError(t, err)
			assert.NotNil(t, courses)
			assert.Len(t, courses, tc.want)
		})
	}

	course, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go", course.Title)

	_, err = svc.Get(ctx, 42)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Course", nf.Resource)
}

func TestRegistrationService_Create(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (RegistrationService, *memory.Store, *recordingPublisher, *recordingNotifier) {
		store := memory.New()
		seedCourse(t, store, "Go", models.CategoryTechnology)
		_, err := newAuthService(store, bcrypt.MinCost).Register(ctx, registerReq("alice@x.com"))
		require.NoError(t, err)
		pub := &recordingPublisher{}
		notifier := &recordingNotifier{}
		return NewRegistrationService(store, pub, notifier), store, pub, notifier
	}

	t.Run("defaults to pending and side effects fire", func(t *testing.T) {
		svc, store, pub, notifier := setup(t)
		reg, err := svc.Create(ctx, dto.CourseRegistrationRequest{UserID: ptr(int64(1)), CourseID: ptr(int64(1))})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, reg.PaymentStatus)
		assert.Equal(t, int64(1), reg.ID)

		course, err := store.GetCourse(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), course.Enrolled)

		require.Len(t, pub.events, 1)
		assert.Equal(t, reg.ID, pub.events[0].RegistrationID)
		assert.Equal(t, []string{"alice@x.com|Go"}, notifier.confirmations)
	})

	t.Run("second registration for the same course is a conflict", func(t *testing.T) {
		svc, _, _, _ := setup(t)
		req := dto.CourseRegistrationRequest{UserID: ptr(int64(1)), CourseID: ptr(int64(1)), PaymentStatus: ptr("completed")}
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
		_, err = svc.Create(ctx, req)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("unknown course or user", func(t *testing.T) {
		svc, _, _, _ := setup(t)
		_, err := svc.Create(ctx, dto.CourseRegistrationRequest{UserID: ptr(int64(1)), CourseID: ptr(int64(9))})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Course", nf.Resource)

		_, err = svc.Create(ctx, dto.CourseRegistrationRequest{UserID: ptr(int64(9)), CourseID: ptr(int64(1))})
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "User", nf.Resource)
	})

	t.Run("invalid payload", func(t *testing.T) {
		svc, _, _, _ := setup(t)
		_, err := svc.Create(ctx, dto.CourseRegistrationRequest{CourseID: ptr(int64(0)), PaymentStatus: ptr(strings.Repeat("x", 33))})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "userId")
		assert.Contains(t, verr.Fields, "courseId")
		assert.Contains(t, verr.Fields, "paymentStatus")
	})

	t.Run("payment status is stored as sent", func(t *testing.T) {
		svc, store, _, _ := setup(t)
		reg, err := svc.Create(ctx, dto.CourseRegistrationRequest{UserID: ptr(int64(1)), CourseID: ptr(int64(1)), PaymentStatus: ptr("paid")})
		require.NoError(t, err)
		assert.Equal(t, "paid", reg.PaymentStatus)

		regs, err := store.GetUserRegistrations(ctx, 1)
		require.NoError(t, err)
		require.Len(t, regs, 1)
		assert.Equal(t, "paid", regs[0].PaymentStatus)
	})

	t.Run("publisher and notifier failures do not fail the registration", func(t *testing.T) {
		svc, _, pub, notifier := setup(t)
		pub.err = errors.New("broker down")
		notifier.err = errors.New("smtp down")
		_, err := svc.Create(ctx, dto.CourseRegistrationRequest{UserID: ptr(int64(1)), CourseID: ptr(int64(1))})
		require.NoError(t, err)
	})
}

func TestRegistrationService_ListForUser(t *testing.T) {
	svc := NewRegistrationService(memory.New(), nil, nil)
	regs, err := svc.ListForUser(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, regs)
	assert.Empty(t, regs)
}

func TestContactService_Submit(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewContactService(memory.New(), notifier)

	msg, err := svc.Submit(ctx, dto.ContactRequest{
		FirstName: " Bob ",
		LastName:  "Jones",
		Email:     "Bob@Example.com",
		Subject:   "Question",
		Message:   "When does the next cohort start?",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)
	assert.Equal(t, "Bob", msg.FirstName)
	assert.Equal(t, "bob@example.com", msg.Email)
	assert.Equal(t, []int64{1}, notifier.contacts)

	_, err = svc.Submit(ctx, dto.ContactRequest{FirstName: "Bob", Email: "bad"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid email address", verr.Fields["email"])
	assert.Contains(t, verr.Fields, "message")
}
