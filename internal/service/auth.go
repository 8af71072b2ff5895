// Package service holds the business rules between HTTP handlers and storage.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/storage"
	"COURSEHUB_BACK-END/internal/validation"
)

// AuthService registers and authenticates users
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*models.User, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	store storage.Storage
	cost  int
	// compared against when the email is unknown so both failures cost one bcrypt run
	dummyHash []byte
}

// NewAuthService creates an AuthService hashing with bcrypt.DefaultCost
func NewAuthService(store storage.Storage) AuthService {
	return newAuthService(store, bcrypt.DefaultCost)
}

func newAuthService(store storage.Storage, cost int) *authService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("coursehub-placeholder"), cost)
	if err != nil {
		panic(fmt.Sprintf("service: bcrypt placeholder: %v", err))
	}
	return &authService{store: store, cost: cost, dummyHash: dummy}
}

var errUserExists = &ConflictError{Message: "User already exists with this email"}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	validation.Sanitize(&req)
	if err := validation.Struct(req); err != nil {
		return nil, invalid("Invalid registration data", err)
	}

	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if existing != nil {
		return nil, errUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, models.NewUser{
		Email:          req.Email,
		PasswordHash:   string(hash),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		EducationLevel: req.EducationLevel,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, errUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, error) {
	validation.Sanitize(&req)
	if err := validation.Struct(req); err != nil {
		return nil, invalid("Invalid login data", err)
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, &NotFoundError{Resource: "User", ID: userID}
	}
	return user, nil
}
