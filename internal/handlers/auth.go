package handlers

import (
	"errors"
	"net/http"

	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/metrics"
	"COURSEHUB_BACK-END/internal/middleware"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/service"
	"COURSEHUB_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth    service.AuthService
	jwt     *config.JWTConfig
	metrics *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(auth service.AuthService, jwtCfg *config.JWTConfig, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{auth: auth, jwt: jwtCfg, metrics: m}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a student account. The response never contains the password.
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or email already registered"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", "Invalid registration data")
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	h.metrics.RecordUserRegistered()

	h.writeAuthResponse(w, r, http.StatusCreated, user)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password. Unknown email and wrong password give the same answer.
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", "Invalid login data")
		return
	}

	user, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.metrics.RecordLogin(false)
		}
		utils.WriteServiceError(w, r, err)
		return
	}
	h.metrics.RecordLogin(true)

	h.writeAuthResponse(w, r, http.StatusOK, user)
}

// GetProfile returns the current user's profile
// @Summary Get user profile
// @Description Get the current authenticated user's profile information
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "User profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	// Get user ID from context (set by AuthMiddleware)
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	user, err := h.auth.Profile(r.Context(), claims.UserID)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponse(*user))
}

func (h *AuthHandler) writeAuthResponse(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, err := middleware.GenerateToken(user.ID, user.Email, h.jwt)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	utils.WriteJSONResponse(w, status, dto.AuthResponse{
		User:  dto.NewUserResponse(*user),
		Token: token,
	})
}
