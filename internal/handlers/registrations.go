package handlers

import (
	"net/http"
	"strconv"

	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/metrics"
	"COURSEHUB_BACK-END/internal/middleware"
	"COURSEHUB_BACK-END/internal/service"
	"COURSEHUB_BACK-END/internal/utils"
)

// RegistrationHandler handles course enrollment requests
type RegistrationHandler struct {
	registrations service.RegistrationService
	jwt           *config.JWTConfig
	metrics       *metrics.Metrics
}

func NewRegistrationHandler(registrations service.RegistrationService, jwtCfg *config.JWTConfig, m *metrics.Metrics) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, jwt: jwtCfg, metrics: m}
}

// CreateRegistration enrolls a user in a course
// @Summary Register for a course
// @Description When a bearer token is sent, userId must match it (or may be omitted).
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRegistrationRequest true "Enrollment"
// @Success 201 {object} models.CourseRegistration
// @Failure 400 {object} dto.ErrorResponse "Invalid data or already registered"
// @Failure 401 {object} dto.ErrorResponse "Token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Token belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Course or user not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/course-registrations [post]
func (h *RegistrationHandler) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	var req dto.CourseRegistrationRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", "Invalid registration data")
		return
	}

	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && req.UserID == nil {
		uid := claims.UserID
		req.UserID = &uid
	}
	if req.UserID != nil && !h.authorize(w, r, *req.UserID) {
		return
	}

	reg, err := h.registrations.Create(r.Context(), req)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	h.metrics.RecordCourseRegistration(reg.PaymentStatus)

	utils.WriteJSONResponse(w, http.StatusCreated, reg)
}

// ListUserRegistrations returns every registration of a user
// @Summary List a user's registrations
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {array} models.CourseRegistration
// @Failure 400 {object} dto.ErrorResponse "Invalid user id"
// @Failure 401 {object} dto.ErrorResponse "Token missing or invalid"
// @Failure 403 {object} dto.ErrorResponse "Token belongs to another user"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch user registrations"
// @Router /api/users/{userId}/registrations [get]
func (h *RegistrationHandler) ListUserRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil || userID <= 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid user id", "userId must be a positive integer")
		return
	}
	if !h.authorize(w, r, userID) {
		return
	}

	regs, err := h.registrations.ListForUser(r.Context(), userID)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, regs)
}

// authorize applies the session rules for user-scoped endpoints: a token for
// another user is forbidden, and no token is only allowed when not required.
func (h *RegistrationHandler) authorize(w http.ResponseWriter, r *http.Request, userID int64) bool {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		if h.jwt.RequireToken {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authorization header required")
			return false
		}
		return true
	}
	if claims.UserID != userID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Token does not belong to this user")
		return false
	}
	return true
}
