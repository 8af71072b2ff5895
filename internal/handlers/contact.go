package handlers

import (
	"net/http"

	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/metrics"
	"COURSEHUB_BACK-END/internal/service"
	"COURSEHUB_BACK-END/internal/utils"
)

// ContactHandler accepts contact form messages
type ContactHandler struct {
	contact service.ContactService
	metrics *metrics.Metrics
}

func NewContactHandler(contact service.ContactService, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{contact: contact, metrics: m}
}

// SendMessage stores a contact message
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Contact form"
// @Success 201 {object} dto.MessageResponse "Message sent successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid message data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/contact [post]
func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", "Invalid message data")
		return
	}

	if _, err := h.contact.Submit(r.Context(), req); err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}
	h.metrics.RecordContactMessage()

	utils.WriteJSONResponse(w, http.StatusCreated, dto.MessageResponse{Message: "Message sent successfully"})
}
