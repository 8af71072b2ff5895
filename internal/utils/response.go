package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/service"
)

// maxBodyBytes caps request bodies decoded by DecodeJSONRequest
const maxBodyBytes = 1 << 20

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

// WriteErrorResponse writes a JSON error body
func WriteErrorResponse(w http.ResponseWriter, status int, errType, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errType, Message: message})
}

// WriteValidationResponse writes a 400 with field-level messages
func WriteValidationResponse(w http.ResponseWriter, message string, fields map[string]string) {
	WriteJSONResponse(w, http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: message,
		Fields:  fields,
	})
}

// DecodeJSONRequest decodes the request body into dst. Unknown fields are ignored.
func DecodeJSONRequest(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// WriteServiceError maps service errors onto HTTP statuses.
// Unexpected errors are logged and reported without detail.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr     *service.ValidationError
		notFound *service.NotFoundError
		conflict *service.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		WriteValidationResponse(w, verr.Message, verr.Fields)
	case errors.As(err, &notFound):
		WriteErrorResponse(w, http.StatusNotFound, "Not found", notFound.Error())
	case errors.As(err, &conflict):
		WriteErrorResponse(w, http.StatusBadRequest, "Conflict", conflict.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Invalid email or password")
	default:
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
	}
}
