// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/clinicore/clinicore/internal/handler/dto"
	"github.com/clinicore/clinicore/internal/service"
)

// Handler wraps application dependencies for HTTP handlers.
type Handler struct {
	accounts *service.AccountService
	clinical *service.ClinicalService
	validate *validator.Validate
	logger   *slog.Logger
	sessions SessionCache
}

// New creates a new Handler instance.
func New(accounts *service.AccountService, clinical *service.ClinicalService, logger *slog.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		clinical: clinical,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "handler"),
	}
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found", "NOT_FOUND")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed", "METHOD_NOT_ALLOWED")
}

// decodeAndValidate decodes a JSON body into dst and runs struct
// validation. Returns false after writing the error response.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_BODY")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			msg := fmt.Sprintf("field %q failed on the %q rule", field.Field(), field.Tag())
			writeError(w, http.StatusBadRequest, msg, "VALIDATION_ERROR")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request", "VALIDATION_ERROR")
		return false
	}

	return true
}

// handleServiceError maps service sentinel errors to HTTP responses.
// Unknown errors are logged and surface as 500 without leaking detail.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "Email already registered", "DUPLICATE_EMAIL")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid email or password", "INVALID_CREDENTIALS")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid or missing bearer token", "UNAUTHORIZED")
	case errors.Is(err, service.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "Clinical record not found", "NOT_FOUND")
	case errors.Is(err, service.ErrReferenceNotFound):
		writeError(w, http.StatusNotFound, "Referenced entity not found", "NOT_FOUND")
	default:
		h.logger.Error("unhandled service error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error", "INTERNAL")
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message, Code: code})
}
