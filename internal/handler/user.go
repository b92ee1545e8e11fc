package handler

import (
	"net/http"

	"github.com/clinicore/clinicore/internal/handler/dto"
	"github.com/clinicore/clinicore/internal/service"
)

// CreateUser registers a user account and returns the created user.
// Responds 200 rather than 201 for compatibility with existing clients.
//
// POST /usuarios
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.registerFromBody(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Register is an alias of CreateUser that answers with a confirmation
// message instead of the user payload.
//
// POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.registerFromBody(w, r); !ok {
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Usuario registrado exitosamente"})
}

// ListUsers returns all registered accounts.
//
// GET /usuarios
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// registerFromBody decodes, validates, and registers a user. On failure
// the error response has already been written.
func (h *Handler) registerFromBody(w http.ResponseWriter, r *http.Request) (any, bool) {
	var req dto.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return nil, false
	}

	user, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Name:       req.Name,
		Surname:    req.Surname,
		Email:      req.Email,
		Profession: req.Profession,
		Password:   req.Password,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return nil, false
	}

	return user, true
}
