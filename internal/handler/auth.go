package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/clinicore/clinicore/internal/auth"
	"github.com/clinicore/clinicore/internal/handler/dto"
)

// SessionCache invalidates cached identities on logout.
type SessionCache interface {
	DeleteIdentity(ctx context.Context, cacheKey string) error
}

// SetSessionCache wires the identity cache used for logout.
// Optional; without it logout is a no-op acknowledgement.
func (h *Handler) SetSessionCache(c SessionCache) {
	h.sessions = c
}

// Login authenticates a user and issues a bearer token.
// The request body is form-encoded with username and password fields,
// where username carries the email.
//
// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body", "INVALID_BODY")
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "Invalid email or password", "INVALID_CREDENTIALS")
		return
	}

	token, err := h.accounts.Login(r.Context(), username, password)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout invalidates the caller's cached session. The token itself
// stays valid until expiry; clients are expected to discard it.
//
// POST /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			_ = h.sessions.DeleteIdentity(r.Context(), auth.QuickHash(strings.TrimSpace(token)))
		}
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Logout successful"})
}

// Protected greets the authenticated caller.
//
// GET /protected
func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	writeJSON(w, http.StatusOK, dto.ProtectedResponse{
		Message: fmt.Sprintf("Hola, %s. Estás autenticado.", identity.Name),
	})
}
