package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/clinicore/clinicore/internal/auth"
	"github.com/clinicore/clinicore/internal/metrics"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

// UserSource resolves token subjects to user accounts.
type UserSource interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// IdentityCache caches resolved identities keyed by a token digest.
type IdentityCache interface {
	GetIdentity(ctx context.Context, cacheKey string) (*model.Identity, error)
	SetIdentity(ctx context.Context, cacheKey string, identity *model.Identity) error
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  *auth.TokenManager
	Users   UserSource
	Cache   IdentityCache // optional
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates bearer-token requests.
// The token is verified on every request; only the user lookup behind
// it is cached. On success the resolved identity is injected into the
// request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				writeAuthError(w)
				return
			}

			email, err := cfg.Tokens.Verify(token)
			if err != nil {
				recorder.IncTokenRejected()
				logAuthFailure(cfg.Logger, r, "invalid_token")
				writeAuthError(w)
				return
			}

			cacheKey := auth.QuickHash(token)

			if cfg.Cache != nil {
				identity, _ := cfg.Cache.GetIdentity(r.Context(), cacheKey)
				if identity != nil {
					recorder.IncIdentityCacheHit()
					ctx := auth.ContextWithIdentity(r.Context(), identity)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				recorder.IncIdentityCacheMiss()
			}

			user, err := cfg.Users.GetUserByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					// Valid signature for an account that no longer exists.
					recorder.IncTokenRejected()
					logAuthFailure(cfg.Logger, r, "unknown_subject")
				} else {
					cfg.Logger.Error("database error during auth",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				writeAuthError(w)
				return
			}

			identity := &model.Identity{
				UserID:     user.ID,
				Email:      user.Email,
				Name:       user.Name,
				Surname:    user.Surname,
				Profession: user.Profession,
			}

			if cfg.Cache != nil {
				_ = cfg.Cache.SetIdentity(r.Context(), cacheKey, identity)
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// writeAuthError writes a 401 Unauthorized response.
// The same message is used for all auth failures to prevent probing.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Invalid or missing bearer token","code":"UNAUTHORIZED"}`))
}
