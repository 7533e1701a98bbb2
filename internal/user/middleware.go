package user

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	httperrors "github.com/yoonseo-dev/tinytunes/pkg/http/errors"
)

type ctxKey int

const (
	userKey ctxKey = iota
	adminKey
)

// FromContext returns the authenticated app user, if any.
func FromContext(ctx context.Context) *AppUser {
	u, _ := ctx.Value(userKey).(*AppUser)
	return u
}

// IsAdmin reports whether the request carried admin credentials.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminKey).(bool)
	return ok
}

// Middleware authenticates requests. Public paths pass through; a valid
// X-Admin-Key grants admin on any path; /v1/admin/ paths additionally accept a
// Bearer session token; everything else requires a live user's X-API-Key.
func Middleware(svc *Service, tokens *AdminTokenManager, adminAPIKey string, logger zerolog.Logger) func(http.Handler) http.Handler {
	log := logger.With().Str("component", "auth_middleware").Logger()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if key := r.Header.Get("X-Admin-Key"); key != "" && key == adminAPIKey {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey, true)))
				return
			}

			if strings.HasPrefix(r.URL.Path, "/v1/admin/") {
				if claims := bearerClaims(r, tokens); claims != nil {
					next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey, true)))
					return
				}
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidAdminKey, "Valid admin credentials required")
				return
			}

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "API key required")
				return
			}
			u, err := svc.FindByAPIKey(r.Context(), apiKey)
			if err != nil {
				log.Error().Err(err).Msg("api key lookup failed")
				httperrors.RespondInternalError(w, "Authentication failed")
				return
			}
			if u == nil || !u.Active {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidAPIKey, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
		})
	}
}

func isPublicPath(path string) bool {
	switch {
	case path == "/healthz", path == "/metrics", path == "/v1/ping":
		return true
	case path == "/v1/users/register", path == "/v1/admin/auth/login":
		return true
	}
	return false
}

func bearerClaims(r *http.Request, tokens *AdminTokenManager) *AdminClaims {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}
	claims, err := tokens.Validate(parts[1])
	if err != nil {
		return nil
	}
	return claims
}
