package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/sbilibin2017/gw-user-profile/internal/services"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

// IdentityResolver defines the minimal interface needed by the middleware
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (*models.Identity, error)
	Mode() services.AuthMode
}

// AuthErrorResponse is returned when a request carries no usable credential
// swagger:model AuthErrorResponse
type AuthErrorResponse struct {
	// Error message
	// default: token expired
	Error string `json:"error"`
}

type identityKey struct{}

// WithIdentity stores the resolved identity in ctx.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity stored by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(models.Identity)
	return identity, ok
}

// CredentialFromRequest extracts the raw credential for the given mode.
// Bearer mode reads the Authorization header and falls back to the
// authorization cookie. Session mode reads the session_id cookie.
func CredentialFromRequest(r *http.Request, mode services.AuthMode) string {
	if mode == services.AuthModeSession {
		if c, err := r.Cookie(models.CookieSessionID); err == nil {
			return c.Value
		}
		return ""
	}

	if h := r.Header.Get("Authorization"); h != "" {
		return h
	}
	if c, err := r.Cookie(models.CookieAuthorization); err == nil {
		return c.Value
	}
	return ""
}

// AuthMiddleware returns a middleware that resolves the caller's identity
// and rejects the request with 401 when it cannot.
func AuthMiddleware(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			identity, err := resolver.Resolve(ctx, CredentialFromRequest(r, resolver.Mode()))
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				if services.IsAuthError(err) {
					log.Infow("authorization failed", "err", err)
					w.WriteHeader(http.StatusUnauthorized)
					json.NewEncoder(w).Encode(AuthErrorResponse{Error: err.Error()})
					return
				}
				log.Errorw("identity resolution failed", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AuthErrorResponse{Error: "Internal server error"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, *identity)))
		})
	}
}
